package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"company-rollup-go/internal/aggregator"
	"company-rollup-go/internal/config"
	"company-rollup-go/internal/dataset"
	"company-rollup-go/internal/exporter"
	"company-rollup-go/internal/logger"
	"company-rollup-go/internal/metrics"
	"company-rollup-go/internal/processor"
	"company-rollup-go/internal/store"
)

const (
	uploadField     = "file"
	defaultFileName = "upload.csv"
	multipartMemory = 8 << 20
)

// Server exposes the load and export triggers over HTTP.
type Server struct {
	cfg     *config.Config
	log     *logger.Logger
	store   *store.MemoryStore
	proc    *processor.Processor
	metrics *metrics.Metrics
}

func New(cfg *config.Config, log *logger.Logger, st *store.MemoryStore, m *metrics.Metrics) *Server {
	return &Server{
		cfg:     cfg,
		log:     log,
		store:   st,
		proc:    processor.New(log, m),
		metrics: m,
	}
}

// LoadResponse is the body returned by POST /load.
type LoadResponse struct {
	store.Loaded
	Summary dataset.Summary `json:"summary"`
}

// Routes builds the router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLog)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Post("/load", s.handleLoad)
	r.Delete("/load", s.handleClear)
	r.Post("/export", s.handleExport)
	r.Get("/export", s.handleExport)
	return r
}

// Load parses r as the file called name and makes it the current dataset.
// On a parse error the current dataset is left as it was.
func (s *Server) Load(name string, r io.Reader) (LoadResponse, error) {
	log := s.log.WithComponent("server.load").WithField("file_name", name)

	ds, err := dataset.Parse(name, r)
	if err != nil {
		s.metrics.LoadFailures.Inc()
		log.WithError(err).Warn("parse failed")
		return LoadResponse{}, fmt.Errorf("%w: %w", errBadUpload, err)
	}
	summary := dataset.Summarize(ds)
	loaded := s.store.Set(name, ds)

	s.metrics.DatasetsLoaded.Inc()
	s.metrics.RowsLoaded.Add(float64(summary.TotalRows))
	s.metrics.RowsSkipped.Add(float64(summary.SkippedRows))

	entry := log.WithFields(map[string]interface{}{
		"dataset_id":      loaded.ID,
		"total_rows":      summary.TotalRows,
		"skipped_rows":    summary.SkippedRows,
		"distinct_groups": summary.DistinctGroups,
	})
	if len(summary.MissingColumns) > 0 {
		entry.WithField("missing_columns", summary.MissingColumns).Warn("dataset loaded with missing columns")
	} else {
		entry.Info("dataset loaded")
	}
	return LoadResponse{Loaded: loaded, Summary: summary}, nil
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	name, body, err := uploadedFile(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer body.Close()

	resp, err := s.Load(name, body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.store.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	loaded, ok := s.store.Current()
	if !ok {
		s.log.WithRequest(r).Debug("export requested before any file was loaded")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	format, err := exporter.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	res, err := s.proc.Process(loaded.Dataset, format, &buf)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", exporter.ContentType(format))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.Artifact}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Dataset-ID", loaded.ID)
	w.Header().Set("X-Rollup-Groups", strconv.Itoa(res.Groups))
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.WithRequest(r).WithError(err).Error("failed to write response")
	}
}

// uploadedFile returns the multipart "file" part, or the raw body named by ?name=.
func uploadedFile(r *http.Request) (string, io.ReadCloser, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return "", nil, fmt.Errorf("%w: %w", errBadUpload, err)
		}
		f, hdr, err := r.FormFile(uploadField)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", errBadUpload, err)
		}
		return hdr.Filename, f, nil
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = defaultFileName
	}
	return name, r.Body, nil
}

var errBadUpload = errors.New("invalid upload")

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, aggregator.ErrMissingGroupColumn):
		return http.StatusUnprocessableEntity
	case errors.Is(err, exporter.ErrUnknownFormat), errors.Is(err, errBadUpload):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	entry := s.log.WithRequest(r).WithError(err).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Warn("request rejected")
	}
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": err.Error()})
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := logger.RequestID(r)
		r.Header.Set(logger.RequestIDHeader, id)
		w.Header().Set(logger.RequestIDHeader, id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		s.log.WithRequest(r).WithFields(map[string]interface{}{
			"status":      ww.Status(),
			"bytes":       ww.BytesWritten(),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("request handled")
	})
}
