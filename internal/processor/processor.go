package processor

import (
	"fmt"
	"io"
	"time"

	"company-rollup-go/internal/aggregator"
	"company-rollup-go/internal/exporter"
	"company-rollup-go/internal/logger"
	"company-rollup-go/internal/metrics"
	"company-rollup-go/internal/types"
)

// Result describes one export run.
type Result struct {
	Artifact   string          `json:"artifact"`
	Format     exporter.Format `json:"format"`
	InputRows  int             `json:"input_rows"`
	Groups     int             `json:"groups"`
	DurationMs int64           `json:"duration_ms"`
	Path       string          `json:"path,omitempty"`
}

// Processor runs rollup + export for a loaded dataset.
type Processor struct {
	log     *logger.Logger
	metrics *metrics.Metrics
}

func New(log *logger.Logger, m *metrics.Metrics) *Processor {
	return &Processor{log: log, metrics: m}
}

// Process rolls up ds and writes the artifact in format f to w.
func (p *Processor) Process(ds types.Dataset, f exporter.Format, w io.Writer) (Result, error) {
	return p.run(ds, f, func(rows []types.CompanyRollup, res *Result) error {
		return exporter.Write(w, f, rows)
	})
}

// ProcessToDir rolls up ds and writes the artifact file into dir.
func (p *Processor) ProcessToDir(ds types.Dataset, f exporter.Format, dir string) (Result, error) {
	return p.run(ds, f, func(rows []types.CompanyRollup, res *Result) error {
		path, err := exporter.WriteFile(dir, f, rows)
		res.Path = path
		return err
	})
}

func (p *Processor) run(ds types.Dataset, f exporter.Format, emit func([]types.CompanyRollup, *Result) error) (Result, error) {
	log := p.log.WithComponent("processor").WithField("format", f)
	start := time.Now()
	res := Result{Artifact: exporter.ArtifactName(f), Format: f, InputRows: len(ds.Records)}

	rows, err := aggregator.RollupDataset(ds)
	if err != nil {
		p.metrics.Exports.WithLabelValues(string(f), "rejected").Inc()
		log.WithError(err).Warn("dataset rejected")
		return res, err
	}
	res.Groups = len(rows)

	if err := emit(rows, &res); err != nil {
		p.metrics.Exports.WithLabelValues(string(f), "failed").Inc()
		log.WithError(err).Error("export failed")
		return res, fmt.Errorf("export: %w", err)
	}

	elapsed := time.Since(start)
	res.DurationMs = elapsed.Milliseconds()
	p.metrics.RollupDuration.Observe(elapsed.Seconds())
	p.metrics.GroupsEmitted.Add(float64(res.Groups))
	p.metrics.Exports.WithLabelValues(string(f), "ok").Inc()

	log.WithFields(map[string]interface{}{
		"input_rows":  res.InputRows,
		"groups":      res.Groups,
		"duration_ms": res.DurationMs,
	}).Info("rollup exported")
	return res, nil
}
