package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"company-rollup-go/internal/config"
	"company-rollup-go/internal/logger"
	"company-rollup-go/internal/metrics"
	"company-rollup-go/internal/server"
	"company-rollup-go/internal/store"
)

func main() {
	cfg, err := config.Load() // loads .env
	if err != nil {
		logger.New().WithError(err).Fatal("invalid configuration")
	}

	log := logger.NewWithOptions(logger.Options{Environment: cfg.Environment, Level: cfg.LogLevel})
	log.WithField("service", "company-rollup-go").Info("starting service")

	srv := server.New(cfg, log, store.NewMemoryStore(), metrics.New())

	// optional preload, same as an upload through /load
	if cfg.DatasetPath != "" {
		log.WithField("dataset_path", cfg.DatasetPath).Info("preloading dataset")
		f, err := os.Open(cfg.DatasetPath)
		if err != nil {
			log.WithError(err).Fatal("failed to open dataset")
		}
		_, err = srv.Load(filepath.Base(cfg.DatasetPath), f)
		f.Close()
		if err != nil {
			log.WithError(err).Fatal("failed to load dataset")
		}
	}

	httpSrv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      srv.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("addr", httpSrv.Addr).Info("listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server terminated")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
