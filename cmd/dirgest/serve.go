package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgallion1/dirgest/internal/api"
	"github.com/dgallion1/dirgest/internal/config"
	"github.com/dgallion1/dirgest/internal/extract"
	"github.com/dgallion1/dirgest/internal/parser"
	"github.com/dgallion1/dirgest/internal/pathstore"
	"github.com/dgallion1/dirgest/internal/pipeline"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP extraction service",
	Long: `Run the HTTP extraction service. Configuration is read from the environment
(PORT, DIRGEST_API_KEY, PATHSTORE_URL, WORKER_COUNT, ...).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if err := cfg.ValidateServer(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	dict, err := cfg.Dictionary()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps := pipeline.Deps{
		Extractor:     extract.New(cfg.ExtractOptions(), dict),
		ParserOptions: parser.Options{PDFFallback: cfg.PDFFallbackPdftotext},
		Log:           logger,
		Metrics:       pipeline.NewMetrics(reg),
		Latency:       pipeline.NewLatencyStats(time.Hour),
	}

	var ps *pathstore.Client
	if cfg.PathstoreURL != "" {
		ps = pathstore.NewClient(cfg.PathstoreURL, cfg.PathstoreAPIKey)
		defer ps.Close()
		deps.Publisher = pipeline.NewPublisher(ps, logger, cfg.WorkerCount)
		logger.Info("publishing enabled", zap.String("pathstore", cfg.PathstoreURL))
	}

	orch := pipeline.NewOrchestrator(deps, cfg.WorkerCount, cfg.MaxQueueSize, cfg.JobTTL)
	orch.Start(ctx)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewServer(orch, reg, logger, cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting dirgest", zap.String("port", cfg.Port), zap.Int("workers", cfg.WorkerCount))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		orch.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	orch.Stop()
	return nil
}
