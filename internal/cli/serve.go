package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/martinnjensen/MetalWatch/internal/config"
	"github.com/martinnjensen/MetalWatch/internal/logger"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run continuously, scraping due sources on an interval",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := buildApp(ctx, flagConfig)
	if err != nil {
		return err
	}

	// Source definitions hot-reload with the config file; channel and
	// storage changes require a restart.
	stopWatch, err := config.Watch(flagConfig, func(cfg *config.Config) {
		if err := application.store.EnsureSources(ctx, cfg.SourceList()); err != nil {
			logger.Error("reconciling reloaded sources", nil, err)
		}
	})
	if err != nil {
		return err
	}
	defer stopWatch()

	metricsServer := &http.Server{
		Addr:    application.cfg.Serve.MetricsAddr,
		Handler: metricsMux(),
	}
	go func() {
		logger.Info("metrics listening", logger.Fields{"addr": metricsServer.Addr})
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", nil, err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		metricsServer.Shutdown(shutdownCtx)
	}()

	interval := application.cfg.CheckInterval()
	logger.Info("daemon started", logger.Fields{"check_interval": interval.String()})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runDue := func() {
		outcomes, err := application.orch.RunDueWorkflows(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			logger.Error("workflow run failed", nil, err)
			return
		}
		for _, outcome := range outcomes {
			if !outcome.Success {
				logger.Warn("source failed", logger.Fields{
					"source": outcome.SourceID,
					"error":  outcome.Error,
				})
			}
		}
	}

	runDue()
	for {
		select {
		case <-ctx.Done():
			logger.Info("daemon stopping", nil)
			return nil
		case <-ticker.C:
			runDue()
		}
	}
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	return mux
}
