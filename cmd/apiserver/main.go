// API server entry point for casetrace.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/casetrace/casetrace/internal/application/analysis"
	"github.com/casetrace/casetrace/internal/config"
	"github.com/casetrace/casetrace/internal/infrastructure/monitoring/logging"
	appprom "github.com/casetrace/casetrace/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/casetrace/casetrace/internal/interfaces/http"
)

const defaultConfigPath = "configs/config.yaml"

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:     "apiserver",
		Short:   "casetrace analysis API server",
		Long:    "Serves the casetrace text-forensics pipeline over HTTP:\nevidence extraction, threat classification, and file content routing.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(configPath)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to configuration file")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		// A missing file is not fatal: environment variables and defaults
		// still produce a usable configuration.
		fmt.Fprintf(os.Stderr, "warning: %v; falling back to env and defaults\n", err)
		cfg, err = config.LoadFromEnv()
		if err != nil {
			return err
		}
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: cfg.Log.OutputPaths,
	})
	if err != nil {
		return err
	}
	logger = logger.Named("casetrace")
	logging.SetDefault(logger)

	logger.Info("starting casetrace API server",
		logging.String("version", version),
		logging.Int("port", cfg.Server.Port),
	)

	var (
		metrics   *appprom.AppMetrics
		collector *appprom.Collector
	)
	if cfg.Metrics.Enabled {
		collector = appprom.NewCollector()
		metrics = appprom.NewAppMetrics(collector.Registerer())
	}

	service := analysis.BuildService(cfg, logger, metrics)

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Config:    cfg,
		Service:   service,
		Metrics:   metrics,
		Collector: collector,
		Logger:    logger,
	})
	server := httpserver.NewServer(cfg.Server, router, logger)

	// Log level is the only hot-reloadable setting; capabilities and the
	// trained model are fixed until restart.
	config.Watch(configPath, func(newCfg *config.Config) {
		if ls, ok := logger.(logging.LevelSetter); ok {
			ls.SetLevel(newCfg.Log.Level)
			logger.Info("log level updated", logging.String("level", newCfg.Log.Level))
		}
	})

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
