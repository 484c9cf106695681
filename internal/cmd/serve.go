package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wordlens/wordlens/internal/core"
	"github.com/wordlens/wordlens/internal/core/engine"
	"github.com/wordlens/wordlens/internal/core/store"
	"github.com/wordlens/wordlens/internal/corpus"
	errwrap "github.com/wordlens/wordlens/internal/errors"
	"github.com/wordlens/wordlens/internal/metrics"
	"github.com/wordlens/wordlens/internal/observability"
	"github.com/wordlens/wordlens/internal/output"
	"github.com/wordlens/wordlens/internal/server"
	"github.com/wordlens/wordlens/internal/server/handlers"
)

var (
	serverPort int
	serverHost string
)

// signalHealthChecker implements HealthChecker for the signal system
type signalHealthChecker struct{}

func (signalHealthChecker) CheckHealth(ctx context.Context) error {
	return nil // Signal handlers are registered and ready
}

// telemetryHealthChecker ensures telemetry system and exporter are available
type telemetryHealthChecker struct{}

func (telemetryHealthChecker) CheckHealth(ctx context.Context) error {
	if observability.TelemetrySystem == nil || observability.PrometheusExporter == nil {
		return errwrap.NewInternalError("telemetry system not initialized")
	}
	return nil
}

// storeHealthChecker verifies the lookup store is reachable
type storeHealthChecker struct {
	db *store.Store
}

func (s storeHealthChecker) CheckHealth(ctx context.Context) error {
	if s.db == nil || s.db.DB == nil {
		return errwrap.NewDatabaseError("store not opened")
	}
	if err := s.db.DB.PingContext(ctx); err != nil {
		return errwrap.WrapDatabaseError(ctx, err, "store ping failed")
	}
	return nil
}

// corpusHealthChecker verifies the corpus word lists are readable
type corpusHealthChecker struct {
	manager *corpus.Manager
}

func (c corpusHealthChecker) CheckHealth(ctx context.Context) error {
	if _, _, err := c.manager.Counts(); err != nil {
		return errwrap.WrapInternal(ctx, err, "corpus unreadable")
	}
	return nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server with graceful shutdown support.

Endpoints:
  GET  /status       corpus, progress, and budget state
  POST /runs         trigger a reclamation run (409 while one is in flight)
  GET  /runs/latest  report of the most recent completed run
  GET  /health       aggregate health, plus live/ready/startup probes
  GET  /metrics      Prometheus metrics

With scheduler.enabled, a reclamation run followed by a corpus update
fires daily at the configured UTC hour.

Signal Handling:
  • Ctrl+C (SIGINT) or SIGTERM: Graceful shutdown
  • Ctrl+C twice within 2s: Force quit
  • SIGHUP: Config reload (placeholder - restart recommended)

The server will cleanly shut down the HTTP server and flush logs on shutdown.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Flags are bound through viper, so the config carries the final
	// host and port regardless of where they were set.
	host := cfg.Server.Host
	if host == "" {
		host = serverHost
	}
	port := cfg.Server.Port
	if port == 0 {
		port = serverPort
	}

	// Initialize server logger with the telemetry namespace
	observability.InitServerLogger(appName, cfg.Logging.Level, appName)

	metricsPort := cfg.Metrics.Port
	if metricsPort == 0 {
		metricsPort = 9090
	}

	if err := observability.InitMetrics(appName, metricsPort, appName); err != nil {
		observability.ServerLogger.Error("Failed to initialize metrics",
			zap.Error(err))
		return errwrap.WrapInternal(cmd.Context(), err, "metrics initialization failed")
	}

	startedAt := time.Now()
	metrics.SetServerStartTime(startedAt.Unix())

	observability.ServerLogger.Info("Initializing server",
		zap.String("service", appName),
		zap.String("version", versionInfo.Version),
		zap.String("host", host),
		zap.Int("port", port),
		zap.Int("metrics_port", metricsPort))

	// The store stays open for the server lifetime; both the lookup
	// cache and the budget ledger live in it.
	db, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return errwrap.WrapDatabaseError(cmd.Context(), err, "store open failed")
	}

	manager := corpusManager(cfg)

	// Initialize health manager
	handlers.InitHealthManager(versionInfo.Version)
	hm := handlers.GetHealthManager()
	hm.RegisterChecker("signal_handlers", signalHealthChecker{})
	hm.RegisterChecker("telemetry", telemetryHealthChecker{})
	hm.RegisterChecker("store", storeHealthChecker{db: db})
	hm.RegisterChecker("corpus", corpusHealthChecker{manager: manager})

	// HTTP triggers and the scheduler share one run state so a manual
	// run and a scheduled run never overlap.
	runState := &engine.RunState{}

	runPipeline := func(ctx context.Context) (*core.RunReport, error) {
		reclaimer, _, err := newReclaimer(cfg, db)
		if err != nil {
			return nil, err
		}
		reclaimer.Logger = observability.ServerLogger
		opts := engine.Options{
			Limit:     cfg.Run.Limit,
			BatchSize: cfg.Run.BatchSize,
			Workers:   cfg.Run.Workers,
		}
		return reclaimer.Run(ctx, opts)
	}

	// Create server
	srv := server.New(host, port, server.Deps{
		Status: func(ctx context.Context) (*output.StatusReport, error) {
			return collectStatus(ctx, cfg, db, observability.ServerLogger)
		},
		Run:  runPipeline,
		Runs: runState,
	})

	// Get shutdown timeout from config
	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 10 * time.Second
	}

	// Register graceful shutdown handlers (LIFO order - last registered, first executed)
	// Handler 1: Flush logger (executed last)
	signals.OnShutdown(func(ctx context.Context) error {
		observability.ServerLogger.Info("Flushing logger...")
		if err := observability.ServerLogger.Sync(); err != nil {
			// Sync errors are often benign (stdout/stderr already closed)
			observability.ServerLogger.Warn("Logger sync returned error (may be benign)",
				zap.Error(err))
		}
		return nil
	})

	// Handler 2: Close the store (executed after the HTTP server stops)
	signals.OnShutdown(func(ctx context.Context) error {
		observability.ServerLogger.Info("Closing store...")
		return db.Close()
	})

	// Handler 3: Shutdown HTTP server (executed first)
	signals.OnShutdown(func(ctx context.Context) error {
		observability.ServerLogger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errwrap.WrapInternal(ctx, err, "server shutdown failed")
		}

		observability.ServerLogger.Info("HTTP server stopped gracefully")
		return nil
	})

	// Register config reload handler (SIGHUP)
	signals.OnReload(func(ctx context.Context) error {
		observability.ServerLogger.Info("Received SIGHUP: attempting config reload")

		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				observability.ServerLogger.Info("No config file found - using defaults and environment variables")
				return nil
			}
			observability.ServerLogger.Error("Failed to reload config file",
				zap.String("file", viper.ConfigFileUsed()),
				zap.Error(err))
			return errwrap.WrapConfigInvalid(ctx, err, "config reload failed")
		}

		observability.ServerLogger.Info("Configuration reloaded successfully",
			zap.String("file", viper.ConfigFileUsed()))

		return nil
	})

	// Enable double-tap force quit (Ctrl+C within 2 seconds)
	if err := signals.EnableDoubleTap(signals.DoubleTapConfig{
		Window:  2 * time.Second,
		Message: "Press Ctrl+C again within 2 seconds to force quit",
	}); err != nil {
		observability.ServerLogger.Warn("Failed to enable double-tap force quit",
			zap.Error(err))
	}

	// Daily pipeline: reclamation run, then corpus update
	schedCtx, schedCancel := context.WithCancel(cmd.Context())
	defer schedCancel()

	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-schedCtx.Done():
				return
			case <-ticker.C:
				metrics.SetServerUptime(int64(time.Since(startedAt).Seconds()))
			}
		}
	}()
	if cfg.Scheduler.Enabled {
		scheduler := &engine.Scheduler{
			Hour:   cfg.Scheduler.Hour,
			Logger: observability.ServerLogger,
			Task: func(ctx context.Context) error {
				if !runState.TryStart() {
					observability.ServerLogger.Info("Scheduled run skipped, another run is active")
					return nil
				}
				report, err := runPipeline(ctx)
				runState.Finish(report)
				if err != nil {
					return err
				}
				updater := newUpdater(cfg, db)
				updater.Logger = observability.ServerLogger
				stats, err := updater.Run(ctx)
				if err != nil {
					return err
				}
				if len(stats.NewWords) > 0 || len(stats.Promoted) > 0 {
					meta, err := manager.Metadata()
					if err != nil {
						return err
					}
					return output.WriteChangelog(manager, stats, meta)
				}
				return nil
			},
		}
		go func() {
			if err := scheduler.Start(schedCtx); err != nil && schedCtx.Err() == nil {
				observability.ServerLogger.Error("Scheduler stopped", zap.Error(err))
			}
		}()
		observability.ServerLogger.Info("Daily scheduler enabled",
			zap.Int("utc_hour", cfg.Scheduler.Hour))
	}

	// Start server in background goroutine
	errChan := make(chan error, 1)
	go func() {
		observability.ServerLogger.Info("Starting HTTP server...",
			zap.String("host", host),
			zap.Int("port", port))
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Start signal listener in background
	go func() {
		if err := signals.Listen(cmd.Context()); err != nil {
			observability.ServerLogger.Error("Signal handler error", zap.Error(err))
			errChan <- err
		}
	}()

	// Wait for error or shutdown completion
	if err := <-errChan; err != nil {
		return errwrap.WrapInternal(cmd.Context(), err, "server error")
	}

	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "localhost", "server host")
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "server port")

	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}
