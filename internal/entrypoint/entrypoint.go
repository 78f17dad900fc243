// Package entrypoint wires the configured dependencies into the HTTP
// server and its background jobs.
package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/vzwadmin/beheer/internal/config"
	"github.com/vzwadmin/beheer/internal/database"
	"github.com/vzwadmin/beheer/internal/database/aanmeldingen"
	"github.com/vzwadmin/beheer/internal/database/importruns"
	"github.com/vzwadmin/beheer/internal/database/locaties"
	"github.com/vzwadmin/beheer/internal/database/organisaties"
	"github.com/vzwadmin/beheer/internal/database/personen"
	"github.com/vzwadmin/beheer/internal/database/plaatsen"
	"github.com/vzwadmin/beheer/internal/database/projecten"
	"github.com/vzwadmin/beheer/internal/database/rapportages"
	http_controllers "github.com/vzwadmin/beheer/internal/http"
	"github.com/vzwadmin/beheer/internal/metrics"
	"github.com/vzwadmin/beheer/internal/output"
	"github.com/vzwadmin/beheer/internal/reports"
	"github.com/vzwadmin/beheer/internal/scheduler"
	"github.com/vzwadmin/beheer/internal/seeding"
	"github.com/vzwadmin/beheer/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// OpenDatabase connects to the configured database and migrates it.
func OpenDatabase(cfg *config.Config, logger zerolog.Logger) (*database.Database, error) {
	return database.NewDatabase(database.Options{
		Driver: cfg.Database.Driver,
		Path:   cfg.Database.Path,
		DSN:    cfg.Database.DSN,
	}, logger)
}

// OpenSink builds the output sink for diagnostics and lookup files.
func OpenSink(ctx context.Context, cfg *config.Config) (output.Sink, error) {
	return output.New(ctx, output.Config{
		Driver: output.Driver(cfg.Output.Driver),
		Dir:    cfg.Output.Dir,
		S3: output.S3Config{
			Bucket:    cfg.Output.S3Bucket,
			Region:    cfg.Output.S3Region,
			Endpoint:  cfg.Output.S3Endpoint,
			Prefix:    cfg.Output.S3Prefix,
			PathStyle: cfg.Output.S3PathStyle,
		},
	})
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// within the configured timeout.
func Serve(ctx context.Context, router *gin.Engine, cfg *config.Config, logger zerolog.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info().Dur("timeout", timeout).Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work first so no run starts while the server drains.
	if onShutdown != nil {
		onShutdown(shutdownCtx)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info().Msg("server exiting")
	return nil
}

// Run builds the router over db and serves it until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, db *database.Database, sink output.Sink, logger zerolog.Logger, version string) error {
	logger.Info().Str("version", version).Msg("starting beheer")

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	runs := importruns.NewRepository(db.DB)
	seeder := seeding.NewService(db.DB, sink, logger).WithObserver(m)

	routerCfg := http_controllers.RouterConfig{
		Personen:          personen.NewRepository(db.DB),
		Organisaties:      organisaties.NewRepository(db.DB),
		Plaatsen:          plaatsen.NewRepository(db.DB),
		Locaties:          locaties.NewRepository(db.DB),
		Projecten:         projecten.NewRepository(db.DB),
		Aanmeldingen:      aanmeldingen.NewRepository(db.DB),
		ImportRuns:        runs,
		Reports:           reports.NewService(rapportages.NewRepository(db.DB)),
		Logger:            logger.With().Str("component", "http").Logger(),
		DB:                db,
		Version:           version,
		MetricsHandler:    promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		MetricsMiddleware: m.GinMiddleware(),
	}

	var taskClient *tasks.Client
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}
		var err error
		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg, logger.With().Str("component", "tasks").Logger())
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				logger.Error().Err(err).Msg("error closing task queue")
			}
		}()

		taskClient.Register(
			tasks.NewSeedRunQueue(seeder, logger),
			tasks.NewCleanupImportRunsQueue(runs, logger),
		)
		go taskClient.Start(ctx)

		routerCfg.ImportQueue = tasks.NewSeedRunEnqueuer(taskClient, seeder, cfg.Import.Dir)
	} else {
		logger.Warn().Msg("task queue disabled, POST /api/imports will answer 503")
	}

	retention := scheduler.NewRetentionScheduler(runs, taskClient, cfg.Retention.Schedule, cfg.Retention.ImportRunDays, logger)
	if err := retention.Start(ctx); err != nil {
		return err
	}

	if gin.Mode() == gin.DebugMode && cfg.Global.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := http_controllers.NewRouter(routerCfg)

	return Serve(ctx, router, cfg, logger, func(shutdownCtx context.Context) {
		retention.Stop()
		if taskClient != nil {
			taskClient.Stop(shutdownCtx)
		}
	})
}
