// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the HTTP server, and handles graceful shutdown
// on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/task-planner/internal/adapters/http"
	"github.com/jsamuelsen11/task-planner/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/task-planner/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/task-planner/internal/adapters/clients/acl"
	exportadapter "github.com/jsamuelsen11/task-planner/internal/adapters/export"
	"github.com/jsamuelsen11/task-planner/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen11/task-planner/internal/app"
	"github.com/jsamuelsen11/task-planner/internal/domain/export"
	"github.com/jsamuelsen11/task-planner/internal/platform/config"
	"github.com/jsamuelsen11/task-planner/internal/platform/health"
	"github.com/jsamuelsen11/task-planner/internal/platform/httpclient"
	"github.com/jsamuelsen11/task-planner/internal/platform/logging"
	"github.com/jsamuelsen11/task-planner/internal/platform/telemetry"
	"github.com/jsamuelsen11/task-planner/internal/ports"
)

const (
	otelShutdownTimeout = 5 * time.Second

	// formatterName names the remote formatter's HTTP client and health check.
	formatterName = "board-formatter"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run loads APP_PROFILE's configuration (plus APP_CONFIG_FILE when set),
// serves until SIGINT or SIGTERM, then drains requests, closes the store and
// flushes telemetry.
func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, prod)")
	}

	cfg, err := config.Load(profile, config.WithFile(os.Getenv("APP_CONFIG_FILE")))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	tel, err := telemetry.Setup(context.Background(), cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer cancel()
		if err := tel.Shutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", err))
		}
	}()

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, tel.Metrics)
	registerDependencies(injector, cfg, logger)

	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}
	store := do.MustInvoke[*sqlite.Store](injector)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("closing store", slog.Any("error", err))
		}
	}()

	logger.Info("dependencies wired",
		slog.String("profile", profile),
		slog.String("database", cfg.Database.Path),
		slog.String("export_formatter", cfg.Export.Formatter),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() { serverErr <- server.Start() }()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}
	<-serverErr

	logger.Info("shutdown complete")
	return nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*sqlite.Store, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return sqlite.Open(&cfg.Database, logger, metrics)
	})

	do.Provide(injector, func(i do.Injector) (ports.Store, error) {
		return do.MustInvoke[*sqlite.Store](i), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.BoardFormatter, error) {
		if cfg.Export.Formatter != config.FormatterRemote {
			return exportadapter.NewFormatter(), nil
		}
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		client := httpclient.New(&cfg.Formatter, formatterName, metrics, logger)
		return acl.NewFormatterClient(client, logger), nil
	})

	// The registry checks the store and, when remote, the formatter breaker.
	do.Provide(injector, func(i do.Injector) (ports.HealthRegistry, error) {
		registry := health.New()
		registry.Register(do.MustInvoke[*sqlite.Store](i))
		if checker, ok := do.MustInvoke[ports.BoardFormatter](i).(ports.HealthChecker); ok {
			registry.Register(checker)
		}
		return registry, nil
	})

	do.Provide(injector, func(i do.Injector) ([]app.Option, error) {
		return []app.Option{app.WithMetrics(do.MustInvoke[*telemetry.Metrics](i))}, nil
	})

	do.Provide(injector, func(i do.Injector) (ports.UserService, error) {
		opts := do.MustInvoke[[]app.Option](i)
		return app.NewUserService(do.MustInvoke[ports.Store](i), logger, opts...), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TeamService, error) {
		opts := do.MustInvoke[[]app.Option](i)
		return app.NewTeamService(do.MustInvoke[ports.Store](i), logger, opts...), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.BoardService, error) {
		opts := do.MustInvoke[[]app.Option](i)
		return app.NewBoardService(do.MustInvoke[ports.Store](i), logger, opts...), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TaskService, error) {
		opts := do.MustInvoke[[]app.Option](i)
		return app.NewTaskService(do.MustInvoke[ports.Store](i), logger, opts...), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.ExportService, error) {
		opts := do.MustInvoke[[]app.Option](i)
		return app.NewExportService(
			do.MustInvoke[ports.Store](i),
			do.MustInvoke[ports.BoardFormatter](i),
			cfg.Export.OutputDir,
			logger,
			opts...,
		), nil
	})

	do.Provide(injector, func(i do.Injector) (adapthttp.Handlers, error) {
		defaultFormat, err := export.ParseFormat(cfg.Export.DefaultFormat, export.FormatText)
		if err != nil {
			return adapthttp.Handlers{}, fmt.Errorf("export.default_format: %w", err)
		}
		return adapthttp.Handlers{
			Users:  handlers.NewUserHandler(do.MustInvoke[ports.UserService](i)),
			Teams:  handlers.NewTeamHandler(do.MustInvoke[ports.TeamService](i)),
			Boards: handlers.NewBoardHandler(do.MustInvoke[ports.BoardService](i)),
			Tasks:  handlers.NewTaskHandler(do.MustInvoke[ports.TaskService](i)),
			Export: handlers.NewExportHandler(do.MustInvoke[ports.ExportService](i), defaultFormat),
			Health: handlers.NewHealthHandler(do.MustInvoke[ports.HealthRegistry](i), formatterName),
		}, nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		h := do.MustInvoke[adapthttp.Handlers](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(h,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.RequestTimeout),
			middleware.AppContext(),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
