// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/templates/project-records/internal/config"
	"github.com/carterperez-dev/templates/project-records/internal/core"
	"github.com/carterperez-dev/templates/project-records/internal/health"
	"github.com/carterperez-dev/templates/project-records/internal/metrics"
	"github.com/carterperez-dev/templates/project-records/internal/middleware"
	"github.com/carterperez-dev/templates/project-records/internal/project"
	"github.com/carterperez-dev/templates/project-records/internal/server"
	"github.com/carterperez-dev/templates/project-records/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	if cfg.Database.MigrateOnStart {
		if err := core.Migrate(ctx, cfg.Database.URL, logger); err != nil {
			return err
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	m := metrics.New()
	if err := m.RegisterDB("postgres", db.DB.DB); err != nil {
		logger.Warn("failed to register database metrics", "error", err)
	}
	if err := m.RegisterRedis(redis.PoolStats); err != nil {
		logger.Warn("failed to register redis metrics", "error", err)
	}

	projectSvc := project.NewService(
		project.NewRepository(db.DB),
		project.WithLogger(logger),
		project.WithObserver(m),
	)
	userSvc := user.NewService(
		user.NewRepository(db.DB),
		user.WithLogger(logger),
		user.WithObserver(m),
	)

	projectHandler := project.NewHandler(projectSvc)
	userHandler := user.NewHandler(userSvc)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
		ServiceName:   cfg.Otel.ServiceName,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	if cfg.Metrics.Enabled {
		router.Use(middleware.Metrics(m))
	}

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.FromWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			KeyFunc:    middleware.KeyByIPAndEndpoint,
			FailOpen:   true,
			BypassFunc: middleware.BypassPaths("/healthz", "/livez", "/readyz", cfg.Metrics.Path),
			OnLimited:  func(*http.Request) { m.RateLimited.Inc() },
		})
		defer limiter.Close()
		router.Use(limiter.Handler)
	}

	healthHandler.RegisterRoutes(router)

	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, m.Handler())
	}

	router.Route("/v1", func(r chi.Router) {
		projectHandler.RegisterRoutes(r)
		userHandler.RegisterRoutes(r)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.IsDevelopment(),
	}

	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
