// Package app wires configuration, logging, services and the HTTP
// server into the runnable dashboard application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"retropulse/internal/config"
	"retropulse/internal/errors"
	"retropulse/internal/infrastructure"
	custommw "retropulse/internal/middleware"
	"retropulse/internal/services"
	"retropulse/internal/survey"
	handlers "retropulse/internal/transport/http"
)

// Application is the assembled dashboard server
type Application struct {
	Config  *config.Config
	Logger  *slog.Logger
	Router  *chi.Mux
	Server  *http.Server
	Service *services.TrendService
}

// NewApplication loads configuration and wires every component.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("data_dir", cfg.Data.Dir),
		slog.String("marker", cfg.Data.Marker),
		slog.Int("port", cfg.Server.Port),
	)

	source := survey.NewDirSource(cfg.Data.Dir, cfg.Data.Marker)
	loader := survey.NewLoader(source, logger)
	store := survey.NewStore()
	service := services.NewTrendService(loader, store, cfg.Data.TimestampColumn, logger)

	app := &Application{
		Config:  cfg,
		Logger:  logger,
		Service: service,
	}

	if err := app.setupRouter(); err != nil {
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}

	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

func (a *Application) setupRouter() error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := custommw.NewHTTPMetrics(registry)

	errorHandler := errors.NewErrorHandler(a.Logger)
	trendHandler := handlers.NewTrendHandler(a.Service, a.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler(a.Service)
	dashboardHandler, err := handlers.NewDashboardHandler(a.Service, a.Logger, errorHandler)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(custommw.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(metrics.Handler)

	if a.Config.Security.RateLimit.Enabled {
		limiter := custommw.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		)
		r.Use(limiter.Handler)
	}

	r.Get("/", dashboardHandler.ServeHTTP)
	r.Get("/healthz", healthHandler.ServeHTTP)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	r.Mount("/api", trendHandler.Routes())

	a.Router = r
	return nil
}

// Run loads the datasets, then serves until interrupted and shuts
// down gracefully.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// All file reads complete before the server accepts requests
	snap, err := a.Service.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load retrospective data: %w", err)
	}
	if snap.Empty() {
		a.Logger.Warn("no retrospective files found, dashboard will show an empty state",
			slog.String("data_dir", a.Config.Data.Dir),
		)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.Logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err = g.Wait()
	if closeErr := infrastructure.CloseLogFile(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// Shutdown stops the server immediately. Exposed for tests.
func (a *Application) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return a.Server.Shutdown(ctx)
}
