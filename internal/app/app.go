// Package app wires the storefront's dependencies together and runs the
// HTTP server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gcg-eyewear/storefront/internal/api"
	"github.com/gcg-eyewear/storefront/internal/config"
	"github.com/gcg-eyewear/storefront/internal/session"
	"github.com/gcg-eyewear/storefront/internal/storefront"
	"github.com/gcg-eyewear/storefront/pkg/health"
	"github.com/gcg-eyewear/storefront/pkg/httpclient"
	"github.com/gcg-eyewear/storefront/pkg/tracing"
)

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	rdb             *redis.Client
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates the application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tracingShutdown, err := tracing.Init(ctx, tracing.Config{
		ServiceName:  "gcg-storefront",
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SampleRate:   cfg.TraceSampleRate,
		Enabled:      cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// Admin session, persisted between runs.
	store, err := session.Open(cfg.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	// Backend transport: retrying client behind a circuit breaker so a
	// struggling backend degrades the views instead of hammering it.
	hc := httpclient.New(httpclient.DefaultConfig())
	breaker := httpclient.NewCircuitBreakerClient(hc, httpclient.DefaultCircuitBreakerConfig("eyewear-backend"), logger)
	client := api.NewWithHTTPClient(cfg.APIBaseURL, store, breaker, logger)
	logger.Info("backend client initialized", slog.String("base_url", cfg.APIBaseURL))

	// Optional redis view cache.
	var (
		rdb   *redis.Client
		cache *storefront.Cache
	)
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		cache = storefront.NewCache(rdb, cfg.ViewCacheTTL, logger)
		logger.Info("view cache enabled",
			slog.String("addr", cfg.RedisAddr),
			slog.Duration("ttl", cfg.ViewCacheTTL),
		)
	}

	views := storefront.NewViews(client, cache, logger)

	healthHandler := health.NewHandler()
	healthHandler.Register("backend", client.Ping)
	healthHandler.Register("redis", cache.Ping)

	router := storefront.NewHandler(views, logger).Routes(healthHandler)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		rdb:             rdb,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
