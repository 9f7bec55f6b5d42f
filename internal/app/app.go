// Package app wires the storefront together: config, remote API client,
// cart store with optional Redis persistence, catalog, checkout, and the
// HTTP server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/BlurryShady/gear-store-frontend/internal/api"
	"github.com/BlurryShady/gear-store-frontend/internal/cart"
	redisrepo "github.com/BlurryShady/gear-store-frontend/internal/cart/repository/redis"
	"github.com/BlurryShady/gear-store-frontend/internal/catalog"
	"github.com/BlurryShady/gear-store-frontend/internal/checkout"
	"github.com/BlurryShady/gear-store-frontend/internal/config"
	handler "github.com/BlurryShady/gear-store-frontend/internal/handler/http"
	"github.com/BlurryShady/gear-store-frontend/internal/health"
	"github.com/BlurryShady/gear-store-frontend/internal/httpclient"
)

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	cartStore  *cart.Store
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Remote store API client, optionally wrapped in a circuit breaker.
	clientCfg := httpclient.DefaultConfig()
	clientCfg.Timeout = cfg.APITimeout()
	httpClient := httpclient.New(clientCfg)

	var doer api.HTTPDoer = httpClient
	if cfg.BreakerEnabled {
		doer = httpclient.NewCircuitBreaker(httpClient, httpclient.DefaultBreakerConfig("store-api"), logger)
	}

	baseURL := cfg.ResolveAPIBaseURL()
	apiClient := api.NewClient(baseURL, doer, logger)
	logger.Info("store API client initialized",
		slog.String("base_url", baseURL),
		slog.Bool("circuit_breaker", cfg.BreakerEnabled),
	)

	// Cart store, with Redis-backed snapshots when configured.
	var rdb *redis.Client
	storeOpts := []cart.Option{}
	if cfg.SessionID != "" {
		storeOpts = append(storeOpts, cart.WithSessionID(cfg.SessionID))
	}
	if cfg.SnapshotsEnabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		storeOpts = append(storeOpts, cart.WithRepository(redisrepo.NewSnapshotRepository(rdb, cfg.SessionTTL())))
	}

	cartStore := cart.NewStore(logger, storeOpts...)
	if rdb != nil {
		// A missing or unreadable snapshot only means starting empty.
		if err := cartStore.Restore(ctx); err != nil {
			logger.Warn("cart snapshot restore failed",
				slog.String("session_id", cartStore.SessionID()),
				slog.String("error", err.Error()),
			)
		}
	}

	catalogService, err := catalog.NewService(apiClient, logger)
	if err != nil {
		return nil, err
	}

	orchestrator, err := checkout.New(cartStore, apiClient, logger)
	if err != nil {
		return nil, err
	}

	// Health checks. The remote API is non-critical: the cart keeps
	// working locally when the upstream is down, so readiness only
	// degrades.
	healthHandler := health.NewHandler()
	healthHandler.RegisterNonCritical("store_api", func(ctx context.Context) error {
		_, err := apiClient.Get(ctx, "/products/")
		return err
	})
	if rdb != nil {
		healthHandler.RegisterCritical("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	router := handler.NewRouter(catalogService, cartStore, orchestrator, healthHandler, logger, cfg.Environment)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		rdb:        rdb,
		cartStore:  cartStore,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
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

	if a.rdb != nil {
		// Flush the final cart state so the session survives a restart.
		if err := a.cartStore.Persist(shutdownCtx); err != nil {
			a.logger.Error("cart snapshot persist error", slog.String("error", err.Error()))
		}
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
