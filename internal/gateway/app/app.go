package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/mudras/internal/gateway/http"
	"github.com/aussiebroadwan/mudras/internal/gateway/permcache"
	"github.com/aussiebroadwan/mudras/internal/gateway/upstream"
	"github.com/aussiebroadwan/mudras/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application owns the long-lived gateway resources and the HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	pool  *upstream.Pool
	cache permcache.Cache

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "mudras-gateway",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.BackendURL == "" {
		// Not fatal: proxy routes answer 500 until it is set.
		app.logger.Warn("no backend base URL configured",
			"vars", "INTERNAL_BACKEND_URL, BACKEND_URL, NEXT_PUBLIC_BACKEND_URL",
		)
	}

	app.pool = upstream.NewPool(upstream.PoolConfig{
		MaxIdleConnsPerHost: cfg.UpstreamMaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.UpstreamIdleConnTimeout,
	})

	if err := app.initCache(); err != nil {
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Handler exposes the routed handler, mainly for tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("gateway starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"backend", app.cfg.BackendURL,
		"graphql", app.cfg.GraphQLURL,
		"frontend", app.cfg.FrontendURL,
		"permission_cache", app.cache.Name(),
		"secure_cookies", app.cfg.IsProduction(),
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down gateway...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.pool.CloseIdleConnections()

	if err := app.cache.Close(); err != nil {
		app.logger.Error("error closing permission cache", "error", err)
		return err
	}

	app.logger.Info("gateway stopped")
	return nil
}

// initCache picks Redis when REDIS_ADDR is set, memory otherwise.
func (app *Application) initCache() error {
	if app.cfg.RedisAddr == "" {
		app.cache = permcache.NewMemory()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cache, err := permcache.NewRedis(ctx, permcache.RedisConfig{
		Addr:     app.cfg.RedisAddr,
		Password: app.cfg.RedisPassword,
		DB:       app.cfg.RedisDB,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize permission cache: %w", err)
	}
	app.cache = cache

	app.logger.Info("connected to redis permission cache", "addr", app.cfg.RedisAddr, "db", app.cfg.RedisDB)
	return nil
}

// initHTTP initializes the router and HTTP server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(httpapi.Config{
		BackendURL:                 app.cfg.BackendURL,
		GraphQLURL:                 app.cfg.GraphQLURL,
		SecretKey:                  app.cfg.SecretKey,
		FrontendURL:                app.cfg.FrontendURL,
		Secure:                     app.cfg.IsProduction(),
		Env:                        app.cfg.Env,
		BuildVersion:               BuildVersion,
		DebugRoutes:                app.cfg.DebugRoutes,
		UpstreamTimeout:            app.cfg.UpstreamTimeout,
		PermisosTTL:                app.cfg.PermisosCacheTTL,
		EdgeProfileTimeout:         app.cfg.EdgeProfileTimeout,
		RedirectAuthenticatedLogin: app.cfg.RedirectAuthenticatedLogin,
	}, app.pool, app.cache, app.logger)
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
