package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"gowhere/internal/config"
	mongoRepo "gowhere/internal/infra/adapter/persistence/mongo"
	"gowhere/internal/infra/db"
	"gowhere/internal/observability/logging"
	"gowhere/internal/observability/slo"
	"gowhere/internal/observability/tracing"
	"gowhere/internal/resilience/circuitbreaker"
	"gowhere/internal/resilience/retry"
	envconfig "gowhere/pkg/config"

	artUC "gowhere/internal/usecase/article"
	catUC "gowhere/internal/usecase/category"
	ctyUC "gowhere/internal/usecase/country"

	hhttp "gowhere/internal/handler/http"
	harticle "gowhere/internal/handler/http/article"
	hcategory "gowhere/internal/handler/http/category"
	hcountry "gowhere/internal/handler/http/country"
	"gowhere/internal/handler/http/requestid"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	logger := initLogger(cfg)
	store := initStore(logger, cfg)
	defer func() {
		if err := store.Close(cfg.HTTP.ShutdownTimeout); err != nil {
			logger.Error("failed to close document store", slog.Any("error", err))
		}
	}()

	version := envconfig.GetEnvString("VERSION", "dev")
	components := setupServer(logger, cfg, store, version)

	runServer(logger, cfg, components, version)
}

// initLogger builds the process logger from the log section and installs it as the default.
func initLogger(cfg *config.Config) *slog.Logger {
	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)
	return logger
}

// initStore connects to the document store, retrying while it is still starting.
// Failing to connect is fatal.
func initStore(logger *slog.Logger, cfg *config.Config) *db.Store {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var store *db.Store
	err := retry.WithBackoff(ctx, retry.ConnectConfig(), func() error {
		var err error
		store, err = db.Open(ctx, cfg.Mongo)
		return err
	})
	if err != nil {
		logger.Error("failed to connect to document store",
			slog.String("database", cfg.Mongo.Database),
			slog.Any("error", err))
		os.Exit(1)
	}
	return store
}

// ServerComponents holds what runServer needs besides the configuration.
type ServerComponents struct {
	Handler http.Handler
	Breaker *circuitbreaker.CircuitBreaker
}

// setupServer builds the repositories, services and routes and wraps them in the middleware chain.
func setupServer(logger *slog.Logger, cfg *config.Config, store *db.Store, version string) *ServerComponents {
	var breaker *circuitbreaker.CircuitBreaker
	if cfg.Breaker.Enabled {
		// a missing document is an answer, not a store failure
		bcfg := circuitbreaker.StoreConfig(mongodriver.ErrNoDocuments)
		bcfg.Timeout = cfg.Breaker.Timeout
		bcfg.MinRequests = cfg.Breaker.MinRequests
		breaker = circuitbreaker.New(bcfg)
		logger.Info("circuit breaker enabled",
			slog.String("name", breaker.Name()),
			slog.Duration("timeout", bcfg.Timeout),
			slog.Uint64("min_requests", uint64(bcfg.MinRequests)))
	} else {
		logger.Warn("circuit breaker is DISABLED")
	}

	countries := mongoRepo.NewCountryRepo(store.Database, breaker)
	categories := mongoRepo.NewCategoryRepo(store.Database, breaker)
	articles := mongoRepo.NewArticleRepo(store.Database, breaker)

	countrySvc := &ctyUC.Service{Repo: countries}
	categorySvc := &catUC.Service{Repo: categories}
	articleSvc := &artUC.Service{Repo: articles, Countries: countries, Categories: categories}

	mux := setupRoutes(store, breaker, version, countrySvc, categorySvc, articleSvc)
	return &ServerComponents{
		Handler: applyMiddleware(logger, cfg, mux),
		Breaker: breaker,
	}
}

// setupRoutes registers the resource routes and the operational endpoints.
func setupRoutes(
	store *db.Store,
	breaker *circuitbreaker.CircuitBreaker,
	version string,
	countrySvc *ctyUC.Service,
	categorySvc *catUC.Service,
	articleSvc *artUC.Service,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /health", &hhttp.HealthHandler{Store: store, Breaker: breaker, Version: version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Store: store})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	hcountry.Register(mux, countrySvc)
	hcategory.Register(mux, categorySvc)
	harticle.Register(mux, articleSvc)

	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: CORS → Request ID → Tracing → Recovery → Logging → Metrics → Throttle → Body Limit → Timeout
func applyMiddleware(logger *slog.Logger, cfg *config.Config, handler http.Handler) http.Handler {
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", cfg.CORS.AllowedOrigins),
		slog.Any("allowed_methods", cfg.CORS.AllowedMethods),
		slog.Any("allowed_headers", cfg.CORS.AllowedHeaders),
		slog.Int("max_age", cfg.CORS.MaxAge))

	throttle := func(next http.Handler) http.Handler { return next }
	if cfg.Throttle.Enabled {
		// already checked by config.Load
		trusted, _ := cfg.Throttle.TrustedPrefixes()
		throttle = hhttp.NewThrottle(cfg.Throttle.RPS, cfg.Throttle.Burst, trusted...).Middleware
		logger.Info("write throttle enabled",
			slog.Float64("rps", cfg.Throttle.RPS),
			slog.Int("burst", cfg.Throttle.Burst),
			slog.Any("trusted_proxies", cfg.Throttle.TrustedProxies))
	} else {
		logger.Warn("write throttle is DISABLED - not recommended for production")
	}

	return hhttp.Chain(handler,
		hhttp.CORS(hhttp.CORSConfig{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: cfg.CORS.AllowedMethods,
			AllowedHeaders: cfg.CORS.AllowedHeaders,
			MaxAge:         cfg.CORS.MaxAge,
		}, logger),
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware,
		throttle,
		hhttp.LimitRequestBody(cfg.HTTP.MaxBodyBytes),
		hhttp.Timeout(cfg.HTTP.RequestTimeout),
	)
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg *config.Config, components *ServerComponents, version string) {
	// Context for background goroutines, cancelled on shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sloInterval := envconfig.GetEnvDuration("SLO_PUBLISH_INTERVAL", time.Minute)
	if err := envconfig.ValidatePositiveDuration(sloInterval); err != nil {
		logger.Warn("invalid SLO_PUBLISH_INTERVAL, using default", slog.Any("error", err))
		sloInterval = time.Minute
	}
	go slo.Default.Run(ctx, sloInterval, logger)

	addr := cfg.HTTP.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout, // Prevent Slowloris attacks
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("env", cfg.Env),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}

	// Background goroutines stop after in-flight requests have drained
	cancel()
	if components.Breaker != nil {
		logger.Info("circuit breaker state at shutdown", slog.String("state", components.Breaker.State().String()))
	}
	logger.Info("server stopped")
}
