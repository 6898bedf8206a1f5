package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angelmondragon/skuexport/api/middleware"
	"github.com/angelmondragon/skuexport/api/routes"
	"github.com/angelmondragon/skuexport/internal/cache"
	"github.com/angelmondragon/skuexport/internal/catalog"
	"github.com/angelmondragon/skuexport/internal/exporter"
	"github.com/angelmondragon/skuexport/internal/options"
	"github.com/angelmondragon/skuexport/pkg/auth/session"
	"github.com/angelmondragon/skuexport/pkg/config"
	"github.com/angelmondragon/skuexport/pkg/db"
	"github.com/angelmondragon/skuexport/pkg/instance"
	"github.com/angelmondragon/skuexport/pkg/logger"
	"github.com/angelmondragon/skuexport/pkg/metrics"
	"github.com/angelmondragon/skuexport/pkg/migrate"
	"github.com/angelmondragon/skuexport/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"
	"golang.org/x/text/language"
)

const (
	shutdownTimeout = 15 * time.Second
	warmTimeout     = 30 * time.Second
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	var (
		redisClient *redis.Client
		store       cache.Store
		sessions    session.AccessSessionChecker
		limiter     middleware.RateLimitStore
	)
	if cfg.Cache.UsesRedis() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, redisClient.Close()) }()

		store = cache.NewRedisStore(redisClient)
		limiter = redisClient
		if cfg.JWT.RequireSession {
			manager, err := session.NewManager(redisClient, cfg.JWT)
			if err != nil {
				return err
			}
			sessions = manager
		}
	} else {
		store = cache.NewMemoryStore()
		logg.Warn(ctx, "redis disabled: using in-process cache, sessions and rate limits are not enforced")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	exportMetrics := metrics.NewExportMetrics(registry)

	queryCache := cache.New(store, logg, exportMetrics)
	repo := catalog.NewRepository(dbClient.DB())

	exportService, err := exporter.NewService(exporter.ServiceParams{
		Finder:    repo,
		Expander:  exporter.NewExpander(repo),
		Formatter: exporter.NewFormatter(cfg.Export),
		Cache:     queryCache,
		TTL:       cfg.Cache.ExportTTL,
		Strict:    cfg.Export.StrictFilterValues,
		Logger:    logg,
		Metrics:   exportMetrics,
	})
	if err != nil {
		return err
	}

	optionsService, err := options.NewService(repo, queryCache, cfg.Cache.OptionsTTL, logg, language.English)
	if err != nil {
		return err
	}

	if cfg.Cache.WarmOnBoot {
		warmCtx, cancel := context.WithTimeout(ctx, warmTimeout)
		if err := optionsService.Warm(warmCtx); err != nil {
			logg.Warn(logg.WithField(ctx, "error", err.Error()), "options warmup failed")
		}
		cancel()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":           cfg.App.Env,
		"addr":          addr,
		"instance":      instance.GetID(),
		"cache_backend": cfg.Cache.Backend,
		"strict":        cfg.Export.StrictFilterValues,
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, store, sessions, limiter, exportService, optionsService,
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(logCtx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
