package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/skuexport/api/controllers"
	"github.com/angelmondragon/skuexport/api/middleware"
	"github.com/angelmondragon/skuexport/internal/exporter"
	"github.com/angelmondragon/skuexport/internal/options"
	"github.com/angelmondragon/skuexport/pkg/auth/session"
	"github.com/angelmondragon/skuexport/pkg/config"
	"github.com/angelmondragon/skuexport/pkg/logger"
)

// Pinger is a dependency probed by the readiness check.
type Pinger interface {
	Ping(context.Context) error
}

// NewRouter assembles the HTTP surface. sessions and limiter may be nil, which
// disables server-side session checks and export rate limiting respectively.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP Pinger,
	cacheP Pinger,
	sessions session.AccessSessionChecker,
	limiter middleware.RateLimitStore,
	exportService exporter.Service,
	optionsService options.Service,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	exportPolicy := middleware.NewRateLimitPolicy(
		"export",
		cfg.RateLimit.ExportWindow,
		cfg.RateLimit.ExportUserLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readinessChecks(dbP, cacheP)...))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(
			middleware.Auth(cfg.JWT, sessions, logg),
			middleware.RequireCatalogManager(logg),
		)

		r.With(middleware.RateLimit(exportPolicy, limiter, logg)).
			Post("/exports/skus", controllers.ExportSKUs(exportService, logg))

		r.Route("/options", func(r chi.Router) {
			r.Get("/categories", controllers.ListCategoryOptions(optionsService, logg))
			r.Get("/tags", controllers.ListTagOptions(optionsService, logg))
			r.Get("/attributes", controllers.ListAttributeOptions(optionsService, logg))
		})
	})

	return r
}

func readinessChecks(dbP, cacheP Pinger) []controllers.ReadinessCheck {
	checks := []controllers.ReadinessCheck{}
	if dbP != nil {
		checks = append(checks, controllers.ReadinessCheck{Name: "database", Ping: dbP.Ping})
	}
	if cacheP != nil {
		checks = append(checks, controllers.ReadinessCheck{Name: "cache", Ping: cacheP.Ping})
	}
	return checks
}
