// Package httptransport assembles the public HTTP surface: middleware
// stack, CORS, health and metrics endpoints, and the /api routes.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"minet/internal/platform/health"
	"minet/internal/storage/pinata"
	"minet/pkg/platform/middleware/auth"
	"minet/pkg/platform/middleware/request"
)

// RouteRegistrar is implemented by feature handlers that mount their own
// routes.
type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// Deps carries everything the router composes. Protected registrars sit
// behind the bearer guard; with no API secret configured the guard is a
// pass-through.
type Deps struct {
	Logger         *slog.Logger
	RequestMetrics *request.Metrics
	Health         *health.Handler
	APISecret      string
	AllowedOrigins []string
	Public         []RouteRegistrar
	Protected      []RouteRegistrar
}

// NewRouter wires all public endpoints with middleware.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(deps.Logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(deps.Logger))
	// Mint requests block on receipt polling, so the budget is generous.
	r.Use(request.Timeout(4 * time.Minute))
	r.Use(request.BodyLimit(pinata.MaxFileSize + 2<<20))
	r.Use(request.LatencyMiddleware(deps.RequestMetrics))

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	deps.Health.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Group(func(g chi.Router) {
			g.Use(request.ContentTypeJSON)
			for _, h := range deps.Public {
				h.RegisterRoutes(g)
			}
		})
		api.Group(func(g chi.Router) {
			g.Use(auth.Bearer(deps.APISecret, deps.Logger))
			for _, h := range deps.Protected {
				h.RegisterRoutes(g)
			}
		})
	})

	return r
}
