package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rodrigocantu/tienda-backend/api/controllers"
	"github.com/rodrigocantu/tienda-backend/api/middleware"
	"github.com/rodrigocantu/tienda-backend/internal/shipping"
	"github.com/rodrigocantu/tienda-backend/pkg/config"
	"github.com/rodrigocantu/tienda-backend/pkg/db"
	"github.com/rodrigocantu/tienda-backend/pkg/logger"
)

type redisPinger interface {
	Ping(ctx context.Context) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redisPinger,
	shippingService shipping.Service,
	promRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/shipping", func(r chi.Router) {
		r.Post("/quote", controllers.ShippingQuote(shippingService, logg))
		r.Get("/rules", controllers.ShippingRulesList(shippingService, logg))
		r.Post("/rules", controllers.ShippingRuleCreate(shippingService, logg))
		r.Put("/rules/{id}", controllers.ShippingRuleUpdate(shippingService, logg))
	})

	return r
}
