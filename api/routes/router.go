package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kestrelgear/dealerdesk-backend/api/controllers"
	ordercontrollers "github.com/kestrelgear/dealerdesk-backend/api/controllers/orders"
	"github.com/kestrelgear/dealerdesk-backend/api/middleware"
	"github.com/kestrelgear/dealerdesk-backend/internal/catalog"
	"github.com/kestrelgear/dealerdesk-backend/internal/orders"
	"github.com/kestrelgear/dealerdesk-backend/pkg/config"
	"github.com/kestrelgear/dealerdesk-backend/pkg/logger"
	"github.com/kestrelgear/dealerdesk-backend/pkg/metrics"
)

// Deps collects everything the HTTP surface needs.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	DBPinger     controllers.Pinger
	RedisPinger  controllers.Pinger
	Catalog      catalog.Service
	Orders       orders.Service
	OrderMetrics *metrics.OrderMetrics
	Registry     *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, map[string]controllers.Pinger{
			"database": deps.DBPinger,
			"redis":    deps.RedisPinger,
		}))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Config.JWT, deps.Logger))

		r.Get("/catalog/products/{productID}/price", controllers.EffectivePrice(deps.Catalog, deps.OrderMetrics, deps.Logger))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", ordercontrollers.Submit(deps.Orders, deps.Logger))
			r.Get("/", ordercontrollers.List(deps.Orders, deps.Logger))
			r.Get("/{orderID}", ordercontrollers.Detail(deps.Orders, deps.Logger))
			r.Patch("/{orderID}/status", ordercontrollers.UpdateStatus(deps.Orders, deps.Logger))
		})
	})

	return r
}
