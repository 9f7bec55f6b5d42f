// Package http exposes the storefront over a local HTTP API: catalog
// reads, cart mutations, and checkout.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BlurryShady/gear-store-frontend/internal/cart"
	"github.com/BlurryShady/gear-store-frontend/internal/catalog"
	"github.com/BlurryShady/gear-store-frontend/internal/checkout"
	"github.com/BlurryShady/gear-store-frontend/internal/health"
	"github.com/BlurryShady/gear-store-frontend/internal/middleware"
)

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	catalogService *catalog.Service,
	cartStore *cart.Store,
	orchestrator *checkout.Orchestrator,
	healthHandler *health.Handler,
	logger *slog.Logger,
	environment string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics())

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.Environment = environment
	r.Use(middleware.CORS(corsCfg))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	catalogHandler := NewCatalogHandler(catalogService, logger)
	cartHandler := NewCartHandler(cartStore, logger)
	checkoutHandler := NewCheckoutHandler(orchestrator, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{slug}", catalogHandler.GetProduct)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)

			r.Post("/items", cartHandler.AddItem)
			r.Patch("/items/{productID}", cartHandler.ChangeQuantity)
			r.Delete("/items/{productID}", cartHandler.RemoveItem)
		})

		r.Post("/checkout", checkoutHandler.SubmitOrder)
		r.Get("/checkout/status", checkoutHandler.Status)
	})

	return r
}
