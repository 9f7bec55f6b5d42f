package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BlurryShady/gear-store-frontend/internal/catalog"
	"github.com/BlurryShady/gear-store-frontend/internal/httputil"
)

// CatalogHandler handles HTTP requests for the product catalog endpoints.
type CatalogHandler struct {
	catalog *catalog.Service
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *catalog.Service, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: svc,
		logger:  logger,
	}
}

// ListProducts handles GET /api/v1/products. It accepts a category filter
// and either a raw API ordering key ("ordering") or a UI sort key ("sort").
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := catalog.Query{
		Category: r.URL.Query().Get("category"),
		Ordering: r.URL.Query().Get("ordering"),
	}
	if q.Ordering == "" {
		q.Ordering = catalog.OrderingForSort(r.URL.Query().Get("sort"))
	}

	products, err := h.catalog.List(r.Context(), q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// GetProduct handles GET /api/v1/products/{slug}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}
