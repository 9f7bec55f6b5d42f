package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/BlurryShady/gear-store-frontend/internal/cart"
	"github.com/BlurryShady/gear-store-frontend/internal/domain"
	"github.com/BlurryShady/gear-store-frontend/internal/httputil"
	"github.com/BlurryShady/gear-store-frontend/internal/money"
)

// CartHandler handles HTTP requests for the cart endpoints.
type CartHandler struct {
	store  *cart.Store
	logger *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(store *cart.Store, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		store:  store,
		logger: logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding an item to the cart.
// Quantity is accepted in whatever shape the client sends (number, numeric
// string, or absent) and sanitized to an int, defaulting to 1.
type AddItemRequest struct {
	Product  domain.Product `json:"product"`
	Quantity any            `json:"quantity"`
}

// ChangeQuantityRequest is the JSON request body for adjusting a line's
// quantity by a signed delta.
type ChangeQuantityRequest struct {
	Delta any `json:"delta"`
}

// CartView is the JSON representation of the cart returned by every cart
// endpoint. Totals are derived from the line items on each read.
type CartView struct {
	SessionID    string            `json:"session_id"`
	Items        []domain.LineItem `json:"items"`
	TotalCount   int               `json:"total_count"`
	TotalPrice   float64           `json:"total_price"`
	TotalDisplay string            `json:"total_display"`
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if req.Product.ID == 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "VALIDATION_ERROR", Message: "product is required"},
		})
		return
	}

	h.store.Dispatch(cart.AddItem{
		Product:  req.Product,
		Quantity: money.ToInt(req.Quantity, 1),
	})
	h.persist(r)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}

// ChangeQuantity handles PATCH /api/v1/cart/items/{productID}
func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productIDParam(w, r)
	if !ok {
		return
	}

	var req ChangeQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	h.store.Dispatch(cart.ChangeQuantity{
		ProductID: productID,
		Delta:     money.ToInt(req.Delta, 0),
	})
	h.persist(r)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productIDParam(w, r)
	if !ok {
		return
	}

	h.store.Dispatch(cart.RemoveItem{ProductID: productID})
	h.persist(r)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.store.Dispatch(cart.Clear{})
	h.persist(r)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.view()})
}

// --- Helpers ---

func (h *CartHandler) view() CartView {
	items := h.store.Items()
	total := h.store.TotalPrice()
	return CartView{
		SessionID:    h.store.SessionID(),
		Items:        items,
		TotalCount:   h.store.TotalCount(),
		TotalPrice:   total,
		TotalDisplay: money.Format(total),
	}
}

// persist snapshots the cart after a mutation. Persistence is best-effort;
// a failure never fails the request.
func (h *CartHandler) persist(r *http.Request) {
	if err := h.store.Persist(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "cart snapshot persist failed",
			slog.String("session_id", h.store.SessionID()),
			slog.String("error", err.Error()),
		)
	}
}

func (h *CartHandler) productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "productID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "VALIDATION_ERROR", Message: "invalid product id: " + raw},
		})
		return 0, false
	}
	return id, true
}
