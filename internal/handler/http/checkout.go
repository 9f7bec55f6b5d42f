package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/BlurryShady/gear-store-frontend/internal/checkout"
	apperrors "github.com/BlurryShady/gear-store-frontend/internal/errors"
	"github.com/BlurryShady/gear-store-frontend/internal/httputil"
)

// CheckoutHandler handles HTTP requests for the checkout endpoints.
type CheckoutHandler struct {
	orchestrator *checkout.Orchestrator
	logger       *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(o *checkout.Orchestrator, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		orchestrator: o,
		logger:       logger,
	}
}

// CheckoutRequest is the JSON request body for submitting an order.
type CheckoutRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

// SubmitOrder handles POST /api/v1/checkout
func (h *CheckoutHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	confirmation, err := h.orchestrator.SubmitOrder(r.Context(), req.CustomerName, req.CustomerEmail)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: confirmation})
}

// Status handles GET /api/v1/checkout/status
func (h *CheckoutHandler) Status(w http.ResponseWriter, r *http.Request) {
	status := h.orchestrator.Status()
	body := map[string]any{"status": status}
	if err := h.orchestrator.LastError(); err != nil && status == checkout.StatusFailed {
		body["error"] = apperrors.Message(err)
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: body})
}
