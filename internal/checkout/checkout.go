// Package checkout orchestrates order submission: it validates the cart
// and customer fields, posts the order to the remote API, and clears the
// cart on success. At most one submission is in flight per session.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/BlurryShady/gear-store-frontend/internal/cart"
	"github.com/BlurryShady/gear-store-frontend/internal/domain"
	apperrors "github.com/BlurryShady/gear-store-frontend/internal/errors"
)

// Status is the state of the current or most recent checkout attempt.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusValidating Status = "validating"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

var checkoutAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_checkout_attempts_total",
		Help: "Total number of checkout attempts, by result",
	},
	[]string{"result"},
)

// Gateway is the slice of the API client the orchestrator needs.
type Gateway interface {
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
}

// Orchestrator runs checkout attempts for one cart session. A second
// SubmitOrder while one is outstanding is rejected; every new attempt
// restarts at validation.
type Orchestrator struct {
	cart   *cart.Store
	gw     Gateway
	logger *slog.Logger

	inFlight atomic.Bool

	mu      sync.Mutex
	status  Status
	lastErr error
}

// New creates a checkout orchestrator. It fails at wiring time when the
// cart store or gateway is missing.
func New(cartStore *cart.Store, gw Gateway, logger *slog.Logger) (*Orchestrator, error) {
	if cartStore == nil {
		return nil, apperrors.Configuration("checkout requires a cart store")
	}
	if gw == nil {
		return nil, apperrors.Configuration("checkout requires an API gateway")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		cart:   cartStore,
		gw:     gw,
		logger: logger,
		status: StatusIdle,
	}, nil
}

// Status returns the state of the current or most recent attempt.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// LastError returns the error retained from the most recent failed
// attempt, or nil.
func (o *Orchestrator) LastError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// SubmitOrder validates the cart and contact fields, posts the order, and
// clears the cart on success. On failure the cart is left untouched so
// the user can retry; the error is surfaced verbatim. Validation runs
// before any network call.
func (o *Orchestrator) SubmitOrder(ctx context.Context, customerName, customerEmail string) (*domain.OrderConfirmation, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		return nil, apperrors.Conflict("an order submission is already in progress")
	}
	defer o.inFlight.Store(false)

	o.setStatus(StatusValidating, nil)

	if strings.TrimSpace(customerName) == "" || strings.TrimSpace(customerEmail) == "" {
		return nil, o.fail(ctx, apperrors.Validation("missing contact info"))
	}

	items := o.cart.Items()
	if len(items) == 0 {
		return nil, o.fail(ctx, apperrors.Validation("empty cart"))
	}

	// Customer fields go into the payload verbatim, untrimmed.
	order := domain.OrderRequest{
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		Items:         make([]domain.OrderItem, len(items)),
	}
	for i, line := range items {
		order.Items[i] = domain.OrderItem{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
		}
	}

	o.setStatus(StatusSubmitting, nil)

	raw, err := o.gw.Post(ctx, "/orders/", order)
	if err != nil {
		return nil, o.fail(ctx, err)
	}

	var confirmation domain.OrderConfirmation
	if err := json.Unmarshal(raw, &confirmation); err != nil {
		return nil, o.fail(ctx, fmt.Errorf("decode order confirmation: %w", err))
	}

	o.cart.Dispatch(cart.Clear{})
	o.setStatus(StatusSucceeded, nil)
	checkoutAttemptsTotal.WithLabelValues("succeeded").Inc()

	o.logger.InfoContext(ctx, "order submitted",
		slog.Int64("order_id", confirmation.ID),
		slog.String("session_id", o.cart.SessionID()),
		slog.Int("lines", len(order.Items)),
	)

	return &confirmation, nil
}

func (o *Orchestrator) fail(ctx context.Context, err error) error {
	o.setStatus(StatusFailed, err)
	checkoutAttemptsTotal.WithLabelValues(failureResult(err)).Inc()

	o.logger.WarnContext(ctx, "checkout attempt failed",
		slog.String("session_id", o.cart.SessionID()),
		slog.String("error", err.Error()),
	)
	return err
}

func (o *Orchestrator) setStatus(status Status, err error) {
	o.mu.Lock()
	o.status = status
	o.lastErr = err
	o.mu.Unlock()
}

func failureResult(err error) string {
	if errors.Is(err, apperrors.ErrValidation) {
		return "validation_failed"
	}
	return "request_failed"
}
