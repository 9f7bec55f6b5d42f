package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/BlurryShady/gear-store-frontend/internal/cart/repository"
	"github.com/BlurryShady/gear-store-frontend/internal/domain"
	apperrors "github.com/BlurryShady/gear-store-frontend/internal/errors"
)

var cartActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_cart_actions_total",
		Help: "Total number of cart actions applied, by action type",
	},
	[]string{"action"},
)

// Store owns the single cart instance for a shopper session. All
// mutations go through Dispatch, which applies the pure transition
// function under a lock so readers never observe a partially-applied
// action. Derived totals are recomputed from the line items on every
// read.
//
// The store performs no I/O on the mutation path. Snapshot persistence,
// when configured, is explicit via Persist/Restore and best-effort.
type Store struct {
	mu        sync.RWMutex
	state     domain.Cart
	sessionID string
	logger    *slog.Logger
	repo      repository.SnapshotRepository
}

// Option configures a Store.
type Option func(*Store)

// WithSessionID sets a stable session identifier instead of a generated
// one, letting a session's snapshot survive restarts.
func WithSessionID(id string) Option {
	return func(s *Store) {
		if id != "" {
			s.sessionID = id
		}
	}
}

// WithRepository enables snapshot persistence through the given repository.
func WithRepository(repo repository.SnapshotRepository) Option {
	return func(s *Store) {
		s.repo = repo
	}
}

// NewStore creates an empty cart store for a new session.
func NewStore(logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		state:     domain.Cart{Items: []domain.LineItem{}},
		sessionID: uuid.New().String(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SessionID returns the shopper session identifier.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Dispatch applies an action atomically and returns the resulting state.
func (s *Store) Dispatch(action Action) domain.Cart {
	s.mu.Lock()
	s.state = Apply(s.state, action)
	next := s.snapshotLocked()
	s.mu.Unlock()

	cartActionsTotal.WithLabelValues(action.name()).Inc()
	s.logger.Debug("cart action applied",
		slog.String("session_id", s.sessionID),
		slog.String("action", action.name()),
		slog.Int("total_count", next.TotalCount()),
	)

	return next
}

// Snapshot returns a copy of the current cart state.
func (s *Store) Snapshot() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Items returns a copy of the current line items.
func (s *Store) Items() []domain.LineItem {
	return s.Snapshot().Items
}

// TotalCount returns the sum of all line quantities, recomputed from the
// current items.
func (s *Store) TotalCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.TotalCount()
}

// TotalPrice returns the normalized price total, recomputed from the
// current items.
func (s *Store) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.TotalPrice()
}

// Persist writes the current snapshot to the configured repository. It is
// a no-op when persistence is not configured.
func (s *Store) Persist(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	if err := s.repo.Save(ctx, s.sessionID, s.Snapshot()); err != nil {
		return fmt.Errorf("persist cart snapshot: %w", err)
	}
	return nil
}

// Restore replaces the current state with the persisted snapshot for this
// session. A missing snapshot leaves the cart empty and is not an error.
func (s *Store) Restore(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	snapshot, err := s.repo.Get(ctx, s.sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("restore cart snapshot: %w", err)
	}

	s.mu.Lock()
	s.state = *snapshot
	if s.state.Items == nil {
		s.state.Items = []domain.LineItem{}
	}
	s.mu.Unlock()

	s.logger.Info("cart session restored",
		slog.String("session_id", s.sessionID),
		slog.Int("lines", len(snapshot.Items)),
	)
	return nil
}

func (s *Store) snapshotLocked() domain.Cart {
	items := make([]domain.LineItem, len(s.state.Items))
	copy(items, s.state.Items)
	return domain.Cart{Items: items}
}
