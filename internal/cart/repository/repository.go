// Package repository defines the persistence interface for cart session
// snapshots.
package repository

import (
	"context"

	"github.com/BlurryShady/gear-store-frontend/internal/domain"
)

// SnapshotRepository persists cart snapshots between visits of the same
// shopper session. Persistence is best-effort and outside the cart's
// synchronous mutation path.
type SnapshotRepository interface {
	// Get retrieves the snapshot for a session.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists a snapshot, overwriting any existing one for the session.
	Save(ctx context.Context, sessionID string, cart domain.Cart) error

	// Delete removes the snapshot for a session.
	Delete(ctx context.Context, sessionID string) error
}
