package ports

import (
	"context"
	"time"

	"github.com/novalabs/landing-api/internal/core/domain"
)

// BanUpdate carries the fields touched by a ban. Expires is nil for a
// permanent ban.
type BanUpdate struct {
	Reason  string
	Expires *time.Time
}

// UserRepository defines persistence for the user directory. Each mutation is
// a single-document write; the store guarantees per-document atomicity, the
// repository issues no multi-step transactions.
type UserRepository interface {
	// ListByCreatedDesc returns every user record ordered by creation time,
	// most recent first.
	ListByCreatedDesc(ctx context.Context) ([]domain.User, error)
	// SetRole overwrites the role field. It does not check that the target
	// exists; an absent identity is a store-level no-op.
	SetRole(ctx context.Context, userID, role string) error
	// Ban sets banned=true together with the reason and optional expiry.
	Ban(ctx context.Context, userID string, update BanUpdate) error
	// Unban clears only the banned flag. Reason and expiry are left in place.
	Unban(ctx context.Context, userID string) error
	// Delete removes the record. Irreversible.
	Delete(ctx context.Context, userID string) error
	// FindByID returns a single record or domain.ErrUserNotFound.
	FindByID(ctx context.Context, userID string) (*domain.User, error)
}
