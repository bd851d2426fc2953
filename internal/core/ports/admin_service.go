package ports

import (
	"context"

	"github.com/novalabs/landing-api/internal/core/domain"
)

// SetRoleInput targets a user record for a role change.
type SetRoleInput struct {
	UserID string
	Role   string
}

// BanUserInput targets a user record for a ban. Reason may be empty (a fixed
// default is applied) and ExpiresInSeconds may be zero (permanent ban).
type BanUserInput struct {
	UserID           string
	Reason           string
	ExpiresInSeconds int64
}

// AdminService exposes the admin RPC procedures. Every call re-checks the
// supplied session before touching the store: a missing or expired session
// yields domain.ErrUnauthorized, a role outside the allowed set yields
// domain.ErrForbidden.
type AdminService interface {
	ListUsers(ctx context.Context, session *domain.Session) ([]domain.User, error)
	SetRole(ctx context.Context, session *domain.Session, input SetRoleInput) error
	BanUser(ctx context.Context, session *domain.Session, input BanUserInput) error
	UnbanUser(ctx context.Context, session *domain.Session, userID string) error
	RemoveUser(ctx context.Context, session *domain.Session, userID string) error
}
