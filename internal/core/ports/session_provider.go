package ports

import (
	"context"
	"time"

	"github.com/novalabs/landing-api/internal/core/domain"
)

// SessionProvider resolves and revokes sessions. Resolution is performed once
// per request; the resulting session is handed to services explicitly.
type SessionProvider interface {
	// Resolve validates a session cookie value and returns the live session.
	// Returns domain.ErrSessionNotFound for unknown/forged tokens and
	// domain.ErrSessionExpired once past expiry.
	Resolve(ctx context.Context, token string) (*domain.Session, error)
	// Issue creates a session for a user and returns the signed cookie value.
	Issue(ctx context.Context, userID string, ttl time.Duration) (string, error)
	// SignOut revokes a session by ID.
	SignOut(ctx context.Context, sessionID string) error
}

// SessionCache is an optional read-through cache in front of session storage.
type SessionCache interface {
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Set(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, sessionID string) error
}
