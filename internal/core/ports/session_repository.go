package ports

import (
	"context"
	"time"
)

// SessionRecord is a stored session document. The token cookie references it
// by ID; deleting the record revokes the session regardless of the cookie.
type SessionRecord struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// SessionRepository defines persistence for issued sessions.
type SessionRepository interface {
	Create(ctx context.Context, rec *SessionRecord) error
	FindByID(ctx context.Context, id string) (*SessionRecord, error)
	Delete(ctx context.Context, id string) error
}
