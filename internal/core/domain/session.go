package domain

import (
	"errors"
	"time"
)

var ErrUnauthorized = errors.New("unauthorized")
var ErrForbidden = errors.New("forbidden")
var ErrUserNotFound = errors.New("user not found")
var ErrSessionNotFound = errors.New("session not found")
var ErrSessionExpired = errors.New("session expired")

// Session is the server-issued proof of an authenticated identity. It is
// resolved fresh per request and passed explicitly into every service call;
// nothing in this codebase holds a process-wide current session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid reports whether the session exists and has not expired at t.
func (s *Session) Valid(t time.Time) bool {
	return s != nil && t.Before(s.ExpiresAt)
}
