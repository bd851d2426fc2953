package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/novalabs/landing-api/internal/api/metrics"
	"github.com/novalabs/landing-api/internal/core/domain"
	"github.com/novalabs/landing-api/internal/core/ports"
)

// SessionService resolves session cookies. The cookie value is an HS256-signed
// token referencing a stored session document; the signature check is a cheap
// first gate, the document is the authority (deleting it revokes the session
// no matter what the cookie says). The role is always read fresh from the user
// record so role changes take effect on the next resolution.
type SessionService struct {
	sessions ports.SessionRepository
	users    ports.UserRepository
	cache    ports.SessionCache
	secret   string
	logger   zerolog.Logger
	now      func() time.Time
}

// NewSessionService builds the provider. cache may be nil, in which case every
// resolution goes to the session store.
func NewSessionService(sessions ports.SessionRepository, users ports.UserRepository, cache ports.SessionCache, secret string, logger zerolog.Logger) *SessionService {
	return &SessionService{
		sessions: sessions,
		users:    users,
		cache:    cache,
		secret:   secret,
		logger:   logger,
		now:      time.Now,
	}
}

// Resolve validates a cookie value and returns the live session.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	sessionID, err := s.verifyToken(token)
	if err != nil {
		metrics.SessionLookupsTotal.WithLabelValues("invalid_token").Inc()
		return nil, domain.ErrSessionNotFound
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, sessionID)
		if err == nil && cached != nil {
			if !s.now().Before(cached.ExpiresAt) {
				metrics.SessionLookupsTotal.WithLabelValues("expired").Inc()
				return nil, domain.ErrSessionExpired
			}
			metrics.SessionLookupsTotal.WithLabelValues("cache_hit").Inc()
			return cached, nil
		}
		if err != nil {
			// Cache trouble must never block authentication.
			s.logger.Warn().Err(err).Msg("session cache read failed")
		}
	}

	rec, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			metrics.SessionLookupsTotal.WithLabelValues("not_found").Inc()
		}
		return nil, err
	}
	if !s.now().Before(rec.ExpiresAt) {
		metrics.SessionLookupsTotal.WithLabelValues("expired").Inc()
		return nil, domain.ErrSessionExpired
	}

	user, err := s.users.FindByID(ctx, rec.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Account deleted out from under a live session.
			metrics.SessionLookupsTotal.WithLabelValues("not_found").Inc()
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	session := &domain.Session{
		ID:        rec.ID,
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: rec.ExpiresAt,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, session); err != nil {
			s.logger.Warn().Err(err).Msg("session cache write failed")
		}
	}

	metrics.SessionLookupsTotal.WithLabelValues("store_hit").Inc()
	return session, nil
}

// Issue creates a session document and returns the signed cookie value.
func (s *SessionService) Issue(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	now := s.now().UTC()
	rec := &ports.SessionRecord{
		ID:        newSessionID(),
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, rec); err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"sid": rec.ID,
		"sub": userID,
		"exp": rec.ExpiresAt.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

// SignOut revokes a session by ID, removing both the stored document and any
// cached copy.
func (s *SessionService) SignOut(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, sessionID); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("session cache delete failed")
		}
	}
	return nil
}

// verifyToken checks the HS256 signature and expiry claim and extracts the
// session ID.
func (s *SessionService) verifyToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrSessionNotFound
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", domain.ErrSessionNotFound
	}
	return sid, nil
}

func newSessionID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
