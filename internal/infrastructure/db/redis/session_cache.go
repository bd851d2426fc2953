package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/novalabs/landing-api/internal/core/domain"
)

const defaultSessionTTL = 5 * time.Minute

// SessionCache is a read-through cache of resolved sessions backed by Redis.
// Key format: session:<session_id>. Entries never outlive the session's own
// expiry, so a stale cache can at worst repeat a lookup, never extend access.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache wraps the given Redis client. ttl bounds how long a resolved
// session may be served without re-reading the store; <=0 uses the default.
func NewSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionCache{client: client, ttl: ttl}
}

// Get returns the cached session, or (nil, nil) on a miss.
func (c *SessionCache) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	raw, err := c.client.Get(ctx, c.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("session cache get: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("session cache decode: %w", err)
	}
	return &s, nil
}

// Set stores the session until the configured TTL or its own expiry,
// whichever comes first.
func (c *SessionCache) Set(ctx context.Context, session *domain.Session) error {
	ttl := c.ttl
	if remaining := time.Until(session.ExpiresAt); remaining < ttl {
		if remaining <= 0 {
			return nil
		}
		ttl = remaining
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(session.ID), raw, ttl).Err()
}

// Delete evicts a session, used on sign-out.
func (c *SessionCache) Delete(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, c.key(sessionID)).Err()
}

func (c *SessionCache) key(sessionID string) string {
	return "session:" + sessionID
}
