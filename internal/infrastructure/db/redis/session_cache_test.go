package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/novalabs/landing-api/internal/core/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*SessionCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionCache(client, ttl), mr
}

func TestSessionCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	want := &domain.Session{
		ID:        "s1",
		UserID:    "u1",
		Role:      domain.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}
	if err := cache.Set(ctx, want); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := cache.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatalf("expected cache hit")
	}
	if got.ID != want.ID || got.UserID != want.UserID || got.Role != want.Role {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.ExpiresAt.Equal(want.ExpiresAt) {
		t.Fatalf("expiry mismatch: %v != %v", got.ExpiresAt, want.ExpiresAt)
	}
}

func TestSessionCache_MissIsNilNil(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	got, err := cache.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("miss must not be an error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil session on miss, got %+v", got)
	}
}

// The entry's TTL never exceeds the session's own remaining lifetime.
func TestSessionCache_TTLCappedBySessionExpiry(t *testing.T) {
	cache, mr := newTestCache(t, time.Hour)

	s := &domain.Session{ID: "s1", UserID: "u1", Role: domain.RoleAdmin, ExpiresAt: time.Now().Add(10 * time.Second)}
	if err := cache.Set(context.Background(), s); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if ttl := mr.TTL("session:s1"); ttl > 10*time.Second {
		t.Fatalf("ttl %v exceeds session lifetime", ttl)
	}
}

// A session that already expired is never written at all.
func TestSessionCache_ExpiredSessionNotStored(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)

	s := &domain.Session{ID: "s1", UserID: "u1", Role: domain.RoleAdmin, ExpiresAt: time.Now().Add(-time.Second)}
	if err := cache.Set(context.Background(), s); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if mr.Exists("session:s1") {
		t.Fatalf("expired session was cached")
	}
}

func TestSessionCache_DeleteEvicts(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	s := &domain.Session{ID: "s1", UserID: "u1", Role: domain.RoleAdmin, ExpiresAt: time.Now().Add(time.Hour)}
	if err := cache.Set(ctx, s); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := cache.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if mr.Exists("session:s1") {
		t.Fatalf("entry survived delete")
	}
}

// Entries fall out on their own once the TTL elapses.
func TestSessionCache_EntryExpires(t *testing.T) {
	cache, mr := newTestCache(t, 2*time.Second)
	ctx := context.Background()

	s := &domain.Session{ID: "s1", UserID: "u1", Role: domain.RoleAdmin, ExpiresAt: time.Now().Add(time.Hour)}
	if err := cache.Set(ctx, s); err != nil {
		t.Fatalf("Set: %v", err)
	}
	mr.FastForward(3 * time.Second)

	got, err := cache.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected eviction after ttl, got %+v", got)
	}
}
