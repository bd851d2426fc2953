// Package console implements the admin console: a view over the user
// directory that dispatches mutations through the admin RPC surface and keeps
// its displayed state consistent with the store by invalidating and
// refetching after every successful mutation. Nothing is patched locally —
// the table always shows what the last successful fetch returned.
package console

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/novalabs/landing-api/internal/core/domain"
)

// defaultStaleTime matches the web console's query cache: a list younger than
// this is served without a network call.
const defaultStaleTime = 5 * time.Minute

// ErrDeleteNotConfirmed is returned when Remove is invoked without the
// explicit secondary confirmation. No silent deletes.
var ErrDeleteNotConfirmed = errors.New("delete not confirmed")

// Notice is a user-visible notification produced by console actions.
type Notice struct {
	Level   string // "success" or "error"
	Message string
}

// Console is the admin console view model. Safe for concurrent use: two
// in-flight mutations on different rows proceed independently, and the final
// displayed state is whichever refetch lands last.
type Console struct {
	client    *Client
	staleTime time.Duration
	logger    zerolog.Logger
	now       func() time.Time

	mu        sync.Mutex
	users     []domain.User
	fetchedAt time.Time
	loading   bool
	lastErr   error
	notices   []Notice
}

// New builds a console over the given client. staleTime <= 0 uses the default.
func New(client *Client, staleTime time.Duration, logger zerolog.Logger) *Console {
	if staleTime <= 0 {
		staleTime = defaultStaleTime
	}
	return &Console{client: client, staleTime: staleTime, logger: logger, now: time.Now}
}

// Refresh issues the listing call and replaces the displayed set entirely on
// success. On failure the error is recorded for display; the previous list is
// left as-is (nothing optimistic to roll back).
func (con *Console) Refresh(ctx context.Context) error {
	con.mu.Lock()
	con.loading = true
	con.mu.Unlock()

	users, err := con.client.GetUsers(ctx)

	con.mu.Lock()
	defer con.mu.Unlock()
	con.loading = false
	if err != nil {
		con.lastErr = err
		con.logger.Error().Err(err).Msg("failed to fetch users")
		return err
	}
	con.users = users
	con.fetchedAt = con.now()
	con.lastErr = nil
	return nil
}

// Users returns the displayed list, refetching when the cache is stale or has
// been invalidated.
func (con *Console) Users(ctx context.Context) ([]domain.User, error) {
	con.mu.Lock()
	fresh := !con.fetchedAt.IsZero() && con.now().Sub(con.fetchedAt) < con.staleTime
	if fresh {
		users := append([]domain.User(nil), con.users...)
		con.mu.Unlock()
		return users, nil
	}
	con.mu.Unlock()

	if err := con.Refresh(ctx); err != nil {
		return nil, err
	}

	con.mu.Lock()
	defer con.mu.Unlock()
	return append([]domain.User(nil), con.users...), nil
}

// Invalidate marks the cached list stale so the next Users call refetches.
func (con *Console) Invalidate() {
	con.mu.Lock()
	con.fetchedAt = time.Time{}
	con.mu.Unlock()
}

// Loading reports whether a listing call is in flight.
func (con *Console) Loading() bool {
	con.mu.Lock()
	defer con.mu.Unlock()
	return con.loading
}

// Err returns the inline error from the last failed fetch, nil after a
// successful one.
func (con *Console) Err() error {
	con.mu.Lock()
	defer con.mu.Unlock()
	return con.lastErr
}

// Notices returns the accumulated notifications, oldest first.
func (con *Console) Notices() []Notice {
	con.mu.Lock()
	defer con.mu.Unlock()
	return append([]Notice(nil), con.notices...)
}

// MenuOptions returns the action menu for a row. "Unban User" replaces
// "Ban User" exactly when the row is currently banned.
func (con *Console) MenuOptions(u domain.User) []string {
	banState := "Ban User"
	if u.Banned {
		banState = "Unban User"
	}
	return []string{"Change Role", banState, "Delete User"}
}

// ChangeRole dispatches a role change confirmed through the role dialog, then
// invalidates and refetches.
func (con *Console) ChangeRole(ctx context.Context, userID, role string) error {
	if err := con.client.SetRole(ctx, userID, role); err != nil {
		con.notify("error", "Failed to update role")
		return err
	}
	con.notify("success", fmt.Sprintf("Role updated to %s", role))
	return con.refetchAfterMutation(ctx)
}

// Ban dispatches a ban collected through the ban dialog. An empty reason is
// passed through; the server applies the default.
func (con *Console) Ban(ctx context.Context, userID, reason string) error {
	if err := con.client.BanUser(ctx, userID, reason, 0); err != nil {
		con.notify("error", "Failed to ban user")
		return err
	}
	con.notify("success", fmt.Sprintf("User %s has been banned", con.displayName(userID)))
	return con.refetchAfterMutation(ctx)
}

// Unban lifts a ban. Available from the menu only for banned rows.
func (con *Console) Unban(ctx context.Context, userID string) error {
	if err := con.client.UnbanUser(ctx, userID); err != nil {
		con.notify("error", "Failed to unban user")
		return err
	}
	con.notify("success", fmt.Sprintf("User %s has been unbanned", con.displayName(userID)))
	return con.refetchAfterMutation(ctx)
}

// Remove deletes a user. confirmed must be true — the delete dialog's
// secondary confirmation — or nothing is dispatched.
func (con *Console) Remove(ctx context.Context, userID string, confirmed bool) error {
	if !confirmed {
		return ErrDeleteNotConfirmed
	}
	name := con.displayName(userID)
	if err := con.client.RemoveUser(ctx, userID); err != nil {
		con.notify("error", "Failed to delete user")
		return err
	}
	con.notify("success", fmt.Sprintf("User %s has been deleted", name))
	return con.refetchAfterMutation(ctx)
}

// refetchAfterMutation invalidates the cache and fetches the authoritative
// list. The displayed state after any mutation is whatever the store returned,
// never a client-side prediction.
func (con *Console) refetchAfterMutation(ctx context.Context) error {
	con.Invalidate()
	return con.Refresh(ctx)
}

func (con *Console) notify(level, message string) {
	con.mu.Lock()
	con.notices = append(con.notices, Notice{Level: level, Message: message})
	con.mu.Unlock()
}

// displayName resolves a row's name or email from the cached list, falling
// back to the raw identity.
func (con *Console) displayName(userID string) string {
	con.mu.Lock()
	defer con.mu.Unlock()
	for _, u := range con.users {
		if u.ID == userID {
			if u.Name != "" {
				return u.Name
			}
			return u.Email
		}
	}
	return userID
}
