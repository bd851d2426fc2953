package console

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/novalabs/landing-api/internal/api"
	"github.com/novalabs/landing-api/internal/api/handler"
	"github.com/novalabs/landing-api/internal/api/middleware"
	"github.com/novalabs/landing-api/internal/core/domain"
	"github.com/novalabs/landing-api/internal/core/ports"
	"github.com/novalabs/landing-api/internal/core/service"
)

const testCookie = "landing.session_token"

// memUserRepo is an in-memory directory with the store's semantics: list
// sorted by createdAt desc, blind single-document updates.
type memUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	listCalls int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) add(id, name, email, role string, createdAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := createdAt
	r.users[id] = &domain.User{ID: id, Name: name, Email: email, Role: role, CreatedAt: &t}
}

func (r *memUserRepo) ListByCreatedDesc(context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(*out[j].CreatedAt)
	})
	return out, nil
}

func (r *memUserRepo) SetRole(_ context.Context, userID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.Role = role
	}
	return nil
}

func (r *memUserRepo) Ban(_ context.Context, userID string, update ports.BanUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.Banned = true
		u.BanReason = update.Reason
		if update.Expires != nil {
			u.BanExpires = update.Expires
		}
	}
	return nil
}

func (r *memUserRepo) Unban(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.Banned = false
	}
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userID)
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, userID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

// tokenProvider maps fixed cookie tokens to sessions.
type tokenProvider struct {
	sessions map[string]*domain.Session
}

func (p *tokenProvider) Resolve(_ context.Context, token string) (*domain.Session, error) {
	if s, ok := p.sessions[token]; ok {
		return s, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (p *tokenProvider) Issue(context.Context, string, time.Duration) (string, error) {
	return "", nil
}

func (p *tokenProvider) SignOut(context.Context, string) error {
	return nil
}

// newRPCServer assembles the real RPC surface: echo with the production
// validator, error handler, session middleware, admin handler, and admin
// service over an in-memory directory.
func newRPCServer(t *testing.T, repo *memUserRepo) *httptest.Server {
	t.Helper()

	provider := &tokenProvider{sessions: map[string]*domain.Session{
		"admin-token": {ID: "s-admin", UserID: "op1", Role: domain.RoleAdmin, ExpiresAt: time.Now().Add(time.Hour)},
		"user-token":  {ID: "s-user", UserID: "op2", Role: domain.RoleUser, ExpiresAt: time.Now().Add(time.Hour)},
	}}

	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	e.Use(middleware.ResolveSession(provider, testCookie))

	adminHandler := handler.NewAdminHandler(service.NewAdminService(repo, nil, zerolog.Nop()))
	e.GET("/rpc/admin/users", adminHandler.ListUsers)
	e.POST("/rpc/admin/set-role", adminHandler.SetRole)
	e.POST("/rpc/admin/ban-user", adminHandler.BanUser)
	e.POST("/rpc/admin/unban-user", adminHandler.UnbanUser)
	e.POST("/rpc/admin/remove-user", adminHandler.RemoveUser)

	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)
	return ts
}

func newAdminConsole(t *testing.T, ts *httptest.Server) *Console {
	t.Helper()
	return New(NewClient(ts.URL, testCookie, "admin-token"), 0, zerolog.Nop())
}

// Zero users is the empty state, not an error and not a stuck spinner.
func TestConsole_EmptyDirectory(t *testing.T) {
	repo := newMemUserRepo()
	con := newAdminConsole(t, newRPCServer(t, repo))

	users, err := con.Users(context.Background())
	if err != nil {
		t.Fatalf("Users returned error: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty list, got %d", len(users))
	}
	if con.Err() != nil {
		t.Fatalf("empty state reported an error: %v", con.Err())
	}
	if con.Loading() {
		t.Fatalf("loading flag stuck after fetch")
	}
}

// Banning with a reason is visible on the very next listing, and the row's
// menu switches from "Ban User" to "Unban User".
func TestConsole_BanFlow(t *testing.T) {
	repo := newMemUserRepo()
	repo.add("u1", "Ursula", "ursula@example.com", domain.RoleUser, time.Now())
	con := newAdminConsole(t, newRPCServer(t, repo))

	users, err := con.Users(context.Background())
	if err != nil {
		t.Fatalf("Users returned error: %v", err)
	}
	if opts := con.MenuOptions(users[0]); opts[1] != "Ban User" {
		t.Fatalf("expected Ban User option, got %v", opts)
	}

	if err := con.Ban(context.Background(), "u1", "spam"); err != nil {
		t.Fatalf("Ban returned error: %v", err)
	}

	users, err = con.Users(context.Background())
	if err != nil {
		t.Fatalf("Users returned error: %v", err)
	}
	if !users[0].Banned || users[0].BanReason != "spam" {
		t.Fatalf("ban not reflected: %+v", users[0])
	}
	if opts := con.MenuOptions(users[0]); opts[1] != "Unban User" {
		t.Fatalf("expected Unban User option, got %v", opts)
	}
}

// An empty reason gets the server-side default, not an empty banReason.
func TestConsole_BanDefaultReason(t *testing.T) {
	repo := newMemUserRepo()
	repo.add("u1", "Ursula", "ursula@example.com", domain.RoleUser, time.Now())
	con := newAdminConsole(t, newRPCServer(t, repo))

	if err := con.Ban(context.Background(), "u1", ""); err != nil {
		t.Fatalf("Ban returned error: %v", err)
	}
	users, err := con.Users(context.Background())
	if err != nil {
		t.Fatalf("Users returned error: %v", err)
	}
	if users[0].BanReason != domain.DefaultBanReason {
		t.Fatalf("expected default reason, got %q", users[0].BanReason)
	}
}

func TestConsole_UnbanLeavesReason(t *testing.T) {
	repo := newMemUserRepo()
	repo.add("u1", "Ursula", "ursula@example.com", domain.RoleUser, time.Now())
	con := newAdminConsole(t, newRPCServer(t, repo))

	if err := con.Ban(context.Background(), "u1", "spam"); err != nil {
		t.Fatalf("Ban returned error: %v", err)
	}
	if err := con.Unban(context.Background(), "u1"); err != nil {
		t.Fatalf("Unban returned error: %v", err)
	}

	users, err := con.Users(context.Background())
	if err != nil {
		t.Fatalf("Users returned error: %v", err)
	}
	if users[0].Banned {
		t.Fatalf("still banned after unban")
	}
	if users[0].BanReason != "spam" {
		t.Fatalf("unban cleared the reason: %+v", users[0])
	}
}

func TestConsole_RoleChangeRefetches(t *testing.T) {
	repo := newMemUserRepo()
	repo.add("u1", "Ursula", "ursula@example.com", domain.RoleUser, time.Now())
	con := newAdminConsole(t, newRPCServer(t, repo))

	if err := con.ChangeRole(context.Background(), "u1", domain.RoleAdmin); err != nil {
		t.Fatalf("ChangeRole returned error: %v", err)
	}
	users, err := con.Users(context.Background())
	if err != nil {
		t.Fatalf("Users returned error: %v", err)
	}
	if users[0].Role != domain.RoleAdmin {
		t.Fatalf("role change not reflected: %+v", users[0])
	}

	notices := con.Notices()
	if len(notices) == 0 || notices[len(notices)-1].Message != "Role updated to admin" {
		t.Fatalf("missing success notice: %+v", notices)
	}
}

func TestConsole_DeleteRequiresConfirmation(t *testing.T) {
	repo := newMemUserRepo()
	repo.add("u1", "Ursula", "ursula@example.com", domain.RoleUser, time.Now())
	con := newAdminConsole(t, newRPCServer(t, repo))

	if err := con.Remove(context.Background(), "u1", false); !errors.Is(err, ErrDeleteNotConfirmed) {
		t.Fatalf("expected ErrDeleteNotConfirmed, got %v", err)
	}
	users, err := con.Users(context.Background())
	if err != nil {
		t.Fatalf("Users returned error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("unconfirmed delete removed the row")
	}

	if err := con.Remove(context.Background(), "u1", true); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	users, err = con.Users(context.Background())
	if err != nil {
		t.Fatalf("Users returned error: %v", err)
	}
	for _, u := range users {
		if u.ID == "u1" {
			t.Fatalf("deleted row still listed")
		}
	}
}

// A fresh list is served from the cache; Invalidate forces the next Users
// call back to the server.
func TestConsole_StaleTimeCaching(t *testing.T) {
	repo := newMemUserRepo()
	repo.add("u1", "Ursula", "ursula@example.com", domain.RoleUser, time.Now())
	con := newAdminConsole(t, newRPCServer(t, repo))

	if _, err := con.Users(context.Background()); err != nil {
		t.Fatalf("Users returned error: %v", err)
	}
	fetched := repo.listCalls

	for i := 0; i < 3; i++ {
		if _, err := con.Users(context.Background()); err != nil {
			t.Fatalf("Users returned error: %v", err)
		}
	}
	if repo.listCalls != fetched {
		t.Fatalf("fresh cache still hit the server: %d → %d", fetched, repo.listCalls)
	}

	con.Invalidate()
	if _, err := con.Users(context.Background()); err != nil {
		t.Fatalf("Users returned error: %v", err)
	}
	if repo.listCalls != fetched+1 {
		t.Fatalf("invalidated cache did not refetch")
	}
}

// A non-admin operator's console fails on fetch and surfaces the inline
// error; mutations raise error notices naming the action.
func TestConsole_ForbiddenOperator(t *testing.T) {
	repo := newMemUserRepo()
	repo.add("u1", "Ursula", "ursula@example.com", domain.RoleUser, time.Now())
	ts := newRPCServer(t, repo)
	con := New(NewClient(ts.URL, testCookie, "user-token"), 0, zerolog.Nop())

	if _, err := con.Users(context.Background()); err == nil {
		t.Fatalf("expected fetch to fail for non-admin operator")
	}
	if con.Err() == nil {
		t.Fatalf("inline error not recorded")
	}

	if err := con.ChangeRole(context.Background(), "u1", domain.RoleAdmin); err == nil {
		t.Fatalf("expected role change to fail")
	}
	notices := con.Notices()
	found := false
	for _, n := range notices {
		if n.Level == "error" && n.Message == "Failed to update role" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing failure notice: %+v", notices)
	}
	if repo.users["u1"].Role != domain.RoleUser {
		t.Fatalf("forbidden mutation reached the store")
	}
}

// No session cookie at all: Unauthorized, and the directory is never queried.
func TestConsole_NoSession(t *testing.T) {
	repo := newMemUserRepo()
	ts := newRPCServer(t, repo)
	con := New(NewClient(ts.URL, testCookie, "expired-or-forged"), 0, zerolog.Nop())

	if _, err := con.Users(context.Background()); err == nil {
		t.Fatalf("expected Unauthorized")
	}
	if repo.listCalls != 0 {
		t.Fatalf("directory queried %d times without a valid session", repo.listCalls)
	}
}

// Two mutations on different rows interleave freely; the displayed state is
// whatever the last refetch returned.
func TestConsole_ConcurrentMutations(t *testing.T) {
	repo := newMemUserRepo()
	repo.add("u1", "Ursula", "u1@example.com", domain.RoleUser, time.Now().Add(-time.Minute))
	repo.add("u2", "Viktor", "u2@example.com", domain.RoleUser, time.Now())
	con := newAdminConsole(t, newRPCServer(t, repo))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = con.Ban(context.Background(), "u1", "spam")
	}()
	go func() {
		defer wg.Done()
		_ = con.ChangeRole(context.Background(), "u2", domain.RoleAdmin)
	}()
	wg.Wait()

	con.Invalidate()
	users, err := con.Users(context.Background())
	if err != nil {
		t.Fatalf("Users returned error: %v", err)
	}
	byID := make(map[string]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	if !byID["u1"].Banned {
		t.Fatalf("u1 ban lost: %+v", byID["u1"])
	}
	if byID["u2"].Role != domain.RoleAdmin {
		t.Fatalf("u2 role change lost: %+v", byID["u2"])
	}
}

func TestClient_Hello(t *testing.T) {
	e := echo.New()
	e.GET("/rpc/hello", handler.NewHelloHandler().Hello)
	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)

	client := NewClient(ts.URL, testCookie, "")
	msg, err := client.Hello(context.Background(), "World")
	if err != nil {
		t.Fatalf("Hello returned error: %v", err)
	}
	if msg != "Hello, World!" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestClient_SurfacesServerErrorMessage(t *testing.T) {
	e := echo.New()
	e.GET("/rpc/admin/users", func(c echo.Context) error {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden: admin access required"})
	})
	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)

	client := NewClient(ts.URL, testCookie, "tok")
	_, err := client.GetUsers(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := err.Error(); got != "get users: forbidden: admin access required" {
		t.Fatalf("unexpected error text: %q", got)
	}
}
