package console

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/novalabs/landing-api/internal/core/domain"
)

// Client is the typed RPC client the admin console talks through. It carries
// the operator's session cookie on every call; authorization happens
// server-side per procedure.
type Client struct {
	http *resty.Client
}

// NewClient builds a client for the given API base URL, authenticating with
// the operator's session cookie.
func NewClient(baseURL, cookieName, sessionToken string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetCookie(&http.Cookie{Name: cookieName, Value: sessionToken})
	return &Client{http: c}
}

type errorEnvelope struct {
	Error string `json:"error"`
}

type usersEnvelope struct {
	Users []domain.User `json:"users"`
}

type helloEnvelope struct {
	Message string `json:"message"`
}

// GetUsers calls the admin listing procedure. The full collection is returned
// per call, most recently created first.
func (c *Client) GetUsers(ctx context.Context) ([]domain.User, error) {
	var out usersEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&errorEnvelope{}).
		Get("/rpc/admin/users")
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	if resp.IsError() {
		return nil, rpcError("get users", resp)
	}
	return out.Users, nil
}

// SetRole calls the role-change procedure.
func (c *Client) SetRole(ctx context.Context, userID, role string) error {
	return c.post(ctx, "set role", "/rpc/admin/set-role", map[string]any{
		"user_id": userID,
		"role":    role,
	})
}

// BanUser calls the ban procedure. reason may be empty (server applies the
// default); expiresInSeconds 0 means a permanent ban.
func (c *Client) BanUser(ctx context.Context, userID, reason string, expiresInSeconds int64) error {
	return c.post(ctx, "ban user", "/rpc/admin/ban-user", map[string]any{
		"user_id":            userID,
		"reason":             reason,
		"expires_in_seconds": expiresInSeconds,
	})
}

// UnbanUser calls the unban procedure.
func (c *Client) UnbanUser(ctx context.Context, userID string) error {
	return c.post(ctx, "unban user", "/rpc/admin/unban-user", map[string]any{
		"user_id": userID,
	})
}

// RemoveUser calls the delete procedure. Irreversible.
func (c *Client) RemoveUser(ctx context.Context, userID string) error {
	return c.post(ctx, "remove user", "/rpc/admin/remove-user", map[string]any{
		"user_id": userID,
	})
}

// Hello calls the unauthenticated echo procedure.
func (c *Client) Hello(ctx context.Context, name string) (string, error) {
	var out helloEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("name", name).
		SetResult(&out).
		SetError(&errorEnvelope{}).
		Get("/rpc/hello")
	if err != nil {
		return "", fmt.Errorf("hello: %w", err)
	}
	if resp.IsError() {
		return "", rpcError("hello", resp)
	}
	return out.Message, nil
}

func (c *Client) post(ctx context.Context, op, path string, body map[string]any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetError(&errorEnvelope{}).
		Post(path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if resp.IsError() {
		return rpcError(op, resp)
	}
	return nil
}

func rpcError(op string, resp *resty.Response) error {
	if env, ok := resp.Error().(*errorEnvelope); ok && env.Error != "" {
		return fmt.Errorf("%s: %s", op, env.Error)
	}
	return fmt.Errorf("%s: status %d", op, resp.StatusCode())
}
