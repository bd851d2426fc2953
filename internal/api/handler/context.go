package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/novalabs/landing-api/internal/core/domain"
)

// SessionFromContext extracts the session resolved by the ResolveSession
// middleware. Returns nil when the request carried no resolvable session —
// handlers pass that nil straight into the service layer, which owns the
// Unauthorized/Forbidden decision.
func SessionFromContext(c echo.Context) *domain.Session {
	session, _ := c.Get("session").(*domain.Session)
	return session
}
