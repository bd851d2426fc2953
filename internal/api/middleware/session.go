package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/novalabs/landing-api/internal/core/ports"
)

// sessionContextKey is where the resolved session is stored on the echo
// context. Handlers read it via handler.SessionFromContext.
const sessionContextKey = "session"

// ResolveSession attempts to resolve the session cookie into a live session
// and injects it into the request context. Resolution failures are not
// terminal here: the session is simply absent, and each procedure's own
// authorization check decides what that means. This keeps the session an
// explicit per-request value rather than a gate baked into the route table.
func ResolveSession(provider ports.SessionProvider, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err == nil && cookie.Value != "" {
				session, err := provider.Resolve(c.Request().Context(), cookie.Value)
				if err == nil {
					c.Set(sessionContextKey, session)
				}
			}
			return next(c)
		}
	}
}
