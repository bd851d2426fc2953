package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Route guard path sets. Protected paths require a session cookie before the
// page even renders; auth-only paths bounce already-authenticated visitors.
var (
	protectedPrefixes = []string{"/dashboard", "/admin"}
	authOnlyPrefixes  = []string{"/sign-in", "/sign-up"}
)

// Guard redirects based on session cookie presence alone. It never parses or
// validates the cookie — a stale or forged cookie passes through here and is
// caught by the full server-side session validation on the page or RPC call.
// Cheap defense-in-depth, not the authority.
//
// Per request: {no cookie, protected path} → 302 /sign-in;
// {cookie, auth-only path} → 302 /dashboard; anything else passes through.
func Guard(cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			hasCookie := hasSessionCookie(c, cookieName)

			if !hasCookie && matchesPrefix(path, protectedPrefixes) {
				return c.Redirect(http.StatusFound, "/sign-in")
			}
			if hasCookie && matchesPrefix(path, authOnlyPrefixes) {
				return c.Redirect(http.StatusFound, "/dashboard")
			}
			return next(c)
		}
	}
}

func hasSessionCookie(c echo.Context, name string) bool {
	cookie, err := c.Cookie(name)
	return err == nil && cookie.Value != ""
}

func matchesPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
