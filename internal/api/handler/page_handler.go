package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/novalabs/landing-api/internal/core/domain"
)

// PageHandler serves the session-gated page endpoints. The route guard has
// already filtered requests with no cookie at all, but a cookie is only a
// pre-filter: each page re-validates the session server-side before
// rendering anything.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

type dashboardResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	// AdminNav mirrors the navbar: admin and super-admin both see the admin
	// console link, even though the RPC gate defaults to admin alone.
	AdminNav bool `json:"admin_nav"`
}

// Dashboard handles GET /dashboard — any authenticated user.
func (p *PageHandler) Dashboard(c echo.Context) error {
	session := SessionFromContext(c)
	if session == nil {
		// Cookie present but stale, forged, or expired.
		return c.Redirect(http.StatusFound, "/sign-in")
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		UserID:   session.UserID,
		Role:     session.Role,
		AdminNav: domain.CanSeeAdminNav(session.Role),
	})
}

// Admin handles GET /admin — admin-equivalent roles only. The page-level
// check uses the same wide set the navbar advertises; the RPC procedures
// behind the console enforce their own, narrower set per call.
func (p *PageHandler) Admin(c echo.Context) error {
	session := SessionFromContext(c)
	if session == nil {
		return c.Redirect(http.StatusFound, "/sign-in")
	}
	if !domain.CanSeeAdminNav(session.Role) {
		return domain.ErrForbidden
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		UserID:   session.UserID,
		Role:     session.Role,
		AdminNav: true,
	})
}

// SignIn and SignUp are placeholders: the auth flows themselves live in the
// external auth provider. They exist as route-guard targets.
func (p *PageHandler) SignIn(c echo.Context) error {
	return c.JSON(http.StatusOK, statusResponse{Status: "sign-in"})
}

func (p *PageHandler) SignUp(c echo.Context) error {
	return c.JSON(http.StatusOK, statusResponse{Status: "sign-up"})
}
