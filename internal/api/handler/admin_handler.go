package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/novalabs/landing-api/internal/core/domain"
	"github.com/novalabs/landing-api/internal/core/ports"
)

// AdminHandler exposes the admin RPC procedures over HTTP. Authorization is
// not checked here: every procedure hands the request's session to the
// service, which applies the uniform precondition before any store access.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListUsers handles GET /rpc/admin/users.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /rpc/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context(), SessionFromContext(c))
	if err != nil {
		return err
	}

	resp := listUsersResponse{Users: make([]userResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, resp)
}

// SetRole handles POST /rpc/admin/set-role.
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      setRoleRequest  true  "Target user and new role"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /rpc/admin/set-role [post]
func (h *AdminHandler) SetRole(c echo.Context) error {
	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.service.SetRole(c.Request().Context(), SessionFromContext(c), ports.SetRoleInput{
		UserID: req.UserID,
		Role:   req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "ok"})
}

// BanUser handles POST /rpc/admin/ban-user.
//
// @Summary      Ban a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      banUserRequest  true  "Target user, optional reason and expiry"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /rpc/admin/ban-user [post]
func (h *AdminHandler) BanUser(c echo.Context) error {
	var req banUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.service.BanUser(c.Request().Context(), SessionFromContext(c), ports.BanUserInput{
		UserID:           req.UserID,
		Reason:           req.Reason,
		ExpiresInSeconds: req.ExpiresInSeconds,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "ok"})
}

// UnbanUser handles POST /rpc/admin/unban-user.
//
// @Summary      Unban a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      userIDRequest  true  "Target user"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /rpc/admin/unban-user [post]
func (h *AdminHandler) UnbanUser(c echo.Context) error {
	var req userIDRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UnbanUser(c.Request().Context(), SessionFromContext(c), req.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "ok"})
}

// RemoveUser handles POST /rpc/admin/remove-user.
//
// @Summary      Delete a user permanently
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      userIDRequest  true  "Target user"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /rpc/admin/remove-user [post]
func (h *AdminHandler) RemoveUser(c echo.Context) error {
	var req userIDRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.RemoveUser(c.Request().Context(), SessionFromContext(c), req.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "ok"})
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Banned:     u.Banned,
		BanReason:  u.BanReason,
		BanExpires: u.BanExpires,
		CreatedAt:  u.CreatedAt,
	}
}
