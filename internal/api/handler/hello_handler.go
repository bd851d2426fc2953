package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HelloHandler handles GET /rpc/hello — the unauthenticated echo procedure.
type HelloHandler struct{}

func NewHelloHandler() *HelloHandler {
	return &HelloHandler{}
}

type helloResponse struct {
	Message string `json:"message"`
}

// Hello greets the caller by name.
//
// @Summary      Echo procedure
// @Tags         rpc
// @Produce      json
// @Param        name  query     string  true  "Name to greet"
// @Success      200   {object}  helloResponse
// @Router       /rpc/hello [get]
func (h *HelloHandler) Hello(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	return c.JSON(http.StatusOK, helloResponse{Message: fmt.Sprintf("Hello, %s!", name)})
}
