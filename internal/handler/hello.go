package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hello-upstream/internal/service"
)

// HelloHandler serves GET /.
type HelloHandler struct {
	service *service.HelloService
}

// NewHelloHandler creates a HelloHandler.
func NewHelloHandler(svc *service.HelloService) *HelloHandler {
	return &HelloHandler{service: svc}
}

// Hello triggers the upstream fetch and always answers 200 with the greeting.
// The request context is passed through so a disconnecting client abandons
// the upstream call.
func (h *HelloHandler) Hello(c echo.Context) error {
	return c.String(http.StatusOK, h.service.Greet(c.Request().Context()))
}
