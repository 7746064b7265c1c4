package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/tripweaver/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of the
// business logic: liveness and status.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/healthz", h.Health.Healthz)
	r.GET("/status", h.Health.Status)
}
