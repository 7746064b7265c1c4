// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/tripweaver/internal/handler"
	"github.com/deppfellow/tripweaver/internal/lib/jsonx"
	"github.com/deppfellow/tripweaver/internal/middleware"
	"github.com/deppfellow/tripweaver/internal/server"
)

// NewRouter builds the Echo instance serving the whole API.
//
// The global middleware order is defined by middleware.Middlewares.Chain.
func NewRouter(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.JSONSerializer = jsonx.Serializer{}
	router.HTTPErrorHandler = m.Global.GlobalErrorHandler

	router.Use(m.Chain()...)

	registerSystemRoutes(router, h)
	registerItineraryRoutes(router, h)

	return router
}
