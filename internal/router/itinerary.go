package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/tripweaver/internal/handler"
)

func registerItineraryRoutes(r *echo.Echo, h *handler.Handlers) {
	itinerary := r.Group("/itinerary")
	itinerary.POST("/plan", handler.Handle(h.Plan.Handler, h.Plan.Plan, http.StatusOK))
}
