package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/tripweaver/internal/middleware"
	"github.com/deppfellow/tripweaver/internal/model"
	"github.com/deppfellow/tripweaver/internal/server"
	"github.com/deppfellow/tripweaver/internal/service"
)

// PlanHandler serves POST /itinerary/plan.
type PlanHandler struct {
	Handler
	planner *service.PlannerService
}

// NewPlanHandler constructs a PlanHandler.
func NewPlanHandler(s *server.Server, planner *service.PlannerService) *PlanHandler {
	return &PlanHandler{
		Handler: NewHandler(s),
		planner: planner,
	}
}

// Plan normalizes a validated request and runs the planner on it.
//
// Planner failures are returned as plain errors, which the global error
// handler answers with a generic 500.
func (h *PlanHandler) Plan(c echo.Context, req *model.PlanRequest) (*model.PlanResponse, error) {
	defaults := h.server.Config.Planner
	q := req.Query(defaults.DefaultDays, defaults.DefaultLimit)

	middleware.GetLogger(c).Info().
		Str("origin", q.Origin).
		Float64("max_flight_hours", q.MaxFlightHours).
		Strs("prefs", q.Prefs).
		Int("days", q.Days).
		Int("limit", q.Limit).
		Msg("planning request")

	resp, err := h.planner.Plan(c.Request().Context(), q)
	if err != nil {
		return nil, fmt.Errorf("planning itinerary: %w", err)
	}

	return resp, nil
}
