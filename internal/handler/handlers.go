// Package handler is the first layer after the router.
//
// It binds requests, validates them through the validation package, calls
// the service layer and writes the responses.
package handler

import (
	"github.com/deppfellow/tripweaver/internal/server"
	"github.com/deppfellow/tripweaver/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Health *HealthHandler
	Plan   *PlanHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(s),
		Plan:   NewPlanHandler(s, services.Planner),
	}
}
