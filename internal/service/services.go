package service

import (
	"github.com/deppfellow/tripweaver/internal/repository"
	"github.com/deppfellow/tripweaver/internal/server"
)

// Services is a container for all business services.
type Services struct {
	Planner *PlannerService
}

// NewService constructs every service from the shared server resources
// and the repository container.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Planner: NewPlannerService(s, repos),
	}, nil
}
