package repository

import (
	"github.com/deppfellow/tripweaver/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Destinations *DestinationRepository
}

// NewRepositories constructs the repository container from the shared
// resources of s (the destination index lives on s.Index).
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Destinations: NewDestinationRepository(s.Index),
	}
}
