package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deppfellow/tripweaver/internal/config"
	"github.com/deppfellow/tripweaver/internal/repository"
	"github.com/deppfellow/tripweaver/internal/server"
	"github.com/deppfellow/tripweaver/internal/service"
)

// appConfig is loaded once before any subcommand runs.
var appConfig *config.Config

// newRootCmd builds the command tree. Every call returns fresh commands
// with their own flag state.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tripweaver",
		Short: "Trip itinerary planning API",
		Long: `TripWeaver plans trips from a static destination index.

Run "tripweaver serve" to start the HTTP API, or "tripweaver plan" to
compute one plan against an index file and print it as JSON.`,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}

	rootCmd.AddCommand(newServeCmd(), newPlanCmd())

	return rootCmd
}

func loadConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	appConfig = cfg
	return nil
}

// newServices wires repositories and services around s.
func newServices(s *server.Server) (*service.Services, error) {
	services, err := service.NewService(s, repository.NewRepositories(s))
	if err != nil {
		return nil, fmt.Errorf("creating services: %w", err)
	}
	return services, nil
}
