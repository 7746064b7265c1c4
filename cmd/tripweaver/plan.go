package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deppfellow/tripweaver/internal/index"
	"github.com/deppfellow/tripweaver/internal/lib/utils"
	"github.com/deppfellow/tripweaver/internal/logger"
	"github.com/deppfellow/tripweaver/internal/model"
	"github.com/deppfellow/tripweaver/internal/server"
)

type planOptions struct {
	index    string
	origin   string
	maxHours float64
	prefs    []string
	days     int
	limit    int
}

func newPlanCmd() *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute one plan and print it as JSON",
		Long: `Plan runs the same validation and planner as POST /itinerary/plan
against an index file and prints the response to stdout.

Unlike the server, plan fails when the index cannot be loaded.`,
		Example: `  tripweaver plan --index data/index.json --origin NYC --max-hours 6 --pref beach --pref food
  tripweaver plan --origin LON --max-hours 3 --days 2 --limit 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.index, "index", "", "Index file (defaults to the configured index path)")
	f.StringVar(&opts.origin, "origin", "", "Origin airport or city code")
	f.Float64Var(&opts.maxHours, "max-hours", 0, "Maximum direct flight hours")
	f.StringSliceVar(&opts.prefs, "pref", nil, "Preference tag, repeatable")
	f.IntVar(&opts.days, "days", 0, "Trip length in days (0 uses the configured default)")
	f.IntVar(&opts.limit, "limit", 0, "Maximum number of options (0 uses the configured default)")

	_ = cmd.MarkFlagRequired("origin")

	return cmd
}

func runPlan(cmd *cobra.Command, opts *planOptions) error {
	// stdout carries the plan, logs go to stderr.
	log := logger.NewWithWriter(appConfig.Observability, cmd.ErrOrStderr())

	path := opts.index
	if path == "" {
		path = appConfig.Index.Path
	}

	idx, err := index.Load(path, &log)
	if err != nil {
		return err
	}

	req := &model.PlanRequest{
		Origin:         opts.origin,
		MaxFlightHours: opts.maxHours,
		Prefs:          opts.prefs,
		Days:           opts.days,
		Limit:          opts.limit,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid plan request: %w", err)
	}

	srv := server.NewWithIndex(appConfig, &log, idx)
	services, err := newServices(srv)
	if err != nil {
		return err
	}

	defaults := appConfig.Planner
	resp, err := services.Planner.Plan(cmd.Context(), req.Query(defaults.DefaultDays, defaults.DefaultLimit))
	if err != nil {
		return fmt.Errorf("planning itinerary: %w", err)
	}

	return utils.WriteJSON(cmd.OutOrStdout(), resp)
}
