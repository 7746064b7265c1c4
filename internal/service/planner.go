package service

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/text/cases"

	"github.com/deppfellow/tripweaver/internal/index"
	"github.com/deppfellow/tripweaver/internal/model"
	"github.com/deppfellow/tripweaver/internal/repository"
	"github.com/deppfellow/tripweaver/internal/server"
)

// PlannerService matches and ranks destinations against a plan query.
//
// Ranking is deterministic for a given index and query:
//  1. keep destinations reachable from the origin within max flight hours
//  2. score = matched prefs / requested prefs (0 when no prefs were given)
//  3. order by score desc, flight hours asc, id asc
//  4. keep the first Limit options and build an itinerary for each
type PlannerService struct {
	server       *server.Server
	destinations *repository.DestinationRepository
}

// NewPlannerService constructs a PlannerService.
func NewPlannerService(s *server.Server, repos *repository.Repositories) *PlannerService {
	return &PlannerService{
		server:       s,
		destinations: repos.Destinations,
	}
}

// Plan computes the ranked options for q.
//
// q must come from model.PlanRequest.Query, so the origin is upper-cased
// and prefs are folded and unique. An empty index yields an empty, non-nil
// list of options.
func (p *PlannerService) Plan(ctx context.Context, q model.PlanQuery) (*model.PlanResponse, error) {
	if q.Days < 1 || q.Limit < 1 {
		return nil, fmt.Errorf("plan: days and limit must be positive, got days=%d limit=%d", q.Days, q.Limit)
	}

	reachable, err := p.destinations.ReachableFrom(ctx, q.Origin, q.MaxFlightHours)
	if err != nil {
		return nil, fmt.Errorf("plan: listing destinations from %q: %w", q.Origin, err)
	}

	fold := cases.Fold()
	options := make([]model.PlanOption, 0, len(reachable))

	for _, r := range reachable {
		matched := matchPrefs(fold, r.Destination, q.Prefs)

		score := 0.0
		if len(q.Prefs) > 0 {
			score = float64(len(matched)) / float64(len(q.Prefs))
		}

		options = append(options, model.PlanOption{
			Destination: model.DestinationSummary{
				ID:      r.Destination.ID,
				Name:    r.Destination.Name,
				Country: r.Destination.Country,
				Airport: r.Destination.Airport,
			},
			FlightHours:  r.FlightHours,
			Score:        score,
			MatchedPrefs: matched,
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		a, b := options[i], options[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.FlightHours != b.FlightHours {
			return a.FlightHours < b.FlightHours
		}
		return a.Destination.ID < b.Destination.ID
	})

	if len(options) > q.Limit {
		options = options[:q.Limit]
	}

	// Itineraries are only built for the options that are returned.
	byID := make(map[string]index.Destination, len(reachable))
	for _, r := range reachable {
		byID[r.Destination.ID] = r.Destination
	}
	for i := range options {
		d := byID[options[i].Destination.ID]
		options[i].Itinerary = buildItinerary(fold, d.Activities, q.Prefs, q.Days)
	}

	return &model.PlanResponse{
		Origin:         q.Origin,
		MaxFlightHours: q.MaxFlightHours,
		Prefs:          q.Prefs,
		Days:           q.Days,
		Considered:     p.destinations.Count(),
		Reachable:      len(reachable),
		Options:        options,
	}, nil
}

// matchPrefs returns the prefs, in query order, found among the destination
// tags or the tags of any of its activities.
func matchPrefs(fold cases.Caser, d index.Destination, prefs []string) []string {
	tags := make(map[string]struct{}, len(d.Tags))
	for _, t := range d.Tags {
		tags[fold.String(t)] = struct{}{}
	}
	for _, a := range d.Activities {
		for _, t := range a.Tags {
			tags[fold.String(t)] = struct{}{}
		}
	}

	matched := make([]string, 0, len(prefs))
	for _, p := range prefs {
		if _, ok := tags[p]; ok {
			matched = append(matched, p)
		}
	}
	return matched
}
