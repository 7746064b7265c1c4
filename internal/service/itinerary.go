package service

import (
	"sort"

	"golang.org/x/text/cases"

	"github.com/deppfellow/tripweaver/internal/index"
	"github.com/deppfellow/tripweaver/internal/model"
)

// buildItinerary spreads activities over days, model.ActivitiesPerDay at a time.
//
// Activities matching more prefs come first, ties are broken by name. Days
// past the last activity get an empty (non-nil) list.
func buildItinerary(fold cases.Caser, activities []index.Activity, prefs []string, days int) []model.ItineraryDay {
	wanted := make(map[string]struct{}, len(prefs))
	for _, p := range prefs {
		wanted[p] = struct{}{}
	}

	type ranked struct {
		name    string
		matches int
	}

	ordered := make([]ranked, 0, len(activities))
	for _, a := range activities {
		if a.Name == "" {
			continue
		}

		n := 0
		for _, t := range a.Tags {
			if _, ok := wanted[fold.String(t)]; ok {
				n++
			}
		}
		ordered = append(ordered, ranked{name: a.Name, matches: n})
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].matches != ordered[j].matches {
			return ordered[i].matches > ordered[j].matches
		}
		return ordered[i].name < ordered[j].name
	})

	itinerary := make([]model.ItineraryDay, 0, days)
	next := 0
	for day := 1; day <= days; day++ {
		planned := make([]string, 0, model.ActivitiesPerDay)
		for len(planned) < model.ActivitiesPerDay && next < len(ordered) {
			planned = append(planned, ordered[next].name)
			next++
		}
		itinerary = append(itinerary, model.ItineraryDay{Day: day, Activities: planned})
	}

	return itinerary
}
