package model

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/deppfellow/tripweaver/internal/validation"
)

// Request bounds enforced before a query reaches the planner.
const (
	MaxOriginLength  = 10
	MaxFlightHours   = 24
	MaxPrefs         = 10
	MaxDays          = 14
	MaxOptions       = 20
	ActivitiesPerDay = 2
)

// Client-facing messages of the ordered request checks.
const (
	DetailInvalidOrigin      = "Invalid origin code"
	DetailFlightHoursTooHigh = "Max flight hours cannot exceed 24"
	DetailTooManyPrefs       = "Too many preferences specified"
)

// PlanRequest is the body of POST /itinerary/plan.
type PlanRequest struct {
	Origin         string   `json:"origin"`
	MaxFlightHours float64  `json:"max_flight_hours"`
	Prefs          []string `json:"prefs"`

	// Days and Limit are optional; zero means "use the configured default".
	Days  int `json:"days,omitempty" validate:"omitempty,min=1,max=14"`
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1,max=20"`
}

// Validate checks the request in a fixed order and stops at the first failure:
// origin, max_flight_hours upper bound, number of prefs, then days and limit.
//
// The origin length is taken on the raw value, padding included. A negative
// max_flight_hours is accepted and simply reaches no destination.
func (r *PlanRequest) Validate() error {
	if r.Origin == "" || utf8.RuneCountInString(r.Origin) > MaxOriginLength {
		return validation.CustomValidationErrors{{Field: "origin", Message: DetailInvalidOrigin}}
	}

	if r.MaxFlightHours > MaxFlightHours {
		return validation.CustomValidationErrors{{Field: "max_flight_hours", Message: DetailFlightHoursTooHigh}}
	}

	if len(r.Prefs) > MaxPrefs {
		return validation.CustomValidationErrors{{Field: "prefs", Message: DetailTooManyPrefs}}
	}

	return validation.Struct(r)
}

// Query normalizes a validated request.
//
// The origin is trimmed and upper-cased. Prefs are trimmed and case-folded;
// blanks and duplicates are dropped, first occurrence wins. Zero Days/Limit
// take the given defaults.
func (r *PlanRequest) Query(defaultDays, defaultLimit int) PlanQuery {
	q := PlanQuery{
		Origin:         strings.ToUpper(strings.TrimSpace(r.Origin)),
		MaxFlightHours: r.MaxFlightHours,
		Prefs:          NormalizePrefs(r.Prefs),
		Days:           r.Days,
		Limit:          r.Limit,
	}

	if q.Days == 0 {
		q.Days = defaultDays
	}
	if q.Limit == 0 {
		q.Limit = defaultLimit
	}

	return q
}

// NormalizePrefs folds, trims and de-duplicates preference tags.
// The result is never nil.
func NormalizePrefs(prefs []string) []string {
	fold := cases.Fold()
	out := make([]string, 0, len(prefs))
	seen := make(map[string]struct{}, len(prefs))

	for _, p := range prefs {
		p = fold.String(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	return out
}

// PlanQuery is the normalized, validated input of the planner.
type PlanQuery struct {
	Origin         string
	MaxFlightHours float64
	Prefs          []string
	Days           int
	Limit          int
}

// PlanResponse is the body returned by POST /itinerary/plan.
type PlanResponse struct {
	Origin         string   `json:"origin"`
	MaxFlightHours float64  `json:"max_flight_hours"`
	Prefs          []string `json:"prefs"`
	Days           int      `json:"days"`

	// Considered is the size of the index, Reachable how many destinations
	// were within max_flight_hours of the origin.
	Considered int `json:"considered"`
	Reachable  int `json:"reachable"`

	Options []PlanOption `json:"options"`
}

// PlanOption is one ranked destination with its itinerary.
type PlanOption struct {
	Destination  DestinationSummary `json:"destination"`
	FlightHours  float64            `json:"flight_hours"`
	Score        float64            `json:"score"`
	MatchedPrefs []string           `json:"matched_prefs"`
	Itinerary    []ItineraryDay     `json:"itinerary"`
}

// DestinationSummary is the public view of an index entry.
type DestinationSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
	Airport string `json:"airport,omitempty"`
}

// ItineraryDay lists the activities planned for one day, starting at day 1.
type ItineraryDay struct {
	Day        int      `json:"day"`
	Activities []string `json:"activities"`
}
