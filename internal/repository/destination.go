package repository

import (
	"context"

	"github.com/deppfellow/tripweaver/internal/index"
)

// Reachable is a destination together with its flight time from the
// queried origin.
type Reachable struct {
	Destination index.Destination
	FlightHours float64
}

// DestinationRepository answers read-only queries over the index.
type DestinationRepository struct {
	idx *index.Index
}

// NewDestinationRepository wraps idx. A nil index behaves like an empty one.
func NewDestinationRepository(idx *index.Index) *DestinationRepository {
	if idx == nil {
		idx = index.Empty("", nil)
	}
	return &DestinationRepository{idx: idx}
}

// Count is the number of destinations in the index.
func (r *DestinationRepository) Count() int {
	return r.idx.Len()
}

// ReachableFrom returns, in index order, every destination with a known
// flight from origin lasting at most maxHours.
//
// origin must already be normalized (upper-case). The walk stops early
// with ctx.Err() when ctx is cancelled.
func (r *DestinationRepository) ReachableFrom(ctx context.Context, origin string, maxHours float64) ([]Reachable, error) {
	var out []Reachable

	for _, d := range r.idx.Destinations() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		hours, ok := d.FlightHours[origin]
		if !ok || hours > maxHours {
			continue
		}

		out = append(out, Reachable{Destination: d, FlightHours: hours})
	}

	return out, nil
}
