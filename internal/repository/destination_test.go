package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/tripweaver/internal/index"
)

func testIndex() *index.Index {
	idx, _ := index.New("memory", []index.Destination{
		{ID: "lisbon", FlightHours: map[string]float64{"NYC": 7, "LON": 2.5}},
		{ID: "san-juan", FlightHours: map[string]float64{"NYC": 4}},
		{ID: "tokyo", FlightHours: map[string]float64{"NYC": 14}},
		{ID: "nowhere"},
	})
	return idx
}

func TestDestinationRepository_ReachableFrom(t *testing.T) {
	repo := NewDestinationRepository(testIndex())
	assert.Equal(t, 4, repo.Count())

	got, err := repo.ReachableFrom(context.Background(), "NYC", 7)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "lisbon", got[0].Destination.ID)
	assert.Equal(t, 7.0, got[0].FlightHours)
	assert.Equal(t, "san-juan", got[1].Destination.ID)

	got, err = repo.ReachableFrom(context.Background(), "SFO", 24)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDestinationRepository_Cancelled(t *testing.T) {
	repo := NewDestinationRepository(testIndex())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ReachableFrom(ctx, "NYC", 24)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDestinationRepository_NilIndex(t *testing.T) {
	repo := NewDestinationRepository(nil)

	got, err := repo.ReachableFrom(context.Background(), "NYC", 24)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, repo.Count())
}
