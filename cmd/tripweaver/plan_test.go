package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/tripweaver/internal/lib/jsonx"
	"github.com/deppfellow/tripweaver/internal/model"
)

const cliIndex = `{"destinations":[
  {"id":"san-juan","name":"San Juan","tags":["beach"],"flight_hours":{"NYC":4},
   "activities":[{"name":"Condado beach","tags":["beach"]}]},
  {"id":"tokyo","tags":["food"],"flight_hours":{"NYC":14}}
]}`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	rootCmd := newRootCmd()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestPlanCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, []byte(cliIndex), 0o600))

	out, err := runCLI(t, "plan", "--index", path, "--origin", "nyc", "--max-hours", "6", "--pref", "Beach", "--days", "1")
	require.NoError(t, err)

	var resp model.PlanResponse
	require.NoError(t, jsonx.Unmarshal([]byte(out), &resp))

	assert.Equal(t, "NYC", resp.Origin)
	assert.Equal(t, 2, resp.Considered)
	require.Len(t, resp.Options, 1)
	assert.Equal(t, "san-juan", resp.Options[0].Destination.ID)
	assert.Equal(t, []model.ItineraryDay{{Day: 1, Activities: []string{"Condado beach"}}}, resp.Options[0].Itinerary)

	_, err = runCLI(t, "plan", "--index", filepath.Join(t.TempDir(), "missing.json"), "--origin", "NYC")
	assert.Error(t, err)

	_, err = runCLI(t, "plan", "--index", path, "--origin", "NYC", "--max-hours", "30")
	assert.ErrorContains(t, err, "Max flight hours cannot exceed 24")
}

func TestPlanCommand_FlagsDoNotLeak(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, []byte(cliIndex), 0o600))

	_, err := runCLI(t, "plan", "--index", path, "--origin", "NYC", "--max-hours", "6", "--pref", "beach", "--days", "2")
	require.NoError(t, err)

	out, err := runCLI(t, "plan", "--index", path, "--origin", "NYC", "--max-hours", "6", "--pref", "food")
	require.NoError(t, err)

	var resp model.PlanResponse
	require.NoError(t, jsonx.Unmarshal([]byte(out), &resp))
	assert.Equal(t, []string{"food"}, resp.Prefs)
	assert.Equal(t, 3, resp.Days)
}
