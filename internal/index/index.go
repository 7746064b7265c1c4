// Package index loads the destination index the planner works on.
//
// The index is read once at process startup from a JSON (or YAML) file and
// never changes afterwards. A missing or broken file is not fatal: the
// service starts with an empty index and reports itself as degraded.
package index

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/tripweaver/internal/lib/jsonx"
)

// Activity is something to do at a destination.
type Activity struct {
	Name string   `json:"name" yaml:"name"`
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Destination is a single entry of the index.
//
// FlightHours maps an origin code (upper-cased at load time) to the direct
// flight duration in hours from that origin.
type Destination struct {
	ID          string             `json:"id" yaml:"id"`
	Name        string             `json:"name" yaml:"name"`
	Country     string             `json:"country,omitempty" yaml:"country,omitempty"`
	Airport     string             `json:"airport,omitempty" yaml:"airport,omitempty"`
	Tags        []string           `json:"tags,omitempty" yaml:"tags,omitempty"`
	FlightHours map[string]float64 `json:"flight_hours,omitempty" yaml:"flight_hours,omitempty"`
	Activities  []Activity         `json:"activities,omitempty" yaml:"activities,omitempty"`
}

// document is the on-disk layout of the index file.
type document struct {
	Destinations []Destination `json:"destinations" yaml:"destinations"`
}

// Index is the read-only, in-memory snapshot of destination data.
//
// Build it with Load, LoadOrEmpty, New or Empty. Nothing mutates an Index
// after construction, so it is safe to share across request goroutines.
type Index struct {
	destinations []Destination
	source       string
	loadErr      error
}

// New builds an Index from already decoded destinations.
//
// Entries are normalized the same way as file contents. Skipped entries are
// reported through the returned warnings.
func New(source string, destinations []Destination) (*Index, []string) {
	normalized, warnings := normalize(destinations)
	return &Index{destinations: normalized, source: source}, warnings
}

// Empty returns an index with no destinations.
//
// cause is the load failure that led to the empty index, or nil.
func Empty(source string, cause error) *Index {
	return &Index{destinations: []Destination{}, source: source, loadErr: cause}
}

// Destinations returns the destinations of the index.
//
// The returned slice is a copy; the destinations themselves are shared and
// must be treated as read-only.
func (i *Index) Destinations() []Destination {
	out := make([]Destination, len(i.destinations))
	copy(out, i.destinations)
	return out
}

// Len is the number of destinations.
func (i *Index) Len() int {
	return len(i.destinations)
}

// Source is the file the index was loaded from.
func (i *Index) Source() string {
	return i.source
}

// Degraded reports whether loading failed and the index fell back to empty.
func (i *Index) Degraded() bool {
	return i.loadErr != nil
}

// LoadErr is the failure that made the index fall back to empty, if any.
func (i *Index) LoadErr() error {
	return i.loadErr
}

// Load reads and decodes the index file at path.
//
// Files ending in .yaml or .yml are decoded as YAML, anything else as JSON.
// Invalid entries (no id, duplicate id) are skipped and logged as warnings.
func Load(path string, logger *zerolog.Logger) (*Index, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading index %s: %w", path, err)
	}

	var doc document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &doc)
	default:
		err = jsonx.Unmarshal(raw, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding index %s: %w", path, err)
	}

	idx, warnings := New(path, doc.Destinations)
	for _, w := range warnings {
		logger.Warn().Str("index_path", path).Msg(w)
	}

	return idx, nil
}

// LoadOrEmpty loads the index at path and never fails.
//
// On success it logs the number of destinations. On any failure (missing
// file, malformed content, I/O error) it logs the error and returns an empty
// index that remembers the cause.
func LoadOrEmpty(path string, logger *zerolog.Logger) *Index {
	idx, err := Load(path, logger)
	if err != nil {
		logger.Error().
			Err(err).
			Str("index_path", path).
			Msg("failed to load index, continuing with an empty destination set")
		return Empty(path, err)
	}

	logger.Info().
		Str("index_path", path).
		Int("destinations", idx.Len()).
		Msg("successfully loaded index")

	return idx
}

func normalize(in []Destination) ([]Destination, []string) {
	out := make([]Destination, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	var warnings []string

	for n, d := range in {
		d.ID = strings.TrimSpace(d.ID)
		if d.ID == "" {
			warnings = append(warnings, fmt.Sprintf("skipping destination #%d: missing id", n))
			continue
		}

		if _, ok := seen[d.ID]; ok {
			warnings = append(warnings, fmt.Sprintf("skipping destination #%d: duplicate id %q", n, d.ID))
			continue
		}
		seen[d.ID] = struct{}{}

		if strings.TrimSpace(d.Name) == "" {
			d.Name = humanize(d.ID)
		}

		hours := make(map[string]float64, len(d.FlightHours))
		for origin, h := range d.FlightHours {
			if h < 0 || math.IsNaN(h) || math.IsInf(h, 0) {
				warnings = append(warnings, fmt.Sprintf("destination %q: ignoring invalid flight hours %v from %q", d.ID, h, origin))
				continue
			}
			hours[strings.ToUpper(strings.TrimSpace(origin))] = h
		}
		d.FlightHours = hours

		out = append(out, d)
	}

	return out, warnings
}

// humanize turns an id like "lisbon-old-town" into "Lisbon Old Town".
func humanize(id string) string {
	r := strings.NewReplacer("-", " ", "_", " ")
	return cases.Title(language.English).String(r.Replace(id))
}
