package logger

import (
	"bytes"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/tripweaver/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"loud", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "test"

	var buf bytes.Buffer
	log := NewWithWriter(cfg, &buf)

	log.Debug().Msg("hidden")
	log.Info().Str("origin", "NYC").Msg("planning")

	var entry map[string]any
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "planning", entry["message"])
	assert.Equal(t, "NYC", entry["origin"])
	assert.Equal(t, config.ServiceName, entry["service"])
	assert.Equal(t, "test", entry["environment"])
	assert.Contains(t, entry, "time")
}

func TestNewWithWriter_Console(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Format = "console"

	var buf bytes.Buffer
	log := NewWithWriter(cfg, &buf)
	log.Warn().Msg("index missing")

	assert.Contains(t, buf.String(), "index missing")
	assert.NotContains(t, buf.String(), `"message"`)
}
