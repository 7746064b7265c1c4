// Package logger configures the application's structured logging.
//
// It uses *ZeroLog*. The service logger is built once from the
// observability config; request-scoped loggers are derived from it by the
// middleware package.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/deppfellow/tripweaver/internal/config"
)

func init() {
	// Lets logger.Error().Stack() print stack traces of pkg/errors values.
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

// New builds the service logger writing to stderr.
func New(cfg *config.ObservabilityConfig) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter builds the service logger writing to w.
//
// Every entry carries a timestamp plus the service and environment labels.
// Console format is meant for local development only; anything that ships
// logs to an aggregator should stay on JSON.
func NewWithWriter(cfg *config.ObservabilityConfig, w io.Writer) zerolog.Logger {
	level := ParseLevel(cfg.GetLogLevel())

	var out io.Writer = w
	if cfg.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Logger()
}

// ParseLevel converts a config level string into a zerolog level.
// Unknown values fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
