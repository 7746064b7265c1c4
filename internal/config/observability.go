package config

import (
	"fmt"
	"time"
)

// ServiceName identifies this service in logs.
const ServiceName = "tripweaver"

// ObservabilityConfig groups all configuration related to runtime visibility.
//
// It lives under Config.Observability. ServiceName and Environment are
// always overwritten by LoadConfig so every log line is labelled the same way.
type ObservabilityConfig struct {
	ServiceName string        `koanf:"service_name" validate:"required"`
	Environment string        `koanf:"environment" validate:"required"`
	Logging     LoggingConfig `koanf:"logging" validate:"required"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level"`

	// Format selects the output format, "json" or "console".
	Format string `koanf:"format" validate:"required"`

	// SlowRequestThreshold marks requests slower than this as slow in the
	// request log. Parsed from duration strings like "250ms" or "1s".
	// Zero disables the check.
	SlowRequestThreshold time.Duration `koanf:"slow_request_threshold"`
}

// DefaultObservabilityConfig provides the defaults used by Default().
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: ServiceName,
		Environment: "development",
		Logging: LoggingConfig{
			Level:                "info",
			Format:               "json",
			SlowRequestThreshold: 500 * time.Millisecond,
		},
	}
}

// Validate applies rules that go beyond struct tags.
//
// Returns the first violation found, or nil.
func (c *ObservabilityConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	// An empty level is resolved by GetLogLevel.
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Logging.Level)
	}

	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("invalid logging format: %s (must be one of: json, console)", c.Logging.Format)
	}

	if c.Logging.SlowRequestThreshold < 0 {
		return fmt.Errorf("logging slow_request_threshold must be non-negative")
	}

	return nil
}

// GetLogLevel returns the effective log level to use at runtime.
//
// An unset level defaults by environment: "info" in production, "debug"
// everywhere else.
func (c *ObservabilityConfig) GetLogLevel() string {
	if c.Logging.Level != "" {
		return c.Logging.Level
	}

	if c.IsProduction() {
		return "info"
	}
	return "debug"
}

// IsProduction reports whether the application is running in production mode.
func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}
