// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types, applies defaults and
// validates the result so the rest of the application can rely on it.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate values so the app fails fast on bad config.
//   - Provide sane defaults for every optional block.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the TRIPWEAVER_ prefix. Keys are lowercased, the
	prefix is removed and a double underscore marks one level of nesting:

		TRIPWEAVER_SERVER__PORT                 -> server.port
		TRIPWEAVER_SERVER__RATE_LIMIT__ENABLED  -> server.rate_limit.enabled
		TRIPWEAVER_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level

	TRIPWEAVER_SERVER__CORS_ALLOWED_ORIGINS is a comma-separated list.

	INDEX_PATH is honoured on its own (no prefix) and wins over
	TRIPWEAVER_INDEX__PATH.
*/

const (
	// EnvPrefix is the prefix every application env var carries.
	EnvPrefix = "TRIPWEAVER_"

	// IndexPathEnv overrides the index file location.
	IndexPathEnv = "INDEX_PATH"

	// DefaultIndexPath is where the destination index lives inside the container image.
	DefaultIndexPath = "/app/data/index.json"

	// DefaultBodyLimit is the largest request body accepted (1 MiB).
	DefaultBodyLimit int64 = 1024 * 1024
)

// DefaultCORSAllowedOrigins are the only browser origins allowed to call the API.
var DefaultCORSAllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Index         IndexConfig          `koanf:"index" validate:"required"`
	Planner       PlannerConfig        `koanf:"planner" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability" validate:"required"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string          `koanf:"port" validate:"required"`
	ReadTimeout        int             `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout       int             `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout        int             `koanf:"idle_timeout" validate:"min=1"`
	ShutdownTimeout    int             `koanf:"shutdown_timeout" validate:"min=1"`
	CORSAllowedOrigins []string        `koanf:"cors_allowed_origins" validate:"required,dive,url"`
	BodyLimit          int64           `koanf:"body_limit" validate:"min=1"`
	RateLimit          RateLimitConfig `koanf:"rate_limit"`
}

// RateLimitConfig controls the per-client token bucket in front of the API.
// It is off unless enabled explicitly.
type RateLimitConfig struct {
	Enabled bool `koanf:"enabled"`

	// RPS is the sustained number of requests per second per client IP.
	RPS float64 `koanf:"rps" validate:"gte=0"`

	// Burst is the bucket size. Zero means "same as RPS, rounded up".
	Burst int `koanf:"burst" validate:"gte=0"`

	// ExpiresIn is how long an idle client's bucket is kept around.
	ExpiresIn time.Duration `koanf:"expires_in" validate:"gte=0"`
}

// IndexConfig points at the destination index loaded at startup.
type IndexConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// PlannerConfig holds the defaults applied to plan requests that leave
// optional fields unset.
type PlannerConfig struct {
	DefaultDays  int `koanf:"default_days" validate:"min=1,max=14"`
	DefaultLimit int `koanf:"default_limit" validate:"min=1,max=20"`
}

// Default returns a Config populated with the defaults for every key.
//
// LoadConfig unmarshals the environment on top of this value, so anything
// not set in the environment keeps the value below.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:            "8000",
			ReadTimeout:     30,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
			BodyLimit:       DefaultBodyLimit,
			RateLimit: RateLimitConfig{
				Enabled:   false,
				RPS:       20,
				Burst:     40,
				ExpiresIn: 3 * time.Minute,
			},
		},
		Index: IndexConfig{Path: DefaultIndexPath},
		Planner: PlannerConfig{
			DefaultDays:  3,
			DefaultLimit: 5,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// listKeys are config keys whose env value is a comma-separated list.
var listKeys = map[string]struct{}{
	"server.cors_allowed_origins": {},
}

// envKey maps TRIPWEAVER_SERVER__PORT to server.port.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// envValue maps an env var to its config key and value. List keys are
// split on commas, blank items dropped.
func envValue(name, value string) (string, interface{}) {
	key := envKey(name)
	if _, ok := listKeys[key]; !ok {
		return key, value
	}

	items := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

// LoadConfig loads configuration from environment variables on top of the
// defaults, validates it and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix TRIPWEAVER_
//   - Loads INDEX_PATH into index.path
//   - Unmarshals into a Config pre-filled by Default()
//   - Re-applies defaults for values explicitly set to empty
//   - Forces the observability environment to primary.env
//   - Validates struct tags, then observability rules
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// The env provider skips variables whose mapped key is empty, so only
	// INDEX_PATH itself survives this callback.
	err := k.Load(env.Provider(IndexPathEnv, ".", func(s string) string {
		if s == IndexPathEnv {
			return "index.path"
		}
		return ""
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w", IndexPathEnv, err)
	}

	mainConfig := Default()

	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	// An empty INDEX_PATH means "use the default", not "no index".
	if strings.TrimSpace(mainConfig.Index.Path) == "" {
		mainConfig.Index.Path = DefaultIndexPath
	}

	// Slices are not merged with the defaults, so fill them in afterwards.
	if len(mainConfig.Server.CORSAllowedOrigins) == 0 {
		mainConfig.Server.CORSAllowedOrigins = append([]string(nil), DefaultCORSAllowedOrigins...)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
