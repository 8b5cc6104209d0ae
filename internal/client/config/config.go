// Package config holds runtime settings for the vacstats client.
//
// Settings are resolved as an overlay, later sources winning:
// defaults -> YAML config file -> environment -> command-line flags.
package config

import (
	"os"
	"time"
)

// Config holds the resolved runtime settings.
//
// Fields:
//   - APIBaseURL: base URL of the statistics backend, including the /api prefix.
//   - RequestTimeout: per-request HTTP timeout.
//   - RefreshInterval: how often the dashboard re-fetches the summary.
//   - SessionDBPath: SQLite file holding the persisted session.
//   - Debug: enables request/response tracing.
type Config struct {
	APIBaseURL      string
	RequestTimeout  time.Duration
	RefreshInterval time.Duration
	SessionDBPath   string
	Debug           bool
}

// EnvAPIURL overrides the base URL; read once at startup.
const EnvAPIURL = "VACSTATS_API_URL"

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5001/api"
	c.RequestTimeout = 10 * time.Second
	c.RefreshInterval = 5 * time.Minute
	c.SessionDBPath = "vacstats.db"
	c.Debug = false
}

// Overrides carries explicit values from command-line flags. Zero values
// mean "not set".
type Overrides struct {
	APIBaseURL string
	Debug      bool
}

// Load constructs a Config: defaults, then the YAML file (when path is
// non-empty), then the environment, then flag overrides.
func Load(path string, ov Overrides) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, path); err != nil {
		return nil, err
	}
	parseEnv(cfg)

	if ov.APIBaseURL != "" {
		cfg.APIBaseURL = ov.APIBaseURL
	}
	if ov.Debug {
		cfg.Debug = true
	}
	return cfg, nil
}

func parseEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIBaseURL = v
	}
}
