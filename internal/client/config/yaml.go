package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/vacstats/internal/timex"
)

// fileConfig is a DTO used exclusively for YAML unmarshalling. Durations are
// timex.Duration so the file can say "5m" instead of nanoseconds. Pointer
// fields distinguish "absent" from a zero value so the file only overrides
// what it mentions.
type fileConfig struct {
	APIBaseURL      *string         `yaml:"api_url"`
	RequestTimeout  *timex.Duration `yaml:"request_timeout"`
	RefreshInterval *timex.Duration `yaml:"refresh_interval"`
	SessionDBPath   *string         `yaml:"session_db"`
	Debug           *bool           `yaml:"debug"`
}

// parseFile overlays cfg with values from a YAML file. An empty path means
// no file is loaded; a missing or unreadable file is an error since the
// path was given explicitly.
func parseFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if fc.APIBaseURL != nil {
		cfg.APIBaseURL = *fc.APIBaseURL
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.RefreshInterval != nil {
		cfg.RefreshInterval = fc.RefreshInterval.Duration
	}
	if fc.SessionDBPath != nil {
		cfg.SessionDBPath = *fc.SessionDBPath
	}
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}
	return nil
}
