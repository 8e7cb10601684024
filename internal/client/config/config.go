// Package config loads runtime settings for the portal CLI from layered
// sources: built-in defaults, an optional JSON file, environment variables,
// and command-line flags. Later sources take precedence.
package config

import "time"

// Config holds runtime settings for the portal CLI.
//
// DevMode gates the bypass login branch and relaxes the password policy.
// It is resolved once here at startup and never re-evaluated mid-flow.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DatabasePath   string
	DevMode        bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "portal.db"
	c.DevMode = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment, and command-line flags, in that
// order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
