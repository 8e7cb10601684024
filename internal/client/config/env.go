package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig maps environment variables onto config fields. Pointer fields
// distinguish "unset" from a zero value.
type envConfig struct {
	APIBaseURL     string        `env:"MYQODE_API_BASE_URL"`
	RequestTimeout time.Duration `env:"MYQODE_REQUEST_TIMEOUT"`
	DatabasePath   string        `env:"MYQODE_DB_PATH"`
	DevMode        *bool         `env:"MYQODE_DEV_MODE"`
}

// parseEnv overlays cfg with values from the environment. Unset variables
// leave the current value untouched.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.RequestTimeout > 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.DatabasePath != "" {
		cfg.DatabasePath = ec.DatabasePath
	}
	if ec.DevMode != nil {
		cfg.DevMode = *ec.DevMode
	}
}
