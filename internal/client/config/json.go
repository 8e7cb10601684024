package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/QodeSites/myQodeApp-sub000/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The timeout
// is given in seconds. Absent fields leave the current value untouched.
type JsonConfig struct {
	APIBaseURL     string `json:"api_base_url"`
	RequestTimeout int    `json:"request_timeout"`
	DatabasePath   string `json:"database_path"`
	DevMode        *bool  `json:"dev_mode"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c or -config flags. No flag, no JSON. Read or unmarshal errors panic;
// a broken config file should stop the client before it talks to anything.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout) * time.Second
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.DevMode != nil {
		cfg.DevMode = *jc.DevMode
	}
}
