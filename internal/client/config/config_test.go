package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args []string, fn func()) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{orig[0]}, args...)
	defer func() { os.Args = orig }()
	fn()
}

func TestLoadConfig_Defaults(t *testing.T) {
	withArgs(t, nil, func() {
		cfg := LoadConfig()
		assert.Equal(t, "http://127.0.0.1:8080", cfg.APIBaseURL)
		assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "portal.db", cfg.DatabasePath)
		assert.False(t, cfg.DevMode)
	})
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"api_base_url": "https://portal.example.com",
		"request_timeout": 30,
		"dev_mode": true
	}`), 0o600))

	withArgs(t, []string{"-c", path}, func() {
		cfg := LoadConfig()
		assert.Equal(t, "https://portal.example.com", cfg.APIBaseURL)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
		assert.True(t, cfg.DevMode)
		// untouched by the file
		assert.Equal(t, "portal.db", cfg.DatabasePath)
	})
}

func TestLoadConfig_EnvOverlay(t *testing.T) {
	t.Setenv("MYQODE_API_BASE_URL", "https://env.example.com")
	t.Setenv("MYQODE_REQUEST_TIMEOUT", "45s")
	t.Setenv("MYQODE_DEV_MODE", "true")

	withArgs(t, nil, func() {
		cfg := LoadConfig()
		assert.Equal(t, "https://env.example.com", cfg.APIBaseURL)
		assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
		assert.True(t, cfg.DevMode)
	})
}

func TestLoadConfig_FlagsWinOverEnv(t *testing.T) {
	t.Setenv("MYQODE_API_BASE_URL", "https://env.example.com")

	withArgs(t, []string{"-a", "https://flag.example.com", "-t", "5"}, func() {
		cfg := LoadConfig()
		assert.Equal(t, "https://flag.example.com", cfg.APIBaseURL)
		assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	})
}

func TestLoadConfig_DevFlag(t *testing.T) {
	withArgs(t, []string{"-dev"}, func() {
		cfg := LoadConfig()
		assert.True(t, cfg.DevMode)
	})
}
