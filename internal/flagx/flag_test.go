package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-a", "https://api.example.com", "-x", "junk"},
			allowed: []string{"-a"},
			want:    []string{"-a", "https://api.example.com"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=conf.json", "-a=addr"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "addr"},
			allowed: []string{"-b"},
			want:    []string{},
		},
		{
			name:    "flag without value",
			args:    []string{"-dev", "-a", "addr"},
			allowed: []string{"-dev"},
			want:    []string{"-dev"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func withArgs(t *testing.T, args []string, fn func()) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{orig[0]}, args...)
	defer func() { os.Args = orig }()
	fn()
}

func TestJsonConfigFlags(t *testing.T) {
	t.Run("short form", func(t *testing.T) {
		withArgs(t, []string{"-c", "/path/short.json"}, func() {
			assert.Equal(t, "/path/short.json", JsonConfigFlags())
		})
	})

	t.Run("long form", func(t *testing.T) {
		withArgs(t, []string{"-config", "/path/long.json"}, func() {
			assert.Equal(t, "/path/long.json", JsonConfigFlags())
		})
	})

	t.Run("absent", func(t *testing.T) {
		withArgs(t, []string{"-a", "addr"}, func() {
			assert.Empty(t, JsonConfigFlags())
		})
	})
}
