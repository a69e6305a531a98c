package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "data/raw", cfg.DataDir)
	assert.Equal(t, "data/processed/aggregated.json", cfg.SnapshotPath)
	assert.True(t, cfg.UseFallbackData)
	assert.True(t, cfg.WatchSources)
	assert.Equal(t, 500*time.Millisecond, cfg.WatchDebounce)
	assert.True(t, cfg.PredictionEnabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("USE_FALLBACK_DATA", "false")
	t.Setenv("WATCH_DEBOUNCE", "2s")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.False(t, cfg.UseFallbackData)
	assert.Equal(t, 2*time.Second, cfg.WatchDebounce)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing port", func(c *Config) { c.Port = "" }, "PORT"},
		{"no sources", func(c *Config) { c.DataDir = ""; c.SourcesManifest = "" }, "DATA_DIR"},
		{"negative debounce", func(c *Config) { c.WatchDebounce = -time.Second }, "WATCH_DEBOUNCE"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Port: "8090", DataDir: "data/raw", LogFormat: "text"}
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
