package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	Port            string        `env:"PORT" default:"8090"`
	DataDir         string        `env:"DATA_DIR" default:"data/raw"`
	SourcesManifest string        `env:"SOURCES_MANIFEST"`
	SnapshotPath    string        `env:"SNAPSHOT_PATH" default:"data/processed/aggregated.json"`
	DatabasePath    string        `env:"DATABASE_PATH" default:"sentiment.db"`
	VectorizerPath  string        `env:"VECTORIZER_PATH" default:"models/vectorizer.json"`
	ClassifierPath  string        `env:"CLASSIFIER_PATH" default:"models/classifier.json"`
	UseFallbackData bool          `env:"USE_FALLBACK_DATA" default:"true"`
	WatchSources    bool          `env:"WATCH_SOURCES" default:"true"`
	WatchDebounce   time.Duration `env:"WATCH_DEBOUNCE" default:"500ms"`
	LogLevel        string        `env:"LOG_LEVEL" default:"info"`
	LogFormat       string        `env:"LOG_FORMAT" default:"text"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.DataDir == "" && c.SourcesManifest == "" {
		return errors.New("DATA_DIR or SOURCES_MANIFEST is required")
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("WATCH_DEBOUNCE must not be negative, got %s", c.WatchDebounce)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// PredictionEnabled reports whether both model artifacts are configured.
func (c *Config) PredictionEnabled() bool {
	return c.VectorizerPath != "" && c.ClassifierPath != ""
}
