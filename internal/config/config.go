// Package config defines the service configuration, resolved once at startup
// from the environment (with an optional dotenv file for local runs) and
// immutable thereafter.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration for the WindWatts service.
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	Origin   string `envconfig:"ORIGIN" default:"*"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DBConnString string `envconfig:"DB_CONN_STRING" required:"true"`
	DBName       string `envconfig:"DB_NAME" required:"true"`

	// PowerCurveDir optionally points at a directory of additional power
	// curve CSV files loaded next to the built-in reference curves.
	PowerCurveDir string `envconfig:"POWER_CURVE_DIR"`

	// BatchWorkers bounds the worker pool for batch timeseries exports.
	BatchWorkers int `envconfig:"BATCH_WORKERS" default:"4"`
}

// Load resolves the configuration. A .env file, when present, fills in
// values not already set in the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.BatchWorkers < 1 {
		cfg.BatchWorkers = 1
	}

	return &cfg, nil
}
