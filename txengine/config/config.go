// Package config loads process configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SathemBite/tx-engine-example/txengine/log"
	"github.com/caarlos0/env/v11"
)

// DefaultInputPath is read when neither an argument nor TXENGINE_INPUT names a file.
const DefaultInputPath = "data/transactions.csv"

// ErrMissingEndpoint indicates telemetry is enabled without a collector endpoint.
var ErrMissingEndpoint = errors.New("OTEL_EXPORTER_OTLP_ENDPOINT is required when ENABLE_TELEMETRY is true")

// Config is the process configuration.
type Config struct {
	EnvName           string `env:"ENV_NAME" envDefault:"development"`
	LogLevel          string `env:"LOG_LEVEL"`
	LibraryName       string `env:"OTEL_LIBRARY_NAME" envDefault:"tx-engine"`
	ServiceName       string `env:"OTEL_RESOURCE_SERVICE_NAME" envDefault:"txengine"`
	Version           string `env:"VERSION" envDefault:"NO-VERSION"`
	EnableTelemetry   bool   `env:"ENABLE_TELEMETRY" envDefault:"false"`
	CollectorEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	InputPath         string `env:"TXENGINE_INPUT" envDefault:"data/transactions.csv"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c Config) Validate() error {
	if strings.TrimSpace(c.LogLevel) != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}

	if c.EnableTelemetry && strings.TrimSpace(c.CollectorEndpoint) == "" {
		return ErrMissingEndpoint
	}

	return nil
}

// IsProduction reports whether ENV_NAME selects production behaviour.
func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.EnvName), "production")
}

// Input returns the input file: the first argument when given, otherwise
// InputPath, otherwise DefaultInputPath.
func (c Config) Input(args []string) string {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0]
	}

	if strings.TrimSpace(c.InputPath) != "" {
		return c.InputPath
	}

	return DefaultInputPath
}
