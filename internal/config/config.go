// Package config defines the CLI configuration and its loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Output formats understood by the CLI.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultModelPath is where a trained model artifact is expected when no
// path is configured.
var DefaultModelPath = filepath.Join("models", "elo_model.yaml") //nolint:gochecknoglobals // read-only default

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// ModelPath points at the serialized model artifact.
	ModelPath string `koanf:"model_path"`

	// OutputFormat selects text or json output.
	OutputFormat string `koanf:"output_format"`

	// FuzzyMatch enables approximate fighter name matching.
	FuzzyMatch bool `koanf:"fuzzy_match"`

	// MetricsTextfile, when set, receives a Prometheus textfile export after each run.
	MetricsTextfile string `koanf:"metrics_textfile"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "warn",
		ModelPath:    DefaultModelPath,
		OutputFormat: FormatText,
		FuzzyMatch:   true,
	}
}

// Validate checks that the configuration can drive a prediction run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ModelPath) == "" {
		return fmt.Errorf("%w: model_path must not be empty", ErrInvalidConfig)
	}
	switch c.OutputFormat {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: unknown output_format %q", ErrInvalidConfig, c.OutputFormat)
	}
	return nil
}
