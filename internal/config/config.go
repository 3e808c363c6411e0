package config

import (
	"os"
	"strconv"

	"statreport/internal/errors"
)

// Config is the complete application configuration. Analysis thresholds are
// explicit parameters with stated defaults, not hidden constants.
type Config struct {
	Analysis AnalysisConfig
	Output   OutputConfig
	Database DatabaseConfig
	Server   ServerConfig
}

// AnalysisConfig holds statistical thresholds.
type AnalysisConfig struct {
	Alpha           float64 // significance threshold for hypothesis tests
	ConfidenceLevel float64 // confidence level for mean-difference intervals
}

// OutputConfig holds report and plot output settings.
type OutputConfig struct {
	PlotsDir string
}

// DatabaseConfig holds optional run-history persistence settings. An empty
// URL disables persistence.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port    string
	GinMode string
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Analysis: AnalysisConfig{
			Alpha:           getEnvFloatOrDefault("ALPHA", 0.05),
			ConfidenceLevel: getEnvFloatOrDefault("CONFIDENCE_LEVEL", 0.95),
		},
		Output: OutputConfig{
			PlotsDir: getEnvOrDefault("PLOTS_DIR", "plots"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// Validate checks threshold ranges.
func (c *Config) Validate() error {
	if c.Analysis.Alpha <= 0 || c.Analysis.Alpha >= 1 {
		return errors.ConfigInvalid("ALPHA must be in (0, 1)")
	}
	if c.Analysis.ConfidenceLevel <= 0 || c.Analysis.ConfidenceLevel >= 1 {
		return errors.ConfigInvalid("CONFIDENCE_LEVEL must be in (0, 1)")
	}
	if c.Output.PlotsDir == "" {
		return errors.ConfigInvalid("PLOTS_DIR must not be empty")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
