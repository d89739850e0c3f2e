package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"winehypo/internal/errors"
)

// Fixed output file names
const (
	AssumptionsPlotFile   = "question2_assumptions.png"
	TestVisualizationFile = "question2_test_visualization.png"
)

// Config represents the complete application configuration
type Config struct {
	Data   DataConfig
	Test   TestConfig
	Output OutputConfig
	Log    LogConfig
}

// DataConfig holds input dataset settings
type DataConfig struct {
	File     string
	Variable string
}

// TestConfig holds the hypothesis test constants
type TestConfig struct {
	HypothesizedMean float64
	Alpha            float64
}

// OutputConfig holds plot destination settings
type OutputConfig struct {
	Dir string
	DPI float64
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// AssumptionsPlotPath is where the histogram and QQ figure is written
func (o OutputConfig) AssumptionsPlotPath() string {
	return filepath.Join(o.Dir, AssumptionsPlotFile)
}

// TestVisualizationPath is where the t distribution figure is written
func (o OutputConfig) TestVisualizationPath() string {
	return filepath.Join(o.Dir, TestVisualizationFile)
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Data: DataConfig{
			File:     "winequality-red.csv",
			Variable: "pH",
		},
		Test: TestConfig{
			HypothesizedMean: 3.5,
			Alpha:            0.05,
		},
		Output: OutputConfig{
			Dir: ".",
			DPI: 300,
		},
		Log: LogConfig{
			Level: "INFO",
		},
	}
}

// Load reads an optional .env file, applies environment overrides to the
// defaults and validates the result
func Load() (*Config, error) {
	// .env is optional; a missing file is not an error
	_ = godotenv.Load()

	def := Default()
	config := &Config{
		Data: DataConfig{
			File:     getEnvOrDefault("DATA_FILE", def.Data.File),
			Variable: getEnvOrDefault("VARIABLE", def.Data.Variable),
		},
		Test: TestConfig{
			HypothesizedMean: getEnvFloatOrDefault("HYPOTHESIZED_MEAN", def.Test.HypothesizedMean),
			Alpha:            getEnvFloatOrDefault("ALPHA", def.Test.Alpha),
		},
		Output: OutputConfig{
			Dir: getEnvOrDefault("OUTPUT_DIR", def.Output.Dir),
			DPI: getEnvFloatOrDefault("PLOT_DPI", def.Output.DPI),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", def.Log.Level),
		},
	}

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Validate checks the invariants the analysis relies on
func Validate(config *Config) error {
	if config.Data.File == "" {
		return errors.ConfigInvalid("DATA_FILE is required")
	}
	if config.Data.Variable == "" {
		return errors.ConfigInvalid("VARIABLE is required")
	}
	if !(config.Test.Alpha > 0 && config.Test.Alpha < 1) {
		return errors.ConfigInvalid("ALPHA must be in (0, 1)")
	}
	if config.Output.DPI <= 0 {
		return errors.ConfigInvalid("PLOT_DPI must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
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
