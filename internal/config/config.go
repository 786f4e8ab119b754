// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// DefaultOutputDir is where artifacts land when --output is not given.
const DefaultOutputDir = "./models/data-classifier/latest"

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs are paths to training.jsonl files
	Inputs []string `json:"inputs,omitempty"`
	// Output is the artifact bundle directory
	Output string `json:"output,omitempty"`

	// Training knobs
	VocabSize    int     `json:"vocab_size,omitempty" validate:"omitempty,gte=1"`       // TF-IDF terms kept per token stream
	TestFraction float64 `json:"test_fraction,omitempty" validate:"omitempty,gt=0,lt=1"` // Held-out split fraction
	Folds        int     `json:"folds,omitempty" validate:"omitempty,gte=2"`             // Cross-validation fold count
	Seed         int64   `json:"seed,omitempty"`                                         // Shuffle/split seed

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`                                        // Print formatted training summaries
	LogLevel    string `json:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
	LogFormat   string `json:"log_format,omitempty" validate:"omitempty,oneof=console json"`
	DatabaseURL string `json:"database_url,omitempty"` // Optional PostgreSQL run registry
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: required fields are checked after merging with CLI flags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("config error: field %q fails %q constraint", f.Field(), f.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if len(result.Inputs) == 0 {
		result.Inputs = defaults.Inputs
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.VocabSize == 0 {
		result.VocabSize = defaults.VocabSize
	}
	if result.TestFraction == 0 {
		result.TestFraction = defaults.TestFraction
	}
	if result.Folds == 0 {
		result.Folds = defaults.Folds
	}
	if result.Seed == 0 {
		result.Seed = defaults.Seed
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	return result
}
