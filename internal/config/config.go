package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Paths      PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Logging    LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Extraction RunConfig     `yaml:"extraction" envconfig:"EXTRACTION"`
}

// PathsConfig contains file system locations for the at-rest corpus and the
// produced outputs.
type PathsConfig struct {
	DataDir           string `yaml:"data_dir" envconfig:"DATA_DIR"`
	ClassValuesFile   string `yaml:"class_values_file" envconfig:"CLASS_VALUES_FILE"`
	PreprocessingFile string `yaml:"preprocessing_file" envconfig:"PREPROCESSING_FILE"`
	ExtractionFile    string `yaml:"extraction_file" envconfig:"EXTRACTION_FILE"`
	OutputDir         string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"`
}

// RunConfig contains batch extraction behavior.
type RunConfig struct {
	MaxConcurrency int   `yaml:"max_concurrency" envconfig:"MAX_CONCURRENCY"`
	SampleSeed     int64 `yaml:"sample_seed" envconfig:"SAMPLE_SEED"`
}

// defaultConfig returns the baseline configuration before file and
// environment overrides.
func defaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			DataDir:           "data",
			ClassValuesFile:   "data/class_values.csv",
			PreprocessingFile: "settings/preprocessing.yml",
			ExtractionFile:    "settings/extraction.yml",
			OutputDir:         "output",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Extraction: RunConfig{
			MaxConcurrency: 4,
			SampleSeed:     42,
		},
	}
}

// Load loads configuration from defaults, an optional config file and
// environment variables, in ascending precedence.
func Load(configFile string) (*Config, error) {
	cfg := defaultConfig()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			data, err := os.ReadFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := envconfig.Process("PROCCHAIN", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validate checks the application configuration for consistency.
func (c *Config) validate() error {
	if c.Paths.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.Extraction.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be >= 1, got %d", c.Extraction.MaxConcurrency)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format: %s", c.Logging.Format)
	}
	return nil
}
