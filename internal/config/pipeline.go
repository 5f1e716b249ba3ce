package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"procchain/internal/errors"
)

// CutoffPosition selects the anchor end used by equal-length alignment.
// Truncation and padding are symmetric around it: "post" keeps the beginning
// of a long series and pads a short one at the end, "pre" keeps the end and
// pads at the start.
type CutoffPosition string

const (
	// CutoffPre anchors alignment at the end of the series.
	CutoffPre CutoffPosition = "pre"
	// CutoffPost anchors alignment at the beginning of the series.
	CutoffPost CutoffPosition = "post"
)

// Feature extraction method names accepted by the extraction document.
const (
	MethodRaw         = "raw"
	MethodPAA         = "paa"
	MethodStatistical = "statistical"
	MethodCanonical   = "canonical"
)

var validate = validator.New()

// EqualLengths configures the equal-length alignment step.
type EqualLengths struct {
	TargetLength   int            `yaml:"target_length" validate:"gt=0"`
	CutoffPosition CutoffPosition `yaml:"cutoff_position" validate:"omitempty,oneof=pre post"`
	PaddingValue   float64        `yaml:"padding_value"`
}

// NegativeFilter configures the negative-value replacement step.
type NegativeFilter struct {
	Replacement float64 `yaml:"replacement"`
}

// UniformResample configures linear-interpolation resampling onto a uniform
// time grid.
type UniformResample struct {
	TargetDistance float64 `yaml:"target_distance" validate:"gt=0"`
}

// SeriesPreprocessing holds the preprocessing steps enabled for one
// (kind, series) pair. Nil steps are skipped; present steps run in the fixed
// order replace-negatives, uniform-times, equal-lengths.
type SeriesPreprocessing struct {
	ReplaceNegatives *NegativeFilter  `yaml:"replace_negatives"`
	UniformTimes     *UniformResample `yaml:"uniform_times"`
	EqualLengths     *EqualLengths    `yaml:"equal_lengths"`
}

// Preprocessing maps kind name to series name to the series' preprocessing
// configuration. Unlisted pairs receive no preprocessing.
type Preprocessing map[string]map[string]SeriesPreprocessing

// SeriesExtraction holds the extraction method and its parameters for one
// (kind, series) pair.
type SeriesExtraction struct {
	UseSeries bool   `yaml:"use_series"`
	Method    string `yaml:"method" validate:"omitempty,oneof=raw paa statistical canonical"`
	Segments  int    `yaml:"segments"`
	Normalize bool   `yaml:"normalize"`
}

// Extraction maps kind name to series name to the series' extraction
// configuration. Unlisted pairs are excluded from output.
type Extraction map[string]map[string]SeriesExtraction

// LoadPreprocessing reads and validates a preprocessing document from a YAML
// file.
func LoadPreprocessing(path string) (Preprocessing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preprocessing config: %w", err)
	}
	return ParsePreprocessing(data)
}

// ParsePreprocessing parses and validates a preprocessing document.
func ParsePreprocessing(data []byte) (Preprocessing, error) {
	var cfg Preprocessing
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NewConfig("preprocessing", "malformed document: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every configured preprocessing entry. It fails with a
// ConfigError naming the offending (kind, series) section.
func (p Preprocessing) Validate() error {
	for kind, series := range p {
		for name, cfg := range series {
			section := kind + "." + name
			if cfg.EqualLengths != nil {
				if err := validate.Struct(cfg.EqualLengths); err != nil {
					return errors.NewConfig(section, "equal_lengths: %v", err)
				}
			}
			if cfg.UniformTimes != nil {
				if err := validate.Struct(cfg.UniformTimes); err != nil {
					return errors.NewConfig(section, "uniform_times: %v", err)
				}
			}
		}
	}
	return nil
}

// Series returns the preprocessing configuration for the given kind and
// series name. The zero value (no steps) is returned for unlisted pairs.
func (p Preprocessing) Series(kind, name string) SeriesPreprocessing {
	if series, ok := p[kind]; ok {
		return series[name]
	}
	return SeriesPreprocessing{}
}

// LoadExtraction reads and validates an extraction document from a YAML file.
func LoadExtraction(path string) (Extraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read extraction config: %w", err)
	}
	return ParseExtraction(data)
}

// ParseExtraction parses and validates an extraction document. Entries with
// an empty method default to raw passthrough.
func ParseExtraction(data []byte) (Extraction, error) {
	var cfg Extraction
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NewConfig("extraction", "malformed document: %v", err)
	}
	for kind, series := range cfg {
		for name, entry := range series {
			if entry.Method == "" {
				entry.Method = MethodRaw
				cfg[kind][name] = entry
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every configured extraction entry for structural validity:
// known method names and required method parameters. It fails with a
// ConfigError before any experiment is processed.
func (e Extraction) Validate() error {
	for kind, series := range e {
		for name, entry := range series {
			section := kind + "." + name
			if err := validate.Struct(entry); err != nil {
				return errors.NewConfig(section, "invalid entry: %v", err)
			}
			if entry.Method == MethodPAA && entry.Segments < 1 {
				return errors.NewConfig(section, "paa requires segments >= 1, got %d", entry.Segments)
			}
		}
	}
	return nil
}

// Series returns the extraction configuration for the given kind and series
// name, reporting whether the pair is listed.
func (e Extraction) Series(kind, name string) (SeriesExtraction, bool) {
	series, ok := e[kind]
	if !ok {
		return SeriesExtraction{}, false
	}
	entry, ok := series[name]
	return entry, ok
}
