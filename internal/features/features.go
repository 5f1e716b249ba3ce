// Package features converts aligned measurement series into feature vectors.
//
// The four methods form a closed set dispatched through one Extract entry
// point: raw passthrough, piecewise aggregate approximation, a statistical
// feature library and a canonical 22-descriptor library. The two libraries
// are consumed as opaque function values; this package is responsible only
// for supplying a clean one-dimensional series and for naming the returned
// features.
package features

import (
	"math"
	"strconv"

	"procchain/internal/errors"
)

// Method identifies a feature extraction method.
type Method int

const (
	// MethodRaw passes the (aligned) series through unchanged.
	MethodRaw Method = iota
	// MethodPAA reduces the series to segment means.
	MethodPAA
	// MethodStatistical delegates to the statistical feature library.
	MethodStatistical
	// MethodCanonical delegates to the canonical 22-feature library.
	MethodCanonical
)

// String returns the configuration name of the method.
func (m Method) String() string {
	switch m {
	case MethodRaw:
		return "raw"
	case MethodPAA:
		return "paa"
	case MethodStatistical:
		return "statistical"
	case MethodCanonical:
		return "canonical"
	default:
		return "unknown"
	}
}

// ParseMethod parses a configuration method name.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "raw", "":
		return MethodRaw, nil
	case "paa":
		return MethodPAA, nil
	case "statistical":
		return MethodStatistical, nil
	case "canonical":
		return MethodCanonical, nil
	default:
		return MethodRaw, errors.NewConfig("method", "unknown extraction method %q", s)
	}
}

// Feature is one named scalar produced by extraction. Vector results use the
// element index as the name, library results use the library's feature names.
type Feature struct {
	Name  string
	Value float64
}

// Params holds the method and its parameters for one extraction call.
type Params struct {
	Method    Method
	Segments  int
	Normalize bool
}

// StatisticalFunc is the contract of the statistical feature library: a pure
// function from a numeric series to a fixed, named, ordered descriptor set.
type StatisticalFunc func(series []float64) []Feature

// CanonicalFunc is the contract of the canonical feature library: a pure
// function from a numeric series to exactly CanonicalSize descriptors.
type CanonicalFunc func(series []float64) []float64

// CanonicalSize is the fixed output length of the canonical library.
const CanonicalSize = 22

// Extractor dispatches extraction calls to the configured method. The
// library functions are injectable; NewExtractor wires the defaults.
type Extractor struct {
	statistical StatisticalFunc
	canonical   CanonicalFunc
}

// NewExtractor creates an extractor backed by the default feature libraries.
func NewExtractor() *Extractor {
	return &Extractor{
		statistical: DefaultStatistical,
		canonical:   DefaultCanonical,
	}
}

// NewExtractorWith creates an extractor with custom library functions. Nil
// functions fall back to the defaults.
func NewExtractorWith(statistical StatisticalFunc, canonical CanonicalFunc) *Extractor {
	e := NewExtractor()
	if statistical != nil {
		e.statistical = statistical
	}
	if canonical != nil {
		e.canonical = canonical
	}
	return e
}

// Extract applies the configured method to the series and returns the
// resulting features in deterministic order. With Normalize set, the series
// is z-scored first; non-finite input or zero variance then fail with a
// DataQualityError before the method runs.
func (e *Extractor) Extract(series []float64, p Params) ([]Feature, error) {
	s := series
	if p.Normalize {
		normalized, err := zscore(series)
		if err != nil {
			return nil, err
		}
		s = normalized
	}

	switch p.Method {
	case MethodRaw:
		return indexed(s), nil
	case MethodPAA:
		reduced, err := PAA(s, p.Segments)
		if err != nil {
			return nil, err
		}
		return indexed(reduced), nil
	case MethodStatistical:
		return e.statistical(s), nil
	case MethodCanonical:
		v := e.canonical(s)
		if len(v) != CanonicalSize {
			return nil, errors.NewDataQuality("", "canonical library returned %d features, want %d", len(v), CanonicalSize)
		}
		return indexed(v), nil
	default:
		return nil, errors.NewConfig("method", "unknown extraction method %d", p.Method)
	}
}

// PAA computes the piecewise aggregate approximation of the series:
// the series is partitioned into segments contiguous chunks and each output
// value is the arithmetic mean of its chunk. Chunk sizes differ by at most
// one sample; the remainder of len/segments goes to the earliest chunks.
func PAA(series []float64, segments int) ([]float64, error) {
	if segments < 1 || segments > len(series) {
		return nil, errors.NewConfig("paa", "segments must satisfy 1 <= segments <= len(series)=%d, got %d", len(series), segments)
	}

	out := make([]float64, segments)
	base := len(series) / segments
	rem := len(series) % segments

	start := 0
	for i := 0; i < segments; i++ {
		size := base
		if i < rem {
			size++
		}
		sum := 0.0
		for _, v := range series[start : start+size] {
			sum += v
		}
		out[i] = sum / float64(size)
		start += size
	}
	return out, nil
}

// zscore normalizes the series to zero mean and unit standard deviation.
func zscore(series []float64) ([]float64, error) {
	for i, v := range series {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.NewDataQuality("", "non-finite value at index %d", i)
		}
	}
	if len(series) == 0 {
		return nil, errors.NewDataQuality("", "cannot normalize empty series")
	}

	m := mean(series)
	sd := stddev(series, m)
	if sd == 0 {
		return nil, errors.NewDataQuality("", "zero standard deviation")
	}

	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = (v - m) / sd
	}
	return out, nil
}

// indexed names vector elements by their position.
func indexed(values []float64) []Feature {
	out := make([]Feature, len(values))
	for i, v := range values {
		out[i] = Feature{Name: strconv.Itoa(i), Value: v}
	}
	return out
}

// mean returns the arithmetic mean, 0 for an empty series.
func mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}

// stddev returns the population standard deviation around m.
func stddev(series []float64, m float64) float64 {
	if len(series) == 0 {
		return 0
	}
	ss := 0.0
	for _, v := range series {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(series)))
}
