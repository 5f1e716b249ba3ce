// Package processing normalizes raw measurement series before feature
// extraction. All functions are pure: inputs are never mutated and results
// are freshly allocated.
package processing

import (
	"procchain/internal/config"
	"procchain/internal/errors"
)

// Align standardizes a series to exactly targetLength samples.
//
// A series longer than the target is truncated and a shorter one is padded
// with padValue; both operate on the same anchor end given by cutoff. With
// CutoffPost the beginning of the series is kept and padding goes to the end,
// with CutoffPre the end is kept and padding goes to the start. An empty
// input is valid and yields a fully padded series.
func Align(series []float64, targetLength int, cutoff config.CutoffPosition, padValue float64) ([]float64, error) {
	if targetLength <= 0 {
		return nil, errors.NewConfig("equal_lengths", "target_length must be > 0, got %d", targetLength)
	}
	switch cutoff {
	case config.CutoffPre, config.CutoffPost, "":
	default:
		return nil, errors.NewConfig("equal_lengths", "unknown cutoff_position %q", cutoff)
	}

	out := make([]float64, targetLength)
	switch {
	case len(series) == targetLength:
		copy(out, series)
	case len(series) > targetLength:
		if cutoff == config.CutoffPre {
			copy(out, series[len(series)-targetLength:])
		} else {
			copy(out, series[:targetLength])
		}
	default:
		pad := targetLength - len(series)
		if cutoff == config.CutoffPre {
			for i := 0; i < pad; i++ {
				out[i] = padValue
			}
			copy(out[pad:], series)
		} else {
			copy(out, series)
			for i := len(series); i < targetLength; i++ {
				out[i] = padValue
			}
		}
	}
	return out, nil
}

// ReplaceNegatives replaces every negative value with the given replacement.
// Length and order are preserved.
func ReplaceNegatives(series []float64, replacement float64) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		if v < 0 {
			out[i] = replacement
		} else {
			out[i] = v
		}
	}
	return out
}

// ResampleUniform resamples a series onto a uniform time grid with
// targetDistance spacing using linear interpolation. Grid points are rounded
// to four decimals to avoid floating-point drift in the grid itself. When the
// input cannot be resampled (no time axis, mismatched lengths, fewer than two
// samples, or a non-positive distance) the series is returned unchanged.
func ResampleUniform(series, times []float64, targetDistance float64) []float64 {
	if len(times) == 0 || len(series) != len(times) || len(series) < 2 || targetDistance <= 0 {
		out := make([]float64, len(series))
		copy(out, series)
		return out
	}

	start, end := times[0], times[0]
	for _, t := range times {
		if t < start {
			start = t
		}
		if t > end {
			end = t
		}
	}

	numPoints := int((end-start)/targetDistance) + 1
	grid := make([]float64, 0, numPoints)
	for i := 0; i < numPoints; i++ {
		t := roundGrid(start + float64(i)*targetDistance)
		if t > end {
			break
		}
		grid = append(grid, t)
	}
	if len(grid) <= 1 {
		out := make([]float64, len(series))
		copy(out, series)
		return out
	}

	out := make([]float64, len(grid))
	for i, t := range grid {
		out[i] = interpolate(series, times, t)
	}
	return out
}

// roundGrid rounds a grid point to four decimals.
func roundGrid(t float64) float64 {
	if t < 0 {
		return float64(int64(t*10000-0.5)) / 10000
	}
	return float64(int64(t*10000+0.5)) / 10000
}

// interpolate evaluates the series at target time by linear interpolation
// between the two bracketing samples. Times outside the sampled range clamp
// to the first or last value.
func interpolate(series, times []float64, target float64) float64 {
	if target <= times[0] {
		return series[0]
	}
	if target >= times[len(times)-1] {
		return series[len(series)-1]
	}
	for i := 0; i < len(times)-1; i++ {
		if times[i] <= target && target <= times[i+1] {
			t0, t1 := times[i], times[i+1]
			if t1 == t0 {
				return series[i]
			}
			w := (target - t0) / (t1 - t0)
			return series[i] + (series[i+1]-series[i])*w
		}
	}
	return series[len(series)-1]
}

// Apply runs the configured preprocessing steps for one series in the fixed
// order replace-negatives, uniform-times, equal-lengths. The time axis is
// used only by the uniform-times step and is never modified.
func Apply(series, times []float64, cfg config.SeriesPreprocessing) ([]float64, error) {
	out := make([]float64, len(series))
	copy(out, series)

	if cfg.ReplaceNegatives != nil {
		out = ReplaceNegatives(out, cfg.ReplaceNegatives.Replacement)
	}
	if cfg.UniformTimes != nil {
		out = ResampleUniform(out, times, cfg.UniformTimes.TargetDistance)
	}
	if cfg.EqualLengths != nil {
		aligned, err := Align(out, cfg.EqualLengths.TargetLength, cfg.EqualLengths.CutoffPosition, cfg.EqualLengths.PaddingValue)
		if err != nil {
			return nil, err
		}
		out = aligned
	}
	return out, nil
}
