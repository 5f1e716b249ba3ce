package features

import (
	"math"
	"sort"
)

// DefaultStatistical is the default statistical feature library. It computes
// a fixed, ordered set of scalar descriptors over the series. The order is
// part of the contract: output columns are derived from it.
func DefaultStatistical(series []float64) []Feature {
	n := len(series)
	if n == 0 {
		return []Feature{{Name: "length", Value: 0}}
	}

	m := mean(series)
	sd := stddev(series, m)
	mn, mx := minMax(series)

	sum := 0.0
	absEnergy := 0.0
	above := 0
	below := 0
	for _, v := range series {
		sum += v
		absEnergy += v * v
		if v > m {
			above++
		} else if v < m {
			below++
		}
	}

	meanAbsChange := 0.0
	if n > 1 {
		for i := 1; i < n; i++ {
			meanAbsChange += math.Abs(series[i] - series[i-1])
		}
		meanAbsChange /= float64(n - 1)
	}

	return []Feature{
		{Name: "length", Value: float64(n)},
		{Name: "sum", Value: sum},
		{Name: "mean", Value: m},
		{Name: "median", Value: median(series)},
		{Name: "std", Value: sd},
		{Name: "variance", Value: sd * sd},
		{Name: "min", Value: mn},
		{Name: "max", Value: mx},
		{Name: "range", Value: mx - mn},
		{Name: "abs_energy", Value: absEnergy},
		{Name: "rms", Value: math.Sqrt(absEnergy / float64(n))},
		{Name: "mean_abs_change", Value: meanAbsChange},
		{Name: "skewness", Value: standardizedMoment(series, m, sd, 3)},
		{Name: "kurtosis", Value: standardizedMoment(series, m, sd, 4)},
		{Name: "count_above_mean", Value: float64(above)},
		{Name: "count_below_mean", Value: float64(below)},
		{Name: "first", Value: series[0]},
		{Name: "last", Value: series[n-1]},
	}
}

// minMax returns the smallest and largest value of a non-empty series.
func minMax(series []float64) (float64, float64) {
	mn, mx := series[0], series[0]
	for _, v := range series[1:] {
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
	}
	return mn, mx
}

// median returns the middle value (mean of the two middle values for even
// lengths) of a non-empty series.
func median(series []float64) float64 {
	sorted := make([]float64, len(series))
	copy(sorted, series)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// standardizedMoment computes the k-th standardized central moment. Zero
// variance yields 0 rather than a division failure: degenerate series are the
// normalize option's concern, not the library's.
func standardizedMoment(series []float64, m, sd float64, k int) float64 {
	if sd == 0 || len(series) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range series {
		sum += math.Pow((v-m)/sd, float64(k))
	}
	return sum / float64(len(series))
}

// quantile returns the q-quantile (0..1) of a sorted series using linear
// interpolation between order statistics.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
