package features

import (
	"math"
	"sort"
)

// DefaultCanonical is the default canonical feature library: a fixed vector
// of CanonicalSize descriptors characterizing distribution shape,
// autocorrelation structure and local dynamics of the series. The element
// order is part of the contract and must never change.
func DefaultCanonical(series []float64) []float64 {
	out := make([]float64, CanonicalSize)
	n := len(series)
	if n == 0 {
		return out
	}

	m := mean(series)
	sd := stddev(series, m)

	sorted := make([]float64, n)
	copy(sorted, series)
	sort.Float64s(sorted)

	// Distribution shape.
	out[0] = histogramMode(series, 5)
	out[1] = histogramMode(series, 10)
	out[2] = quantile(sorted, 0.05)
	out[3] = quantile(sorted, 0.25)
	out[4] = quantile(sorted, 0.75)
	out[5] = quantile(sorted, 0.95)
	out[6] = outlierFraction(series, m, sd, 2)

	// Autocorrelation structure.
	out[7] = autocorrelation(series, m, sd, 1)
	out[8] = autocorrelation(series, m, sd, 2)
	out[9] = autocorrelation(series, m, sd, 3)
	out[10] = firstACFCrossing(series, m, sd, 1/math.E)
	out[11] = firstACFCrossing(series, m, sd, 0)

	// Level structure around the mean.
	out[12] = proportionAbove(series, m)
	out[13] = longestRun(series, m, true)
	out[14] = longestRun(series, m, false)
	out[15] = meanCrossings(series, m)

	// Local dynamics.
	out[16] = localMaxima(series)
	out[17] = trendSlope(series)
	out[18] = meanAbsDiff(series)
	out[19] = diffStd(series)
	out[20] = diffAsymmetry(series)
	out[21] = firstHalfEnergyRatio(series)

	return out
}

// histogramMode returns the center of the most populated of bins equal-width
// histogram bins. Constant series collapse to their single value.
func histogramMode(series []float64, bins int) float64 {
	mn, mx := minMax(series)
	if mx == mn {
		return mn
	}
	counts := make([]int, bins)
	width := (mx - mn) / float64(bins)
	for _, v := range series {
		idx := int((v - mn) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	return mn + (float64(best)+0.5)*width
}

// outlierFraction returns the fraction of samples farther than k standard
// deviations from the mean.
func outlierFraction(series []float64, m, sd float64, k float64) float64 {
	if sd == 0 {
		return 0
	}
	count := 0
	for _, v := range series {
		if math.Abs(v-m) > k*sd {
			count++
		}
	}
	return float64(count) / float64(len(series))
}

// autocorrelation computes the lag-k sample autocorrelation.
func autocorrelation(series []float64, m, sd float64, lag int) float64 {
	n := len(series)
	if sd == 0 || lag >= n {
		return 0
	}
	sum := 0.0
	for i := 0; i < n-lag; i++ {
		sum += (series[i] - m) * (series[i+lag] - m)
	}
	return sum / (float64(n) * sd * sd)
}

// firstACFCrossing returns the smallest lag at which the autocorrelation
// drops to or below the threshold, or the series length if it never does.
func firstACFCrossing(series []float64, m, sd, threshold float64) float64 {
	n := len(series)
	for lag := 1; lag < n; lag++ {
		if autocorrelation(series, m, sd, lag) <= threshold {
			return float64(lag)
		}
	}
	return float64(n)
}

// proportionAbove returns the fraction of samples strictly above the level.
func proportionAbove(series []float64, level float64) float64 {
	count := 0
	for _, v := range series {
		if v > level {
			count++
		}
	}
	return float64(count) / float64(len(series))
}

// longestRun returns the length of the longest consecutive run above (or
// below) the level.
func longestRun(series []float64, level float64, above bool) float64 {
	longest, current := 0, 0
	for _, v := range series {
		in := v > level
		if !above {
			in = v < level
		}
		if in {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return float64(longest)
}

// meanCrossings counts sign changes of the mean-centered series.
func meanCrossings(series []float64, m float64) float64 {
	count := 0
	for i := 1; i < len(series); i++ {
		if (series[i-1]-m)*(series[i]-m) < 0 {
			count++
		}
	}
	return float64(count)
}

// localMaxima counts strict interior local maxima.
func localMaxima(series []float64) float64 {
	count := 0
	for i := 1; i < len(series)-1; i++ {
		if series[i] > series[i-1] && series[i] > series[i+1] {
			count++
		}
	}
	return float64(count)
}

// trendSlope returns the least-squares slope over sample indices.
func trendSlope(series []float64) float64 {
	n := len(series)
	if n < 2 {
		return 0
	}
	xMean := float64(n-1) / 2
	yMean := mean(series)
	num, den := 0.0, 0.0
	for i, v := range series {
		dx := float64(i) - xMean
		num += dx * (v - yMean)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// meanAbsDiff returns the mean absolute successive difference.
func meanAbsDiff(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	sum := 0.0
	for i := 1; i < len(series); i++ {
		sum += math.Abs(series[i] - series[i-1])
	}
	return sum / float64(len(series)-1)
}

// diffStd returns the standard deviation of successive differences.
func diffStd(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	diffs := make([]float64, len(series)-1)
	for i := 1; i < len(series); i++ {
		diffs[i-1] = series[i] - series[i-1]
	}
	return stddev(diffs, mean(diffs))
}

// diffAsymmetry returns the mean cubed successive difference, a simple
// time-irreversibility measure.
func diffAsymmetry(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	sum := 0.0
	for i := 1; i < len(series); i++ {
		d := series[i] - series[i-1]
		sum += d * d * d
	}
	return sum / float64(len(series)-1)
}

// firstHalfEnergyRatio returns the share of squared-sample energy contained
// in the first half of the series.
func firstHalfEnergyRatio(series []float64) float64 {
	total := 0.0
	half := 0.0
	mid := len(series) / 2
	for i, v := range series {
		e := v * v
		total += e
		if i < mid {
			half += e
		}
	}
	if total == 0 {
		return 0
	}
	return half / total
}
