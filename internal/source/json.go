package source

import (
	"encoding/json"
	"fmt"
	"os"

	"procchain/internal/errors"
)

// StepSeries names the synthetic series holding the one-based tightening
// step number of every sample in a screw driving recording.
const StepSeries = "step"

// screwRun mirrors the on-disk JSON shape of one screw driving recording.
type screwRun struct {
	Steps []screwStep `json:"tightening steps"`
}

// screwStep holds the measurement graph of one tightening step.
type screwStep struct {
	Graph map[string][]float64 `json:"graph"`
}

// graphSeries maps the JSON graph keys to series names, in schema order.
var graphSeries = []struct {
	key  string
	name string
}{
	{"time values", "time"},
	{"torque values", "torque"},
	{"angle values", "angle"},
	{"gradient values", "gradient"},
	{"torqueRed values", "torqueRed"},
	{"angleRed values", "angleRed"},
}

// ParseSerialJSON reads a screw driving run consisting of up to four
// tightening steps and combines the steps into single series.
//
// Within a step the measurement arrays may differ in length; shorter arrays
// are extended by holding their last value so every series of the step shares
// one step-indexed sample grid. The synthetic StepSeries series records the
// step number of each sample.
func ParseSerialJSON(path string) (SerialSeries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var run screwRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, errors.NewParse(path, err)
	}
	if len(run.Steps) == 0 {
		return nil, errors.NewParse(path, fmt.Errorf("no tightening steps"))
	}

	series := make(SerialSeries, len(graphSeries)+1)
	for _, gs := range graphSeries {
		series[gs.name] = []float64{}
	}
	series[StepSeries] = []float64{}

	for stepIdx, step := range run.Steps {
		stepLen := 0
		for _, gs := range graphSeries {
			if n := len(step.Graph[gs.key]); n > stepLen {
				stepLen = n
			}
		}
		if stepLen == 0 {
			continue
		}

		for _, gs := range graphSeries {
			values := step.Graph[gs.key]
			series[gs.name] = append(series[gs.name], padToGrid(values, stepLen)...)
		}
		for i := 0; i < stepLen; i++ {
			series[StepSeries] = append(series[StepSeries], float64(stepIdx+1))
		}
	}

	return series, nil
}

// padToGrid extends values to length n by holding the last sample. An empty
// input yields n zeros.
func padToGrid(values []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, values)
	if len(values) == 0 || len(values) >= n {
		return out
	}
	last := values[len(values)-1]
	for i := len(values); i < n; i++ {
		out[i] = last
	}
	return out
}
