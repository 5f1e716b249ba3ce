package dataset

import (
	"sort"

	"procchain/internal/recording"
)

// ExperimentInfo summarizes one experiment's availability and label.
type ExperimentInfo struct {
	WorkpieceID int
	Available   []recording.Kind
	Label       string
}

// GetExperimentInfo returns one summary per experiment, in dataset order.
func (d *Dataset) GetExperimentInfo() []ExperimentInfo {
	out := make([]ExperimentInfo, len(d.experiments))
	for i, exp := range d.experiments {
		label, _ := d.labels.Lookup(exp.WorkpieceID, d.classColumn)
		out[i] = ExperimentInfo{
			WorkpieceID: exp.WorkpieceID,
			Available:   exp.AvailableProcesses(),
			Label:       label,
		}
	}
	return out
}

// ClassDistribution counts experiments per class label. Workpieces without a
// label count under the empty string.
type ClassDistribution struct {
	Label string
	Count int
}

// GetClassDistribution returns the label counts sorted by label.
func (d *Dataset) GetClassDistribution() []ClassDistribution {
	counts := make(map[string]int)
	for _, label := range d.GetClassLabels() {
		counts[label]++
	}

	out := make([]ClassDistribution, 0, len(counts))
	for label, count := range counts {
		out = append(out, ClassDistribution{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// QualityReport summarizes stage availability across the dataset.
type QualityReport struct {
	Experiments int
	// Complete counts experiments with all four stages present.
	Complete int
	// MissingByKind lists the workpieces lacking each stage, dataset order.
	MissingByKind map[recording.Kind][]int
}

// Quality computes the availability report.
func (d *Dataset) Quality() QualityReport {
	report := QualityReport{
		Experiments:   len(d.experiments),
		MissingByKind: make(map[recording.Kind][]int),
	}
	for _, exp := range d.experiments {
		missing := 0
		for _, kind := range recording.AllKinds() {
			if _, ok := exp.Recording(kind); !ok {
				report.MissingByKind[kind] = append(report.MissingByKind[kind], exp.WorkpieceID)
				missing++
			}
		}
		if missing == 0 {
			report.Complete++
		}
	}
	return report
}
