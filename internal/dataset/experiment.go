package dataset

import (
	"context"

	"procchain/internal/config"
	"procchain/internal/errors"
	"procchain/internal/features"
	"procchain/internal/recording"
)

// RecordingLoader loads one process stream's recording for a workpiece.
// *recording.Loader satisfies it; tests substitute stubs.
type RecordingLoader interface {
	Load(ctx context.Context, workpieceID int, kind recording.Kind) (*recording.Recording, error)
}

// Experiment bundles the recordings of one workpiece across all process
// stages. Between one and four stages are present; absence is explicit and
// queryable, never silently substituted.
type Experiment struct {
	WorkpieceID int
	recordings  map[recording.Kind]*recording.Recording
}

// NewExperiment loads every process stage for the workpiece. A stage whose
// load fails with a NotFoundError is recorded as absent; any other load
// failure aborts construction. A workpiece with no stage at all is itself
// not found.
func NewExperiment(ctx context.Context, loader RecordingLoader, workpieceID int) (*Experiment, error) {
	recordings := make(map[recording.Kind]*recording.Recording, len(recording.AllKinds()))
	for _, kind := range recording.AllKinds() {
		rec, err := loader.Load(ctx, workpieceID, kind)
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		recordings[kind] = rec
	}
	if len(recordings) == 0 {
		return nil, errors.NewNotFound("experiment", workpieceID)
	}
	return &Experiment{WorkpieceID: workpieceID, recordings: recordings}, nil
}

// AvailableProcesses returns the present stages in their fixed order.
func (e *Experiment) AvailableProcesses() []recording.Kind {
	var kinds []recording.Kind
	for _, kind := range recording.AllKinds() {
		if _, ok := e.recordings[kind]; ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// Recording returns the stage's recording and whether it is present.
func (e *Experiment) Recording(kind recording.Kind) (*recording.Recording, bool) {
	rec, ok := e.recordings[kind]
	return rec, ok
}

// GetData unions the feature contributions of every present stage, in fixed
// stage order. Kind-prefixed column names keep the namespaces disjoint; an
// absent stage contributes no columns.
func (e *Experiment) GetData(ctx context.Context, pre config.Preprocessing, ext config.Extraction, x *features.Extractor) (*recording.FeatureRow, error) {
	row := recording.NewFeatureRow()
	for _, kind := range recording.AllKinds() {
		rec, ok := e.recordings[kind]
		if !ok {
			continue
		}
		part, err := rec.GetData(ctx, pre, ext, x)
		if err != nil {
			return nil, err
		}
		row.Merge(part)
	}
	return row, nil
}
