package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"procchain/internal/config"
	"procchain/internal/errors"
	"procchain/internal/features"
	"procchain/internal/labels"
)

// DefaultClassColumn is the label column used when a query does not name one.
const DefaultClassColumn = "class_value"

// ClassQuery selects workpieces by class label for FromClassValues.
type ClassQuery struct {
	ClassColumn  string
	FilterType   labels.FilterType
	FilterValues []string
	// SampleSize caps the number of matched workpieces; 0 keeps all.
	// Sampling is seed-deterministic and preserves match order.
	SampleSize int
}

// Builder constructs datasets over a recording loader and a label store.
type Builder struct {
	loader         RecordingLoader
	labels         labels.Store
	logger         *slog.Logger
	maxConcurrency int
	sampleSeed     int64
}

// NewBuilder creates a dataset builder. Concurrency and the sampling seed
// come from the run configuration.
func NewBuilder(loader RecordingLoader, store labels.Store, run config.RunConfig, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	maxConcurrency := run.MaxConcurrency
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &Builder{
		loader:         loader,
		labels:         store,
		logger:         logger,
		maxConcurrency: maxConcurrency,
		sampleSeed:     run.SampleSeed,
	}
}

// Dataset is an ordered, duplicate-free collection of experiments with a
// class-label lookup. It is immutable after construction.
type Dataset struct {
	experiments []*Experiment
	labels      labels.Store
	classColumn string
	logger      *slog.Logger
}

// FromIDs builds one experiment per id, in the given order. Duplicate ids and
// per-id construction failures are aggregated into a single BuildError rather
// than failing on the first one.
func (b *Builder) FromIDs(ctx context.Context, ids []int) (*Dataset, error) {
	return b.fromIDs(ctx, ids, DefaultClassColumn)
}

func (b *Builder) fromIDs(ctx context.Context, ids []int, classColumn string) (*Dataset, error) {
	if dup := duplicates(ids); len(dup) > 0 {
		failures := make([]errors.BuildFailure, 0, len(dup))
		for _, id := range dup {
			failures = append(failures, errors.BuildFailure{
				WorkpieceID: id,
				Err:         fmt.Errorf("duplicate workpiece id"),
			})
		}
		return nil, errors.NewBuild(failures)
	}

	start := time.Now()
	b.logger.InfoContext(ctx, "building dataset",
		"experiments", len(ids),
		"max_concurrency", b.maxConcurrency)

	experiments := make([]*Experiment, len(ids))
	errs := make([]error, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.maxConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			exp, err := NewExperiment(gctx, b.loader, id)
			experiments[i] = exp
			errs[i] = err
			return nil
		})
	}
	// Goroutines report through the errs slice, never through the group.
	_ = g.Wait()

	var failures []errors.BuildFailure
	for i, err := range errs {
		if err != nil {
			failures = append(failures, errors.BuildFailure{WorkpieceID: ids[i], Err: err})
		}
	}
	if len(failures) > 0 {
		return nil, errors.NewBuild(failures)
	}

	b.logger.InfoContext(ctx, "dataset built",
		"experiments", len(experiments),
		"duration", time.Since(start))

	return &Dataset{
		experiments: experiments,
		labels:      b.labels,
		classColumn: classColumn,
		logger:      b.logger,
	}, nil
}

// FromClassValues queries the label store for matching workpieces, optionally
// samples them and builds the dataset. Sampling with the same seed, query and
// table contents selects the same ordered subset.
func (b *Builder) FromClassValues(ctx context.Context, q ClassQuery) (*Dataset, error) {
	classColumn := q.ClassColumn
	if classColumn == "" {
		classColumn = DefaultClassColumn
	}

	ids, err := b.labels.Query(classColumn, q.FilterType, q.FilterValues)
	if err != nil {
		return nil, err
	}
	b.logger.InfoContext(ctx, "class query matched",
		"class_column", classColumn,
		"filter_type", string(q.FilterType),
		"matches", len(ids))

	if q.SampleSize > 0 && q.SampleSize < len(ids) {
		ids = sampleIDs(ids, q.SampleSize, b.sampleSeed)
		b.logger.InfoContext(ctx, "sampled matches",
			"sample_size", q.SampleSize,
			"seed", b.sampleSeed)
	}

	return b.fromIDs(ctx, ids, classColumn)
}

// sampleIDs deterministically selects k ids, preserving their original order.
func sampleIDs(ids []int, k int, seed int64) []int {
	perm := rand.New(rand.NewSource(seed)).Perm(len(ids))
	picked := perm[:k]
	sort.Ints(picked)

	out := make([]int, k)
	for i, idx := range picked {
		out[i] = ids[idx]
	}
	return out
}

// duplicates returns the ids appearing more than once, in first-repeat order.
func duplicates(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	reported := make(map[int]bool)
	var dup []int
	for _, id := range ids {
		if seen[id] && !reported[id] {
			dup = append(dup, id)
			reported[id] = true
		}
		seen[id] = true
	}
	return dup
}

// Len returns the number of experiments.
func (d *Dataset) Len() int {
	return len(d.experiments)
}

// Experiments returns the experiments in dataset order.
func (d *Dataset) Experiments() []*Experiment {
	out := make([]*Experiment, len(d.experiments))
	copy(out, d.experiments)
	return out
}

// GetClassLabels returns one label per experiment, in dataset order.
// Workpieces missing from the label table get an empty label.
func (d *Dataset) GetClassLabels() []string {
	out := make([]string, len(d.experiments))
	for i, exp := range d.experiments {
		label, _ := d.labels.Lookup(exp.WorkpieceID, d.classColumn)
		out[i] = label
	}
	return out
}

// GetData extracts one table row per experiment, in dataset order, with the
// class label attached. Both configuration documents are validated before any
// experiment is touched.
func (d *Dataset) GetData(ctx context.Context, pre config.Preprocessing, ext config.Extraction, x *features.Extractor) (*Table, error) {
	if err := pre.Validate(); err != nil {
		return nil, err
	}
	if err := ext.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	table := &Table{ClassColumn: d.classColumn}
	seen := make(map[string]bool)

	for _, exp := range d.experiments {
		row, err := exp.GetData(ctx, pre, ext, x)
		if err != nil {
			return nil, fmt.Errorf("extract workpiece %d: %w", exp.WorkpieceID, err)
		}
		for _, col := range row.Columns() {
			if !seen[col] {
				seen[col] = true
				table.FeatureColumns = append(table.FeatureColumns, col)
			}
		}
		label, _ := d.labels.Lookup(exp.WorkpieceID, d.classColumn)
		table.Rows = append(table.Rows, Row{
			WorkpieceID: exp.WorkpieceID,
			Label:       label,
			Features:    row,
		})
	}

	d.logger.InfoContext(ctx, "extraction complete",
		"rows", len(table.Rows),
		"columns", len(table.FeatureColumns),
		"duration", time.Since(start))

	return table, nil
}
