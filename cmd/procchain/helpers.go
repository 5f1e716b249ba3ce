package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"procchain/internal/config"
	"procchain/internal/dataset"
	"procchain/internal/labels"
	"procchain/internal/recording"
	"procchain/internal/source"
)

// commandContext carries the lazily loaded application configuration and the
// dependencies built from it into every command.
type commandContext struct {
	configFlag *string
	cfg        *config.Config
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// ensureConfig loads the application configuration once.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// newBuilder wires the corpus loader and label store into a dataset builder.
func (c *commandContext) newBuilder() (*dataset.Builder, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	store, err := newLabelStore(cfg.Paths.ClassValuesFile)
	if err != nil {
		return nil, err
	}

	loader := recording.NewLoader(source.DirResolver{Root: cfg.Paths.DataDir}, slog.Default())
	return dataset.NewBuilder(loader, store, cfg.Extraction, slog.Default()), nil
}

// newLabelStore picks the store implementation by file extension: the corpus
// workbook directly, or its flattened CSV form.
func newLabelStore(path string) (labels.Store, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return labels.NewExcelStore(path)
	}
	return labels.NewCSVStore(path)
}

// selectionFlags are the workpiece selection options shared by extract and
// info: an explicit id list or a class-label query.
type selectionFlags struct {
	ids          []int
	classColumn  string
	filterType   string
	filterValues []string
	sampleSize   int
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntSliceVar(&f.ids, "ids", nil, "Explicit workpiece ids to load")
	cmd.Flags().StringVar(&f.classColumn, "class-column", dataset.DefaultClassColumn, "Label column to filter on")
	cmd.Flags().StringVar(&f.filterType, "filter-type", string(labels.FilterExact), "Label filter: exact, contains or list")
	cmd.Flags().StringSliceVar(&f.filterValues, "filter-value", nil, "Label filter value(s)")
	cmd.Flags().IntVar(&f.sampleSize, "sample-size", 0, "Deterministically sample this many matches (0 keeps all)")
}

// buildDataset builds the dataset the flags select.
func (f *selectionFlags) buildDataset(cmd *cobra.Command, b *dataset.Builder) (*dataset.Dataset, error) {
	if len(f.ids) > 0 {
		if len(f.filterValues) > 0 {
			return nil, fmt.Errorf("--ids and --filter-value are mutually exclusive")
		}
		return b.FromIDs(cmd.Context(), f.ids)
	}
	if len(f.filterValues) == 0 {
		return nil, fmt.Errorf("either --ids or --filter-value is required")
	}

	filterType, err := labels.ParseFilterType(f.filterType)
	if err != nil {
		return nil, err
	}
	return b.FromClassValues(cmd.Context(), dataset.ClassQuery{
		ClassColumn:  f.classColumn,
		FilterType:   filterType,
		FilterValues: f.filterValues,
		SampleSize:   f.sampleSize,
	})
}
