package recording

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"procchain/internal/config"
	"procchain/internal/errors"
	"procchain/internal/features"
	"procchain/internal/processing"
	"procchain/internal/source"
)

// Recording holds one process stream's loaded data for one workpiece. It is
// immutable after construction; extraction is a pure function over it.
type Recording struct {
	WorkpieceID int
	Kind        Kind
	Static      source.StaticAttributes
	Serial      source.SerialSeries
}

// GetData extracts the recording's feature contribution under the given
// configuration.
//
// Configured series of this recording's kind are processed in schema order,
// followed by configured names outside the schema in sorted order. A name is
// looked up in the serial data first and falls back to the static attributes,
// where it becomes an unsuffixed passthrough column without alignment. Names
// present in neither, and series loaded as present-but-empty, contribute no
// columns. A DataQualityError on one column is logged and skips that column
// only; every other error fails the call.
func (r *Recording) GetData(ctx context.Context, pre config.Preprocessing, ext config.Extraction, x *features.Extractor) (*FeatureRow, error) {
	row := NewFeatureRow()
	kind := r.Kind.String()
	schema := r.Kind.Schema()

	for _, name := range r.configuredNames(ext) {
		entry, _ := ext.Series(kind, name)
		if !entry.UseSeries {
			continue
		}

		if raw, ok := r.Serial[name]; ok {
			if len(raw) == 0 {
				continue
			}
			if err := r.extractSeries(ctx, row, name, raw, entry, pre.Series(kind, name), schema, x); err != nil {
				return nil, err
			}
			continue
		}

		if value, ok := r.Static[name]; ok {
			v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				slog.Default().WarnContext(ctx, "skipping non-numeric static attribute",
					"workpiece_id", r.WorkpieceID,
					"kind", kind,
					"attribute", name,
					"value", value)
				continue
			}
			row.Add(kind+"_"+name, v)
		}
	}
	return row, nil
}

// extractSeries preprocesses and extracts one serial series into the row.
func (r *Recording) extractSeries(ctx context.Context, row *FeatureRow, name string, raw []float64, entry config.SeriesExtraction, pre config.SeriesPreprocessing, schema Schema, x *features.Extractor) error {
	kind := r.Kind.String()

	processed, err := processing.Apply(raw, r.Serial[schema.TimeSeries], pre)
	if err != nil {
		return err
	}

	method, err := features.ParseMethod(entry.Method)
	if err != nil {
		return err
	}
	feats, err := x.Extract(processed, features.Params{
		Method:    method,
		Segments:  entry.Segments,
		Normalize: entry.Normalize,
	})
	if err != nil {
		if errors.IsDataQuality(err) {
			slog.Default().WarnContext(ctx, "skipping series with degenerate data",
				"workpiece_id", r.WorkpieceID,
				"kind", kind,
				"series", name,
				"error", err)
			return nil
		}
		return err
	}

	for _, f := range feats {
		row.Add(kind+"_"+name+"_"+f.Name, f.Value)
	}
	return nil
}

// configuredNames returns the configured series names for this recording's
// kind: schema series first in schema order, then the rest sorted by name.
func (r *Recording) configuredNames(ext config.Extraction) []string {
	kind := r.Kind.String()
	configured := ext[kind]
	if len(configured) == 0 {
		return nil
	}

	names := make([]string, 0, len(configured))
	inSchema := make(map[string]bool, len(names))
	for _, name := range r.Kind.Schema().Series {
		if _, ok := configured[name]; ok {
			names = append(names, name)
			inSchema[name] = true
		}
	}

	extra := make([]string, 0, len(configured))
	for name := range configured {
		if !inSchema[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
