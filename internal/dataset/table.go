package dataset

import (
	"strconv"

	"procchain/internal/recording"
)

// idColumn names the table's workpiece id column.
const idColumn = "workpiece_id"

// Row is one experiment's extracted table row.
type Row struct {
	WorkpieceID int
	Label       string
	Features    *recording.FeatureRow
}

// Table is the bulk extraction result: one row per experiment in dataset
// order. FeatureColumns is the union of all row columns in first-seen order;
// an experiment lacking a stage simply has no value under that stage's
// columns.
type Table struct {
	ClassColumn    string
	FeatureColumns []string
	Rows           []Row
}

// Header returns the full column header: workpiece id, class label, then the
// feature columns.
func (t *Table) Header() []string {
	header := make([]string, 0, len(t.FeatureColumns)+2)
	header = append(header, idColumn, t.ClassColumn)
	return append(header, t.FeatureColumns...)
}

// Records renders the table as delimited-text records, header first. Missing
// feature values render as empty cells.
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, t.Header())

	for _, row := range t.Rows {
		record := make([]string, 0, len(t.FeatureColumns)+2)
		record = append(record, strconv.Itoa(row.WorkpieceID), row.Label)
		for _, col := range t.FeatureColumns {
			if v, ok := row.Features.Value(col); ok {
				record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
			} else {
				record = append(record, "")
			}
		}
		records = append(records, record)
	}
	return records
}
