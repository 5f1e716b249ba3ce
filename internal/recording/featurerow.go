package recording

// FeatureRow is the flattened feature contribution of one workpiece: column
// name to scalar value, with columns kept in first-insertion order so tabular
// output stays deterministic.
type FeatureRow struct {
	columns []string
	values  map[string]float64
}

// NewFeatureRow creates an empty row.
func NewFeatureRow() *FeatureRow {
	return &FeatureRow{values: make(map[string]float64)}
}

// Add sets a column value. A new column is appended to the column order; an
// existing one keeps its position and gets the new value.
func (r *FeatureRow) Add(column string, value float64) {
	if _, ok := r.values[column]; !ok {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
}

// Merge adds every column of other to r, in other's column order.
func (r *FeatureRow) Merge(other *FeatureRow) {
	if other == nil {
		return
	}
	for _, col := range other.columns {
		r.Add(col, other.values[col])
	}
}

// Columns returns the column names in insertion order.
func (r *FeatureRow) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Value returns a column's value and whether the column is present.
func (r *FeatureRow) Value(column string) (float64, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Len returns the number of columns.
func (r *FeatureRow) Len() int {
	return len(r.columns)
}
