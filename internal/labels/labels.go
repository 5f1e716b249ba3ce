// Package labels provides the class-label lookup over workpiece ids.
//
// Labels come from a flattened CSV table or directly from the Excel workbook
// the corpus ships; both load into the same in-memory table behind the Store
// interface the dataset layer consumes.
package labels

import (
	"strconv"
	"strings"

	"procchain/internal/errors"
)

// IDColumn names the workpiece id column shared by the label tables.
const IDColumn = "upper_workpiece_id"

// notUsedMarker tags id cells of workpieces excluded from the corpus.
const notUsedMarker = "workpiece_not_used"

// FilterType selects how Query matches label values.
type FilterType string

const (
	// FilterExact matches by string equality with the single filter value.
	FilterExact FilterType = "exact"
	// FilterContains matches labels containing the single filter value.
	FilterContains FilterType = "contains"
	// FilterList matches labels equal to any of the filter values.
	FilterList FilterType = "list"
)

// ParseFilterType parses a configuration filter name.
func ParseFilterType(s string) (FilterType, error) {
	switch FilterType(s) {
	case FilterExact, FilterContains, FilterList:
		return FilterType(s), nil
	default:
		return FilterExact, errors.NewConfig("filter_type", "unknown filter type %q", s)
	}
}

// Store is the class-label lookup consumed by the dataset layer.
type Store interface {
	// Lookup returns the workpiece's label under the given column and
	// whether the workpiece and column are known.
	Lookup(workpieceID int, column string) (string, bool)
	// Query returns the ids of every workpiece whose label under the given
	// column matches the filter, in table order.
	Query(column string, filter FilterType, values []string) ([]int, error)
}

// entry is one workpiece's label row, kept in table order.
type entry struct {
	id    int
	attrs map[string]string
}

// table is the shared in-memory implementation behind both stores.
type table struct {
	entries []entry
	byID    map[int]map[string]string
	columns map[string]bool
}

func newTable() *table {
	return &table{
		byID:    make(map[int]map[string]string),
		columns: make(map[string]bool),
	}
}

// add appends one row. Rows whose id cell is non-numeric or marks an unused
// workpiece are dropped; a repeated id merges columns into the existing row.
func (t *table) add(idCell string, attrs map[string]string) {
	idCell = strings.TrimSpace(idCell)
	if idCell == "" || idCell == notUsedMarker {
		return
	}
	id, err := strconv.Atoi(idCell)
	if err != nil {
		return
	}

	for col := range attrs {
		t.columns[col] = true
	}

	if existing, ok := t.byID[id]; ok {
		for col, v := range attrs {
			if _, taken := existing[col]; !taken {
				existing[col] = v
			}
		}
		return
	}
	t.byID[id] = attrs
	t.entries = append(t.entries, entry{id: id, attrs: attrs})
}

// Lookup implements Store.
func (t *table) Lookup(workpieceID int, column string) (string, bool) {
	attrs, ok := t.byID[workpieceID]
	if !ok {
		return "", false
	}
	v, ok := attrs[column]
	return v, ok
}

// Query implements Store.
func (t *table) Query(column string, filter FilterType, values []string) ([]int, error) {
	if !t.columns[column] {
		return nil, errors.NewConfig("class_column", "unknown label column %q", column)
	}
	if len(values) == 0 {
		return nil, errors.NewConfig("filter_value", "no filter values given")
	}

	var ids []int
	for _, e := range t.entries {
		label, ok := e.attrs[column]
		if !ok {
			continue
		}
		matched, err := matches(label, filter, values)
		if err != nil {
			return nil, err
		}
		if matched {
			ids = append(ids, e.id)
		}
	}
	return ids, nil
}

// matches applies one filter to one label value.
func matches(label string, filter FilterType, values []string) (bool, error) {
	switch filter {
	case FilterExact:
		return label == values[0], nil
	case FilterContains:
		return strings.Contains(label, values[0]), nil
	case FilterList:
		for _, v := range values {
			if label == v {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, errors.NewConfig("filter_type", "unknown filter type %q", filter)
	}
}
