package labels

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"procchain/internal/errors"
)

// workbookSheets are the label sheets of the corpus workbook, in join order.
// Every sheet carries the shared workpiece id column; their remaining columns
// are merged into one row per workpiece, first sheet winning on collisions.
var workbookSheets = []string{"UPPER", "LOWER", "SCREW"}

// ExcelStore reads the class-label workbook directly, without the flattening
// step that produces the CSV table.
type ExcelStore struct {
	*table
}

// NewExcelStore loads and joins the label sheets of an Excel workbook.
func NewExcelStore(path string) (*ExcelStore, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParse(path, err)
	}
	defer f.Close()

	t := newTable()
	found := false
	for _, sheet := range workbookSheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			// Absent sheets are tolerated; the workbook may carry a subset.
			continue
		}
		found = true
		if err := mergeSheet(t, path, sheet, rows); err != nil {
			return nil, err
		}
	}
	if !found {
		return nil, errors.NewParse(path, fmt.Errorf("none of the sheets %v present", workbookSheets))
	}
	return &ExcelStore{table: t}, nil
}

// mergeSheet adds one sheet's rows to the table.
func mergeSheet(t *table, path, sheet string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	header := rows[0]
	idIdx := -1
	for i, col := range header {
		if strings.TrimSpace(col) == IDColumn {
			idIdx = i
			break
		}
	}
	if idIdx < 0 {
		return errors.NewParse(path, fmt.Errorf("sheet %s: missing column %q", sheet, IDColumn))
	}

	for _, row := range rows[1:] {
		if idIdx >= len(row) {
			continue
		}
		attrs := make(map[string]string, len(header))
		for i, col := range header {
			name := strings.TrimSpace(col)
			if name == "" || i >= len(row) {
				continue
			}
			attrs[name] = strings.TrimSpace(row[i])
		}
		t.add(row[idIdx], attrs)
	}
	return nil
}
