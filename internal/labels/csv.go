package labels

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"procchain/internal/errors"
)

// CSVStore reads the flattened class-label table. Rows keep file order; the
// leading unnamed index column the flattening writes out is skipped.
type CSVStore struct {
	*table
}

// NewCSVStore loads the label table from a comma-delimited file.
func NewCSVStore(path string) (*CSVStore, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open class values: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParse(path, err)
	}
	if len(records) == 0 {
		return nil, errors.NewParse(path, fmt.Errorf("empty file"))
	}

	header := records[0]
	idIdx := -1
	for i, col := range header {
		if strings.TrimSpace(col) == IDColumn {
			idIdx = i
			break
		}
	}
	if idIdx < 0 {
		return nil, errors.NewParse(path, fmt.Errorf("missing column %q", IDColumn))
	}

	t := newTable()
	for _, record := range records[1:] {
		if idIdx >= len(record) {
			continue
		}
		attrs := make(map[string]string, len(header))
		for i, col := range header {
			name := strings.TrimSpace(col)
			if name == "" || i >= len(record) {
				continue
			}
			attrs[name] = strings.TrimSpace(record[i])
		}
		t.add(record[idIdx], attrs)
	}
	return &CSVStore{table: t}, nil
}
