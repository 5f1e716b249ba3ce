package source

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"procchain/internal/errors"
)

// FindStaticRow scans a delimited static-attribute index for the first row
// whose columns match every (column, value) pair in match. It returns the
// row as StaticAttributes and whether a match was found. A leading unnamed
// column (a written-out row index) is skipped.
func FindStaticRow(path string, comma rune, match map[string]string) (StaticAttributes, bool, error) {
	records, header, err := readDelimited(path, comma)
	if err != nil {
		return nil, false, err
	}

	for _, col := range sortedKeys(match) {
		if columnIndex(header, col) < 0 {
			return nil, false, errors.NewParse(path, fmt.Errorf("missing column %q", col))
		}
	}

	for _, record := range records {
		if !rowMatches(header, record, match) {
			continue
		}
		attrs := make(StaticAttributes, len(header))
		for i, col := range header {
			if col == "" || i >= len(record) {
				continue
			}
			attrs[col] = strings.TrimSpace(record[i])
		}
		return attrs, true, nil
	}
	return nil, false, nil
}

// ParseSerialCSV reads a comma-delimited cycle file into named series. The
// header names the columns; a leading unnamed column is treated as a row
// index and skipped. Every data cell must be numeric.
func ParseSerialCSV(path string) (SerialSeries, error) {
	records, header, err := readDelimited(path, ',')
	if err != nil {
		return nil, err
	}

	series := make(SerialSeries, len(header))
	for i, col := range header {
		if col == "" {
			continue
		}
		values := make([]float64, 0, len(records))
		for line, record := range records {
			if i >= len(record) {
				return nil, errors.NewParse(path, fmt.Errorf("row %d has %d fields, want %d", line+2, len(record), len(header)))
			}
			v, err := parseNumber(record[i])
			if err != nil {
				return nil, errors.NewParse(path, fmt.Errorf("column %q row %d: %w", col, line+2, err))
			}
			values = append(values, v)
		}
		series[col] = values
	}
	return series, nil
}

// readDelimited reads a delimited file and splits off its header row. Rows
// may have varying field counts; validation is the caller's concern.
func readDelimited(path string, comma rune) ([][]string, []string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.NewParse(path, err)
	}
	if len(records) == 0 {
		return nil, nil, errors.NewParse(path, fmt.Errorf("empty file"))
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.TrimSpace(col)
	}
	return records[1:], header, nil
}

// rowMatches reports whether the record satisfies every match pair.
func rowMatches(header []string, record []string, match map[string]string) bool {
	for col, want := range match {
		idx := columnIndex(header, col)
		if idx < 0 || idx >= len(record) {
			return false
		}
		if strings.TrimSpace(record[idx]) != want {
			return false
		}
	}
	return true
}

// columnIndex returns the position of a named column, -1 when absent.
func columnIndex(header []string, name string) int {
	for i, col := range header {
		if col == name {
			return i
		}
	}
	return -1
}

// parseNumber parses a numeric cell, tolerating thousands separators.
func parseNumber(cell string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty numeric cell")
	}
	return strconv.ParseFloat(cleaned, 64)
}

// sortedKeys returns map keys in deterministic order.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
