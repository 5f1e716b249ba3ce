package source

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"procchain/internal/errors"
)

// dataMarker separates the free-form preamble of a lower injection molding
// cycle file from its measurement block.
const dataMarker = "-start data-"

// ParseSerialTXT reads a semicolon-delimited cycle file whose measurement
// block starts after the "-start data-" marker line. Each data line holds one
// sample with the given column order; empty lines are skipped.
func ParseSerialTXT(path string, columns []string) (SerialSeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	series := make(SerialSeries, len(columns))
	for _, col := range columns {
		series[col] = []float64{}
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inData := false
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if !inData {
			if strings.Contains(line, dataMarker) {
				inData = true
			}
			continue
		}
		if line == "" {
			continue
		}

		fields := strings.Split(line, ";")
		if len(fields) != len(columns) {
			return nil, errors.NewParse(path, fmt.Errorf("line %d has %d fields, want %d", lineNum, len(fields), len(columns)))
		}
		for i, col := range columns {
			v, err := parseNumber(fields[i])
			if err != nil {
				return nil, errors.NewParse(path, fmt.Errorf("line %d column %q: %w", lineNum, col, err))
			}
			series[col] = append(series[col], v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewParse(path, err)
	}
	if !inData {
		return nil, errors.NewParse(path, fmt.Errorf("missing %q marker", dataMarker))
	}

	return series, nil
}
