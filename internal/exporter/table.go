package exporter

import (
	"fmt"

	"procchain/internal/dataset"
)

// TableExporter renders extracted feature tables to disk.
type TableExporter struct {
	writer *CSVWriter
}

// NewTableExporter creates an exporter writing under the output directory.
func NewTableExporter(outputDir string) *TableExporter {
	return &TableExporter{writer: NewCSVWriter(outputDir)}
}

// ExportTable writes the whole table in one call.
func (e *TableExporter) ExportTable(table *dataset.Table, filePath string) error {
	records := table.Records()
	return e.writer.WriteCSV(filePath, WriteOptions{
		Headers:   records[0],
		Records:   records[1:],
		BOMPrefix: true,
	})
}

// ExportTableStreamed writes the table row by row, keeping memory flat for
// wide raw-passthrough extractions.
func (e *TableExporter) ExportTableStreamed(table *dataset.Table, filePath string) error {
	records := table.Records()
	stream, err := e.writer.CreateStreamWriter(filePath, records[0])
	if err != nil {
		return err
	}
	for i, record := range records[1:] {
		if err := stream.WriteRecord(record); err != nil {
			stream.Close()
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	return stream.Close()
}
