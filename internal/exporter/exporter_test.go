package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procchain/internal/dataset"
	"procchain/internal/recording"
)

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)

	err := w.WriteCSV("features/out.csv", WriteOptions{
		Headers:   []string{"workpiece_id", "class_value"},
		Records:   [][]string{{"17401", "control_group_01"}},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "features", "out.csv"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	assert.Equal(t, "workpiece_id,class_value\n17401,control_group_01\n", string(data[3:]))
}

func TestAppendToCSV(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)

	require.NoError(t, w.WriteCSV("out.csv", WriteOptions{
		Headers: []string{"a", "b"},
		Records: [][]string{{"1", "2"}},
	}))
	require.NoError(t, w.AppendToCSV("out.csv", [][]string{{"3", "4"}}))

	data, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n3,4\n", string(data))
}

func TestStreamWriter(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)

	stream, err := w.CreateStreamWriter("stream.csv", []string{"h1", "h2"})
	require.NoError(t, err)
	require.NoError(t, stream.WriteRecord([]string{"1", "2"}))
	require.NoError(t, stream.WriteRecord([]string{"3", "4"}))
	require.NoError(t, stream.Close())

	data, err := os.ReadFile(filepath.Join(dir, "stream.csv"))
	require.NoError(t, err)
	assert.Equal(t, "h1,h2\n1,2\n3,4\n", string(data[3:]))
}

func newTestTable() *dataset.Table {
	row1 := recording.NewFeatureRow()
	row1.Add("upper-injection_injection_pressure_0", 1.5)
	row1.Add("upper-injection_injection_pressure_1", 3.5)
	row2 := recording.NewFeatureRow()
	row2.Add("upper-injection_injection_pressure_0", 2.0)

	return &dataset.Table{
		ClassColumn: "class_value",
		FeatureColumns: []string{
			"upper-injection_injection_pressure_0",
			"upper-injection_injection_pressure_1",
		},
		Rows: []dataset.Row{
			{WorkpieceID: 17401, Label: "control_group_01", Features: row1},
			{WorkpieceID: 17402, Label: "recyclate_content_10", Features: row2},
		},
	}
}

func TestExportTable(t *testing.T) {
	dir := t.TempDir()
	e := NewTableExporter(dir)

	require.NoError(t, e.ExportTable(newTestTable(), "features.csv"))

	data, err := os.ReadFile(filepath.Join(dir, "features.csv"))
	require.NoError(t, err)
	want := "workpiece_id,class_value,upper-injection_injection_pressure_0,upper-injection_injection_pressure_1\n" +
		"17401,control_group_01,1.5,3.5\n" +
		"17402,recyclate_content_10,2,\n"
	assert.Equal(t, want, string(data[3:]))
}

func TestExportTableStreamed(t *testing.T) {
	dir := t.TempDir()
	e := NewTableExporter(dir)

	require.NoError(t, e.ExportTableStreamed(newTestTable(), "features.csv"))

	direct := t.TempDir()
	require.NoError(t, NewTableExporter(direct).ExportTable(newTestTable(), "features.csv"))

	streamed, err := os.ReadFile(filepath.Join(dir, "features.csv"))
	require.NoError(t, err)
	whole, err := os.ReadFile(filepath.Join(direct, "features.csv"))
	require.NoError(t, err)
	assert.Equal(t, string(whole), string(streamed))
}
