package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procchain/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDirResolver(t *testing.T) {
	r := DirResolver{Root: "/corpus"}

	assert.Equal(t,
		filepath.Join("/corpus", "injection_molding", "upper_workpiece", "static_data.csv"),
		r.StaticPath("upper-injection"))
	assert.Equal(t,
		filepath.Join("/corpus", "injection_molding", "lower_workpiece", "serial_data", "run.txt"),
		r.SerialPath("lower-injection", "run.txt"))
	assert.Equal(t,
		filepath.Join("/corpus", "screw_driving", "static_data.csv"),
		r.StaticPath("screw-left"))
	assert.Equal(t,
		filepath.Join("/corpus", "screw_driving", "static_data.csv"),
		r.StaticPath("screw-right"))
}

func TestFindStaticRow(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "static_data.csv",
		";upper_workpiece_id;file_name;class_value;workpiece_location\n"+
			"0;17401;run_17401.json;control_group_01;left\n"+
			"1;17401;run_17401_r.json;control_group_01;right\n"+
			"2;17402;run_17402.json;recyclate_content_10;left\n")

	t.Run("single match key", func(t *testing.T) {
		attrs, ok, err := FindStaticRow(path, ';', map[string]string{"upper_workpiece_id": "17402"})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "run_17402.json", attrs["file_name"])
		assert.Equal(t, "recyclate_content_10", attrs["class_value"])
	})

	t.Run("two match keys pick the position row", func(t *testing.T) {
		attrs, ok, err := FindStaticRow(path, ';', map[string]string{
			"upper_workpiece_id": "17401",
			"workpiece_location": "right",
		})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "run_17401_r.json", attrs["file_name"])
	})

	t.Run("no matching row", func(t *testing.T) {
		_, ok, err := FindStaticRow(path, ';', map[string]string{"upper_workpiece_id": "99999"})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("missing match column is a parse failure", func(t *testing.T) {
		_, _, err := FindStaticRow(path, ';', map[string]string{"serial_number": "1"})
		require.Error(t, err)
		assert.True(t, errors.IsParse(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := FindStaticRow(filepath.Join(dir, "nope.csv"), ';', nil)
		require.Error(t, err)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestParseSerialCSV(t *testing.T) {
	dir := t.TempDir()

	t.Run("parses all named columns", func(t *testing.T) {
		path := writeFile(t, dir, "cycle.csv",
			",time,injection_pressure_actual,melt_volume\n"+
				"0,0.0,100.5,10\n"+
				"1,0.1,101.0,11\n"+
				"2,0.2,99.5,12\n")

		series, err := ParseSerialCSV(path)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.0, 0.1, 0.2}, series["time"])
		assert.Equal(t, []float64{100.5, 101.0, 99.5}, series["injection_pressure_actual"])
		assert.Equal(t, []float64{10, 11, 12}, series["melt_volume"])
		_, hasIndex := series[""]
		assert.False(t, hasIndex)
	})

	t.Run("non-numeric cell is a parse failure", func(t *testing.T) {
		path := writeFile(t, dir, "bad.csv", ",time,state\n0,0.0,RUNNING\n")
		_, err := ParseSerialCSV(path)
		require.Error(t, err)
		assert.True(t, errors.IsParse(err))
	})
}

func TestParseSerialTXT(t *testing.T) {
	dir := t.TempDir()
	columns := []string{"time", "injection_pressure_target", "injection_pressure_actual", "melt_volume", "injection_velocity"}

	t.Run("skips preamble and parses data block", func(t *testing.T) {
		path := writeFile(t, dir, "cycle.txt",
			"machine: KM-125\n"+
				"operator: 7\n"+
				"-start data-\n"+
				"0.00;50.0;49.8;10.0;5.0\n"+
				"0.01;52.0;51.5;10.5;5.1\n"+
				"\n"+
				"0.02;54.0;53.9;11.0;5.2\n")

		series, err := ParseSerialTXT(path, columns)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.00, 0.01, 0.02}, series["time"])
		assert.Equal(t, []float64{49.8, 51.5, 53.9}, series["injection_pressure_actual"])
		assert.Len(t, series["melt_volume"], 3)
	})

	t.Run("missing marker is a parse failure", func(t *testing.T) {
		path := writeFile(t, dir, "nomarker.txt", "0.0;1;2;3;4\n")
		_, err := ParseSerialTXT(path, columns)
		require.Error(t, err)
		assert.True(t, errors.IsParse(err))
	})

	t.Run("wrong field count is a parse failure", func(t *testing.T) {
		path := writeFile(t, dir, "short.txt", "-start data-\n0.0;1;2\n")
		_, err := ParseSerialTXT(path, columns)
		require.Error(t, err)
		assert.True(t, errors.IsParse(err))
	})
}

func TestParseSerialJSON(t *testing.T) {
	dir := t.TempDir()

	t.Run("combines steps on a step-indexed grid", func(t *testing.T) {
		path := writeFile(t, dir, "run.json", `{
			"tightening steps": [
				{"graph": {
					"time values": [0.0, 0.1, 0.2],
					"torque values": [1.0, 1.5, 2.0],
					"angle values": [10, 20],
					"gradient values": [0.5, 0.5, 0.5]
				}},
				{"graph": {
					"time values": [0.3, 0.4],
					"torque values": [2.5, 3.0],
					"angle values": [30, 40],
					"gradient values": [0.4, 0.4]
				}}
			]
		}`)

		series, err := ParseSerialJSON(path)
		require.NoError(t, err)

		assert.Equal(t, []float64{1.0, 1.5, 2.0, 2.5, 3.0}, series["torque"])
		// Short angle array is held at its last value inside step one.
		assert.Equal(t, []float64{10, 20, 20, 30, 40}, series["angle"])
		assert.Equal(t, []float64{1, 1, 1, 2, 2}, series[StepSeries])
		// Absent torqueRed comes back as an all-zero series on the same grid.
		assert.Equal(t, []float64{0, 0, 0, 0, 0}, series["torqueRed"])
	})

	t.Run("malformed JSON is a parse failure", func(t *testing.T) {
		path := writeFile(t, dir, "bad.json", "{not json")
		_, err := ParseSerialJSON(path)
		require.Error(t, err)
		assert.True(t, errors.IsParse(err))
	})

	t.Run("no steps is a parse failure", func(t *testing.T) {
		path := writeFile(t, dir, "empty.json", `{"tightening steps": []}`)
		_, err := ParseSerialJSON(path)
		require.Error(t, err)
		assert.True(t, errors.IsParse(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseSerialJSON(filepath.Join(dir, "nope.json"))
		require.Error(t, err)
		assert.True(t, os.IsNotExist(err))
	})
}
