package recording

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procchain/internal/config"
	"procchain/internal/errors"
	"procchain/internal/features"
	"procchain/internal/source"
)

func TestKindNames(t *testing.T) {
	assert.Equal(t, []Kind{UpperInjection, LowerInjection, ScrewLeft, ScrewRight}, AllKinds())

	for _, k := range AllKinds() {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("milling")
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))
}

func TestFeatureRow(t *testing.T) {
	row := NewFeatureRow()
	row.Add("b", 2)
	row.Add("a", 1)
	row.Add("b", 20)

	assert.Equal(t, []string{"b", "a"}, row.Columns())
	v, ok := row.Value("b")
	require.True(t, ok)
	assert.Equal(t, 20.0, v)

	other := NewFeatureRow()
	other.Add("c", 3)
	row.Merge(other)
	assert.Equal(t, []string{"b", "a", "c"}, row.Columns())
	assert.Equal(t, 3, row.Len())
}

func extractionYAML(t *testing.T, doc string) config.Extraction {
	t.Helper()
	ext, err := config.ParseExtraction([]byte(doc))
	require.NoError(t, err)
	return ext
}

func TestGetDataPAATruncation(t *testing.T) {
	rec := &Recording{
		WorkpieceID: 17401,
		Kind:        UpperInjection,
		Serial:      source.SerialSeries{"injection_pressure": {1, 2, 3, 4, 5}},
	}
	pre, err := config.ParsePreprocessing([]byte(`
upper-injection:
  injection_pressure:
    equal_lengths:
      target_length: 4
      cutoff_position: post
      padding_value: 0.0
`))
	require.NoError(t, err)
	ext := extractionYAML(t, `
upper-injection:
  injection_pressure:
    use_series: true
    method: paa
    segments: 2
`)

	row, err := rec.GetData(context.Background(), pre, ext, features.NewExtractor())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"upper-injection_injection_pressure_0",
		"upper-injection_injection_pressure_1",
	}, row.Columns())
	v0, _ := row.Value("upper-injection_injection_pressure_0")
	v1, _ := row.Value("upper-injection_injection_pressure_1")
	assert.Equal(t, 1.5, v0)
	assert.Equal(t, 3.5, v1)
}

func TestGetDataMissingSeries(t *testing.T) {
	rec := &Recording{
		WorkpieceID: 17401,
		Kind:        UpperInjection,
		Serial:      source.SerialSeries{},
	}
	ext := extractionYAML(t, `
upper-injection:
  injection_pressure:
    use_series: true
    method: paa
    segments: 2
`)

	row, err := rec.GetData(context.Background(), config.Preprocessing{}, ext, features.NewExtractor())
	require.NoError(t, err)
	assert.Zero(t, row.Len())
}

func TestGetDataEmptySeriesContributesNothing(t *testing.T) {
	rec := &Recording{
		WorkpieceID: 17401,
		Kind:        UpperInjection,
		Serial:      source.SerialSeries{"melt_volume": {}},
	}
	ext := extractionYAML(t, `
upper-injection:
  melt_volume:
    use_series: true
    method: statistical
`)

	row, err := rec.GetData(context.Background(), config.Preprocessing{}, ext, features.NewExtractor())
	require.NoError(t, err)
	assert.Zero(t, row.Len())
}

func TestGetDataStaticPassthrough(t *testing.T) {
	rec := &Recording{
		WorkpieceID: 17401,
		Kind:        LowerInjection,
		Static: source.StaticAttributes{
			"mold_temperature": "83.5",
			"material_batch":   "B-204",
		},
		Serial: source.SerialSeries{},
	}
	ext := extractionYAML(t, `
lower-injection:
  mold_temperature:
    use_series: true
  material_batch:
    use_series: true
`)

	row, err := rec.GetData(context.Background(), config.Preprocessing{}, ext, features.NewExtractor())
	require.NoError(t, err)

	// Non-numeric static attribute is skipped, not fatal.
	assert.Equal(t, []string{"lower-injection_mold_temperature"}, row.Columns())
	v, _ := row.Value("lower-injection_mold_temperature")
	assert.Equal(t, 83.5, v)
}

func TestGetDataDegenerateSeriesIsSkipped(t *testing.T) {
	rec := &Recording{
		WorkpieceID: 17401,
		Kind:        UpperInjection,
		Serial: source.SerialSeries{
			"injection_velocity":        {5, 5, 5, 5},
			"injection_pressure_actual": {1, 2, 3, 4},
		},
	}
	ext := extractionYAML(t, `
upper-injection:
  injection_velocity:
    use_series: true
    method: statistical
    normalize: true
  injection_pressure_actual:
    use_series: true
    method: raw
`)

	row, err := rec.GetData(context.Background(), config.Preprocessing{}, ext, features.NewExtractor())
	require.NoError(t, err)

	// Zero variance under normalize drops the velocity columns only.
	assert.Equal(t, []string{
		"upper-injection_injection_pressure_actual_0",
		"upper-injection_injection_pressure_actual_1",
		"upper-injection_injection_pressure_actual_2",
		"upper-injection_injection_pressure_actual_3",
	}, row.Columns())
}

func TestGetDataColumnOrderFollowsSchema(t *testing.T) {
	rec := &Recording{
		WorkpieceID: 17401,
		Kind:        UpperInjection,
		Static:      source.StaticAttributes{"cycle_time": "31.2"},
		Serial: source.SerialSeries{
			"melt_volume":               {1, 2},
			"injection_pressure_actual": {3, 4},
		},
	}
	ext := extractionYAML(t, `
upper-injection:
  melt_volume:
    use_series: true
    method: paa
    segments: 1
  injection_pressure_actual:
    use_series: true
    method: paa
    segments: 1
  cycle_time:
    use_series: true
`)

	row, err := rec.GetData(context.Background(), config.Preprocessing{}, ext, features.NewExtractor())
	require.NoError(t, err)

	// Schema order (pressure before volume), static names after.
	assert.Equal(t, []string{
		"upper-injection_injection_pressure_actual_0",
		"upper-injection_melt_volume_0",
		"upper-injection_cycle_time",
	}, row.Columns())
}

func TestGetDataStatisticalColumnNames(t *testing.T) {
	rec := &Recording{
		WorkpieceID: 17401,
		Kind:        ScrewLeft,
		Serial:      source.SerialSeries{"torque": {1, 2, 3, 4}},
	}
	ext := extractionYAML(t, `
screw-left:
  torque:
    use_series: true
    method: statistical
`)

	row, err := rec.GetData(context.Background(), config.Preprocessing{}, ext, features.NewExtractor())
	require.NoError(t, err)

	cols := row.Columns()
	require.NotEmpty(t, cols)
	assert.Equal(t, "screw-left_torque_length", cols[0])
	mean, ok := row.Value("screw-left_torque_mean")
	require.True(t, ok)
	assert.Equal(t, 2.5, mean)
}

func writeCorpusFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestCorpus(t *testing.T) (string, *Loader) {
	t.Helper()
	root := t.TempDir()

	writeCorpusFile(t, root, "injection_molding/upper_workpiece/static_data.csv",
		";upper_workpiece_id;file_name;mold_temperature\n"+
			"0;17401;17401.csv;83.5\n"+
			"1;17402;17402.csv;84.0\n")
	writeCorpusFile(t, root, "injection_molding/upper_workpiece/serial_data/17401.csv",
		",time,injection_pressure_actual\n"+
			"0,0.0,100.0\n"+
			"1,0.1,101.0\n")
	writeCorpusFile(t, root, "injection_molding/upper_workpiece/serial_data/17402.csv",
		"time;broken\n\"unterminated\n")

	writeCorpusFile(t, root, "injection_molding/lower_workpiece/static_data.csv",
		";lower_workpiece_id;file_name\n"+
			"0;17401;17401.txt\n"+
			"1;17409;missing.txt\n")
	writeCorpusFile(t, root, "injection_molding/lower_workpiece/serial_data/17401.txt",
		"header noise\n-start data-\n0.0;50;49.8;10;5\n0.01;52;51.5;10.5;5.1\n")

	writeCorpusFile(t, root, "screw_driving/static_data.csv",
		";upper_workpiece_id;workpiece_location;file_name;class_value\n"+
			"0;17401;left;17401_l.json;control_group_01\n"+
			"1;17401;right;17401_r.json;control_group_01\n")
	writeCorpusFile(t, root, "screw_driving/serial_data/17401_l.json",
		`{"tightening steps": [{"graph": {"time values": [0.0, 0.1], "torque values": [1.0, 2.0]}}]}`)

	return root, NewLoader(source.DirResolver{Root: root}, nil)
}

func TestLoaderLoad(t *testing.T) {
	_, loader := newTestCorpus(t)
	ctx := context.Background()

	t.Run("upper injection", func(t *testing.T) {
		rec, err := loader.Load(ctx, 17401, UpperInjection)
		require.NoError(t, err)
		assert.Equal(t, 17401, rec.WorkpieceID)
		assert.Equal(t, UpperInjection, rec.Kind)
		assert.Equal(t, "83.5", rec.Static["mold_temperature"])
		assert.Equal(t, []float64{100.0, 101.0}, rec.Serial["injection_pressure_actual"])
		// Schema series missing from the file are present but empty.
		assert.Empty(t, rec.Serial["melt_volume"])
		assert.Contains(t, rec.Serial, "melt_volume")
	})

	t.Run("lower injection", func(t *testing.T) {
		rec, err := loader.Load(ctx, 17401, LowerInjection)
		require.NoError(t, err)
		assert.Equal(t, []float64{49.8, 51.5}, rec.Serial["injection_pressure_actual"])
	})

	t.Run("screw positions resolve distinct rows", func(t *testing.T) {
		rec, err := loader.Load(ctx, 17401, ScrewLeft)
		require.NoError(t, err)
		assert.Equal(t, "control_group_01", rec.Static["class_value"])
		assert.Equal(t, []float64{1.0, 2.0}, rec.Serial["torque"])
		assert.Equal(t, []float64{1, 1}, rec.Serial["step"])

		_, err = loader.Load(ctx, 17401, ScrewRight)
		// The right row points at a file the corpus does not have.
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("unknown workpiece", func(t *testing.T) {
		_, err := loader.Load(ctx, 99999, UpperInjection)
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("missing serial file", func(t *testing.T) {
		_, err := loader.Load(ctx, 17409, LowerInjection)
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("corrupt serial file", func(t *testing.T) {
		_, err := loader.Load(ctx, 17402, UpperInjection)
		require.Error(t, err)
		assert.True(t, errors.IsParse(err))
		assert.False(t, errors.IsNotFound(err))
	})
}
