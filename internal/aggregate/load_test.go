package aggregate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/paclplot/internal/model"
	"github.com/daryltucker/paclplot/internal/sentinel"
)

func TestLoad(t *testing.T) {
	schema := model.Schema{
		Independent:  "num_keys",
		Categories:   []string{"num_subkeys"},
		Measurements: []string{"baseline_us"},
	}

	records, err := Load(strings.NewReader(`[
		{"num_keys": 1, "num_subkeys": 10, "baseline_us": [1, 2, 3], "extra": true},
		{"num_keys": 2, "num_subkeys": 10, "baseline_us": [4, 5, 6]}
	]`), schema)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[1].Index)

	x, err := Number(records[1], "num_keys")
	require.NoError(t, err)
	assert.Equal(t, 2.0, x)

	values, err := Measurements(records[0], "baseline_us")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, values)
}

func TestLoadErrors(t *testing.T) {
	schema := model.Schema{Independent: "n", Measurements: []string{"t"}}

	tests := []struct {
		name    string
		input   string
		want    error
		message string
	}{
		{name: "invalid json", input: `[{"n":1,`, want: sentinel.ErrParse},
		{name: "object", input: `{"n":1,"t":[1]}`, want: sentinel.ErrParse},
		{name: "null", input: `null`, want: sentinel.ErrParse},
		{name: "trailing data", input: `[{"n":1,"t":[1]}] this is not json {`, want: sentinel.ErrParse, message: "trailing data"},
		{name: "two arrays", input: `[{"n":1,"t":[1]}][{"n":2}]`, want: sentinel.ErrParse, message: "trailing data"},
		{name: "array of numbers", input: `[1,2]`, want: sentinel.ErrParse, message: "record 0"},
		{name: "missing in first", input: `[{"n":1}]`, want: sentinel.ErrSchema, message: `record 0: missing field "t"`},
		{name: "missing in later", input: `[{"n":1,"t":[1]},{"t":[2]}]`, want: sentinel.ErrSchema, message: `record 1: missing field "n"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input), schema)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestLoadTrailingWhitespace(t *testing.T) {
	records, err := Load(strings.NewReader("[{\"n\":1,\"t\":[1]}]\n\n"), model.Schema{Independent: "n"})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLoadEmptyArray(t *testing.T) {
	records, err := Load(strings.NewReader(`[]`), model.Schema{Independent: "n"})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"n":1,"t":[1]}]`), 0o644))

	records, err := LoadFile(path, model.Schema{Independent: "n"})
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"), model.Schema{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCategoryOf(t *testing.T) {
	records := load(t, `[{"a":16,"b":"express","c":false,"d":[1]}]`)

	c, err := CategoryOf(records[0], "a")
	require.NoError(t, err)
	assert.Equal(t, model.Category("16"), c)

	c, err = CategoryOf(records[0], "b")
	require.NoError(t, err)
	assert.Equal(t, model.Category("express"), c)

	c, err = CategoryOf(records[0], "c")
	require.NoError(t, err)
	assert.Equal(t, model.Category("false"), c)

	_, err = CategoryOf(records[0], "d")
	assert.True(t, errors.Is(err, sentinel.ErrSchema))
}
