package aggregate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/paclplot/internal/model"
	"github.com/daryltucker/paclplot/internal/sentinel"
)

const fssFixture = `[
	{"num_keys": 4, "num_subkeys": 10, "pacl_us": [40, 40]},
	{"num_keys": 1, "num_subkeys": 10, "pacl_us": [10, 10]},
	{"num_keys": 3, "num_subkeys": 10, "pacl_us": [30, 30]},
	{"num_keys": 4, "num_subkeys": 1,  "pacl_us": [8, 8]},
	{"num_keys": 1, "num_subkeys": 1,  "pacl_us": [2, 2]},
	{"num_keys": 3, "num_subkeys": 1,  "pacl_us": [6, 6]}
]`

func TestAggregatorGroupedSeries(t *testing.T) {
	records := load(t, fssFixture)
	agg := New(model.Schema{Independent: "num_keys"}, Pipeline{Ticks: []float64{1, 2, 4}})

	series, err := agg.GroupedSeries(records, "num_subkeys", "pacl_us", "w/ PACL (l = {group})")
	require.NoError(t, err)
	require.Len(t, series, 2)

	assert.Equal(t, "w/ PACL (l = 1)", series[0].Label)
	assert.Equal(t, model.Category("1"), series[0].Category)
	assert.Equal(t, []float64{1, 4}, xs(series[0].Points))
	assert.Equal(t, []float64{2, 8}, means(series[0].Points))

	assert.Equal(t, "w/ PACL (l = 10)", series[1].Label)
	assert.Equal(t, []float64{10, 40}, means(series[1].Points))
}

func TestAggregatorPipeline(t *testing.T) {
	records := load(t, fssFixture)
	agg := New(model.Schema{Independent: "num_keys"}, Pipeline{
		Exclude:  []float64{3},
		Amortize: true,
		Scale:    0.5,
	})

	series, err := agg.GroupedSeries(records, "num_subkeys", "pacl_us", "pacl")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4}, xs(series[1].Points))
	assert.Equal(t, []float64{5, 5}, means(series[1].Points))
}

func TestAggregatorScalarSeries(t *testing.T) {
	records := load(t, `[{"n":2,"e":4},{"n":1,"e":3}]`)
	agg := New(model.Schema{Independent: "n"}, Pipeline{})

	s, err := agg.ScalarSeries(records, "e", "exp")
	require.NoError(t, err)
	assert.Equal(t, "exp", s.Label)
	assert.Equal(t, []float64{1, 2}, xs(s.Points))
	assert.Equal(t, []float64{3, 4}, means(s.Points))
}

func TestAggregatorAmortizeZeroX(t *testing.T) {
	records := load(t, `[{"n":0,"t":[5,5]},{"n":2,"t":[4,4]}]`)
	agg := New(model.Schema{Independent: "n"}, Pipeline{Amortize: true})

	_, err := agg.Series(records, "t", "pacl")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel.ErrSchema))
	assert.Contains(t, err.Error(), `series "pacl"`)
}

func xs(points []model.Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.X
	}
	return out
}

func means(points []model.Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Mean
	}
	return out
}
