package render

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/paclplot/internal/config"
	"github.com/daryltucker/paclplot/internal/model"
	"github.com/daryltucker/paclplot/internal/sentinel"
)

func theme(t *testing.T) Theme {
	t.Helper()
	th, err := NewTheme(config.DefaultStyle())
	require.NoError(t, err)
	return th
}

func series(label string, points ...model.Point) model.Series {
	return model.Series{Label: label, Points: points}
}

func pt(x, mean, margin float64) model.Point {
	return model.Point{X: x, Statistic: model.Statistic{Mean: mean, Margin: margin, N: 10}}
}

func linePanel() LinePanel {
	return LinePanel{
		Title:  "DPF-PACL",
		XLabel: "Number of evaluations",
		YLabel: "CPU time",
		LogX:   true,
		Ticks:  []float64{1, 2, 4, 8},
		Lines: []Line{
			{Series: series("FSS (baseline)", pt(1, 10, 1), pt(2, 20, 1), pt(4, 40, 2), pt(8, 80, 3))},
			{Series: series("w/ PACL (l = 10)", pt(1, 15, 1), pt(2, 30, 2), pt(4, 60, 3), pt(8, 120, 4)), Color: 1, Marker: 1, Band: true},
			{Series: series("Exponentiation", pt(1, 5, 0), pt(8, 5, 0)), Reference: true},
		},
	}
}

func TestTickLabel(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{1, "2⁰"},
		{1024, "2¹⁰"},
		{16384, "2¹⁴"},
		{2097152, "2²¹"},
		{3, "3"},
		{0.5, "0.5"},
		{0, "0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TickLabel(tt.v), "value %g", tt.v)
	}
}

func TestParseHex(t *testing.T) {
	c, err := parseHex("#08519c")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x08, G: 0x51, B: 0x9c, A: 255}, c)

	c, err = parseHex("#333")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}, c)

	for _, bad := range []string{"", "#12", "#gggggg", "#1234567"} {
		_, err := parseHex(bad)
		assert.True(t, errors.Is(err, sentinel.ErrInvalidConfig), "input %q", bad)
	}
}

func TestNewThemeRejectsBadStyle(t *testing.T) {
	style := config.DefaultStyle()
	style.FontVariant = "Comic"
	_, err := NewTheme(style)
	assert.True(t, errors.Is(err, sentinel.ErrInvalidConfig))

	style = config.DefaultStyle()
	style.Markers = []string{"star"}
	_, err = NewTheme(style)
	assert.True(t, errors.Is(err, sentinel.ErrInvalidConfig))

	style = config.DefaultStyle()
	style.Colors = []string{"blue"}
	_, err = NewTheme(style)
	assert.True(t, errors.Is(err, sentinel.ErrInvalidConfig))
}

func TestThemeColorFallsBackToPalette(t *testing.T) {
	style := config.DefaultStyle()
	style.Colors = []string{"#000000"}
	th, err := NewTheme(style)
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{A: 255}, th.Color(0))
	assert.NotNil(t, th.Color(1))
	assert.Equal(t, th.Color(1), th.Color(10))
}

func TestThemeTranslucent(t *testing.T) {
	th := theme(t)
	c := th.Translucent(color.NRGBA{R: 255, A: 255}).(color.NRGBA)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(38), c.A)
}

func TestThemeIsPerCall(t *testing.T) {
	sans := config.DefaultStyle()
	sans.FontVariant = "Sans"
	sans.FontSize = 12

	a, err := NewTheme(config.DefaultStyle())
	require.NoError(t, err)
	b, err := NewTheme(sans)
	require.NoError(t, err)

	pa, err := Lines(a, linePanel())
	require.NoError(t, err)
	pb, err := Lines(b, linePanel())
	require.NoError(t, err)

	assert.EqualValues(t, "Serif", pa.Legend.TextStyle.Font.Variant)
	assert.EqualValues(t, "Sans", pb.Legend.TextStyle.Font.Variant)
	assert.NotEqual(t, pa.Legend.TextStyle.Font.Size, pb.Legend.TextStyle.Font.Size)
}

func TestBandXYs(t *testing.T) {
	xys := bandXYs([]model.Point{pt(1, 10, 1), pt(2, 20, 2)})
	require.Len(t, xys, 4)
	assert.Equal(t, 11.0, xys[0].Y)
	assert.Equal(t, 22.0, xys[1].Y)
	assert.Equal(t, 18.0, xys[2].Y)
	assert.Equal(t, 9.0, xys[3].Y)
}

func TestLinesRejectsNonPositiveLogX(t *testing.T) {
	lp := linePanel()
	lp.Lines[0].Series.Points[0].X = 0

	_, err := Lines(theme(t), lp)
	assert.True(t, errors.Is(err, sentinel.ErrSchema))
}

func TestLinesRejectsEmptyPanel(t *testing.T) {
	lp := linePanel()
	for i := range lp.Lines {
		lp.Lines[i].Series.Points = nil
	}

	_, err := Lines(theme(t), lp)
	assert.True(t, errors.Is(err, sentinel.ErrEmptyInput))
}

func TestInsetKeepsWindow(t *testing.T) {
	w := Window{XMin: 2, XMax: 4, YMin: -10, YMax: 50}
	p, err := Inset(theme(t), linePanel(), w)
	require.NoError(t, err)

	assert.Equal(t, 2.0, p.X.Min)
	assert.Equal(t, 4.0, p.X.Max)
	assert.Equal(t, -10.0, p.Y.Min)
	assert.Equal(t, 50.0, p.Y.Max)
}

func TestAlignBars(t *testing.T) {
	values, errs := align([]model.Point{pt(4, 40, 2), pt(16, 160, 3)}, []float64{4, 8, 16}, 0.1)

	assert.Equal(t, []float64{40, 0, 160}, []float64(values))
	require.Len(t, errs.XYs, 2)
	assert.InDelta(t, 2.1, errs.XYs[1].X, 1e-12)
	low, high := errs.YError(1)
	assert.Equal(t, 3.0, low)
	assert.Equal(t, 3.0, high)
}

func TestBarsRejectsEmpty(t *testing.T) {
	_, err := Bars(theme(t), BarPanel{})
	assert.True(t, errors.Is(err, sentinel.ErrEmptyInput))
}

func TestSaveSVG(t *testing.T) {
	th := theme(t)

	lp := linePanel()
	lp.Annotation = &Annotation{X: 8, From: 80, To: 120, Ratio: 1.5}
	lp.Zoom = &Window{XMin: 6, XMax: 8, YMin: 70, YMax: 130}

	panel, err := Lines(th, lp)
	require.NoError(t, err)
	inset, err := Inset(th, lp, *lp.Zoom)
	require.NoError(t, err)

	bars, err := Bars(th, BarPanel{
		XLabel:        "Database size",
		BaselineLabel: "PIR",
		VariantLabel:  "PIR w/ VDPF-PACL",
		Clusters: []Cluster{
			{Label: "32 B", Baseline: series("PIR", pt(524288, 10, 1), pt(1048576, 20, 1)), Variant: series("PACL", pt(524288, 12, 1), pt(1048576, 24, 1))},
			{Label: "64 B", Baseline: series("PIR", pt(524288, 15, 1), pt(1048576, 30, 1)), Variant: series("PACL", pt(524288, 17, 1), pt(1048576, 34, 1))},
		},
	})
	require.NoError(t, err)

	w, h := Size(4, 1.75)
	path := filepath.Join(t.TempDir(), "out", "figure.svg")
	require.NoError(t, Save(path, Figure{
		Width:  w,
		Height: h,
		Panels: []Panel{{Plot: panel, Inset: inset}, {Plot: bars}},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(string(data)), "<?xml") || strings.Contains(string(data), "<svg"))
}

func TestSaveFailureWritesNothing(t *testing.T) {
	th := theme(t)
	p, err := Lines(th, linePanel())
	require.NoError(t, err)

	w, h := Size(4, 2)
	dir := t.TempDir()

	for _, name := range []string{"figure.doc", "figure"} {
		path := filepath.Join(dir, name)
		err := Save(path, Figure{Width: w, Height: h, Panels: []Panel{{Plot: p}}})
		assert.True(t, errors.Is(err, sentinel.ErrInvalidConfig), name)
		assert.NoFileExists(t, path)
	}

	path := filepath.Join(dir, "empty.svg")
	err = Save(path, Figure{Width: w, Height: h})
	assert.True(t, errors.Is(err, sentinel.ErrEmptyInput))
	assert.NoFileExists(t, path)
}
