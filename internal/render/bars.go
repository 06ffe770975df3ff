package render

import (
	"image/color"
	"slices"

	"github.com/hyp3rd/ewrap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/daryltucker/paclplot/internal/model"
	"github.com/daryltucker/paclplot/internal/sentinel"
)

// clusterWidth is the share of one nominal x slot taken by its bars.
const clusterWidth = 0.8

// Cluster is the pair of bar series drawn for one category.
type Cluster struct {
	Label    string // legend entry, e.g. "32 B"
	Baseline model.Series
	Variant  model.Series
}

// BarPanel describes a clustered bar chart over a nominal x axis.
type BarPanel struct {
	Title         string
	XLabel        string
	YLabel        string
	BaselineLabel string
	VariantLabel  string
	Clusters      []Cluster
}

// Bars builds the clustered bar chart. Every distinct x of any series becomes
// one nominal position labelled 2^k; within a position each cluster draws its
// baseline bar then its variant bar, with 95% error bars on both.
func Bars(th Theme, bp BarPanel) (*plot.Plot, error) {
	if len(bp.Clusters) == 0 {
		return nil, ewrap.Wrapf(sentinel.ErrEmptyInput, "bar panel %q has no clusters", bp.Title)
	}

	xs := nominal(bp.Clusters)
	if len(xs) == 0 {
		return nil, ewrap.Wrapf(sentinel.ErrEmptyInput, "bar panel %q has no points", bp.Title)
	}

	p := th.newPlot()
	p.Title.Text = bp.Title
	p.X.Label.Text = bp.XLabel
	p.Y.Label.Text = bp.YLabel
	p.Add(th.grid(false))

	slots := 2 * len(bp.Clusters)
	slot := clusterWidth / float64(slots)
	width := vg.Points(th.style.BarWidth)

	for c, cl := range bp.Clusters {
		fill := th.BarColor(c)
		for r, s := range []model.Series{cl.Baseline, cl.Variant} {
			offset := (float64(2*c+r) - float64(slots-1)/2) * slot

			values, errs := align(s.Points, xs, offset)
			bars, err := plotter.NewBarChart(values, width)
			if err != nil {
				return nil, ewrap.Wrapf(err, "bars %q", s.Label)
			}
			bars.XMin = offset
			th.styleBars(bars, fill, r == 1)

			p.Add(bars)

			if len(errs.XYs) == 0 {
				continue
			}
			eb, err := plotter.NewYErrorBars(errs)
			if err != nil {
				return nil, ewrap.Wrapf(err, "error bars %q", s.Label)
			}
			eb.LineStyle.Width = th.lineWidth() / 2
			eb.CapWidth = vg.Points(3)
			p.Add(eb)
		}

		if cl.Label != "" {
			p.Legend.Add(cl.Label, th.swatch(fill, false))
		}
	}

	if bp.BaselineLabel != "" {
		p.Legend.Add(bp.BaselineLabel, th.swatch(color.Gray{Y: 0x66}, false))
	}
	if bp.VariantLabel != "" {
		p.Legend.Add(bp.VariantLabel, th.swatch(color.White, true))
	}

	labels := make([]plot.Tick, len(xs))
	for i, x := range xs {
		labels[i] = plot.Tick{Value: float64(i), Label: TickLabel(x)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(labels)
	p.X.Min = -0.5
	p.X.Max = float64(len(xs)) - 0.5
	p.Y.Min = 0

	return p, nil
}

// styleBars fills baseline bars solid. Variant bars get a translucent fill and
// an edge in the cluster color.
func (th Theme) styleBars(b *plotter.BarChart, fill color.Color, variant bool) {
	if !variant {
		b.Color = fill
		b.LineStyle.Color = color.White
		b.LineStyle.Width = vg.Points(0.25)
		return
	}
	b.Color = th.Translucent(fill)
	b.LineStyle.Color = fill
	b.LineStyle.Width = vg.Points(0.75)
}

// swatch is a legend-only bar.
func (th Theme) swatch(fill color.Color, variant bool) *plotter.BarChart {
	b, _ := plotter.NewBarChart(plotter.Values{0}, vg.Points(th.style.BarWidth))
	th.styleBars(b, fill, variant)
	if variant {
		b.LineStyle.Color = color.Gray{Y: 0x33}
	}
	return b
}

// nominal returns the sorted distinct x values of every cluster.
func nominal(clusters []Cluster) []float64 {
	var xs []float64
	for _, cl := range clusters {
		for _, s := range []model.Series{cl.Baseline, cl.Variant} {
			for _, pt := range s.Points {
				xs = append(xs, pt.X)
			}
		}
	}
	slices.Sort(xs)
	return slices.Compact(xs)
}

type barErrors struct {
	plotter.XYs
	plotter.YErrors
}

// align lays the points out on the nominal positions, shifted by offset.
// A position the series has no point for gets a zero-height bar without
// error bar.
func align(points []model.Point, xs []float64, offset float64) (plotter.Values, barErrors) {
	values := make(plotter.Values, len(xs))
	var errs barErrors
	for _, pt := range points {
		i, ok := slices.BinarySearch(xs, pt.X)
		if !ok {
			continue
		}
		values[i] = pt.Mean
		errs.XYs = append(errs.XYs, plotter.XY{X: float64(i) + offset, Y: pt.Mean})
		errs.YErrors = append(errs.YErrors, struct{ Low, High float64 }{pt.Margin, pt.Margin})
	}
	return values, errs
}
