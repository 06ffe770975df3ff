package render

import (
	"image/color"

	"github.com/hyp3rd/ewrap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/daryltucker/paclplot/internal/model"
	"github.com/daryltucker/paclplot/internal/sentinel"
)

// Line is one series of a line panel.
type Line struct {
	Series model.Series
	Color  int  // theme color index
	Marker int  // theme marker index
	Band   bool // shade mean ± margin
	Dashed bool
	// Reference lines are dashed, unmarked and drawn in the reference color.
	Reference bool
}

// Annotation marks the ratio between two means at one x position.
type Annotation struct {
	X     float64
	From  float64
	To    float64
	Ratio float64
}

// Window is a fixed data range.
type Window struct {
	XMin, XMax float64
	YMin, YMax float64
}

// LinePanel describes one set of axes with line series.
type LinePanel struct {
	Title  string
	XLabel string
	YLabel string
	LogX   bool
	Ticks  []float64 // canonical x ticks; empty means automatic
	Lines  []Line

	Annotation *Annotation
	// Zoom outlines this window on the panel; see Inset.
	Zoom *Window
}

// Lines builds the plot for one line panel.
func Lines(th Theme, lp LinePanel) (*plot.Plot, error) {
	p := th.newPlot()
	p.Title.Text = lp.Title
	p.X.Label.Text = lp.XLabel
	p.Y.Label.Text = lp.YLabel
	p.Add(th.grid(true))

	if err := th.axis(p, lp); err != nil {
		return nil, err
	}

	drawn, err := th.addLines(p, lp.Lines, true)
	if err != nil {
		return nil, err
	}
	if drawn == 0 {
		return nil, ewrap.Wrapf(sentinel.ErrEmptyInput, "panel %q has no points", lp.Title)
	}

	if lp.Annotation != nil {
		if err := th.annotate(p, *lp.Annotation); err != nil {
			return nil, err
		}
	}

	if lp.Zoom != nil {
		outline, err := windowOutline(*lp.Zoom)
		if err != nil {
			return nil, err
		}
		p.Add(outline)
	}

	return p, nil
}

// Inset builds a zoomed copy of a line panel limited to w, without ticks,
// labels or legend.
func Inset(th Theme, lp LinePanel, w Window) (*plot.Plot, error) {
	if lp.LogX && w.XMin <= 0 {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidConfig, "inset x range [%g, %g] on a log axis", w.XMin, w.XMax)
	}

	p := th.newPlot()
	if lp.LogX {
		p.X.Scale = plot.LogScale{}
	}
	p.X.Min, p.X.Max = w.XMin, w.XMax
	p.Y.Min, p.Y.Max = w.YMin, w.YMax
	p.X.Tick.Marker = plot.ConstantTicks(nil)
	p.Y.Tick.Marker = plot.ConstantTicks(nil)
	p.BackgroundColor = color.White

	lines := make([]Line, len(lp.Lines))
	for i, l := range lp.Lines {
		l.Band = false
		lines[i] = l
	}
	if _, err := th.addLines(p, lines, false); err != nil {
		return nil, err
	}

	// Adding data widens the axes; the window is fixed.
	p.X.Min, p.X.Max = w.XMin, w.XMax
	p.Y.Min, p.Y.Max = w.YMin, w.YMax

	return p, nil
}

func (th Theme) axis(p *plot.Plot, lp LinePanel) error {
	if !lp.LogX {
		if len(lp.Ticks) > 0 {
			p.X.Tick.Marker = plot.ConstantTicks(ticks(lp.Ticks))
		}
		return nil
	}

	for _, l := range lp.Lines {
		for _, pt := range l.Series.Points {
			if pt.X <= 0 {
				return ewrap.Wrapf(sentinel.ErrSchema, "series %q: x = %g on a log axis", l.Series.Label, pt.X)
			}
		}
	}
	for _, t := range lp.Ticks {
		if t <= 0 {
			return ewrap.Wrapf(sentinel.ErrInvalidConfig, "tick %g on a log axis", t)
		}
	}

	p.X.Scale = plot.LogScale{}
	if len(lp.Ticks) > 0 {
		p.X.Tick.Marker = plot.ConstantTicks(ticks(lp.Ticks))
	} else {
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	return nil
}

// addLines draws bands first so lines stay on top. It returns the number of
// series that had points.
func (th Theme) addLines(p *plot.Plot, lines []Line, legend bool) (int, error) {
	drawn := 0

	for _, l := range lines {
		if !l.Band || l.Reference || len(l.Series.Points) == 0 {
			continue
		}
		band, err := plotter.NewPolygon(bandXYs(l.Series.Points))
		if err != nil {
			return 0, ewrap.Wrapf(err, "band %q", l.Series.Label)
		}
		band.Color = th.Translucent(th.Color(l.Color))
		band.LineStyle.Width = 0
		p.Add(band)
	}

	for _, l := range lines {
		if len(l.Series.Points) == 0 {
			continue
		}
		drawn++

		xys := meanXYs(l.Series.Points)
		line, err := plotter.NewLine(xys)
		if err != nil {
			return 0, ewrap.Wrapf(err, "line %q", l.Series.Label)
		}
		line.Width = th.lineWidth()

		thumbs := []plot.Thumbnailer{line}

		if l.Reference {
			line.Color = th.ref
			line.Width = vg.Points(1)
			line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
			p.Add(line)
		} else {
			line.Color = th.Color(l.Color)
			if l.Dashed {
				line.Dashes = []vg.Length{vg.Points(3), vg.Points(1.5)}
			}
			p.Add(line)

			if g := th.Marker(l.Marker); g != nil {
				sc, err := plotter.NewScatter(xys)
				if err != nil {
					return 0, ewrap.Wrapf(err, "markers %q", l.Series.Label)
				}
				sc.GlyphStyle.Color = line.Color
				sc.GlyphStyle.Shape = g
				sc.GlyphStyle.Radius = vg.Points(2)
				p.Add(sc)
				thumbs = append(thumbs, sc)
			}
		}

		if legend && l.Series.Label != "" {
			p.Legend.Add(l.Series.Label, thumbs...)
		}
	}

	return drawn, nil
}

// annotate draws a vertical span between the two means and the ratio text
// beside it.
func (th Theme) annotate(p *plot.Plot, a Annotation) error {
	span, err := plotter.NewLine(plotter.XYs{{X: a.X, Y: a.From}, {X: a.X, Y: a.To}})
	if err != nil {
		return ewrap.Wrap(err, "annotation")
	}
	span.Color = color.Black
	span.Width = vg.Points(0.5)

	ends, err := plotter.NewScatter(plotter.XYs{{X: a.X, Y: a.From}, {X: a.X, Y: a.To}})
	if err != nil {
		return ewrap.Wrap(err, "annotation")
	}
	ends.GlyphStyle.Shape = draw.TriangleGlyph{}
	ends.GlyphStyle.Radius = vg.Points(1.5)
	ends.GlyphStyle.Color = color.Black

	label, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: a.X, Y: (a.From + a.To) / 2}},
		Labels: []string{ratioText(a.Ratio)},
	})
	if err != nil {
		return ewrap.Wrap(err, "annotation")
	}
	label.Offset = vg.Point{X: vg.Points(3)}
	for i := range label.TextStyle {
		label.TextStyle[i] = p.Legend.TextStyle
		label.TextStyle[i].YAlign = text.YCenter
	}

	p.Add(span, ends, label)
	return nil
}

func windowOutline(w Window) (*plotter.Polygon, error) {
	outline, err := plotter.NewPolygon(plotter.XYs{
		{X: w.XMin, Y: w.YMin},
		{X: w.XMax, Y: w.YMin},
		{X: w.XMax, Y: w.YMax},
		{X: w.XMin, Y: w.YMax},
	})
	if err != nil {
		return nil, ewrap.Wrap(err, "zoom window")
	}
	outline.Color = nil
	outline.LineStyle.Color = color.Gray{Y: 128}
	outline.LineStyle.Width = vg.Points(0.75)

	return outline, nil
}

func meanXYs(points []model.Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.X
		xys[i].Y = pt.Mean
	}
	return xys
}

// bandXYs walks the upper edge forward and the lower edge back.
func bandXYs(points []model.Point) plotter.XYs {
	n := len(points)
	xys := make(plotter.XYs, 2*n)
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Mean + pt.Margin}
		xys[2*n-1-i] = plotter.XY{X: pt.X, Y: pt.Mean - pt.Margin}
	}
	return xys
}

func ticks(values []float64) []plot.Tick {
	out := make([]plot.Tick, len(values))
	for i, v := range values {
		out[i] = plot.Tick{Value: v, Label: TickLabel(v)}
	}
	return out
}
