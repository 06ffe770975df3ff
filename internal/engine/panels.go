package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/daryltucker/paclplot/internal/aggregate"
	"github.com/daryltucker/paclplot/internal/config"
	"github.com/daryltucker/paclplot/internal/model"
	"github.com/daryltucker/paclplot/internal/render"
)

// Result is an aggregated figure, ready to render or summarize.
type Result struct {
	Name   string
	Figure config.Figure
	Panels []Panel
}

// Panel holds the series of one panel. Baselines has one series for line
// panels and one per category for bar panels; Variants has one per category,
// or a single series when the figure has no category.
type Panel struct {
	Config     config.Panel
	Baselines  []model.Series
	Variants   []model.Series
	Reference  *model.Series
	Annotation *render.Annotation
}

type builder struct {
	fig     config.Figure
	agg     *aggregate.Aggregator
	records []model.Record
	groups  *aggregate.Groups
}

func (b *builder) panel(cp config.Panel) (Panel, error) {
	p := Panel{Config: cp}

	var err error
	switch {
	case b.groups == nil:
		base, err := b.agg.Series(b.records, cp.Baseline.Field, cp.Baseline.Label)
		if err != nil {
			return Panel{}, err
		}
		variant, err := b.agg.Series(b.records, cp.Variant.Field, cp.Variant.Label)
		if err != nil {
			return Panel{}, err
		}
		p.Baselines = []model.Series{base}
		p.Variants = []model.Series{variant}

	case b.fig.Kind == config.KindBars:
		if p.Baselines, err = b.agg.GroupedSeries(b.records, b.fig.Category, cp.Baseline.Field, cp.Baseline.Label); err != nil {
			return Panel{}, err
		}
		if p.Variants, err = b.agg.GroupedSeries(b.records, b.fig.Category, cp.Variant.Field, cp.Variant.Label); err != nil {
			return Panel{}, err
		}

	default:
		// One baseline, taken from the smallest category; it does not depend
		// on the category.
		first := b.groups.Members[b.groups.Sorted()[0]]
		base, err := b.agg.Series(first, cp.Baseline.Field, cp.Baseline.Label)
		if err != nil {
			return Panel{}, err
		}
		p.Baselines = []model.Series{base}
		if p.Variants, err = b.agg.GroupedSeries(b.records, b.fig.Category, cp.Variant.Field, cp.Variant.Label); err != nil {
			return Panel{}, err
		}
	}

	if cp.Reference != nil {
		records := b.records
		if b.groups != nil {
			records = b.groups.Members[b.groups.Sorted()[0]]
		}
		ref, err := b.agg.ScalarSeries(records, cp.Reference.Field, cp.Reference.Label)
		if err != nil {
			return Panel{}, err
		}
		p.Reference = &ref
	}

	if cp.AnnotateAt != 0 && len(p.Variants) == 1 {
		p.Annotation = annotation(p.Baselines[0].Points, p.Variants[0].Points, cp.AnnotateAt)
	}

	return p, nil
}

// annotation is nil when either series lacks x.
func annotation(base, variant []model.Point, x float64) *render.Annotation {
	ratio, ok := aggregate.Ratio(base, variant, x)
	if !ok {
		return nil
	}

	at := func(points []model.Point) float64 {
		i := slices.IndexFunc(points, func(p model.Point) bool { return p.X == x })
		return points[i].Mean
	}

	return &render.Annotation{X: x, From: at(base), To: at(variant), Ratio: ratio}
}

// Rows flattens every plotted point for summaries.
func (r *Result) Rows() []model.Row {
	var rows []model.Row
	for i, p := range r.Panels {
		title := p.Config.Title
		if title == "" {
			title = fmt.Sprintf("panel %d", i+1)
		}

		all := slices.Concat(p.Baselines, p.Variants)
		if p.Reference != nil {
			all = append(all, *p.Reference)
		}

		for _, s := range all {
			for _, pt := range s.Points {
				rows = append(rows, model.Row{
					Figure:   r.Name,
					Panel:    title,
					Series:   s.Label,
					Category: s.Category,
					X:        pt.X,
					Mean:     pt.Mean,
					Margin:   pt.Margin,
					Trials:   pt.N,
				})
			}
		}
	}

	return rows
}

// Layout builds the plots of res.
func (e *Engine) Layout(res *Result) (render.Figure, error) {
	fig := res.Figure

	height := e.cfg.Style.Height
	if fig.Height > 0 {
		height = fig.Height
	}
	w, h := render.Size(e.cfg.Style.Width, height)
	out := render.Figure{Width: w, Height: h}

	for i, p := range res.Panels {
		// Only the first panel of a row carries the y label.
		ylabel := ""
		if i == 0 {
			ylabel = fig.YLabel
		}

		var rp render.Panel
		var err error
		if fig.Kind == config.KindBars {
			rp.Plot, err = render.Bars(e.theme, barPanel(fig, p, ylabel))
		} else {
			lp := linePanel(fig, p, ylabel)
			if rp.Plot, err = render.Lines(e.theme, lp); err == nil && lp.Zoom != nil {
				rp.Inset, err = render.Inset(e.theme, lp, *lp.Zoom)
			}
		}
		if err != nil {
			return render.Figure{}, fmt.Errorf("panel %d: %w", i, err)
		}

		out.Panels = append(out.Panels, rp)
	}

	return out, nil
}

func linePanel(fig config.Figure, p Panel, ylabel string) render.LinePanel {
	lp := render.LinePanel{
		Title:      p.Config.Title,
		XLabel:     fig.XLabel,
		YLabel:     ylabel,
		LogX:       fig.LogX,
		Ticks:      fig.Ticks,
		Annotation: p.Annotation,
	}
	if in := p.Config.Inset; in != nil {
		lp.Zoom = &render.Window{XMin: in.XMin, XMax: in.XMax, YMin: in.YMin, YMax: in.YMax}
	}

	grouped := fig.Category != ""
	for _, s := range p.Baselines {
		l := render.Line{Series: s, Band: p.Config.Baseline.Band}
		if !grouped {
			l.Color, l.Marker = p.Config.Color, 1
		}
		lp.Lines = append(lp.Lines, l)
	}
	for g, s := range p.Variants {
		l := render.Line{Series: s, Band: p.Config.Variant.Band}
		if grouped {
			l.Color, l.Marker = g+1, g+1
		} else {
			l.Color, l.Dashed = p.Config.Color, true
		}
		lp.Lines = append(lp.Lines, l)
	}
	if p.Reference != nil {
		lp.Lines = append(lp.Lines, render.Line{Series: *p.Reference, Reference: true})
	}

	return lp
}

func barPanel(fig config.Figure, p Panel, ylabel string) render.BarPanel {
	bp := render.BarPanel{
		Title:         p.Config.Title,
		XLabel:        fig.XLabel,
		YLabel:        ylabel,
		BaselineLabel: p.Config.Baseline.Label,
		VariantLabel:  p.Config.Variant.Label,
	}

	template := p.Config.GroupLabel
	if template == "" {
		template = "{group}"
	}

	for i, base := range p.Baselines {
		if i >= len(p.Variants) {
			break
		}
		bp.Clusters = append(bp.Clusters, render.Cluster{
			Label:    strings.ReplaceAll(template, "{group}", string(base.Category)),
			Baseline: base,
			Variant:  p.Variants[i],
		})
	}

	return bp
}
