// Package render draws aggregated series as vector charts with gonum/plot.
//
// Every call takes its Theme explicitly. The package keeps no plotting state
// between calls and never touches gonum/plot's package-level defaults.
package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/hyp3rd/ewrap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/daryltucker/paclplot/internal/config"
	"github.com/daryltucker/paclplot/internal/sentinel"
)

var glyphs = map[string]draw.GlyphDrawer{
	"cross":    draw.CrossGlyph{},
	"dot":      draw.CircleGlyph{},
	"plus":     draw.PlusGlyph{},
	"triangle": draw.TriangleGlyph{},
	"ring":     draw.RingGlyph{},
	"square":   draw.SquareGlyph{},
}

// Theme is a resolved config.Style: colors parsed, markers looked up.
type Theme struct {
	style     config.Style
	colors    []color.Color
	barColors []color.Color
	fallback  []color.Color
	gridColor color.Color
	ref       color.Color
	markers   []draw.GlyphDrawer
}

// NewTheme validates style and resolves it for drawing.
func NewTheme(style config.Style) (Theme, error) {
	th := Theme{style: style}

	switch style.FontVariant {
	case "Serif", "Sans", "Mono":
	default:
		return Theme{}, ewrap.Wrapf(sentinel.ErrInvalidConfig, "font variant %q", style.FontVariant)
	}

	var err error
	if th.colors, err = parseColors(style.Colors); err != nil {
		return Theme{}, err
	}
	if th.barColors, err = parseColors(style.BarColors); err != nil {
		return Theme{}, err
	}
	if th.gridColor, err = parseHex(style.GridColor); err != nil {
		return Theme{}, err
	}
	if th.ref, err = parseHex(style.RefColor); err != nil {
		return Theme{}, err
	}

	for _, name := range style.Markers {
		g, ok := glyphs[name]
		if !ok {
			return Theme{}, ewrap.Wrapf(sentinel.ErrInvalidConfig, "marker %q", name)
		}
		th.markers = append(th.markers, g)
	}

	palette, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", 9)
	if err != nil {
		return Theme{}, ewrap.Wrap(err, "fallback palette")
	}
	th.fallback = palette.Colors()

	return th, nil
}

// Style returns the style the theme was built from.
func (th Theme) Style() config.Style {
	return th.style
}

// Color returns the i-th series color, falling back to a brewer palette once
// the configured colors run out.
func (th Theme) Color(i int) color.Color {
	if i < len(th.colors) {
		return th.colors[i]
	}
	return th.fallback[(i-len(th.colors))%len(th.fallback)]
}

// BarColor returns the i-th bar cluster color.
func (th Theme) BarColor(i int) color.Color {
	if i < len(th.barColors) {
		return th.barColors[i]
	}
	return th.Color(i)
}

// Marker returns the i-th marker, nil when there are none.
func (th Theme) Marker(i int) draw.GlyphDrawer {
	if len(th.markers) == 0 {
		return nil
	}
	return th.markers[i%len(th.markers)]
}

// Translucent returns c with the style's band opacity.
func (th Theme) Translucent(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(math.Round(th.style.ErrorOpacity * 255)),
	}
}

func (th Theme) newPlot() *plot.Plot {
	p := plot.New()

	variant := font.Variant(th.style.FontVariant)
	set := func(s *text.Style, size float64) {
		s.Font.Variant = variant
		s.Font.Size = vg.Points(size)
	}
	set(&p.Title.TextStyle, th.style.LabelFontSize)
	set(&p.X.Label.TextStyle, th.style.LabelFontSize)
	set(&p.Y.Label.TextStyle, th.style.LabelFontSize)
	set(&p.X.Tick.Label, th.style.TickFontSize)
	set(&p.Y.Tick.Label, th.style.TickFontSize)
	set(&p.Legend.TextStyle, th.style.FontSize)

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.ThumbnailWidth = vg.Points(18)

	return p
}

// grid returns dashed grid lines; vertical lines are left out for nominal axes.
func (th Theme) grid(vertical bool) *plotter.Grid {
	g := plotter.NewGrid()
	g.Horizontal.Color = th.gridColor
	g.Horizontal.Width = vg.Points(0.5)
	g.Horizontal.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	g.Vertical = g.Horizontal
	if !vertical {
		g.Vertical.Color = nil
	}
	return g
}

func (th Theme) lineWidth() vg.Length {
	return vg.Points(th.style.LineWidth)
}

// TickLabel formats an axis value: exact powers of two as 2^k with
// superscript digits, everything else in %g.
func TickLabel(v float64) string {
	if v > 0 && v == math.Trunc(v) {
		k := math.Log2(v)
		if k == math.Trunc(k) {
			return "2" + superscript(strconv.Itoa(int(k)))
		}
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func superscript(digits string) string {
	const sup = "⁰¹²³⁴⁵⁶⁷⁸⁹"
	supRunes := []rune(sup)

	var b strings.Builder
	for _, d := range digits {
		b.WriteRune(supRunes[d-'0'])
	}
	return b.String()
}

func parseColors(hexes []string) ([]color.Color, error) {
	out := make([]color.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := parseHex(h)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// parseHex accepts #rgb and #rrggbb.
func parseHex(s string) (color.Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidConfig, "color %q", s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidConfig, "color %q", s)
	}

	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

func ratioText(r float64) string {
	return fmt.Sprintf("%.0f×", r)
}
