package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyp3rd/ewrap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/daryltucker/paclplot/internal/sentinel"
)

// Inset placement inside its panel, as fractions of the panel size.
const (
	insetWidth  = 0.3
	insetHeight = 0.4
	insetMargin = 0.04
)

// Panel is one laid-out plot with an optional inset.
type Panel struct {
	Plot  *plot.Plot
	Inset *plot.Plot
}

// Figure is a row of panels written to a single file.
type Figure struct {
	Width  vg.Length
	Height vg.Length
	Panels []Panel
}

// Size converts inches to a figure size.
func Size(width, height float64) (vg.Length, vg.Length) {
	return vg.Length(width) * vg.Inch, vg.Length(height) * vg.Inch
}

// Encode renders fig in the given format (pdf, svg, eps, png...).
func Encode(fig Figure, format string) ([]byte, error) {
	if len(fig.Panels) == 0 {
		return nil, ewrap.Wrap(sentinel.ErrEmptyInput, "figure has no panels")
	}
	if fig.Width <= 0 || fig.Height <= 0 {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidConfig, "figure size %v x %v", fig.Width, fig.Height)
	}

	c, err := draw.NewFormattedCanvas(fig.Width, fig.Height, format)
	if err != nil {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidConfig, "format %q: %v", format, err)
	}

	row := make([]*plot.Plot, len(fig.Panels))
	for i, p := range fig.Panels {
		row[i] = p.Plot
	}

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(row),
		PadX:      vg.Points(6),
		PadTop:    vg.Points(2),
		PadBottom: vg.Points(2),
		PadLeft:   vg.Points(2),
		PadRight:  vg.Points(4),
	}

	canvases := plot.Align([][]*plot.Plot{row}, tiles, draw.New(c))
	for i, p := range fig.Panels {
		p.Plot.Draw(canvases[0][i])
		if p.Inset != nil {
			p.Inset.Draw(insetCanvas(p.Plot.DataCanvas(canvases[0][i])))
		}
	}

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, ewrap.Wrap(err, "encode figure")
	}

	return buf.Bytes(), nil
}

// Save renders fig and writes it to path. Nothing is written unless rendering
// succeeded.
func Save(path string, fig Figure) error {
	data, err := EncodeFor(path, fig)
	if err != nil {
		return err
	}

	return Write(path, data)
}

// EncodeFor renders fig in the format named by the extension of path.
func EncodeFor(path string, fig Figure) ([]byte, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidConfig, "output %q has no extension", path)
	}

	return Encode(fig, format)
}

// Write stores encoded chart bytes at path, creating its directory.
func Write(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ewrap.Wrapf(err, "create %s", dir)
		}
	}

	return os.WriteFile(path, data, 0o644)
}

// insetCanvas is the center-right region of a panel's data area.
func insetCanvas(dc draw.Canvas) draw.Canvas {
	w := dc.Max.X - dc.Min.X
	h := dc.Max.Y - dc.Min.Y

	right := w * insetMargin
	left := w - right - w*insetWidth
	bottom := h * (1 - insetHeight) / 2
	top := bottom

	return draw.Crop(dc, left, -right, bottom, -top)
}
