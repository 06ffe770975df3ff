package config

// Style carries every cosmetic choice of the charts. It is passed by value to
// each rendering call; nothing in the renderer reads global state.
type Style struct {
	FontVariant   string   `yaml:"font_variant"`    // Serif, Sans or Mono
	FontSize      float64  `yaml:"font_size"`       // points, legend and annotations
	LabelFontSize float64  `yaml:"label_font_size"` // points, titles and axis labels
	TickFontSize  float64  `yaml:"tick_font_size"`  // points
	LineWidth     float64  `yaml:"line_width"`      // points
	ErrorOpacity  float64  `yaml:"error_opacity"`   // alpha of the shaded bands
	GridColor     string   `yaml:"grid_color"`
	RefColor      string   `yaml:"reference_color"` // dashed reference lines
	Colors        []string `yaml:"colors"`
	BarColors     []string `yaml:"bar_colors"`
	Markers       []string `yaml:"markers"`   // cross, dot, plus, triangle, ring, square
	BarWidth      float64  `yaml:"bar_width"` // points
	Width         float64  `yaml:"width"`     // inches
	Height        float64  `yaml:"height"`    // inches
}

// DefaultStyle matches the paper's figures.
func DefaultStyle() Style {
	return Style{
		FontVariant:   "Serif",
		FontSize:      7,
		LabelFontSize: 8,
		TickFontSize:  7,
		LineWidth:     1.15,
		ErrorOpacity:  0.15,
		GridColor:     "#cccccc",
		RefColor:      "#ff0000",
		Colors:        []string{"#08519c", "#ff7f00", "#16a085", "#8e44ad", "#c0392b", "#333333"},
		BarColors:     []string{"#c6dbef", "#6baed6", "#08519c"},
		Markers:       []string{"cross", "dot", "plus", "triangle", "ring"},
		BarWidth:      5,
		Width:         4,
		Height:        2.75,
	}
}
