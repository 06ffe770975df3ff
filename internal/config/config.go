/*
PURPOSE:
  Defines the configuration structure and loading logic for paclplot.
  Figures are described as data: the schema (field names), the pipeline
  (ticks, exclusions, amortization, unit scale) and the panel layout.

REQUIREMENTS:
  User-specified:
  - The same aggregation must serve every experiment; field names are configuration.
  - Chart style is an explicit, immutable value, never process-wide state.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Built-in figures reproduce the paper's four plots without any config file.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine, internal/render
  - Dependencies: gopkg.in/yaml.v3

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing default config file falls back to DefaultConfig().

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - A figure given in the file replaces the built-in figure of the same name.

USAGE:
  cfg, err := config.Load("paclplot.yaml")

RELATED FILES:
  - internal/config/figures.go
  - internal/config/style.go
*/

package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/hyp3rd/ewrap"
	"gopkg.in/yaml.v3"

	"github.com/daryltucker/paclplot/internal/model"
	"github.com/daryltucker/paclplot/internal/sentinel"
)

// Chart kinds.
const (
	KindLines = "lines"
	KindBars  = "bars"
)

// DefaultFiles are searched in order when no config path is given.
var DefaultFiles = []string{"paclplot.yaml", "paclplot.yml"}

// Config represents the full configuration for paclplot.
type Config struct {
	OutputDir string `yaml:"output_dir"`
	// Summary writes <figure>_summary.csv and .jsonl next to the chart.
	Summary   bool              `yaml:"summary"`
	LogLevel  string            `yaml:"log_level"`
	LogFormat string            `yaml:"log_format"` // text or json
	Style     Style             `yaml:"style"`
	Figures   map[string]Figure `yaml:"figures"`
}

// Figure describes one chart file.
type Figure struct {
	Kind        string    `yaml:"kind"`
	Output      string    `yaml:"output"`
	Independent string    `yaml:"independent"`
	Category    string    `yaml:"category,omitempty"`
	Ticks       []float64 `yaml:"ticks,omitempty"`
	Exclude     []float64 `yaml:"exclude,omitempty"`
	Amortize    bool      `yaml:"amortize,omitempty"`
	Scale       float64   `yaml:"scale,omitempty"`
	XLabel      string    `yaml:"x_label"`
	YLabel      string    `yaml:"y_label"`
	LogX        bool      `yaml:"log_x,omitempty"`
	Height      float64   `yaml:"height,omitempty"` // inches, overrides style
	Panels      []Panel   `yaml:"panels"`
}

// Panel is one set of axes inside a figure.
type Panel struct {
	Title    string  `yaml:"title,omitempty"`
	Baseline Measure `yaml:"baseline"`
	// Variant is drawn once per category group when the figure has a category.
	Variant   Measure  `yaml:"variant"`
	Reference *Measure `yaml:"reference,omitempty"` // scalar field, dashed line
	// GroupLabel names bar clusters, "{group}" is replaced by the category value.
	GroupLabel string  `yaml:"group_label,omitempty"`
	AnnotateAt float64 `yaml:"annotate_at,omitempty"` // x where the variant/baseline ratio is printed
	Color      int     `yaml:"color,omitempty"`       // style color index for ungrouped panels
	Inset      *Inset  `yaml:"inset,omitempty"`
}

// Measure names a measurement field and its legend label.
type Measure struct {
	Field string `yaml:"field"`
	Label string `yaml:"label"`
	Band  bool   `yaml:"band,omitempty"` // shade mean ± margin
}

// Inset is a zoomed copy of a panel limited to the given data window.
type Inset struct {
	XMin float64 `yaml:"x_min"`
	XMax float64 `yaml:"x_max"`
	YMin float64 `yaml:"y_min"`
	YMax float64 `yaml:"y_max"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: ".",
		LogLevel:  "info",
		LogFormat: "text",
		Style:     DefaultStyle(),
		Figures:   BuiltinFigures(),
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches DefaultFiles in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		found := false
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks every figure definition.
func (c *Config) Validate() error {
	if c.Style.Width <= 0 || c.Style.Height <= 0 {
		return ewrap.Wrap(sentinel.ErrInvalidConfig, "style width and height must be positive")
	}

	for _, name := range c.FigureNames() {
		if err := c.Figures[name].Validate(); err != nil {
			return ewrap.Wrapf(err, "figure %q", name)
		}
	}

	return nil
}

// Figure returns the named figure or ErrUnknownFigure.
func (c *Config) Figure(name string) (Figure, error) {
	fig, ok := c.Figures[name]
	if !ok {
		return Figure{}, ewrap.Wrapf(sentinel.ErrUnknownFigure, "%q (known: %v)", name, c.FigureNames())
	}

	return fig, nil
}

// FigureNames returns the configured figure names, sorted.
func (c *Config) FigureNames() []string {
	names := make([]string, 0, len(c.Figures))
	for name := range c.Figures {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// Validate checks that the figure names the fields it needs.
func (f Figure) Validate() error {
	switch {
	case f.Kind != KindLines && f.Kind != KindBars:
		return ewrap.Wrapf(sentinel.ErrInvalidConfig, "kind must be %q or %q, got %q", KindLines, KindBars, f.Kind)
	case f.Output == "":
		return ewrap.Wrap(sentinel.ErrInvalidConfig, "output is required")
	case f.Independent == "":
		return ewrap.Wrap(sentinel.ErrInvalidConfig, "independent field is required")
	case len(f.Panels) == 0:
		return ewrap.Wrap(sentinel.ErrInvalidConfig, "at least one panel is required")
	case f.Kind == KindBars && f.Category == "":
		return ewrap.Wrap(sentinel.ErrInvalidConfig, "bar charts need a category field")
	}

	for i, p := range f.Panels {
		if p.Baseline.Field == "" || p.Variant.Field == "" {
			return ewrap.Wrapf(sentinel.ErrInvalidConfig, "panel %d: baseline and variant fields are required", i)
		}
		if p.Inset != nil && (p.Inset.XMax <= p.Inset.XMin || p.Inset.YMax <= p.Inset.YMin) {
			return ewrap.Wrapf(sentinel.ErrInvalidConfig, "panel %d: inset window is empty", i)
		}
	}

	return nil
}

// Schema returns the fields every input record must carry for this figure.
func (f Figure) Schema() model.Schema {
	s := model.Schema{Independent: f.Independent}
	if f.Category != "" {
		s.Categories = []string{f.Category}
	}

	for _, p := range f.Panels {
		for _, field := range []string{p.Baseline.Field, p.Variant.Field} {
			if !slices.Contains(s.Measurements, field) {
				s.Measurements = append(s.Measurements, field)
			}
		}
		if p.Reference != nil && !slices.Contains(s.Scalars, p.Reference.Field) {
			s.Scalars = append(s.Scalars, p.Reference.Field)
		}
	}

	return s
}
