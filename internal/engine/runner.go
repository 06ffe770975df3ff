/*
PURPOSE:
  High-level runner that turns one benchmark JSON file into one chart.
  Resolves Figure -> loads records -> aggregates panels -> encodes -> writes summaries and chart.

REQUIREMENTS:
  User-specified:
  - One command per figure of the paper (anon, fss, vfss, pir).
  - Optional CSV/JSON summaries of the plotted points.

  Implementation-discovered:
  - Mixed trial counts and numerically equal categories (4 vs 4.0) are legal
    input but worth a warning.
  - A failed run must not leave a half-written chart behind.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/aggregate, internal/render, internal/output, internal/config

ERROR HANDLING:
  - Any load, aggregation or render error aborts the run.
  - Warnings (trial counts, category collisions) are logged and the run continues.

IMPLEMENTATION RULES:
  - Aggregate fully before touching the filesystem.
  - Chart bytes are produced in memory and written last.

USAGE:
  engine.Run(cfg, "fss", "results.json")

SELF-HEALING INSTRUCTIONS:
  - If a new figure needs a new chart shape, add it to internal/render first.

RELATED FILES:
  - internal/engine/panels.go
  - internal/config/figures.go

MAINTENANCE:
  - Update when adding figure kinds.
*/

package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/daryltucker/paclplot/internal/aggregate"
	"github.com/daryltucker/paclplot/internal/config"
	"github.com/daryltucker/paclplot/internal/model"
	"github.com/daryltucker/paclplot/internal/output"
	"github.com/daryltucker/paclplot/internal/render"
	"github.com/daryltucker/paclplot/internal/sentinel"
)

// Engine renders configured figures.
type Engine struct {
	cfg   *config.Config
	theme render.Theme
}

// New validates the style of cfg and returns an Engine for it.
func New(cfg *config.Config) (*Engine, error) {
	th, err := render.NewTheme(cfg.Style)
	if err != nil {
		return nil, fmt.Errorf("style: %w", err)
	}

	return &Engine{cfg: cfg, theme: th}, nil
}

// Run renders the named figure from input and returns the chart path.
func Run(cfg *config.Config, figure, input string) (string, error) {
	e, err := New(cfg)
	if err != nil {
		return "", err
	}

	return e.Run(figure, input)
}

// Summarize aggregates the named figure from input without rendering.
func Summarize(cfg *config.Config, figure, input string) ([]model.Row, error) {
	e, err := New(cfg)
	if err != nil {
		return nil, err
	}

	res, err := e.Aggregate(figure, input)
	if err != nil {
		return nil, err
	}

	return res.Rows(), nil
}

// Run renders one figure.
func (e *Engine) Run(figure, input string) (string, error) {
	res, err := e.Aggregate(figure, input)
	if err != nil {
		return "", err
	}

	fig, err := e.Layout(res)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", figure, err)
	}

	chartPath := e.outputPath(res.Figure.Output)
	data, err := render.EncodeFor(chartPath, fig)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", chartPath, err)
	}

	if e.cfg.Summary {
		if err := e.writeSummaries(chartPath, res.Rows()); err != nil {
			return "", err
		}
	}

	if err := render.Write(chartPath, data); err != nil {
		return "", fmt.Errorf("save %s: %w", chartPath, err)
	}

	output.Logger.Info("Wrote figure", "figure", figure, "path", chartPath, "panels", len(res.Panels))

	return chartPath, nil
}

// Aggregate loads input and builds every panel of the named figure.
func (e *Engine) Aggregate(figure, input string) (*Result, error) {
	fig, err := e.cfg.Figure(figure)
	if err != nil {
		return nil, err
	}

	schema := fig.Schema()
	records, err := aggregate.LoadFile(input, schema)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", input, err)
	}
	if len(records) == 0 {
		return nil, ewrap.Wrapf(sentinel.ErrEmptyInput, "%s has no records", input)
	}
	output.Logger.Debug("Loaded records", "input", input, "records", len(records))

	if err := warnTrialCounts(records, schema.Measurements); err != nil {
		return nil, err
	}

	agg := aggregate.New(schema, aggregate.Pipeline{
		Ticks:    fig.Ticks,
		Exclude:  fig.Exclude,
		Amortize: fig.Amortize,
		Scale:    fig.Scale,
	})

	b := &builder{fig: fig, agg: agg, records: records}
	if fig.Category != "" {
		if b.groups, err = aggregate.GroupBy(records, fig.Category); err != nil {
			return nil, err
		}
		warnCollisions(b.groups)

		if fig.Kind == config.KindBars {
			if _, err := aggregate.UniformSize(b.groups); err != nil {
				return nil, err
			}
		}
	}

	res := &Result{Name: figure, Figure: fig}
	for i, p := range fig.Panels {
		panel, err := b.panel(p)
		if err != nil {
			return nil, fmt.Errorf("panel %d: %w", i, err)
		}
		res.Panels = append(res.Panels, panel)
	}

	return res, nil
}

func (e *Engine) outputPath(name string) string {
	if filepath.IsAbs(name) || e.cfg.OutputDir == "" {
		return name
	}
	return filepath.Join(e.cfg.OutputDir, name)
}

// writeSummaries writes <chart stem>_summary.csv and .jsonl beside the chart.
func (e *Engine) writeSummaries(chartPath string, rows []model.Row) error {
	stem := strings.TrimSuffix(chartPath, filepath.Ext(chartPath)) + "_summary"

	if dir := filepath.Dir(stem); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	csvWriter, err := output.NewCSVWriter(stem + ".csv")
	if err != nil {
		return fmt.Errorf("failed to init CSV writer at %s: %w", stem+".csv", err)
	}
	defer csvWriter.Close()

	jsonWriter, err := output.NewJSONWriter(stem + ".jsonl")
	if err != nil {
		return fmt.Errorf("failed to init JSON writer at %s: %w", stem+".jsonl", err)
	}
	defer jsonWriter.Close()

	for _, r := range rows {
		if err := csvWriter.Write(r); err != nil {
			return fmt.Errorf("failed to write summary CSV: %w", err)
		}
		if err := jsonWriter.Write(r); err != nil {
			return fmt.Errorf("failed to write summary JSON: %w", err)
		}
	}

	output.Logger.Info("Wrote summaries", "csv", stem+".csv", "jsonl", stem+".jsonl", "rows", len(rows))

	return nil
}

func warnTrialCounts(records []model.Record, measurements []string) error {
	for _, field := range measurements {
		counts, err := aggregate.TrialCounts(records, field)
		if err != nil {
			return err
		}
		if len(counts) > 1 {
			output.Logger.Warn("Mixed trial counts, using each record's own count", "field", field, "counts", counts)
		}
	}
	return nil
}

func warnCollisions(g *aggregate.Groups) {
	for _, keys := range aggregate.NumericCollisions(g) {
		output.Logger.Warn("Categories are numerically equal but grouped separately", "field", g.Field, "keys", keys)
	}
}
