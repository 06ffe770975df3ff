// Package aggregate turns a flat array of benchmark trial records into sorted,
// grouped series of (x, mean, 95% margin) points ready for charting.
//
// The package is schema-parametric: field names come from a model.Schema and
// a Pipeline rather than being hardcoded per experiment.
package aggregate

import (
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/daryltucker/paclplot/internal/model"
)

// Pipeline lists the post-extraction steps applied to every series.
// A zero Pipeline sorts and does nothing else.
type Pipeline struct {
	Ticks    []float64 // keep only these x-values when non-empty
	Exclude  []float64 // drop these x-values
	Amortize bool      // divide by x
	Scale    float64   // multiply by this factor when non-zero
}

// Aggregator extracts series from records described by a schema.
type Aggregator struct {
	Schema   model.Schema
	Pipeline Pipeline
}

// New returns an Aggregator for schema.
func New(schema model.Schema, pipeline Pipeline) *Aggregator {
	return &Aggregator{Schema: schema, Pipeline: pipeline}
}

// Series builds one labelled series of measurement over all records.
func (a *Aggregator) Series(records []model.Record, measurement, label string) (model.Series, error) {
	points, err := Extract(records, a.Schema.Independent, measurement)
	if err != nil {
		return model.Series{}, err
	}

	if points, err = a.apply(points); err != nil {
		return model.Series{}, ewrap.Wrapf(err, "series %q", label)
	}

	return model.Series{Label: label, Points: points}, nil
}

// ScalarSeries builds one labelled series from a single-valued field.
func (a *Aggregator) ScalarSeries(records []model.Record, field, label string) (model.Series, error) {
	points, err := ExtractScalar(records, a.Schema.Independent, field)
	if err != nil {
		return model.Series{}, err
	}

	if points, err = a.apply(points); err != nil {
		return model.Series{}, ewrap.Wrapf(err, "series %q", label)
	}

	return model.Series{Label: label, Points: points}, nil
}

// GroupedSeries builds one series per value of category, in numeric key order.
// Each label has "{group}" replaced by the category value.
func (a *Aggregator) GroupedSeries(records []model.Record, category, measurement, label string) ([]model.Series, error) {
	groups, err := GroupBy(records, category)
	if err != nil {
		return nil, err
	}

	out := make([]model.Series, 0, groups.Len())
	for _, key := range groups.Sorted() {
		s, err := a.Series(groups.Members[key], measurement, strings.ReplaceAll(label, "{group}", string(key)))
		if err != nil {
			return nil, err
		}
		s.Category = key
		out = append(out, s)
	}

	return out, nil
}

func (a *Aggregator) apply(points []model.Point) ([]model.Point, error) {
	points = SortSeries(points)
	if len(a.Pipeline.Exclude) > 0 {
		points = Exclude(points, a.Pipeline.Exclude)
	}
	if len(a.Pipeline.Ticks) > 0 {
		points = FilterToTicks(points, a.Pipeline.Ticks)
	}
	points, err := Amortize(points, a.Pipeline.Amortize)
	if err != nil {
		return nil, err
	}
	if a.Pipeline.Scale != 0 {
		points = Scale(points, a.Pipeline.Scale)
	}

	return points, nil
}
