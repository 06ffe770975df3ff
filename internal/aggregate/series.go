package aggregate

import (
	"slices"

	"github.com/hyp3rd/ewrap"

	"github.com/daryltucker/paclplot/internal/model"
	"github.com/daryltucker/paclplot/internal/sentinel"
)

// Extract computes one point per record: the record's independent value and
// the statistic of its measurement sequence. Output follows input order.
func Extract(records []model.Record, independent, measurement string) ([]model.Point, error) {
	points := make([]model.Point, 0, len(records))
	for _, rec := range records {
		x, err := Number(rec, independent)
		if err != nil {
			return nil, err
		}

		values, err := Measurements(rec, measurement)
		if err != nil {
			return nil, err
		}

		st, err := Statistic(values)
		if err != nil {
			return nil, ewrap.Wrapf(err, "record %d: field %q", rec.Index, measurement)
		}

		points = append(points, model.Point{X: x, Statistic: st})
	}

	return points, nil
}

// ExtractScalar reads a single-valued measurement per record as a point with
// zero margin.
func ExtractScalar(records []model.Record, independent, field string) ([]model.Point, error) {
	points := make([]model.Point, 0, len(records))
	for _, rec := range records {
		x, err := Number(rec, independent)
		if err != nil {
			return nil, err
		}

		y, err := Number(rec, field)
		if err != nil {
			return nil, err
		}

		points = append(points, model.Point{X: x, Statistic: model.Statistic{Mean: y, N: 1}})
	}

	return points, nil
}

// SortSeries returns a copy of points sorted by X ascending.
// Points with equal X keep their input order.
func SortSeries(points []model.Point) []model.Point {
	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(a, b model.Point) int {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		default:
			return 0
		}
	})

	return sorted
}

// FilterToTicks keeps the points whose X is one of ticks. Nothing is interpolated.
func FilterToTicks(points []model.Point, ticks []float64) []model.Point {
	return keep(points, func(p model.Point) bool {
		return slices.Contains(ticks, p.X)
	})
}

// Exclude drops the points whose X is one of xs.
func Exclude(points []model.Point, xs []float64) []model.Point {
	return keep(points, func(p model.Point) bool {
		return !slices.Contains(xs, p.X)
	})
}

// Amortize divides mean and margin of every point by its X when enabled.
// When disabled the divisor is 1, so both paths scale mean and margin alike.
// A point at x = 0 cannot be amortized and fails with ErrSchema.
func Amortize(points []model.Point, enabled bool) ([]model.Point, error) {
	out := make([]model.Point, len(points))
	for i, p := range points {
		div := 1.0
		if enabled {
			if p.X == 0 {
				return nil, ewrap.Wrapf(sentinel.ErrSchema, "point %d: cannot amortize at x = 0", i)
			}
			div = p.X
		}
		out[i] = divide(p, div)
	}

	return out, nil
}

// Scale multiplies mean and margin of every point by factor, e.g. to convert
// milliseconds to seconds.
func Scale(points []model.Point, factor float64) []model.Point {
	out := make([]model.Point, len(points))
	for i, p := range points {
		p.Mean *= factor
		p.Margin *= factor
		out[i] = p
	}

	return out
}

// Ratio returns mean(b)/mean(a) at x, and false when either series lacks x
// or a's mean is zero there.
func Ratio(a, b []model.Point, x float64) (float64, bool) {
	ia := slices.IndexFunc(a, func(p model.Point) bool { return p.X == x })
	ib := slices.IndexFunc(b, func(p model.Point) bool { return p.X == x })
	if ia < 0 || ib < 0 || a[ia].Mean == 0 {
		return 0, false
	}

	return b[ib].Mean / a[ia].Mean, true
}

func divide(p model.Point, div float64) model.Point {
	p.Mean /= div
	p.Margin /= div
	return p
}

func keep(points []model.Point, pred func(model.Point) bool) []model.Point {
	out := make([]model.Point, 0, len(points))
	for _, p := range points {
		if pred(p) {
			out = append(out, p)
		}
	}

	return out
}
