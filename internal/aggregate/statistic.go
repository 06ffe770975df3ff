package aggregate

import (
	"math"

	"github.com/hyp3rd/ewrap"
	"gonum.org/v1/gonum/stat"

	"github.com/daryltucker/paclplot/internal/model"
	"github.com/daryltucker/paclplot/internal/sentinel"
)

// Z95 is the normal-approximation multiplier for a 95% confidence interval.
const Z95 = 1.96

// Statistic returns the arithmetic mean of values and the half-width of its
// 95% confidence interval, 1.96 * stddev / sqrt(n), using the population
// standard deviation (divisor n).
func Statistic(values []float64) (model.Statistic, error) {
	if len(values) == 0 {
		return model.Statistic{}, ewrap.Wrap(sentinel.ErrEmptyInput, "statistic over zero measurements")
	}

	mean, std := stat.PopMeanStdDev(values, nil)
	n := len(values)

	return model.Statistic{
		Mean:   mean,
		Margin: Z95 * std / math.Sqrt(float64(n)),
		N:      n,
	}, nil
}
