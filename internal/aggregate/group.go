package aggregate

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/hyp3rd/ewrap"

	"github.com/daryltucker/paclplot/internal/model"
	"github.com/daryltucker/paclplot/internal/sentinel"
)

// Groups partitions records by a categorical field.
// Keys are in order of first appearance.
type Groups struct {
	Field   string
	Keys    []model.Category
	Members map[model.Category][]model.Record
}

// GroupBy partitions records by the literal value of field, keeping the
// relative input order inside each group. Values are not coerced: 4 and 4.0
// land in different groups.
func GroupBy(records []model.Record, field string) (*Groups, error) {
	g := &Groups{
		Field:   field,
		Members: make(map[model.Category][]model.Record),
	}

	for _, rec := range records {
		key, err := CategoryOf(rec, field)
		if err != nil {
			return nil, err
		}
		if _, seen := g.Members[key]; !seen {
			g.Keys = append(g.Keys, key)
		}
		g.Members[key] = append(g.Members[key], rec)
	}

	return g, nil
}

// Len returns the number of groups.
func (g *Groups) Len() int {
	return len(g.Keys)
}

// Sorted returns the numeric keys in numeric order followed by the other keys
// in lexical order. Ties keep first-appearance order.
func (g *Groups) Sorted() []model.Category {
	keys := slices.Clone(g.Keys)
	slices.SortStableFunc(keys, func(a, b model.Category) int {
		fa, errA := strconv.ParseFloat(string(a), 64)
		fb, errB := strconv.ParseFloat(string(b), 64)
		switch {
		case errA == nil && errB == nil:
			return cmp.Compare(fa, fb)
		case errA == nil:
			return -1
		case errB == nil:
			return 1
		}
		return cmp.Compare(a, b)
	})

	return keys
}

// UniformSize returns the common size of all groups, or ErrGroupMismatch when
// the groups differ in size.
func UniformSize(g *Groups) (int, error) {
	if g.Len() == 0 {
		return 0, nil
	}

	size := len(g.Members[g.Keys[0]])
	for _, key := range g.Keys[1:] {
		if n := len(g.Members[key]); n != size {
			return 0, ewrap.Wrapf(sentinel.ErrGroupMismatch,
				"field %q: group %s has %d records, group %s has %d",
				g.Field, g.Keys[0], size, key, n)
		}
	}

	return size, nil
}

// NumericCollisions returns sets of keys that are lexically distinct but
// numerically equal, such as "4" and "4.0".
func NumericCollisions(g *Groups) [][]model.Category {
	byValue := make(map[float64][]model.Category)
	var order []float64
	for _, key := range g.Keys {
		f, err := strconv.ParseFloat(string(key), 64)
		if err != nil {
			continue
		}
		if _, seen := byValue[f]; !seen {
			order = append(order, f)
		}
		byValue[f] = append(byValue[f], key)
	}

	var collisions [][]model.Category
	for _, f := range order {
		if keys := byValue[f]; len(keys) > 1 {
			collisions = append(collisions, keys)
		}
	}

	return collisions
}

// TrialCounts returns the distinct lengths of the measurement field across
// records, in order of first appearance.
func TrialCounts(records []model.Record, measurement string) ([]int, error) {
	var counts []int
	for _, rec := range records {
		values, err := Measurements(rec, measurement)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(counts, len(values)) {
			counts = append(counts, len(values))
		}
	}

	return counts, nil
}
