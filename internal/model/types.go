/*
PURPOSE:
  Defines the core data structures used throughout paclplot.
  These models represent benchmark trial records and the statistics derived from them.

REQUIREMENTS:
  User-specified:
  - Records carry scalar independent/categorical fields and arrays of repeated timings.
  - A statistic is a (mean, 95% margin) pair.
  - A series is an ordered, labelled sequence of (x, statistic) points.

  Implementation-discovered:
  - Numbers are kept as their JSON literal so categorical equality stays literal.
  - JSON tags are needed for the JSON Lines summary output.

ARCHITECTURE INTEGRATION:
  - Used by: internal/aggregate, internal/render, internal/engine, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Records are never mutated after load.

RELATED FILES:
  - internal/aggregate/load.go
  - internal/output/csv.go
*/

package model

// Record is one trial object from the input array.
// Fields holds the decoded JSON values; numbers are json.Number.
type Record struct {
	Index  int
	Fields map[string]any
}

// Category is the literal JSON text of a categorical value.
// 4 and 4.0 are different categories.
type Category string

// Statistic summarizes one measurement sequence.
type Statistic struct {
	Mean   float64 `json:"mean"`
	Margin float64 `json:"margin"` // half-width of the 95% confidence interval
	N      int     `json:"trials"`
}

// Point is one (independent value, statistic) pair.
type Point struct {
	X float64 `json:"x"`
	Statistic
}

// Series is an ordered sequence of points identified by a label.
type Series struct {
	Label    string   `json:"label"`
	Category Category `json:"category,omitempty"`
	Points   []Point  `json:"points"`
}

// Schema names the fields the aggregator reads from every record.
type Schema struct {
	Independent  string
	Measurements []string
	Scalars      []string
	Categories   []string
}

// Fields returns every field name the schema requires, in declaration order.
func (s Schema) Fields() []string {
	fields := make([]string, 0, 1+len(s.Measurements)+len(s.Scalars)+len(s.Categories))
	if s.Independent != "" {
		fields = append(fields, s.Independent)
	}
	fields = append(fields, s.Categories...)
	fields = append(fields, s.Measurements...)
	fields = append(fields, s.Scalars...)
	return fields
}

// Row is one point of one series, flattened for summaries.
type Row struct {
	Figure   string   `json:"figure"`
	Panel    string   `json:"panel"`
	Series   string   `json:"series"`
	Category Category `json:"category,omitempty"`
	X        float64  `json:"x"`
	Mean     float64  `json:"mean"`
	Margin   float64  `json:"margin"`
	Trials   int      `json:"trials"`
}
