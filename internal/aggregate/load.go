package aggregate

import (
	"bytes"
	"io"
	"math"
	"os"

	"github.com/goccy/go-json"
	"github.com/hyp3rd/ewrap"

	"github.com/daryltucker/paclplot/internal/model"
	"github.com/daryltucker/paclplot/internal/sentinel"
)

// LoadFile reads path and decodes it with Load.
func LoadFile(path string, schema model.Schema) ([]model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ewrap.Wrapf(err, "read input %s", path)
	}

	return Load(bytes.NewReader(data), schema)
}

// Load decodes a JSON array of objects into records and checks that every
// record carries every field named by schema. The array must be the whole
// document.
func Load(r io.Reader, schema model.Schema) ([]model.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, ewrap.Wrapf(sentinel.ErrParse, "invalid JSON: %v", err)
	}

	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, ewrap.Wrap(sentinel.ErrParse, "invalid JSON: trailing data after the array")
	}

	items, ok := doc.([]any)
	if !ok {
		return nil, ewrap.Wrap(sentinel.ErrParse, "input must be a JSON array of objects")
	}

	records := make([]model.Record, len(items))
	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			return nil, ewrap.Wrapf(sentinel.ErrParse, "record %d is not an object", i)
		}
		for _, name := range schema.Fields() {
			if _, ok := fields[name]; !ok {
				return nil, ewrap.Wrapf(sentinel.ErrSchema, "record %d: missing field %q", i, name)
			}
		}
		records[i] = model.Record{Index: i, Fields: fields}
	}

	return records, nil
}

// Number reads field from rec as a finite float64.
func Number(rec model.Record, field string) (float64, error) {
	v, ok := rec.Fields[field]
	if !ok {
		return 0, ewrap.Wrapf(sentinel.ErrSchema, "record %d: missing field %q", rec.Index, field)
	}

	f, ok := toFloat(v)
	if !ok {
		return 0, ewrap.Wrapf(sentinel.ErrSchema, "record %d: field %q is not a finite number", rec.Index, field)
	}

	return f, nil
}

// Measurements reads field from rec as a sequence of finite numbers.
func Measurements(rec model.Record, field string) ([]float64, error) {
	v, ok := rec.Fields[field]
	if !ok {
		return nil, ewrap.Wrapf(sentinel.ErrSchema, "record %d: missing field %q", rec.Index, field)
	}

	items, ok := v.([]any)
	if !ok {
		return nil, ewrap.Wrapf(sentinel.ErrSchema, "record %d: field %q is not an array", rec.Index, field)
	}

	values := make([]float64, len(items))
	for i, item := range items {
		f, ok := toFloat(item)
		if !ok {
			return nil, ewrap.Wrapf(sentinel.ErrSchema, "record %d: field %q[%d] is not a finite number", rec.Index, field, i)
		}
		values[i] = f
	}

	return values, nil
}

// CategoryOf returns the literal categorical value of field in rec.
func CategoryOf(rec model.Record, field string) (model.Category, error) {
	v, ok := rec.Fields[field]
	if !ok {
		return "", ewrap.Wrapf(sentinel.ErrSchema, "record %d: missing field %q", rec.Index, field)
	}

	switch val := v.(type) {
	case json.Number:
		return model.Category(val.String()), nil
	case string:
		return model.Category(val), nil
	case bool:
		if val {
			return "true", nil
		}
		return "false", nil
	default:
		return "", ewrap.Wrapf(sentinel.ErrSchema, "record %d: field %q is not a scalar", rec.Index, field)
	}
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = val
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
