// Package sentinel defines the error kinds reported by paclplot.
//
// Every failure of a run is one of these kinds, wrapped with the record index
// and field name that triggered it, so callers can tell them apart with
// errors.Is while users still see where the input went wrong.
package sentinel

import (
	"github.com/hyp3rd/ewrap"
)

var (
	// ErrParse is returned when the input is not valid JSON or not an array of objects.
	ErrParse = ewrap.New("parse error")

	// ErrSchema is returned when an expected field is absent from a record,
	// or present with a value of the wrong shape.
	ErrSchema = ewrap.New("schema error")

	// ErrEmptyInput is returned when a statistic is requested over zero measurements.
	ErrEmptyInput = ewrap.New("empty input")

	// ErrGroupMismatch is returned when groups assumed to be of uniform size are not.
	ErrGroupMismatch = ewrap.New("group size mismatch")

	// ErrUnknownFigure is returned when a figure name is not present in the configuration.
	ErrUnknownFigure = ewrap.New("unknown figure")

	// ErrInvalidConfig is returned when a configuration value cannot be used.
	ErrInvalidConfig = ewrap.New("invalid configuration")
)
