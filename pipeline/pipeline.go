// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pipeline composes streaming operators over Arrow record batch columns: index
// filters select which rows survive and aggregators then reduce the surviving rows' values,
// with an explicit default substituted for any row whose stored value
// is missing (null) or malformed (wrong physical type for the logical column kind). The
// package has no value-filter operator that compares values after selection.
package pipeline

import (
	"encoding/json"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// Column adapts one Arrow array as a column this package's operators can read, isolating the
// rest of the package from Arrow's per-physical-type array interfaces.
type Column struct {
	arr arrow.Array
}

// NewColumn wraps arr.
func NewColumn(arr arrow.Array) Column { return Column{arr: arr} }

// Len returns the column's row count.
func (c Column) Len() int { return c.arr.Len() }

// IsNull reports whether row i holds no value.
func (c Column) IsNull(i int) bool { return c.arr.IsNull(i) }

// Bool reads row i as a boolean. ok is false if the row is null or not boolean-typed.
func (c Column) Bool(i int) (v bool, ok bool) {
	if c.arr.IsNull(i) {
		return false, false
	}
	b, isBool := c.arr.(*array.Boolean)
	if !isBool {
		return false, false
	}
	return b.Value(i), true
}

// Float64 reads row i as a float64. ok is false if the row is null or not numeric-typed.
func (c Column) Float64(i int) (v float64, ok bool) {
	if c.arr.IsNull(i) {
		return 0, false
	}
	switch a := c.arr.(type) {
	case *array.Float64:
		return a.Value(i), true
	case *array.Float32:
		return float64(a.Value(i)), true
	case *array.Int64:
		return float64(a.Value(i)), true
	case *array.Int32:
		return float64(a.Value(i)), true
	default:
		return 0, false
	}
}

// String reads row i as a string. ok is false if the row is null or not string-typed.
func (c Column) String(i int) (v string, ok bool) {
	if c.arr.IsNull(i) {
		return "", false
	}
	s, isStr := c.arr.(*array.String)
	if !isStr {
		return "", false
	}
	return s.Value(i), true
}

// JSON reads row i as a serialized JSON string column and decodes it into an arbitrary Go
// value. ok is false if the row is null, not string-typed, or not valid JSON — all three are
// "malformed" in the sense that the caller substitutes its default rather than failing the
// whole batch over one bad row.
func (c Column) JSON(i int) (v any, ok bool) {
	raw, isStr := c.String(i)
	if !isStr {
		return nil, false
	}
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, false
	}
	return decoded, true
}
