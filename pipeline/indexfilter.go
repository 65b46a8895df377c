// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package pipeline

// IndexFilter selects which row indices of a Column survive into the rest of the pipeline. It
// returns the surviving indices in ascending order; operators downstream never see a
// filtered-out row.
type IndexFilter func(col Column) []int

// NotNull keeps every row that holds a value.
func NotNull() IndexFilter {
	return func(col Column) []int {
		out := make([]int, 0, col.Len())
		for i := 0; i < col.Len(); i++ {
			if !col.IsNull(i) {
				out = append(out, i)
			}
		}
		return out
	}
}

// IsNull keeps every row that holds no value.
func IsNull() IndexFilter {
	return func(col Column) []int {
		out := make([]int, 0)
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				out = append(out, i)
			}
		}
		return out
	}
}

// BoolEquals keeps rows whose boolean value equals want. A null or non-boolean row never
// survives: an index filter's job is to narrow the row set, not to substitute a default.
func BoolEquals(want bool) IndexFilter {
	return func(col Column) []int {
		out := make([]int, 0)
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.Bool(i); ok && v == want {
				out = append(out, i)
			}
		}
		return out
	}
}

// Float64Range keeps rows whose numeric value falls in [min, max].
func Float64Range(min, max float64) IndexFilter {
	return func(col Column) []int {
		out := make([]int, 0)
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.Float64(i); ok && v >= min && v <= max {
				out = append(out, i)
			}
		}
		return out
	}
}

// StringEquals keeps rows whose string value equals want.
func StringEquals(want string) IndexFilter {
	return func(col Column) []int {
		out := make([]int, 0)
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.String(i); ok && v == want {
				out = append(out, i)
			}
		}
		return out
	}
}

// Intersect returns the indices present in every filter's result, preserving ascending order.
func Intersect(filters ...[]int) []int {
	if len(filters) == 0 {
		return nil
	}
	counts := make(map[int]int)
	for _, f := range filters {
		for _, i := range f {
			counts[i]++
		}
	}
	out := make([]int, 0, len(filters[0]))
	for _, i := range filters[0] {
		if counts[i] == len(filters) {
			out = append(out, i)
		}
	}
	return out
}
