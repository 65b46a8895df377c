// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package pipeline

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
)

func float64Column(t *testing.T, values []float64, valid []bool) Column {
	t.Helper()
	mem := memory.NewGoAllocator()
	b := array.NewFloat64Builder(mem)
	defer b.Release()
	b.AppendValues(values, valid)
	arr := b.NewFloat64Array()
	t.Cleanup(arr.Release)
	return NewColumn(arr)
}

func stringColumn(t *testing.T, values []string, valid []bool) Column {
	t.Helper()
	mem := memory.NewGoAllocator()
	b := array.NewStringBuilder(mem)
	defer b.Release()
	b.AppendValues(values, valid)
	arr := b.NewStringArray()
	t.Cleanup(arr.Release)
	return NewColumn(arr)
}

func TestNotNullFiltersMissingRows(t *testing.T) {
	col := float64Column(t, []float64{1, 0, 3}, []bool{true, false, true})
	indices := NotNull()(col)
	assert.Equal(t, []int{0, 2}, indices)
}

func TestSumSubstitutesDefaultForNullRows(t *testing.T) {
	col := float64Column(t, []float64{1, 0, 3}, []bool{true, false, true})
	total := Sum(col, []int{0, 1, 2}, -1)
	assert.Equal(t, 1.0-1.0+3.0, total)
}

func TestMeanOfEmptyIndicesIsNaN(t *testing.T) {
	col := float64Column(t, []float64{1, 2, 3}, nil)
	mean := Mean(col, nil, 0)
	assert.True(t, mean != mean, "expected NaN")
}

func TestMinMaxOverValidRows(t *testing.T) {
	col := float64Column(t, []float64{4, 1, 9}, nil)
	assert.Equal(t, 1.0, Min(col, []int{0, 1, 2}, 0))
	assert.Equal(t, 9.0, Max(col, []int{0, 1, 2}, 0))
}

func TestStringEqualsFilter(t *testing.T) {
	col := stringColumn(t, []string{"a", "b", "a"}, nil)
	indices := StringEquals("a")(col)
	assert.Equal(t, []int{0, 2}, indices)
}

func TestJSONAggregatorTreatsMalformedJSONAsDefault(t *testing.T) {
	col := stringColumn(t, []string{"1.5", "not-json", "2.5"}, nil)
	total := SumJSON(col, []int{0, 1, 2}, 10)
	assert.Equal(t, 1.5+10+2.5, total)
}

func TestIntersectCombinesMultipleFilters(t *testing.T) {
	a := []int{0, 1, 2, 3}
	b := []int{1, 2, 4}
	assert.Equal(t, []int{1, 2}, Intersect(a, b))
}
