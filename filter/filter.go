// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package filter

// Kind discriminates the Filter variants. Filter is represented as one tagged struct rather
// than an interface hierarchy per variant: the tree is walked by simple field inspection
// (ConvertParameters, MarshalJSON) instead of double dispatch, and a zero Filter{} is never
// mistaken for a valid All([]) because constructors are the only way to produce one.
type Kind int

const (
	KindAllFilter Kind = iota + 1
	KindAnyFilter
	KindNotFilter
	KindEqualFilter
	KindNotEqualFilter
	KindInFilter
	KindStartsWithFilter
	KindEndsWithFilter
	KindContainsSegmentFilter
)

// Filter is a node in the filter algebra: a boolean combinator (All/Any/Not) or a leaf
// comparison (Equal/NotEqual/In/StartsWith/EndsWith/ContainsSegment). Leaf operands with a
// nil Expr side encode SQL NULL on that side: Equal(path, None) asks whether the path's value
// is null.
type Filter struct {
	Kind Kind

	All   []Filter
	AnyOf []Filter
	Not   *Filter

	Lhs *Expr
	Rhs *Expr

	InPath *Expr
	InList *ParameterList
}

// All builds a conjunction. An empty All matches everything (the identity of AND).
func All(filters ...Filter) Filter { return Filter{Kind: KindAllFilter, All: filters} }

// Any builds a disjunction. An empty Any matches nothing (the identity of OR).
func Any(filters ...Filter) Filter { return Filter{Kind: KindAnyFilter, AnyOf: filters} }

// Not negates a filter.
func Not(f Filter) Filter { return Filter{Kind: KindNotFilter, Not: &f} }

// Equal compares two expressions; either side may be nil to mean SQL NULL.
func Equal(lhs, rhs *Expr) Filter { return Filter{Kind: KindEqualFilter, Lhs: lhs, Rhs: rhs} }

// NotEqual compares two expressions for inequality; either side may be nil to mean SQL NULL.
func NotEqual(lhs, rhs *Expr) Filter { return Filter{Kind: KindNotEqualFilter, Lhs: lhs, Rhs: rhs} }

// In tests whether path's value appears in list.
func In(path *Expr, list ParameterList) Filter {
	return Filter{Kind: KindInFilter, InPath: path, InList: &list}
}

// StartsWith tests a text prefix relationship between lhs and rhs.
func StartsWith(lhs, rhs *Expr) Filter { return Filter{Kind: KindStartsWithFilter, Lhs: lhs, Rhs: rhs} }

// EndsWith tests a text suffix relationship between lhs and rhs.
func EndsWith(lhs, rhs *Expr) Filter { return Filter{Kind: KindEndsWithFilter, Lhs: lhs, Rhs: rhs} }

// ContainsSegment tests whether rhs appears as a whole path segment within lhs (as opposed to
// an arbitrary substring).
func ContainsSegment(lhs, rhs *Expr) Filter {
	return Filter{Kind: KindContainsSegmentFilter, Lhs: lhs, Rhs: rhs}
}
