// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package columnar

// Loaded pairs a value decoded from a shared-memory segment with the Metaversion it was
// decoded at, so later code can tell whether that decode is still current without re-deriving
// it from the segment's live header on every access.
type Loaded[T any] struct {
	Value   T
	AsOf    Metaversion
}

// NewLoaded wraps value as having been loaded at asOf.
func NewLoaded[T any](value T, asOf Metaversion) Loaded[T] {
	return Loaded[T]{Value: value, AsOf: asOf}
}

// Stale reports whether current has advanced (in either half) past the version this value was
// loaded at.
func (l Loaded[T]) Stale(current Metaversion) bool {
	return l.AsOf.NeedsReload(current) || l.AsOf.NeedsReread(current)
}
