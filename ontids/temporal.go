// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package ontids

import "time"

// TimeAxis names one of the two independent temporal axes every entity/edition carries.
type TimeAxis int

const (
	// DecisionTime is the axis on which a record is believed to have taken effect.
	DecisionTime TimeAxis = iota
	// TransactionTime is the axis on which a record was written to the store.
	TransactionTime
)

func (a TimeAxis) String() string {
	switch a {
	case DecisionTime:
		return "decisionTime"
	case TransactionTime:
		return "transactionTime"
	default:
		return "unknown"
	}
}

// Interval is a half-open span [Start, End) on one temporal axis. A nil End means "open",
// i.e. still live.
type Interval struct {
	Start time.Time
	End   *time.Time
}

// Contains reports whether instant t falls within the interval.
func (iv Interval) Contains(t time.Time) bool {
	if t.Before(iv.Start) {
		return false
	}
	return iv.End == nil || t.Before(*iv.End)
}

// TemporalAxes captures both the requested and resolved axes of a query: one axis is
// `Pinned` to an instant, the other is `Variable` over an interval.
type TemporalAxes struct {
	Pinned   PinnedAxis
	Variable VariableAxis
}

// PinnedAxis fixes one temporal axis to a single instant.
type PinnedAxis struct {
	Axis     TimeAxis
	Instant  time.Time
	resolved bool
}

// VariableAxis fixes the other temporal axis to an interval, possibly with open endpoints
// that Resolve replaces with the current instant.
type VariableAxis struct {
	Axis     TimeAxis
	Start    *time.Time
	End      *time.Time
	resolved bool
}

// Resolve replaces absent endpoints with now, producing a concrete TemporalAxes usable for
// traversal.
func (t TemporalAxes) Resolve(now time.Time) TemporalAxes {
	resolved := t
	resolved.Pinned.resolved = true
	if resolved.Pinned.Instant.IsZero() {
		resolved.Pinned.Instant = now
	}
	resolved.Variable.resolved = true
	if resolved.Variable.Start == nil {
		start := now
		resolved.Variable.Start = &start
	}
	if resolved.Variable.End == nil {
		end := now
		resolved.Variable.End = &end
	}
	return resolved
}

// IsResolved reports whether Resolve has been applied.
func (t TemporalAxes) IsResolved() bool {
	return t.Pinned.resolved && t.Variable.resolved
}

// Interval returns the variable axis as an Interval, panicking if unresolved.
func (v VariableAxis) Interval() Interval {
	if v.Start == nil || v.End == nil {
		panic("ontids: VariableAxis.Interval called before Resolve")
	}
	return Interval{Start: *v.Start, End: v.End}
}
