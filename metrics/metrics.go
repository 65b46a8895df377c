// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics wraps a prometheus.Registerer the same way the teacher's own metrics
// package does: components hold a *Metrics and call Register for every collector they own,
// instead of reaching for prometheus.DefaultRegisterer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics wraps the registry every component registers its collectors against.
type Metrics struct {
	Registry prometheus.Registerer
}

// New constructs a Metrics wrapping reg. A nil reg is valid: Register becomes a no-op, which
// lets tests construct components without a live registry.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{Registry: reg}
}

// Register registers collector against the wrapped registry. It is a no-op if the registry is
// nil.
func (m *Metrics) Register(collector prometheus.Collector) error {
	if m == nil || m.Registry == nil {
		return nil
	}
	return m.Registry.Register(collector)
}
