// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config collects every engine-tunable parameter into one struct, the way the
// teacher's own config package does for consensus parameters: a Config struct, a Default
// constructor, a block of sentinel errors, and a Validate method — no viper, no file format.
package config

import "time"

// Config holds every tunable knob for a running ontograph instance: the RPC session layer's
// concurrency and timing limits, the columnar store's platform ceiling, and postgres
// connectivity for the graph store and authorization backends.
type Config struct {
	// RPC session layer (C6).
	MaxConcurrentTransactions int64
	ResponseChannelCapacity  int
	ResponseDeliveryDeadline time.Duration
	GCInterval               time.Duration
	ProtocolVersion          uint16

	// Columnar shared state (C4).
	PlatformMaxColumnBytes int64

	// Graph store (C1). Zero means the edge kind is not followed at all.
	DefaultResolveDepth uint8

	// Postgres connectivity, shared by the graph store and authorization backends.
	PostgresDSN string
}

// Default returns the parameter set used for local development and tests: generous limits,
// short intervals, no postgres connectivity configured.
func Default() Config {
	return Config{
		MaxConcurrentTransactions: 256,
		ResponseChannelCapacity:   16,
		ResponseDeliveryDeadline:  5 * time.Second,
		GCInterval:                time.Second,
		ProtocolVersion:           1,
		PlatformMaxColumnBytes:    64 << 20,
		DefaultResolveDepth:       1,
	}
}

// Validate checks the RPC session and columnar limits for in-range values, returning the first
// violation found. ProtocolVersion, DefaultResolveDepth and PostgresDSN are not checked.
func (c Config) Validate() error {
	switch {
	case c.MaxConcurrentTransactions < 1:
		return ErrInvalidMaxConcurrentTransactions
	case c.ResponseChannelCapacity < 1:
		return ErrInvalidResponseChannelCapacity
	case c.ResponseDeliveryDeadline <= 0:
		return ErrInvalidResponseDeliveryDeadline
	case c.GCInterval <= 0:
		return ErrInvalidGCInterval
	case c.PlatformMaxColumnBytes < 1:
		return ErrInvalidPlatformMaxColumnBytes
	default:
		return nil
	}
}
