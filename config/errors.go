// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var (
	ErrInvalidMaxConcurrentTransactions = errors.New("config: max concurrent transactions must be >= 1")
	ErrInvalidResponseChannelCapacity   = errors.New("config: response channel capacity must be >= 1")
	ErrInvalidResponseDeliveryDeadline  = errors.New("config: response delivery deadline must be > 0")
	ErrInvalidGCInterval                = errors.New("config: gc interval must be > 0")
	ErrInvalidPlatformMaxColumnBytes    = errors.New("config: platform max column bytes must be >= 1")
)
