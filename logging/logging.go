// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package logging wraps github.com/luxfi/log behind a narrow interface so that every
// component takes a Logger via constructor injection rather than reaching for a package-level
// global.
package logging

import (
	luxlog "github.com/luxfi/log"
)

// Logger is the logging surface every component depends on: four levels, each taking a
// message and an even-length slice of alternating key/value pairs, mirroring the shape the
// teacher's own log.NoLog stub implements against github.com/luxfi/log.Logger.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)

	// With returns a Logger that prepends kv to every subsequent call's key/value pairs.
	With(kv ...any) Logger
}

// luxLogger adapts a github.com/luxfi/log.Logger to Logger.
type luxLogger struct {
	inner luxlog.Logger
}

// Wrap adapts an existing github.com/luxfi/log.Logger.
func Wrap(inner luxlog.Logger) Logger {
	return luxLogger{inner: inner}
}

// New constructs a Logger backed by github.com/luxfi/log's no-op implementation. Callers that
// want real output should construct their own github.com/luxfi/log.Logger and pass it to Wrap.
func New() Logger {
	return Wrap(luxlog.NewNoOpLogger())
}

func (l luxLogger) Debug(msg string, kv ...any) { l.inner.Debug(msg, kv...) }
func (l luxLogger) Info(msg string, kv ...any)  { l.inner.Info(msg, kv...) }
func (l luxLogger) Warn(msg string, kv ...any)  { l.inner.Warn(msg, kv...) }
func (l luxLogger) Error(msg string, kv ...any) { l.inner.Error(msg, kv...) }

func (l luxLogger) With(kv ...any) Logger {
	return luxLogger{inner: l.inner.With(kv...)}
}

// NoOp returns a Logger that discards everything, for tests that need to satisfy the
// interface without asserting on log output.
func NoOp() Logger {
	return New()
}
