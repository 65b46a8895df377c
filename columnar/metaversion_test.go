// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package columnar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvanceNoBufferChangeBumpsOnlyBatch(t *testing.T) {
	m := Metaversion{Memory: 2, Batch: 5}
	next := m.Advance(NoBufferChange)
	assert.Equal(t, Metaversion{Memory: 2, Batch: 6}, next)
}

func TestAdvanceResizedIncrementsBothByOne(t *testing.T) {
	m := Metaversion{Memory: 2, Batch: 5}
	next := m.Advance(Resized)
	assert.Equal(t, Metaversion{Memory: 3, Batch: 6}, next)
	assert.True(t, next.Valid())
}

func TestAdvanceShiftedBumpsOnlyBatch(t *testing.T) {
	m := Metaversion{Memory: 1, Batch: 3}
	next := m.Advance(Shifted)
	assert.Equal(t, Metaversion{Memory: 1, Batch: 4}, next)
}

func TestNeedsReloadOnlyWhenMemoryAdvances(t *testing.T) {
	last := Metaversion{Memory: 1, Batch: 1}
	assert.False(t, last.NeedsReload(Metaversion{Memory: 1, Batch: 4}))
	assert.True(t, last.NeedsReload(Metaversion{Memory: 2, Batch: 2}))
}

func TestNeedsRereadOnBatchAdvanceWithoutMemoryChange(t *testing.T) {
	last := Metaversion{Memory: 1, Batch: 1}
	assert.True(t, last.NeedsReread(Metaversion{Memory: 1, Batch: 2}))
	assert.False(t, last.NeedsReread(Metaversion{Memory: 1, Batch: 1}))
}

func TestPersistedMetaversionNeverTrailsMemory(t *testing.T) {
	m := Metaversion{Memory: 4, Batch: 4}
	assert.True(t, m.Valid())
	stale := Metaversion{Memory: 4, Batch: 3}
	assert.False(t, stale.Valid())
}

func TestLoadedStaleDetection(t *testing.T) {
	loaded := NewLoaded(42, Metaversion{Memory: 1, Batch: 1})
	assert.False(t, loaded.Stale(Metaversion{Memory: 1, Batch: 1}))
	assert.True(t, loaded.Stale(Metaversion{Memory: 1, Batch: 2}))
	assert.True(t, loaded.Stale(Metaversion{Memory: 2, Batch: 2}))
}
