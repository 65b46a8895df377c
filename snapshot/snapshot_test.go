// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendChunksRowsPerSubStream(t *testing.T) {
	sender, outs := NewEntityTypeSender(2)

	rec := EntityTypeSnapshotRecord{
		Schema:       [][]byte{[]byte("s1"), []byte("s2"), []byte("s3")},
		InheritsFrom: [][]byte{[]byte("p1")},
	}
	require.NoError(t, sender.Send(rec))
	require.NoError(t, sender.Close())

	var schemaBatches []RowBatch
	for batch := range outs[Schema] {
		schemaBatches = append(schemaBatches, batch)
	}
	require.Len(t, schemaBatches, 2, "3 rows chunked at size 2 yields a full batch then a flushed remainder")
	assert.Equal(t, [][]byte{[]byte("s1"), []byte("s2")}, schemaBatches[0].Rows)
	assert.Equal(t, [][]byte{[]byte("s3")}, schemaBatches[1].Rows)

	var inheritsBatches []RowBatch
	for batch := range outs[InheritsFrom] {
		inheritsBatches = append(inheritsBatches, batch)
	}
	require.Len(t, inheritsBatches, 1, "a single buffered row is still emitted on Close via flush")
	assert.Equal(t, [][]byte{[]byte("p1")}, inheritsBatches[0].Rows)

	// Sub-streams that received no rows still close cleanly with zero batches.
	_, ok := <-outs[Relations]
	assert.False(t, ok)
}

func TestReadyReflectsOutputChannelCapacity(t *testing.T) {
	sender, outs := NewEntityTypeSender(1)
	assert.True(t, sender.Ready())

	// Fill every sub-stream's output channel (capacity 4) without draining it.
	for i := 0; i < 4; i++ {
		require.NoError(t, sender.Send(EntityTypeSnapshotRecord{Schema: [][]byte{[]byte("row")}}))
	}
	assert.False(t, sender.Ready(), "schema's output channel is now full")

	<-outs[Schema]
	assert.True(t, sender.Ready())

	require.NoError(t, sender.Close())
}

func TestMergeRowBatchesCombinesAllSubStreams(t *testing.T) {
	sender, outs := NewEntityTypeSender(1)
	require.NoError(t, sender.Send(EntityTypeSnapshotRecord{
		Schema:       [][]byte{[]byte("s1")},
		InheritsFrom: [][]byte{[]byte("p1")},
		Relations:    [][]byte{[]byte("r1")},
	}))
	require.NoError(t, sender.Close())

	merged := MergeRowBatches(outs)

	seen := make(map[SubStreamKind]int)
	timeout := time.After(time.Second)
	for {
		select {
		case batch, ok := <-merged:
			if !ok {
				assert.Equal(t, 1, seen[Schema])
				assert.Equal(t, 1, seen[InheritsFrom])
				assert.Equal(t, 1, seen[Relations])
				return
			}
			seen[batch.SubStream]++
		case <-timeout:
			t.Fatal("timed out waiting for merged batches")
		}
	}
}
