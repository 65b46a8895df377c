// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcsession

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRejectsDuplicateRequestId(t *testing.T) {
	c, err := NewTransactionCollection(nil, 4, 4)
	require.NoError(t, err)

	_, err = c.Acquire(context.Background(), RequestId(1), "svc", "proc")
	require.NoError(t, err)

	_, err = c.Acquire(context.Background(), RequestId(1), "svc", "proc")
	assert.ErrorIs(t, err, ErrTransactionExists)
}

func TestAcquireBlocksUntilSlotFreesUp(t *testing.T) {
	c, err := NewTransactionCollection(nil, 1, 4)
	require.NoError(t, err)

	txn, err := c.Acquire(context.Background(), RequestId(1), "svc", "proc")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Acquire(ctx, RequestId(2), "svc", "proc")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	c.Remove(txn.Id)

	txn2, err := c.Acquire(context.Background(), RequestId(2), "svc", "proc")
	require.NoError(t, err)
	assert.Equal(t, RequestId(2), txn2.Id)
}

func TestRemoveReleasesPermitAndDeletesSlot(t *testing.T) {
	c, err := NewTransactionCollection(nil, 4, 4)
	require.NoError(t, err)

	txn, err := c.Acquire(context.Background(), RequestId(1), "svc", "proc")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	c.Remove(txn.Id)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, StateTerminated, txn.State())

	_, ok := c.Get(txn.Id)
	assert.False(t, ok)
}

func TestReapCancelledRemovesOnlyCancelledSlots(t *testing.T) {
	c, err := NewTransactionCollection(nil, 4, 4)
	require.NoError(t, err)

	live, err := c.Acquire(context.Background(), RequestId(1), "svc", "proc")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancelled, err := c.Acquire(ctx, RequestId(2), "svc", "proc")
	require.NoError(t, err)
	cancel()

	n := c.ReapCancelled()
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get(live.Id)
	assert.True(t, ok)
	_, ok = c.Get(cancelled.Id)
	assert.False(t, ok)
}

func TestTransactionCancelDoesNotCascadeToSiblings(t *testing.T) {
	c, err := NewTransactionCollection(nil, 4, 4)
	require.NoError(t, err)

	a, err := c.Acquire(context.Background(), RequestId(1), "svc", "proc")
	require.NoError(t, err)
	b, err := c.Acquire(context.Background(), RequestId(2), "svc", "proc")
	require.NoError(t, err)

	a.Cancel()

	select {
	case <-a.Done():
	default:
		t.Fatal("expected a to be cancelled")
	}
	select {
	case <-b.Done():
		t.Fatal("expected b to be unaffected by a's cancellation")
	default:
	}
}
