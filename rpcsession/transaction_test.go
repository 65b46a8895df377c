// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcsession

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHalfCloseReadClosesResponsesButKeepsContextAlive(t *testing.T) {
	txn := newTransaction(context.Background(), 1, "svc", "proc", 1, time.Now())
	txn.halfCloseRead()

	assert.Equal(t, StateHalfClosedRead, txn.State())
	_, ok := <-txn.Responses()
	assert.False(t, ok, "expected responses channel to be closed")

	select {
	case <-txn.Done():
		t.Fatal("half-closing the read side must not cancel the transaction context")
	default:
	}
}

func TestTerminateCancelsContextAndClosesResponsesOnce(t *testing.T) {
	txn := newTransaction(context.Background(), 1, "svc", "proc", 1, time.Now())
	txn.terminate()
	txn.terminate() // must not panic on double-close

	assert.Equal(t, StateTerminated, txn.State())
	select {
	case <-txn.Done():
	default:
		t.Fatal("expected terminate to cancel the context")
	}
}

func TestCancelTransitionsStateAndCancelsContext(t *testing.T) {
	txn := newTransaction(context.Background(), 1, "svc", "proc", 1, time.Now())
	txn.Cancel()

	assert.Equal(t, StateCancelled, txn.State())
	select {
	case <-txn.Done():
	default:
		t.Fatal("expected Cancel to cancel the context")
	}
}
