// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcsession

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrTransactionExists reports that a RequestId already names a live transaction — I7
	// requires each RequestId to map to at most one active transaction.
	ErrTransactionExists = errors.New("rpcsession: request id already has an active transaction")
)

// TransactionCollection is the per-connection transaction storage: a map keyed by RequestId,
// bounded by a semaphore-backed permit count. Acquire blocks until a slot is free or the
// caller's context is done, giving the connection an upper bound on concurrent transactions.
type TransactionCollection struct {
	mu    sync.RWMutex
	slots map[RequestId]*Transaction

	sem            *semaphore.Weighted
	responseBuffer int

	active prometheus.Gauge
	reaped prometheus.Counter
}

// NewTransactionCollection constructs a TransactionCollection admitting at most
// maxConcurrent transactions at once, each with a response channel of capacity
// responseBuffer. A nil reg skips metric registration.
func NewTransactionCollection(reg prometheus.Registerer, maxConcurrent int64, responseBuffer int) (*TransactionCollection, error) {
	c := &TransactionCollection{
		slots:          make(map[RequestId]*Transaction),
		sem:            semaphore.NewWeighted(maxConcurrent),
		responseBuffer: responseBuffer,
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ontograph",
			Subsystem: "rpcsession",
			Name:      "active_transactions",
			Help:      "Number of transaction slots currently occupied on this connection.",
		}),
		reaped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ontograph",
			Subsystem: "rpcsession",
			Name:      "gc_reaped_total",
			Help:      "Number of transaction slots reclaimed by the garbage collector.",
		}),
	}
	if reg != nil {
		if err := reg.Register(c.active); err != nil {
			return nil, err
		}
		if err := reg.Register(c.reaped); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Acquire blocks until a concurrency permit is free or ctx is done, then admits a new
// transaction for id. It returns ErrTransactionExists if id already names a live transaction.
func (c *TransactionCollection) Acquire(ctx context.Context, id RequestId, service, procedure string) (*Transaction, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("rpcsession: acquire permit: %w", err)
	}

	c.mu.Lock()
	if _, exists := c.slots[id]; exists {
		c.mu.Unlock()
		c.sem.Release(1)
		return nil, ErrTransactionExists
	}
	txn := newTransaction(ctx, id, service, procedure, c.responseBuffer, time.Now())
	c.slots[id] = txn
	c.mu.Unlock()

	c.active.Inc()
	return txn, nil
}

// Get returns the transaction named by id, if it is still live.
func (c *TransactionCollection) Get(id RequestId) (*Transaction, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.slots[id]
	return t, ok
}

// Remove terminates and removes id's transaction slot immediately, releasing its permit. It is
// a no-op if id is not live.
func (c *TransactionCollection) Remove(id RequestId) {
	c.mu.Lock()
	txn, exists := c.slots[id]
	if exists {
		delete(c.slots, id)
	}
	c.mu.Unlock()
	if !exists {
		return
	}
	txn.terminate()
	c.sem.Release(1)
	c.active.Dec()
}

// Len reports the number of live transaction slots.
func (c *TransactionCollection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.slots)
}

// ReapCancelled scans every slot once and removes those whose context has already been
// cancelled, bounding a cancelled transaction's lifetime in storage to one GC tick.
func (c *TransactionCollection) ReapCancelled() int {
	c.mu.Lock()
	var dead []*Transaction
	for id, txn := range c.slots {
		select {
		case <-txn.ctx.Done():
			dead = append(dead, txn)
			delete(c.slots, id)
		default:
		}
	}
	c.mu.Unlock()

	for _, txn := range dead {
		txn.terminate()
		c.sem.Release(1)
	}
	if n := len(dead); n > 0 {
		c.active.Sub(float64(n))
		c.reaped.Add(float64(n))
	}
	return len(dead)
}
