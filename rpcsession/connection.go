// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcsession

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ontograph/ontograph/logging"
)

var (
	// ErrUnhealthy is returned by Call once either background delegate has exited.
	ErrUnhealthy = errors.New("rpcsession: connection is not healthy")
	// ErrDeadlineExceeded marks a CallWithTimeout response that timed out waiting for a reply.
	ErrDeadlineExceeded = errors.New("rpcsession: response deadline exceeded")
)

// ConnectionInfo is a read-only snapshot of a Connection's identity and current load.
type ConnectionInfo struct {
	ProtocolVersion    uint16
	OpenedAt           time.Time
	ActiveTransactions int
}

// Connection multiplexes many concurrent transactions over one bidirectional byte stream. It
// owns three background tasks started by Run: a request delegate that serializes outgoing
// frames onto the stream, a response delegate that routes framed responses to the transaction
// named by their RequestId, and a garbage collector that reaps cancelled transaction slots
// once per tick.
type Connection struct {
	rw           io.ReadWriteCloser
	transactions *TransactionCollection
	log          logging.Logger

	protocolVersion          uint16
	responseDeliveryDeadline time.Duration
	gcInterval               time.Duration

	outbox chan Request

	parentCtx context.Context
	cancel    context.CancelFunc

	requestHealthy  atomic.Bool
	responseHealthy atomic.Bool

	openedAt time.Time
	nextId   atomic.Uint64
}

// ConnectionOption configures a Connection constructed by NewConnection.
type ConnectionOption func(*Connection)

// WithResponseDeliveryDeadline overrides the default 5s per-message delivery deadline.
func WithResponseDeliveryDeadline(d time.Duration) ConnectionOption {
	return func(c *Connection) { c.responseDeliveryDeadline = d }
}

// WithGCInterval overrides the default 1s garbage-collection tick.
func WithGCInterval(d time.Duration) ConnectionOption {
	return func(c *Connection) { c.gcInterval = d }
}

// NewConnection wraps rw as a multiplexed session. transactions must not be shared with any
// other Connection.
func NewConnection(rw io.ReadWriteCloser, transactions *TransactionCollection, log logging.Logger, protocolVersion uint16, opts ...ConnectionOption) *Connection {
	c := &Connection{
		rw:                       rw,
		transactions:             transactions,
		log:                      log,
		protocolVersion:          protocolVersion,
		responseDeliveryDeadline: 5 * time.Second,
		gcInterval:               time.Second,
		outbox:                   make(chan Request, 64),
		openedAt:                 time.Now(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Run starts the request delegate, response delegate, and garbage collector, and blocks until
// ctx is cancelled and both delegates have exited. Cancelling ctx cancels every live
// transaction: the per-connection token cascades down, but a transaction's own Cancel never
// cascades back up.
func (c *Connection) Run(ctx context.Context) error {
	c.parentCtx, c.cancel = context.WithCancel(ctx)
	defer c.cancel()

	eg, egCtx := errgroup.WithContext(c.parentCtx)

	eg.Go(func() error {
		c.requestHealthy.Store(true)
		defer c.requestHealthy.Store(false)
		return c.runRequestDelegate(egCtx)
	})
	eg.Go(func() error {
		c.responseHealthy.Store(true)
		defer c.responseHealthy.Store(false)
		return c.runResponseDelegate(c.parentCtx)
	})
	eg.Go(func() error {
		return c.runGC(c.parentCtx)
	})
	eg.Go(func() error {
		// Unblocks the response delegate's pending read once the parent is cancelled —
		// without this, ReadFrame would otherwise wait forever for the peer.
		<-egCtx.Done()
		_ = c.rw.Close()
		return nil
	})

	return eg.Wait()
}

// IsHealthy reports whether both the request and response delegate tasks are currently
// running. Call refuses new transactions once either has exited.
func (c *Connection) IsHealthy() bool {
	return c.requestHealthy.Load() && c.responseHealthy.Load()
}

func (c *Connection) runRequestDelegate(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-c.outbox:
			body, err := encodeRequest(req)
			if err != nil {
				c.log.Error("encode request", "request_id", req.Id, "err", err)
				continue
			}
			if err := WriteFrame(c.rw, body); err != nil {
				return fmt.Errorf("rpcsession: write request: %w", err)
			}
		}
	}
}

func (c *Connection) runResponseDelegate(ctx context.Context) error {
	for {
		body, err := ReadFrame(c.rw)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("rpcsession: read response: %w", err)
		}
		resp, err := decodeResponse(body)
		if err != nil {
			c.log.Error("decode response", "err", err)
			continue
		}
		c.routeResponse(resp)
	}
}

// routeResponse delivers resp to its transaction's buffered channel. If the channel stays full
// past the delivery deadline, the read half is closed but the transaction's write half (and
// its storage entry) is left alive, per the backpressure contract.
func (c *Connection) routeResponse(resp Response) {
	txn, ok := c.transactions.Get(resp.Id)
	if !ok {
		return
	}
	select {
	case txn.responses <- resp:
	case <-time.After(c.responseDeliveryDeadline):
		txn.halfCloseRead()
	case <-txn.ctx.Done():
	}
}

func (c *Connection) runGC(ctx context.Context) error {
	ticker := time.NewTicker(c.gcInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.transactions.ReapCancelled()
		}
	}
}

// Call acquires a transaction slot and sends req, returning a Transaction whose Responses
// channel delivers framed replies as they arrive. It returns ErrUnhealthy if either
// background delegate has already exited.
func (c *Connection) Call(ctx context.Context, service, procedure string, actor uuid.UUID, payload []byte) (*Transaction, error) {
	if !c.IsHealthy() {
		return nil, ErrUnhealthy
	}
	id := RequestId(c.nextId.Add(1))
	txn, err := c.transactions.Acquire(c.parentCtx, id, service, procedure)
	if err != nil {
		return nil, err
	}

	req := Request{
		Id: id,
		Header: RequestHeader{
			ProtocolVersion: c.protocolVersion,
			Service:         service,
			Procedure:       procedure,
			Actor:           actor,
		},
		Payload: payload,
	}

	select {
	case c.outbox <- req:
	case <-ctx.Done():
		c.transactions.Remove(id)
		return nil, ctx.Err()
	case <-c.parentCtx.Done():
		c.transactions.Remove(id)
		return nil, c.parentCtx.Err()
	}
	return txn, nil
}

// CallWithTimeout wraps Call with a per-transaction deadline: if no response arrives within d,
// the caller receives a synthetic DeadlineExceeded response instead of blocking forever. The
// transaction slot is always removed before CallWithTimeout returns.
func (c *Connection) CallWithTimeout(ctx context.Context, service, procedure string, actor uuid.UUID, payload []byte, d time.Duration) (Response, error) {
	txn, err := c.Call(ctx, service, procedure, actor, payload)
	if err != nil {
		return Response{}, err
	}
	defer c.transactions.Remove(txn.Id)

	select {
	case resp, ok := <-txn.Responses():
		if !ok {
			return Response{}, io.ErrUnexpectedEOF
		}
		return resp, nil
	case <-time.After(d):
		return Response{Id: txn.Id, Status: StatusDeadlineExceeded, Err: ErrDeadlineExceeded.Error()}, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}

// Info returns a snapshot of this connection's identity and current load.
func (c *Connection) Info() ConnectionInfo {
	return ConnectionInfo{
		ProtocolVersion:    c.protocolVersion,
		OpenedAt:           c.openedAt,
		ActiveTransactions: c.transactions.Len(),
	}
}
