// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcsession

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontograph/ontograph/logging"
)

func TestServeDispatchesToHandlerAndWritesResponse(t *testing.T) {
	client, server := net.Pipe()
	t.Cleanup(func() { client.Close(); server.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Serve(ctx, server, logging.NoOp(), func(_ context.Context, req Request) Response {
		return Response{Status: StatusSuccess, Payload: append([]byte("echo:"), req.Payload...)}
	})

	req := Request{
		Id:      1,
		Header:  RequestHeader{Service: "graph", Procedure: "ping", Actor: uuid.New()},
		Payload: []byte("hi"),
	}
	body, err := encodeRequest(req)
	require.NoError(t, err)
	require.NoError(t, WriteFrame(client, body))

	respBody, err := ReadFrame(client)
	require.NoError(t, err)
	resp, err := decodeResponse(respBody)
	require.NoError(t, err)

	assert.Equal(t, RequestId(1), resp.Id)
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, []byte("echo:hi"), resp.Payload)
}

func TestServeReturnsWhenContextCancelled(t *testing.T) {
	client, server := net.Pipe()
	t.Cleanup(func() { client.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, server, logging.NoOp(), func(_ context.Context, req Request) Response { return Response{} }) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after context cancellation")
	}
}
