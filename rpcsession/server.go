// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcsession

import (
	"context"
	"io"
	"sync"

	"github.com/ontograph/ontograph/logging"
)

// Handler answers one Request with a Response. Handlers are called concurrently, one
// goroutine per in-flight request, so a Handler implementation must be safe for concurrent
// use.
type Handler func(ctx context.Context, req Request) Response

// Serve reads framed requests off rw and dispatches each to handler in its own goroutine,
// writing the Response back as it completes. Responses for concurrently in-flight requests
// may be written in any order relative to each other, but each request's own handler call
// always completes before its Response frame is written. Serve returns when ctx is cancelled
// or a frame read fails.
func Serve(ctx context.Context, rw io.ReadWriteCloser, log logging.Logger, handler Handler) error {
	var writeMu sync.Mutex
	var wg sync.WaitGroup
	defer wg.Wait()

	go func() {
		<-ctx.Done()
		_ = rw.Close()
	}()

	for {
		body, err := ReadFrame(rw)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		req, err := decodeRequest(body)
		if err != nil {
			log.Error("decode request", "err", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := handler(ctx, req)
			resp.Id = req.Id

			respBody, err := encodeResponse(resp)
			if err != nil {
				log.Error("encode response", "request_id", req.Id, "err", err)
				return
			}
			writeMu.Lock()
			defer writeMu.Unlock()
			if err := WriteFrame(rw, respBody); err != nil {
				log.Error("write response", "request_id", req.Id, "err", err)
			}
		}()
	}
}
