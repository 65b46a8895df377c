// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package snapshot

import (
	"golang.org/x/sync/errgroup"
)

// MergeRowBatches fans every per-sub-stream channel in ins into one channel, forwarding
// whichever sub-stream produces a batch next — the select_all-equivalent merge a bulk loader
// consumes from. The merged channel is closed once every input channel has been drained and
// closed by its sender.
func MergeRowBatches(ins map[SubStreamKind]<-chan RowBatch) <-chan RowBatch {
	out := make(chan RowBatch)

	var eg errgroup.Group
	for _, in := range ins {
		in := in
		eg.Go(func() error {
			for batch := range in {
				out <- batch
			}
			return nil
		})
	}

	go func() {
		_ = eg.Wait()
		close(out)
	}()

	return out
}
