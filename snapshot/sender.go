// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package snapshot

// subSender chunks one sub-stream's rows to chunkSize and emits RowBatch values on out.
type subSender struct {
	kind      SubStreamKind
	chunkSize int
	out       chan<- RowBatch
	buf       [][]byte
}

func newSubSender(kind SubStreamKind, chunkSize int, out chan<- RowBatch) *subSender {
	return &subSender{kind: kind, chunkSize: chunkSize, out: out}
}

// ready reports whether this sub-sender can currently accept another row without its output
// channel blocking — an advisory check, not a guarantee, matching the cooperative single-
// runtime model the readiness discipline assumes.
func (s *subSender) ready() bool {
	return len(s.out) < cap(s.out)
}

func (s *subSender) send(row []byte) error {
	s.buf = append(s.buf, row)
	if len(s.buf) >= s.chunkSize {
		return s.emit()
	}
	return nil
}

func (s *subSender) emit() error {
	if len(s.buf) == 0 {
		return nil
	}
	batch := RowBatch{SubStream: s.kind, Rows: s.buf}
	s.buf = nil
	s.out <- batch
	return nil
}

func (s *subSender) flush() error {
	return s.emit()
}

func (s *subSender) close() {
	close(s.out)
}

// EntityTypeSender fans EntityTypeSnapshotRecord values out across their seven sub-streams,
// chunking each one independently.
type EntityTypeSender struct {
	subSenders []*subSender
}

// NewEntityTypeSender constructs an EntityTypeSender chunking every sub-stream to chunkSize,
// returning the receive side of each sub-stream's output channel.
func NewEntityTypeSender(chunkSize int) (*EntityTypeSender, map[SubStreamKind]<-chan RowBatch) {
	outs := make(map[SubStreamKind]<-chan RowBatch, len(entityTypeSubStreams))
	s := &EntityTypeSender{}
	for _, kind := range entityTypeSubStreams {
		ch := make(chan RowBatch, 4)
		s.subSenders = append(s.subSenders, newSubSender(kind, chunkSize, ch))
		outs[kind] = ch
	}
	return s, outs
}

// Ready reports whether every sub-sender can currently accept a row, false if any one
// sub-stream is not ready. Send does not consult it: a record is not refused, and a Send into
// a full sub-stream blocks on that sub-stream after earlier sub-streams' rows were pushed.
func (s *EntityTypeSender) Ready() bool {
	for _, sub := range s.subSenders {
		if !sub.ready() {
			return false
		}
	}
	return true
}

// Send pushes every row of rec into its matching sub-stream, in the fixed sub-stream order.
// Any sub-send error is wrapped as a SnapshotRestoreError naming the failing sub-stream.
func (s *EntityTypeSender) Send(rec EntityTypeSnapshotRecord) error {
	for _, sub := range s.subSenders {
		for _, row := range rec.rowsFor(sub.kind) {
			if err := sub.send(row); err != nil {
				return &SnapshotRestoreError{SubStream: sub.kind, Kind: ErrKindWrite, Err: err}
			}
		}
	}
	return nil
}

// Close flushes and closes every sub-sender in the same fixed order used for Send.
func (s *EntityTypeSender) Close() error {
	for _, sub := range s.subSenders {
		if err := sub.flush(); err != nil {
			return &SnapshotRestoreError{SubStream: sub.kind, Kind: ErrKindWrite, Err: err}
		}
		sub.close()
	}
	return nil
}
