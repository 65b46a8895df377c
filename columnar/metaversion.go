// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package columnar manages Arrow-format shared-memory column batches and the metaversion
// bookkeeping that tells a reader whether its in-process view of a batch is stale.
package columnar

import "fmt"

// Metaversion is the (memory, batch) pair every shared-memory segment carries: memory counts
// how many times the underlying buffer has been reallocated by a resize (a shift does not
// count), batch counts how many times the segment has been written, with or without a new
// buffer. A reader reloads its mapping when memory advances and
// simply re-reads when only batch has.
type Metaversion struct {
	Memory uint32
	Batch  uint32
}

// Valid reports whether batch has ever caught up to memory: a freshly reallocated buffer
// starts with batch == memory (the allocation itself counts as a write), so batch can never
// trail memory for a consistent segment.
func (m Metaversion) Valid() bool { return m.Batch >= m.Memory }

// BufferChange classifies how a write to shared memory affected the underlying buffer,
// determining which half of a Metaversion to advance.
type BufferChange int

const (
	// NoBufferChange means the write fit in place: neither pointer nor length changed.
	NoBufferChange BufferChange = iota
	// Shifted means the buffer's starting offset moved but its capacity did not grow: a
	// compaction elsewhere in the shared segment, not a reallocation.
	Shifted
	// Resized means the buffer was reallocated to a new size.
	Resized
)

func (c BufferChange) String() string {
	switch c {
	case NoBufferChange:
		return "none"
	case Shifted:
		return "shifted"
	case Resized:
		return "resized"
	default:
		return "unknown"
	}
}

// resized reports whether c requires a reader to remap rather than merely re-read.
func (c BufferChange) resized() bool { return c == Resized }

// Advance returns the Metaversion that results from writing to a segment whose buffer changed
// as described by change. Resized bumps both Memory and Batch by one, since the reallocation
// itself is also a write; Shifted moves the buffer without a reallocation, so it bumps only
// Batch, leaving Memory in place (a reader re-reads rather than remaps); NoBufferChange bumps
// only Batch.
func (m Metaversion) Advance(change BufferChange) Metaversion {
	if change.resized() {
		return Metaversion{Memory: m.Memory + 1, Batch: m.Batch + 1}
	}
	return Metaversion{Memory: m.Memory, Batch: m.Batch + 1}
}

// NeedsReload reports whether a reader holding last must remap its view of the segment before
// reading current: true whenever current's Memory has advanced past what the reader last saw.
func (last Metaversion) NeedsReload(current Metaversion) bool {
	return current.Memory > last.Memory
}

// NeedsReread reports whether a reader holding last, already at the right mapping, must
// re-read the segment's content: true whenever current's Batch has advanced.
func (last Metaversion) NeedsReread(current Metaversion) bool {
	return current.Batch > last.Batch
}

func (m Metaversion) String() string {
	return fmt.Sprintf("memory=%d,batch=%d", m.Memory, m.Batch)
}

// Markers records the byte ranges of a shared-memory segment's header, schema, and data
// sections, so a reload can locate each without re-parsing the whole buffer.
type Markers struct {
	HeaderOffset int64
	SchemaOffset int64
	DataOffset   int64
	DataLength   int64
}
