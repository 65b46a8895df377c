// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package columnar

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Batch is one Arrow record batch backing a shared-memory segment, together with the
// Metaversion a reader last observed for it and the byte-range Markers describing where its
// sections live in the segment.
type Batch struct {
	Record      arrow.Record
	Version     Metaversion
	Markers     Markers
	allocator   memory.Allocator
	platformMax int64
}

// PlatformLimitation is returned when a requested column growth would exceed the allocator's
// platform addressing limit (32-bit shared-memory segments cap a single buffer far below what
// a 64-bit process could otherwise allocate).
type PlatformLimitation struct {
	Requested int64
	Limit     int64
}

func (e *PlatformLimitation) Error() string {
	return fmt.Sprintf("columnar: requested buffer of %d bytes exceeds platform limit of %d bytes", e.Requested, e.Limit)
}

// NewBatch wraps an existing Arrow record as version 0 of a batch, using platformMax as the
// largest single-buffer allocation this process's shared-memory platform can address (0 means
// unlimited).
func NewBatch(record arrow.Record, allocator memory.Allocator, platformMax int64) *Batch {
	return &Batch{
		Record:      record,
		Version:     Metaversion{},
		allocator:   allocator,
		platformMax: platformMax,
	}
}

// NumRows returns the batch's row count.
func (b *Batch) NumRows() int64 { return b.Record.NumRows() }

// Column returns the array backing the column named name, or nil if absent.
func (b *Batch) Column(name string) arrow.Array {
	idxs := b.Record.Schema().FieldIndices(name)
	if len(idxs) == 0 {
		return nil
	}
	return b.Record.Column(idxs[0])
}

// GrowColumns replaces the batch's record with next, which must share its schema, recording
// the BufferChange this growth represents. Use Resized whenever the new record's columns are
// backed by freshly allocated buffers (the common case for appending rows), and NoBufferChange
// only when every column array's underlying buffer pointer is unchanged.
func (b *Batch) GrowColumns(next arrow.Record, change BufferChange) error {
	if !next.Schema().Equal(b.Record.Schema()) {
		return fmt.Errorf("columnar: grown record schema does not match existing batch schema")
	}
	if b.platformMax > 0 {
		for i := 0; i < int(next.NumCols()); i++ {
			if size := columnByteSize(next.Column(i)); size > b.platformMax {
				return &PlatformLimitation{Requested: size, Limit: b.platformMax}
			}
		}
	}
	b.Record.Release()
	b.Record = next
	b.Version = b.Version.Advance(change)
	return nil
}

// Release releases the underlying Arrow record's buffers.
func (b *Batch) Release() { b.Record.Release() }

func columnByteSize(col arrow.Array) int64 {
	var total int64
	data := col.Data()
	for _, buf := range data.Buffers() {
		if buf != nil {
			total += int64(buf.Len())
		}
	}
	return total
}

// NewSchema builds an Arrow schema from name/type pairs, the shape every columnar component
// in this package constructs its record batches against.
func NewSchema(fields ...arrow.Field) *arrow.Schema {
	return arrow.NewSchema(fields, nil)
}

// NewBuilder constructs a RecordBuilder for schema using a Go-heap allocator, the allocator
// used outside of an actual shared-memory-backed deployment (tests, single-process mode).
func NewBuilder(schema *arrow.Schema) *array.RecordBuilder {
	return array.NewRecordBuilder(memory.NewGoAllocator(), schema)
}
