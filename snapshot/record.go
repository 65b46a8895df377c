// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package snapshot accepts a stream of snapshot records, fans each one out across several
// named row sub-streams, chunks every sub-stream to a fixed size, and merges the resulting
// batches back into a single stream for a bulk loader to consume.
package snapshot

// SubStreamKind names one of an EntityTypeSnapshotRecord's row sub-streams.
type SubStreamKind string

const (
	Schema                     SubStreamKind = "schema"
	InheritsFrom               SubStreamKind = "inherits_from"
	ConstrainsProperties       SubStreamKind = "constrains_properties"
	ConstrainsLinks            SubStreamKind = "constrains_links"
	ConstrainsLinkDestinations SubStreamKind = "constrains_link_destinations"
	Relations                  SubStreamKind = "relations"
	Embeddings                 SubStreamKind = "embeddings"
)

// entityTypeSubStreams lists every entity-type sub-stream in the fixed order sends, flushes,
// and closes must follow.
var entityTypeSubStreams = []SubStreamKind{
	Schema,
	InheritsFrom,
	ConstrainsProperties,
	ConstrainsLinks,
	ConstrainsLinkDestinations,
	Relations,
	Embeddings,
}

// RowBatch is a chunk-bounded batch of rows from one sub-stream, tagged so a consumer merging
// several sub-streams can tell which table a batch belongs to.
type RowBatch struct {
	SubStream SubStreamKind
	Rows      [][]byte
}

// EntityTypeSnapshotRecord is one inbound unit of work, already decomposed by the caller into
// the rows each of its seven sub-streams contributes. This package owns chunking, readiness,
// and fan-in — not how an entity type's schema decomposes into rows.
type EntityTypeSnapshotRecord struct {
	Schema                     [][]byte
	InheritsFrom               [][]byte
	ConstrainsProperties       [][]byte
	ConstrainsLinks            [][]byte
	ConstrainsLinkDestinations [][]byte
	Relations                  [][]byte
	Embeddings                 [][]byte
}

func (r EntityTypeSnapshotRecord) rowsFor(kind SubStreamKind) [][]byte {
	switch kind {
	case Schema:
		return r.Schema
	case InheritsFrom:
		return r.InheritsFrom
	case ConstrainsProperties:
		return r.ConstrainsProperties
	case ConstrainsLinks:
		return r.ConstrainsLinks
	case ConstrainsLinkDestinations:
		return r.ConstrainsLinkDestinations
	case Relations:
		return r.Relations
	case Embeddings:
		return r.Embeddings
	default:
		return nil
	}
}
