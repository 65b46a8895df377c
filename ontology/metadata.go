// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ontology models the typed ontology layer: data types, property types, entity
// types, and the conversion expressions data types may carry.
package ontology

import (
	"time"

	"github.com/google/uuid"
	"github.com/ontograph/ontograph/ontids"
)

// Classification distinguishes records owned by the local instance from those mirrored from
// a remote federation partner.
type Classification int

const (
	// Owned marks a record authored locally.
	Owned Classification = iota
	// Remote marks a record mirrored from elsewhere.
	Remote
)

// Provenance records who/what produced an edition and when.
type Provenance struct {
	CreatedById uuid.UUID
	CreatedAt   time.Time
	Origin      string
}

// RecordId names one edition of an ontology type by its VersionedUrl; the TypeId is not
// stored here and is derived from that VersionedUrl with ontids.NewTypeId.
type RecordId struct {
	VersionedUrl ontids.VersionedUrl
}

// Metadata is the common envelope every ontology record carries alongside its schema
// payload.
type Metadata struct {
	RecordId           RecordId
	Classification     Classification
	Provenance         Provenance
	TemporalVersioning ontids.TemporalAxes
}
