// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package ontids

import "github.com/google/uuid"

// NamespaceURL is the well-known URL namespace UUID used by UUID5(NAMESPACE_URL, ...)
// derivations. It is the standard RFC 4122 "url" namespace.
var NamespaceURL = uuid.NameSpaceURL

// TypeId is the 16-byte UUID5 over the UTF-8 of a VersionedUrl: deriving it twice from the
// same VersionedUrl always yields the same id, with no lookup or registry required.
type TypeId uuid.UUID

// NewTypeId derives a TypeId from a VersionedUrl: UUID5(NAMESPACE_URL, str(u)).
func NewTypeId(u VersionedUrl) TypeId {
	return TypeId(uuid.NewSHA1(NamespaceURL, []byte(u.String())))
}

// DataTypeId, PropertyTypeId and EntityTypeId are distinct named types over the same
// derivation so that the graph store cannot accidentally compare ids across kinds.
type (
	DataTypeId     TypeId
	PropertyTypeId TypeId
	EntityTypeId   TypeId
)

// NewDataTypeId derives a DataTypeId from a VersionedUrl.
func NewDataTypeId(u VersionedUrl) DataTypeId { return DataTypeId(NewTypeId(u)) }

// NewPropertyTypeId derives a PropertyTypeId from a VersionedUrl.
func NewPropertyTypeId(u VersionedUrl) PropertyTypeId { return PropertyTypeId(NewTypeId(u)) }

// NewEntityTypeId derives an EntityTypeId from a VersionedUrl.
func NewEntityTypeId(u VersionedUrl) EntityTypeId { return EntityTypeId(NewTypeId(u)) }

// String renders the canonical UUID text form.
func (t TypeId) String() string { return uuid.UUID(t).String() }

func (t DataTypeId) String() string     { return uuid.UUID(t).String() }
func (t PropertyTypeId) String() string { return uuid.UUID(t).String() }
func (t EntityTypeId) String() string   { return uuid.UUID(t).String() }
