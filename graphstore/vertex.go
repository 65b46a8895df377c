// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package graphstore

import (
	"fmt"

	"github.com/ontograph/ontograph/ontids"
	"github.com/ontograph/ontograph/ontology"
)

// VertexKind discriminates which of the four resource kinds a VertexId names.
type VertexKind int

const (
	DataTypeVertex VertexKind = iota
	PropertyTypeVertex
	EntityTypeVertex
	EntityVertex
)

// VertexId names one vertex in the resolved subgraph. Exactly one of TypeId/EntityId is
// meaningful, selected by Kind.
type VertexId struct {
	Kind     VertexKind
	TypeId   ontids.TypeId
	EntityId ontids.EntityId
}

// DataTypeVertexId, PropertyTypeVertexId, EntityTypeVertexId and EntityVertexId construct a
// VertexId of the matching kind.
func DataTypeVertexId(id ontids.DataTypeId) VertexId {
	return VertexId{Kind: DataTypeVertex, TypeId: ontids.TypeId(id)}
}

func PropertyTypeVertexId(id ontids.PropertyTypeId) VertexId {
	return VertexId{Kind: PropertyTypeVertex, TypeId: ontids.TypeId(id)}
}

func EntityTypeVertexId(id ontids.EntityTypeId) VertexId {
	return VertexId{Kind: EntityTypeVertex, TypeId: ontids.TypeId(id)}
}

func EntityVertexId(id ontids.EntityId) VertexId {
	return VertexId{Kind: EntityVertex, EntityId: id}
}

// key renders a VertexId as a comparable string for map/dedup use.
func (v VertexId) key() string {
	if v.Kind == EntityVertex {
		return fmt.Sprintf("entity:%s", v.EntityId.String())
	}
	return fmt.Sprintf("type:%d:%s", v.Kind, v.TypeId.String())
}

// Compare orders VertexId values deterministically: by Kind, then lexicographically by
// identifier string, matching the tie-break the BFS walk uses to make sibling traversal order
// reproducible.
func (v VertexId) Compare(other VertexId) int {
	if v.Kind != other.Kind {
		if v.Kind < other.Kind {
			return -1
		}
		return 1
	}
	if v.Kind == EntityVertex {
		return v.EntityId.Compare(other.EntityId)
	}
	a, b := v.TypeId.String(), other.TypeId.String()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Edge is a traversal edge discovered while resolving a subgraph, generalizing
// ontology.OntologyEdge and entitymodel.KnowledgeEdge into one shape the walk can enqueue
// uniformly regardless of which kind of vertex it originated from.
type Edge struct {
	Kind   ontology.EdgeKind
	Source VertexId
	Target VertexId
}
