// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package graphstore

import (
	"github.com/ontograph/ontograph/entitymodel"
	"github.com/ontograph/ontograph/ontids"
	"github.com/ontograph/ontograph/ontology"
)

// Subgraph is the bounded result of a traversal: the roots it was asked to expand, every
// vertex reached within budget and authorized for the requesting actor, the edges connecting
// them, and the temporal axes the whole traversal was resolved against.
type Subgraph struct {
	Roots    []VertexId
	Vertices map[string]VertexRecord
	Edges    []Edge
	Depths   GraphResolveDepths
	Temporal ontids.TemporalAxes

	// Dangling lists edges whose target could not be resolved at this temporal image (either
	// genuinely absent or denied to the actor). The walk does not fail on these; open-world
	// graphs are expected to reference vertices the current image does not carry, and a denied
	// vertex's incoming edge is still worth reporting so the consumer can decide how to render
	// the gap rather than silently losing the edge.
	Dangling []Edge
}

// VertexRecord pairs a VertexId with the decoded record fetched for it. Exactly one of the
// four payload fields is non-nil, selected by Id.Kind.
type VertexRecord struct {
	Id VertexId

	DataType     *ontology.DataType
	PropertyType *ontology.PropertyType
	EntityType   *ontology.EntityType
	Entity       *entitymodel.Entity
}

func newSubgraph(roots []VertexId, depths GraphResolveDepths, axes ontids.TemporalAxes) *Subgraph {
	return &Subgraph{
		Roots:    roots,
		Vertices: make(map[string]VertexRecord),
		Depths:   depths,
		Temporal: axes,
	}
}
