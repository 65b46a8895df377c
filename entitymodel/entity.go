// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package entitymodel models knowledge-graph entities and link data.
package entitymodel

import (
	"github.com/ontograph/ontograph/ontids"
	"github.com/ontograph/ontograph/ontology"
)

// EndpointProvenance records confidence and provenance for one endpoint of a link.
type EndpointProvenance struct {
	Confidence *float64
	Provenance ontology.Provenance
}

// LinkData marks an entity as a link between two other entities; it yields the HasLeftEntity
// and HasRightEntity knowledge edges.
type LinkData struct {
	LeftEntityId  ontids.EntityId
	RightEntityId ontids.EntityId
	LeftEndpoint  EndpointProvenance
	RightEndpoint EndpointProvenance
}

// Entity is a record of a typed knowledge-graph entity.
type Entity struct {
	Metadata   ontology.Metadata
	Id         ontids.EntityId
	TypeIds    []ontids.EntityTypeId
	Properties map[string]any

	// Link is non-nil when this entity represents a link between two entities.
	Link *LinkData
}

// IsLink reports whether the entity carries link data.
func (e Entity) IsLink() bool { return e.Link != nil }

// OutgoingKnowledgeEdges enumerates HasLeftEntity/HasRightEntity/IsOfType edges implied by
// this entity. Callers that need a total order across the result can sort the targets with
// ontids.EntityId.Compare.
func (e Entity) OutgoingKnowledgeEdges() []KnowledgeEdge {
	edges := make([]KnowledgeEdge, 0, len(e.TypeIds)+2)
	for _, t := range e.TypeIds {
		typeId := t
		edges = append(edges, KnowledgeEdge{Kind: ontology.IsOfType, Source: e.Id, TargetEntityType: &typeId})
	}
	if e.Link != nil {
		left := e.Link.LeftEntityId
		right := e.Link.RightEntityId
		edges = append(edges, KnowledgeEdge{Kind: ontology.HasLeftEntity, Source: e.Id, TargetEntity: &left})
		edges = append(edges, KnowledgeEdge{Kind: ontology.HasRightEntity, Source: e.Id, TargetEntity: &right})
	}
	return edges
}

// KnowledgeEdge is a directed labeled edge originating from an entity.
type KnowledgeEdge struct {
	Kind             ontology.EdgeKind
	Source           ontids.EntityId
	TargetEntity     *ontids.EntityId
	TargetEntityType *ontids.EntityTypeId
}
