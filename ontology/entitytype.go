// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package ontology

import "github.com/ontograph/ontograph/ontids"

// EdgeKind names a directed labeled edge kind a graph traversal may follow. Ontology edges
// come from EntityType and PropertyType; knowledge edges come from Entity (see package
// entitymodel).
type EdgeKind int

const (
	// ConstrainsPropertiesOn: entity type -> property type, from property_type_references.
	ConstrainsPropertiesOn EdgeKind = iota
	// InheritsFrom: entity type -> entity type, from all_of.
	InheritsFrom
	// ConstrainsLinksOn: entity type -> entity type, from the keys of link_mappings.
	ConstrainsLinksOn
	// ConstrainsLinkDestinationsOn: entity type -> entity type, from link_mappings values.
	ConstrainsLinkDestinationsOn
	// HasLeftEntity: entity -> entity, from an entity's LinkData.
	HasLeftEntity
	// HasRightEntity: entity -> entity, from an entity's LinkData.
	HasRightEntity
	// IsOfType: entity -> entity type.
	IsOfType
	// ConstrainsValuesOn: property type -> data type, from a PropertyTypeReference's
	// DataTypeIds. Property type -> property type (the nested-object case, from the same
	// reference's PropertyTypeIds) reuses ConstrainsPropertiesOn.
	ConstrainsValuesOn
)

func (k EdgeKind) String() string {
	switch k {
	case ConstrainsPropertiesOn:
		return "CONSTRAINS_PROPERTIES_ON"
	case InheritsFrom:
		return "INHERITS_FROM"
	case ConstrainsLinksOn:
		return "CONSTRAINS_LINKS_ON"
	case ConstrainsLinkDestinationsOn:
		return "CONSTRAINS_LINK_DESTINATIONS_ON"
	case HasLeftEntity:
		return "HAS_LEFT_ENTITY"
	case HasRightEntity:
		return "HAS_RIGHT_ENTITY"
	case IsOfType:
		return "IS_OF_TYPE"
	case ConstrainsValuesOn:
		return "CONSTRAINS_VALUES_ON"
	default:
		return "UNKNOWN_EDGE_KIND"
	}
}

// LinkMapping constrains which entity types a link of a given source type may point to.
// A nil Destinations means "no constraint"; an empty non-nil slice means "no links of this
// kind are permitted to point anywhere" is not representable here — absence of a mapping
// entry entirely is how that is expressed.
type LinkMapping struct {
	Source       ontids.EntityTypeId
	Destinations []ontids.EntityTypeId
}

// EntityType describes the shape entities of this type must conform to.
type EntityType struct {
	Metadata Metadata
	Id       ontids.EntityTypeId
	Title    string

	// AllOf lists parent entity types (InheritsFrom edges).
	AllOf []ontids.EntityTypeId

	// PropertyTypeReferences lists constrained properties (ConstrainsPropertiesOn edges).
	PropertyTypeReferences []ontids.PropertyTypeId

	// LinkMappings maps a link-source entity type to its permitted destination types
	// (ConstrainsLinksOn / ConstrainsLinkDestinationsOn edges).
	LinkMappings []LinkMapping
}

// OutgoingOntologyEdges enumerates the edges this entity type implies, ordered by
// VersionedUrl (lexicographic) for deterministic traversal. The caller supplies a urlOf
// lookup since EntityType only carries ids.
func (t EntityType) OutgoingOntologyEdges(urlOf func(ontids.EntityTypeId) ontids.VersionedUrl, urlOfProp func(ontids.PropertyTypeId) ontids.VersionedUrl) []OntologyEdge {
	edges := make([]OntologyEdge, 0, len(t.AllOf)+len(t.PropertyTypeReferences)+2*len(t.LinkMappings))

	props := append([]ontids.PropertyTypeId(nil), t.PropertyTypeReferences...)
	sortByURL(props, urlOfProp)
	for _, p := range props {
		edges = append(edges, OntologyEdge{Kind: ConstrainsPropertiesOn, Source: t.Id, TargetProperty: &p})
	}

	parents := append([]ontids.EntityTypeId(nil), t.AllOf...)
	sortByURL(parents, urlOf)
	for _, parent := range parents {
		p := parent
		edges = append(edges, OntologyEdge{Kind: InheritsFrom, Source: t.Id, TargetEntityType: &p})
	}

	mappings := append([]LinkMapping(nil), t.LinkMappings...)
	for i := 1; i < len(mappings); i++ {
		for j := i; j > 0 && urlOf(mappings[j].Source).String() < urlOf(mappings[j-1].Source).String(); j-- {
			mappings[j], mappings[j-1] = mappings[j-1], mappings[j]
		}
	}
	for _, m := range mappings {
		src := m.Source
		edges = append(edges, OntologyEdge{Kind: ConstrainsLinksOn, Source: t.Id, TargetEntityType: &src})
		dests := append([]ontids.EntityTypeId(nil), m.Destinations...)
		sortByURL(dests, urlOf)
		for _, d := range dests {
			dest := d
			edges = append(edges, OntologyEdge{Kind: ConstrainsLinkDestinationsOn, Source: t.Id, TargetEntityType: &dest})
		}
	}
	return edges
}

func mappingSources(m []LinkMapping) []ontids.EntityTypeId {
	ids := make([]ontids.EntityTypeId, len(m))
	for i, v := range m {
		ids[i] = v.Source
	}
	return ids
}

// OntologyEdge is a directed labeled edge between ontology vertices.
type OntologyEdge struct {
	Kind             EdgeKind
	Source           ontids.EntityTypeId
	TargetEntityType *ontids.EntityTypeId
	TargetProperty   *ontids.PropertyTypeId
}

func sortByURL[T comparable](ids []T, urlOf func(T) ontids.VersionedUrl) {
	// insertion sort: traversal neighbor counts are small, and this avoids pulling in
	// sort.Slice's reflection-based comparator for a handful of elements at a time.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && urlOf(ids[j]).String() < urlOf(ids[j-1]).String(); j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
}
