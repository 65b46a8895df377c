// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package ontology

import "github.com/ontograph/ontograph/ontids"

// PropertyTypeReference constrains a property to a data type, an array of data types, or a
// nested object of further property types.
type PropertyTypeReference struct {
	DataTypeIds     []ontids.DataTypeId
	PropertyTypeIds []ontids.PropertyTypeId
}

// PropertyType describes a property slot shared across entity types.
type PropertyType struct {
	Metadata    Metadata
	Id          ontids.PropertyTypeId
	Title       string
	Description string

	// OneOf lists the allowed shapes this property's value may take.
	OneOf []PropertyTypeReference
}

// PropertyOntologyEdge is a directed labeled edge from a property type to the data type or
// nested property type constraining one of its possible values.
type PropertyOntologyEdge struct {
	Kind           EdgeKind
	Source         ontids.PropertyTypeId
	TargetDataType *ontids.DataTypeId
	TargetProperty *ontids.PropertyTypeId
}

// OutgoingOntologyEdges enumerates the edges this property type implies: ConstrainsValuesOn to
// every data type in its OneOf references, and ConstrainsPropertiesOn to every nested property
// type (the object case), ordered by VersionedUrl for deterministic traversal.
func (t PropertyType) OutgoingOntologyEdges(urlOfData func(ontids.DataTypeId) ontids.VersionedUrl, urlOfProp func(ontids.PropertyTypeId) ontids.VersionedUrl) []PropertyOntologyEdge {
	var dataTypeIds []ontids.DataTypeId
	var propertyTypeIds []ontids.PropertyTypeId
	for _, ref := range t.OneOf {
		dataTypeIds = append(dataTypeIds, ref.DataTypeIds...)
		propertyTypeIds = append(propertyTypeIds, ref.PropertyTypeIds...)
	}
	sortByURL(dataTypeIds, urlOfData)
	sortByURL(propertyTypeIds, urlOfProp)

	edges := make([]PropertyOntologyEdge, 0, len(dataTypeIds)+len(propertyTypeIds))
	for _, d := range dataTypeIds {
		d := d
		edges = append(edges, PropertyOntologyEdge{Kind: ConstrainsValuesOn, Source: t.Id, TargetDataType: &d})
	}
	for _, p := range propertyTypeIds {
		p := p
		edges = append(edges, PropertyOntologyEdge{Kind: ConstrainsPropertiesOn, Source: t.Id, TargetProperty: &p})
	}
	return edges
}
