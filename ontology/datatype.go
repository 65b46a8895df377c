// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package ontology

import "github.com/ontograph/ontograph/ontids"

// DataType is a leaf schema describing a primitive value shape, optionally carrying a
// conversion expression to another data type.
type DataType struct {
	Metadata    Metadata
	Id          ontids.DataTypeId
	Title       string
	Description string
	Schema      map[string]any

	// Conversions maps a target DataTypeId to the expression converting a value of this
	// type into the target type.
	Conversions map[ontids.DataTypeId]*ConversionExpression
}
