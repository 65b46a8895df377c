// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package filter implements a backend-agnostic filter algebra and parameter normalization: a
// boolean tree of path/parameter comparisons, with a pure coercion pass that types parameters
// against the path they are compared to.
package filter

import (
	"time"

	"github.com/google/uuid"
)

// ParamType is the set of types a QueryPath may declare as its expected type.
type ParamType int

const (
	Boolean ParamType = iota
	Number
	Text
	Uuid
	OntologyTypeVersion
	Timestamp
	BaseUrl
	VersionedUrl
	Any
)

func (t ParamType) String() string {
	switch t {
	case Boolean:
		return "Boolean"
	case Number:
		return "Number"
	case Text:
		return "Text"
	case Uuid:
		return "Uuid"
	case OntologyTypeVersion:
		return "OntologyTypeVersion"
	case Timestamp:
		return "Timestamp"
	case BaseUrl:
		return "BaseUrl"
	case VersionedUrl:
		return "VersionedUrl"
	case Any:
		return "Any"
	default:
		return "Unknown"
	}
}

// ParamKind is the concrete wire representation a Parameter carries. It is a strict subset
// of ParamType: BaseUrl/VersionedUrl/Any-target coercions still resolve to one of these wire
// kinds, since the wire grammar has no dedicated BaseUrl/VersionedUrl variant.
type ParamKind int

const (
	KindBoolean ParamKind = iota
	KindNumber
	KindText
	KindAny
	KindUuid
	KindOntologyTypeVersion
	KindTimestamp
)

// Parameter is a typed literal value compared against a path.
type Parameter struct {
	Kind      ParamKind
	Bool      bool
	Number    int32
	Text      string
	Any       any
	Uuid      uuid.UUID
	Version   uint32
	Timestamp time.Time
}

// BoolParam constructs a Boolean parameter.
func BoolParam(v bool) Parameter { return Parameter{Kind: KindBoolean, Bool: v} }

// NumberParam constructs a Number parameter.
func NumberParam(v int32) Parameter { return Parameter{Kind: KindNumber, Number: v} }

// TextParam constructs a Text parameter.
func TextParam(v string) Parameter { return Parameter{Kind: KindText, Text: v} }

// AnyParam constructs an Any(json) parameter.
func AnyParam(v any) Parameter { return Parameter{Kind: KindAny, Any: v} }

// UuidParam constructs a Uuid parameter.
func UuidParam(v uuid.UUID) Parameter { return Parameter{Kind: KindUuid, Uuid: v} }

// VersionParam constructs an OntologyTypeVersion parameter.
func VersionParam(v uint32) Parameter { return Parameter{Kind: KindOntologyTypeVersion, Version: v} }

// TimestampParam constructs a Timestamp parameter.
func TimestampParam(v time.Time) Parameter { return Parameter{Kind: KindTimestamp, Timestamp: v} }

// ParameterList is the right-hand side of an In filter. The grammar currently has a single
// variant.
type ParameterList struct {
	UuidList []uuid.UUID
}
