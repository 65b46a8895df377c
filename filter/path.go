// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package filter

// QueryPath names a field reachable on a resource and declares the parameter type a value
// compared against it must resolve to. Each resource (DataType/PropertyType/EntityType/
// Entity) exposes its own set of paths; filter and ConvertParameters are written generically
// against this interface rather than against one fixed path enum per resource.
type QueryPath interface {
	// Segments is the dotted/JSON-pointer-style path, e.g. []string{"baseUrl"} or
	// []string{"properties", "https://blockprotocol.org/@alice/types/property-type/name/"}.
	Segments() []string
	// ExpectedType is the type a Parameter compared against this path must resolve to.
	ExpectedType() ParamType
}

// SimplePath is a QueryPath with a fixed expected type, sufficient for every path this
// package's builders reference.
type SimplePath struct {
	path     []string
	expected ParamType
}

// NewSimplePath constructs a SimplePath from dotted segments.
func NewSimplePath(expected ParamType, segments ...string) SimplePath {
	return SimplePath{path: segments, expected: expected}
}

func (p SimplePath) Segments() []string     { return p.path }
func (p SimplePath) ExpectedType() ParamType { return p.expected }

var (
	// BaseUrlPath selects an ontology type's canonical base URL.
	BaseUrlPath = NewSimplePath(Text, "baseUrl")
	// VersionPath selects an ontology type's version.
	VersionPath = NewSimplePath(OntologyTypeVersion, "version")
	// VersionedUrlPath selects an ontology type's full versioned URL.
	VersionedUrlPath = NewSimplePath(VersionedUrl, "versionedUrl")
	// OwnedByIdPath selects the web an entity or owned ontology type belongs to.
	OwnedByIdPath = NewSimplePath(Uuid, "ownedById")
	// EntityUuidPath selects an entity's uuid component.
	EntityUuidPath = NewSimplePath(Uuid, "uuid")
	// DraftIdPath selects an entity's draft id, when it has one.
	DraftIdPath = NewSimplePath(Uuid, "draftId")
)

// PropertyPath selects a property value by its base URL, nested arbitrarily deep the way
// Entity.Properties keys do.
func PropertyPath(baseURLs ...string) SimplePath {
	segments := append([]string{"properties"}, baseURLs...)
	return NewSimplePath(Any, segments...)
}
