// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package graphstore

import (
	"context"
	"errors"

	"github.com/ontograph/ontograph/entitymodel"
	"github.com/ontograph/ontograph/ontids"
	"github.com/ontograph/ontograph/ontology"
)

// ErrNotFound is returned by Store lookups when a vertex does not exist at the requested
// temporal image. It is not itself a traversal error: the walk treats a dangling reference to
// a missing vertex as an edge it stops at, not as a failed resolution.
var ErrNotFound = errors.New("graphstore: vertex not found")

// Store resolves ontology and entity records by id at a temporal image, and answers the
// VersionedUrl lookups the ontology edge-ordering needs without requiring a full fetch of
// every neighbor first.
type Store interface {
	DataType(ctx context.Context, id ontids.DataTypeId, axes ontids.TemporalAxes) (*ontology.DataType, error)
	PropertyType(ctx context.Context, id ontids.PropertyTypeId, axes ontids.TemporalAxes) (*ontology.PropertyType, error)
	EntityType(ctx context.Context, id ontids.EntityTypeId, axes ontids.TemporalAxes) (*ontology.EntityType, error)
	Entity(ctx context.Context, id ontids.EntityId, axes ontids.TemporalAxes) (*entitymodel.Entity, error)

	// VersionedUrlOf returns the VersionedUrl an ontology TypeId derives from, used to order
	// a vertex's outgoing edges deterministically before its neighbors are themselves walked.
	VersionedUrlOf(ctx context.Context, id ontids.TypeId) (ontids.VersionedUrl, error)

	// EntitiesLinkingTo returns every link entity whose LeftEntityId or RightEntityId is
	// target, at the given temporal image. It backs incoming HasLeftEntity/HasRightEntity
	// traversal: resolving "what links to me" requires a search rather than a point lookup,
	// since a link's endpoints are not part of the target's own record.
	EntitiesLinkingTo(ctx context.Context, target ontids.EntityId, axes ontids.TemporalAxes) ([]*entitymodel.Entity, error)
}
