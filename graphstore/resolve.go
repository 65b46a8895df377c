// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package graphstore

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/ontograph/ontograph/authz"
	"github.com/ontograph/ontograph/entitymodel"
	"github.com/ontograph/ontograph/ontids"
	"github.com/ontograph/ontograph/ontology"
)

// frontierEntry is one item of BFS work: a vertex to visit, the budget it carries, the
// temporal axes it was reached at (the variable axis may have been narrowed by an ancestor
// edge, in principle; today every vertex inherits the root's axes unchanged), and the edge
// that led here, nil for roots. The edge is not recorded into the subgraph until this entry's
// own resolution outcome is known, so it lands in Edges or Dangling correctly regardless of
// whether this vertex turns out authorized, missing, or previously resolved via another path.
type frontierEntry struct {
	vertex VertexId
	via    *Edge
	depths GraphResolveDepths
	axes   ontids.TemporalAxes
}

// vertexOutcome caches a vertex's authorization and existence result plus the edges it yields,
// independent of the depths budget that led to it: whether a vertex exists and is visible to
// the actor does not depend on how much further budget the walk has left, only its own record
// and the policies over it.
type vertexOutcome struct {
	granted bool
	found   bool
	edges   []Edge
}

// ResolveSubgraph performs an authorization-gated BFS from roots, following ontology and
// knowledge edges under the per-kind depth budgets in depths, and returns every vertex and
// edge reached. A vertex's own resolution (authorization plus existence) is cached per
// (vertex, temporal image) regardless of remaining budget, since that outcome cannot change
// with depth; its onward expansion is deduplicated per (vertex, remaining depths, temporal
// image), since an identical remaining budget produces an identical onward walk.
func ResolveSubgraph(
	ctx context.Context,
	store Store,
	checker *authz.Checker,
	actor uuid.UUID,
	roots []VertexId,
	depths GraphResolveDepths,
	axes ontids.TemporalAxes,
) (*Subgraph, error) {
	resolvedAxes := axes
	if !axes.IsResolved() {
		return nil, errors.New("graphstore: temporal axes must be resolved before traversal")
	}

	subgraph := newSubgraph(roots, depths, resolvedAxes)
	outcomes := make(map[string]vertexOutcome)
	expanded := make(map[string]bool)

	sortedRoots := append([]VertexId(nil), roots...)
	sort.Slice(sortedRoots, func(i, j int) bool { return sortedRoots[i].Compare(sortedRoots[j]) < 0 })

	queue := make([]frontierEntry, 0, len(sortedRoots))
	for _, r := range sortedRoots {
		queue = append(queue, frontierEntry{vertex: r, depths: depths, axes: resolvedAxes})
	}

	for len(queue) > 0 {
		entry := queue[0]
		queue = queue[1:]

		vertexKey := entry.vertex.key() + "|" + temporalImageKey(entry.axes)
		outcome, ok := outcomes[vertexKey]
		if !ok {
			var err error
			outcome, err = resolveVertex(ctx, store, checker, actor, subgraph, entry.vertex, entry.axes)
			if err != nil {
				return nil, err
			}
			outcomes[vertexKey] = outcome
		}

		if entry.via != nil {
			if outcome.granted && outcome.found {
				subgraph.Edges = append(subgraph.Edges, *entry.via)
			} else {
				subgraph.Dangling = append(subgraph.Dangling, *entry.via)
			}
		}

		if !outcome.granted || !outcome.found {
			continue
		}

		dedupKey := vertexKey + "|" + entry.depths.signature()
		if expanded[dedupKey] {
			continue
		}
		expanded[dedupKey] = true

		for _, edge := range outcome.edges {
			if entry.depths.Exhausted(edge.Kind, Outgoing) {
				continue
			}
			e := edge
			queue = append(queue, frontierEntry{
				vertex: edge.Target,
				via:    &e,
				depths: entry.depths.Decremented(edge.Kind, Outgoing),
				axes:   entry.axes,
			})
		}

		if entry.vertex.Kind != EntityVertex {
			continue
		}
		for _, kind := range []ontology.EdgeKind{ontology.HasLeftEntity, ontology.HasRightEntity} {
			if entry.depths.Exhausted(kind, Incoming) {
				continue
			}
			linkers, err := store.EntitiesLinkingTo(ctx, entry.vertex.EntityId, entry.axes)
			if err != nil {
				return nil, err
			}
			nextDepths := entry.depths.Decremented(kind, Incoming)
			for _, linker := range linkers {
				if linker.Link == nil {
					continue
				}
				var matches bool
				switch kind {
				case ontology.HasLeftEntity:
					matches = linker.Link.LeftEntityId.Equal(entry.vertex.EntityId)
				case ontology.HasRightEntity:
					matches = linker.Link.RightEntityId.Equal(entry.vertex.EntityId)
				}
				if !matches {
					continue
				}
				e := Edge{Kind: kind, Source: EntityVertexId(linker.Id), Target: entry.vertex}
				queue = append(queue, frontierEntry{
					vertex: EntityVertexId(linker.Id),
					via:    &e,
					depths: nextDepths,
					axes:   entry.axes,
				})
			}
		}
	}

	return subgraph, nil
}

// resolveVertex checks authorization and, if granted, loads the vertex's record and outgoing
// edges. It never appends to subgraph.Edges or subgraph.Dangling: the caller routes the edge
// that led here once it knows the outcome.
func resolveVertex(
	ctx context.Context,
	store Store,
	checker *authz.Checker,
	actor uuid.UUID,
	subgraph *Subgraph,
	vertex VertexId,
	axes ontids.TemporalAxes,
) (vertexOutcome, error) {
	decision := checker.Check(ctx, actor, authz.ActionView, resourceUUID(vertex))
	if !decision.IsGranted() {
		return vertexOutcome{granted: false}, nil
	}

	edges, found, err := loadVertex(ctx, store, subgraph, vertex, axes)
	if err != nil {
		return vertexOutcome{}, err
	}
	if !found {
		return vertexOutcome{granted: true, found: false}, nil
	}
	return vertexOutcome{granted: true, found: true, edges: edges}, nil
}

func temporalImageKey(axes ontids.TemporalAxes) string {
	interval := axes.Variable.Interval()
	start := interval.Start.UTC().Format("2006-01-02T15:04:05.999999999")
	end := "open"
	if interval.End != nil {
		end = interval.End.UTC().Format("2006-01-02T15:04:05.999999999")
	}
	return axes.Pinned.Instant.UTC().Format("2006-01-02T15:04:05.999999999") + "/" + start + "/" + end
}

func resourceUUID(v VertexId) uuid.UUID {
	if v.Kind == EntityVertex {
		return v.EntityId.EntityUuid
	}
	return uuid.UUID(v.TypeId)
}

// loadVertex fetches the record for vertex, adds it to subgraph, and returns its outgoing
// edges. found is false when the vertex does not exist at this temporal image, in which case
// the caller treats the arc that led here as dangling rather than failing the whole walk.
func loadVertex(ctx context.Context, store Store, subgraph *Subgraph, vertex VertexId, axes ontids.TemporalAxes) ([]Edge, bool, error) {
	switch vertex.Kind {
	case DataTypeVertex:
		dt, err := store.DataType(ctx, ontids.DataTypeId(vertex.TypeId), axes)
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		subgraph.Vertices[vertex.key()] = VertexRecord{Id: vertex, DataType: dt}
		return nil, true, nil

	case PropertyTypeVertex:
		pt, err := store.PropertyType(ctx, ontids.PropertyTypeId(vertex.TypeId), axes)
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		subgraph.Vertices[vertex.key()] = VertexRecord{Id: vertex, PropertyType: pt}
		return propertyTypeEdges(ctx, store, vertex, pt), true, nil

	case EntityTypeVertex:
		et, err := store.EntityType(ctx, ontids.EntityTypeId(vertex.TypeId), axes)
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		subgraph.Vertices[vertex.key()] = VertexRecord{Id: vertex, EntityType: et}
		return entityTypeEdges(ctx, store, vertex, et), true, nil

	case EntityVertex:
		e, err := store.Entity(ctx, vertex.EntityId, axes)
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		subgraph.Vertices[vertex.key()] = VertexRecord{Id: vertex, Entity: e}
		return entityEdges(e), true, nil

	default:
		return nil, false, errors.New("graphstore: unknown vertex kind")
	}
}

func entityTypeEdges(ctx context.Context, store Store, source VertexId, et *ontology.EntityType) []Edge {
	urlCache := make(map[ontids.TypeId]ontids.VersionedUrl)
	lookup := func(id ontids.TypeId) ontids.VersionedUrl {
		if u, ok := urlCache[id]; ok {
			return u
		}
		u, err := store.VersionedUrlOf(ctx, id)
		if err != nil {
			u = ontids.VersionedUrl{}
		}
		urlCache[id] = u
		return u
	}

	urlOfEntityType := func(id ontids.EntityTypeId) ontids.VersionedUrl { return lookup(ontids.TypeId(id)) }
	urlOfProperty := func(id ontids.PropertyTypeId) ontids.VersionedUrl { return lookup(ontids.TypeId(id)) }

	out := make([]Edge, 0)
	for _, e := range et.OutgoingOntologyEdges(urlOfEntityType, urlOfProperty) {
		var target VertexId
		switch {
		case e.TargetEntityType != nil:
			target = EntityTypeVertexId(*e.TargetEntityType)
		case e.TargetProperty != nil:
			target = PropertyTypeVertexId(*e.TargetProperty)
		default:
			continue
		}
		out = append(out, Edge{Kind: e.Kind, Source: source, Target: target})
	}
	return out
}

func propertyTypeEdges(ctx context.Context, store Store, source VertexId, pt *ontology.PropertyType) []Edge {
	urlCache := make(map[ontids.TypeId]ontids.VersionedUrl)
	lookup := func(id ontids.TypeId) ontids.VersionedUrl {
		if u, ok := urlCache[id]; ok {
			return u
		}
		u, err := store.VersionedUrlOf(ctx, id)
		if err != nil {
			u = ontids.VersionedUrl{}
		}
		urlCache[id] = u
		return u
	}

	urlOfDataType := func(id ontids.DataTypeId) ontids.VersionedUrl { return lookup(ontids.TypeId(id)) }
	urlOfProperty := func(id ontids.PropertyTypeId) ontids.VersionedUrl { return lookup(ontids.TypeId(id)) }

	out := make([]Edge, 0)
	for _, e := range pt.OutgoingOntologyEdges(urlOfDataType, urlOfProperty) {
		var target VertexId
		switch {
		case e.TargetDataType != nil:
			target = DataTypeVertexId(*e.TargetDataType)
		case e.TargetProperty != nil:
			target = PropertyTypeVertexId(*e.TargetProperty)
		default:
			continue
		}
		out = append(out, Edge{Kind: e.Kind, Source: source, Target: target})
	}
	return out
}

func entityEdges(e *entitymodel.Entity) []Edge {
	source := EntityVertexId(e.Id)
	out := make([]Edge, 0, len(e.TypeIds)+2)
	for _, ke := range e.OutgoingKnowledgeEdges() {
		var target VertexId
		switch {
		case ke.TargetEntity != nil:
			target = EntityVertexId(*ke.TargetEntity)
		case ke.TargetEntityType != nil:
			target = EntityTypeVertexId(*ke.TargetEntityType)
		default:
			continue
		}
		out = append(out, Edge{Kind: ke.Kind, Source: source, Target: target})
	}
	return out
}
