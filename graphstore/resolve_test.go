// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package graphstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontograph/ontograph/authz"
	"github.com/ontograph/ontograph/entitymodel"
	"github.com/ontograph/ontograph/ontids"
	"github.com/ontograph/ontograph/ontology"
)

type fakeStore struct {
	entityTypes map[ontids.EntityTypeId]*ontology.EntityType
	entities    map[string]*entitymodel.Entity
	urls        map[ontids.TypeId]ontids.VersionedUrl
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		entityTypes: make(map[ontids.EntityTypeId]*ontology.EntityType),
		entities:    make(map[string]*entitymodel.Entity),
		urls:        make(map[ontids.TypeId]ontids.VersionedUrl),
	}
}

func (s *fakeStore) DataType(context.Context, ontids.DataTypeId, ontids.TemporalAxes) (*ontology.DataType, error) {
	return nil, ErrNotFound
}

func (s *fakeStore) PropertyType(context.Context, ontids.PropertyTypeId, ontids.TemporalAxes) (*ontology.PropertyType, error) {
	return nil, ErrNotFound
}

func (s *fakeStore) EntityType(_ context.Context, id ontids.EntityTypeId, _ ontids.TemporalAxes) (*ontology.EntityType, error) {
	if et, ok := s.entityTypes[id]; ok {
		return et, nil
	}
	return nil, ErrNotFound
}

func (s *fakeStore) Entity(_ context.Context, id ontids.EntityId, _ ontids.TemporalAxes) (*entitymodel.Entity, error) {
	if e, ok := s.entities[id.String()]; ok {
		return e, nil
	}
	return nil, ErrNotFound
}

func (s *fakeStore) VersionedUrlOf(_ context.Context, id ontids.TypeId) (ontids.VersionedUrl, error) {
	if u, ok := s.urls[id]; ok {
		return u, nil
	}
	return ontids.VersionedUrl{}, ErrNotFound
}

func (s *fakeStore) EntitiesLinkingTo(_ context.Context, target ontids.EntityId, _ ontids.TemporalAxes) ([]*entitymodel.Entity, error) {
	var out []*entitymodel.Entity
	for _, e := range s.entities {
		if e.Link == nil {
			continue
		}
		if e.Link.LeftEntityId.Equal(target) || e.Link.RightEntityId.Equal(target) {
			out = append(out, e)
		}
	}
	return out, nil
}

func resolvedAxes(t *testing.T) ontids.TemporalAxes {
	t.Helper()
	return ontids.TemporalAxes{
		Pinned:   ontids.PinnedAxis{Axis: ontids.DecisionTime},
		Variable: ontids.VariableAxis{Axis: ontids.TransactionTime},
	}.Resolve(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
}

func allowAllChecker(t *testing.T) *authz.Checker {
	t.Helper()
	cache, err := authz.NewCache(nil)
	require.NoError(t, err)
	return authz.NewChecker(allowAllStore{}, authz.NewMemoryHierarchy(), cache)
}

type allowAllStore struct{}

func (allowAllStore) PoliciesForResource(_ context.Context, resource uuid.UUID) ([]authz.Policy, error) {
	return []authz.Policy{{Principal: authz.DirectGrant(resource), Permissions: authz.Permissions{authz.ActionView}, Resource: resource, Effect: authz.Permit}}, nil
}

func TestResolveSubgraphWalksLinkedEntities(t *testing.T) {
	store := newFakeStore()
	axes := resolvedAxes(t)

	person := entitymodel.Entity{Id: ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()}}
	friend := entitymodel.Entity{Id: ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()}}
	link := entitymodel.Entity{
		Id:   ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()},
		Link: &entitymodel.LinkData{LeftEntityId: person.Id, RightEntityId: friend.Id},
	}
	store.entities[person.Id.String()] = &person
	store.entities[friend.Id.String()] = &friend
	store.entities[link.Id.String()] = &link

	depths := GraphResolveDepths{ontology.HasLeftEntity: {Outgoing: 1}, ontology.HasRightEntity: {Outgoing: 1}}
	subgraph, err := ResolveSubgraph(context.Background(), store, allowAllChecker(t), uuid.New(), []VertexId{EntityVertexId(link.Id)}, depths, axes)

	require.NoError(t, err)
	assert.Len(t, subgraph.Vertices, 3)
	assert.Len(t, subgraph.Edges, 2)
}

func TestResolveSubgraphWalksIncomingLinkEntities(t *testing.T) {
	store := newFakeStore()
	axes := resolvedAxes(t)

	person := entitymodel.Entity{Id: ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()}}
	friend := entitymodel.Entity{Id: ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()}}
	link := entitymodel.Entity{
		Id:   ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()},
		Link: &entitymodel.LinkData{LeftEntityId: person.Id, RightEntityId: friend.Id},
	}
	store.entities[person.Id.String()] = &person
	store.entities[friend.Id.String()] = &friend
	store.entities[link.Id.String()] = &link

	depths := GraphResolveDepths{ontology.HasLeftEntity: {Incoming: 1}, ontology.HasRightEntity: {Incoming: 1}}
	subgraph, err := ResolveSubgraph(context.Background(), store, allowAllChecker(t), uuid.New(), []VertexId{EntityVertexId(person.Id)}, depths, axes)

	require.NoError(t, err)
	assert.Len(t, subgraph.Vertices, 2, "rooting at an endpoint should discover the link entity that points at it")
	assert.Len(t, subgraph.Edges, 1)
	assert.Equal(t, EntityVertexId(link.Id), subgraph.Edges[0].Source)
	assert.Equal(t, EntityVertexId(person.Id), subgraph.Edges[0].Target)
}

func TestResolveSubgraphRecordsDanglingEdgeOnDeniedTarget(t *testing.T) {
	store := newFakeStore()
	axes := resolvedAxes(t)

	person := entitymodel.Entity{Id: ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()}}
	secret := entitymodel.Entity{Id: ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()}}
	link := entitymodel.Entity{
		Id:   ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()},
		Link: &entitymodel.LinkData{LeftEntityId: person.Id, RightEntityId: secret.Id},
	}
	store.entities[person.Id.String()] = &person
	store.entities[secret.Id.String()] = &secret
	store.entities[link.Id.String()] = &link

	cache, err := authz.NewCache(nil)
	require.NoError(t, err)
	checker := authz.NewChecker(denyResourceStore{denied: secret.Id.EntityUuid}, authz.NewMemoryHierarchy(), cache)

	depths := GraphResolveDepths{ontology.HasLeftEntity: {Outgoing: 1}, ontology.HasRightEntity: {Outgoing: 1}}
	subgraph, err := ResolveSubgraph(context.Background(), store, checker, uuid.New(), []VertexId{EntityVertexId(link.Id)}, depths, axes)

	require.NoError(t, err)
	assert.Len(t, subgraph.Vertices, 2, "the link and the left entity resolve; the denied right entity does not")
	require.Len(t, subgraph.Dangling, 1)
	assert.Equal(t, ontology.HasRightEntity, subgraph.Dangling[0].Kind)
	assert.Equal(t, EntityVertexId(secret.Id), subgraph.Dangling[0].Target)
	for _, e := range subgraph.Edges {
		assert.NotEqual(t, EntityVertexId(secret.Id), e.Target, "a dangling edge must not also appear in Edges")
	}
}

type denyResourceStore struct {
	denied uuid.UUID
}

func (s denyResourceStore) PoliciesForResource(_ context.Context, resource uuid.UUID) ([]authz.Policy, error) {
	if resource == s.denied {
		return nil, nil
	}
	return []authz.Policy{{Principal: authz.DirectGrant(resource), Permissions: authz.Permissions{authz.ActionView}, Resource: resource, Effect: authz.Permit}}, nil
}

func TestResolveSubgraphStopsAtExhaustedDepth(t *testing.T) {
	store := newFakeStore()
	axes := resolvedAxes(t)

	person := entitymodel.Entity{Id: ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()}}
	link := entitymodel.Entity{
		Id:   ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()},
		Link: &entitymodel.LinkData{LeftEntityId: person.Id, RightEntityId: person.Id},
	}
	store.entities[person.Id.String()] = &person
	store.entities[link.Id.String()] = &link

	subgraph, err := ResolveSubgraph(context.Background(), store, allowAllChecker(t), uuid.New(), []VertexId{EntityVertexId(link.Id)}, GraphResolveDepths{}, axes)

	require.NoError(t, err)
	assert.Len(t, subgraph.Vertices, 1, "zero budget for HasLeftEntity/HasRightEntity should stop the walk at the root")
}

func TestResolveSubgraphTreatsMissingTargetAsNotFoundRatherThanError(t *testing.T) {
	store := newFakeStore()
	axes := resolvedAxes(t)

	link := entitymodel.Entity{
		Id:   ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()},
		Link: &entitymodel.LinkData{LeftEntityId: ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()}, RightEntityId: ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()}},
	}
	store.entities[link.Id.String()] = &link

	depths := GraphResolveDepths{ontology.HasLeftEntity: {Outgoing: 1}, ontology.HasRightEntity: {Outgoing: 1}}
	subgraph, err := ResolveSubgraph(context.Background(), store, allowAllChecker(t), uuid.New(), []VertexId{EntityVertexId(link.Id)}, depths, axes)

	require.NoError(t, err)
	assert.Len(t, subgraph.Vertices, 1, "only the link itself resolves; both dangling targets are absent from the store")
}

func TestResolveSubgraphDeniesUnauthorizedRoot(t *testing.T) {
	store := newFakeStore()
	axes := resolvedAxes(t)
	e := entitymodel.Entity{Id: ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()}}
	store.entities[e.Id.String()] = &e

	cache, err := authz.NewCache(nil)
	require.NoError(t, err)
	denyAll := authz.NewChecker(denyAllStore{}, authz.NewMemoryHierarchy(), cache)

	subgraph, err := ResolveSubgraph(context.Background(), store, denyAll, uuid.New(), []VertexId{EntityVertexId(e.Id)}, GraphResolveDepths{}, axes)
	require.NoError(t, err)
	assert.Empty(t, subgraph.Vertices)
}

type denyAllStore struct{}

func (denyAllStore) PoliciesForResource(context.Context, uuid.UUID) ([]authz.Policy, error) {
	return nil, nil
}
