// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package entitymodel

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontograph/ontograph/ontids"
	"github.com/ontograph/ontograph/ontology"
)

func TestEntityIsLink(t *testing.T) {
	plain := Entity{Id: ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()}}
	assert.False(t, plain.IsLink())

	link := plain
	link.Link = &LinkData{LeftEntityId: plain.Id, RightEntityId: plain.Id}
	assert.True(t, link.IsLink())
}

func TestOutgoingKnowledgeEdgesForPlainEntity(t *testing.T) {
	typeId := ontids.NewEntityTypeId(ontids.VersionedUrl{
		Base:    mustBaseUrl(t, "https://blockprotocol.org/@alice/types/entity-type/person/"),
		Version: 1,
	})
	e := Entity{
		Id:      ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()},
		TypeIds: []ontids.EntityTypeId{typeId},
	}

	edges := e.OutgoingKnowledgeEdges()
	require.Len(t, edges, 1)
	assert.Equal(t, ontology.IsOfType, edges[0].Kind)
	require.NotNil(t, edges[0].TargetEntityType)
	assert.Equal(t, typeId, *edges[0].TargetEntityType)
}

func TestOutgoingKnowledgeEdgesForLink(t *testing.T) {
	left := ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()}
	right := ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()}
	e := Entity{
		Id:   ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()},
		Link: &LinkData{LeftEntityId: left, RightEntityId: right},
	}

	edges := e.OutgoingKnowledgeEdges()
	require.Len(t, edges, 2)
	assert.Equal(t, ontology.HasLeftEntity, edges[0].Kind)
	assert.Equal(t, left, *edges[0].TargetEntity)
	assert.Equal(t, ontology.HasRightEntity, edges[1].Kind)
	assert.Equal(t, right, *edges[1].TargetEntity)
}

func mustBaseUrl(t *testing.T, raw string) ontids.BaseUrl {
	t.Helper()
	u, err := ontids.ParseBaseUrl(raw)
	require.NoError(t, err)
	return u
}
