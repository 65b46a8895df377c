// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package filter

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontograph/ontograph/ontids"
)

func mustBaseUrl(t *testing.T, raw string) ontids.BaseUrl {
	t.Helper()
	u, err := ontids.ParseBaseUrl(raw)
	require.NoError(t, err)
	return u
}

func TestForVersionedUrlBuildsBaseUrlAndVersionEquality(t *testing.T) {
	u := ontids.VersionedUrl{Base: mustBaseUrl(t, "https://blockprotocol.org/@alice/types/entity-type/person/"), Version: 3}
	f := ForVersionedUrl(u)

	require.Equal(t, KindAllFilter, f.Kind)
	require.Len(t, f.All, 2)
	assert.Equal(t, KindEqualFilter, f.All[0].Kind)
	assert.Equal(t, BaseUrlPath, f.All[0].Lhs.Path)
	assert.Equal(t, "https://blockprotocol.org/@alice/types/entity-type/person/", f.All[0].Rhs.Parameter.Text)
	assert.Equal(t, uint32(3), f.All[1].Rhs.Parameter.Version)
}

func TestForEntityByEntityIdWithoutDraftEncodesNullDraftId(t *testing.T) {
	id := ontids.EntityId{WebId: uuid.New(), EntityUuid: uuid.New()}
	f := ForEntityByEntityId(id)

	require.Len(t, f.All, 3)
	draftClause := f.All[2]
	assert.Nil(t, draftClause.Rhs)
}

func TestConvertParametersCoercesNumberToOntologyTypeVersion(t *testing.T) {
	f := Equal(PathExpr(VersionPath), ParamExpr(AnyParam(float64(7))))
	converted, err := ConvertParameters(f)
	require.NoError(t, err)
	assert.Equal(t, KindOntologyTypeVersion, converted.Rhs.Parameter.Kind)
	assert.Equal(t, uint32(7), converted.Rhs.Parameter.Version)
}

func TestConvertParametersRejectsNegativeVersion(t *testing.T) {
	f := Equal(PathExpr(VersionPath), ParamExpr(NumberParam(-1)))
	_, err := ConvertParameters(f)
	require.Error(t, err)
	var convErr *ParameterConversionError
	require.ErrorAs(t, err, &convErr)
}

func TestConvertParametersParsesTextToUuid(t *testing.T) {
	id := uuid.New()
	f := Equal(PathExpr(OwnedByIdPath), ParamExpr(TextParam(id.String())))
	converted, err := ConvertParameters(f)
	require.NoError(t, err)
	assert.Equal(t, id, converted.Rhs.Parameter.Uuid)
}

func TestConvertParametersKeepsLatestAsText(t *testing.T) {
	f := Equal(PathExpr(VersionPath), ParamExpr(TextParam(ontids.LatestVersion)))
	converted, err := ConvertParameters(f)
	require.NoError(t, err)
	assert.Equal(t, KindText, converted.Rhs.Parameter.Kind)
	assert.Equal(t, "latest", converted.Rhs.Parameter.Text)
}

func TestConvertParametersRecursesThroughAllAnyNot(t *testing.T) {
	f := All(
		Any(
			Equal(PathExpr(VersionPath), ParamExpr(NumberParam(1))),
			Not(Equal(PathExpr(VersionPath), ParamExpr(AnyParam(float64(2))))),
		),
	)
	converted, err := ConvertParameters(f)
	require.NoError(t, err)
	inner := converted.All[0].AnyOf[1].Not
	assert.Equal(t, KindOntologyTypeVersion, inner.Rhs.Parameter.Kind)
}

func TestConvertParametersParsesTextToVersionedUrl(t *testing.T) {
	f := Equal(PathExpr(VersionedUrlPath), ParamExpr(TextParam("https://blockprotocol.org/@alice/types/entity-type/person/v/3")))
	converted, err := ConvertParameters(f)
	require.NoError(t, err)
	assert.Equal(t, KindText, converted.Rhs.Parameter.Kind)
}

func TestConvertParametersRejectsMalformedVersionedUrl(t *testing.T) {
	f := Equal(PathExpr(VersionedUrlPath), ParamExpr(TextParam("not a url")))
	_, err := ConvertParameters(f)
	require.Error(t, err)
	var convErr *ParameterConversionError
	require.ErrorAs(t, err, &convErr)
}

func TestInFilterRejectsNonUuidPath(t *testing.T) {
	f := In(PathExpr(BaseUrlPath), ParameterList{UuidList: []uuid.UUID{uuid.New()}})
	_, err := ConvertParameters(f)
	require.Error(t, err)
}

func TestFilterMarshalJSONEqualWithNullSide(t *testing.T) {
	f := Equal(PathExpr(DraftIdPath), nil)
	b, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"equal":[{"path":["draftId"]},null]}`, string(b))
}

func TestFilterMarshalJSONStartsWith(t *testing.T) {
	f := StartsWith(PathExpr(BaseUrlPath), ParamExpr(TextParam("https://blockprotocol.org/")))
	b, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"startsWith":[{"path":["baseUrl"]},{"parameter":"https://blockprotocol.org/"}]}`, string(b))
}

func TestFilterMarshalJSONIn(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	f := In(PathExpr(OwnedByIdPath), ParameterList{UuidList: []uuid.UUID{id}})
	b, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"in":[{"path":["ownedById"]},["00000000-0000-0000-0000-000000000001"]]}`, string(b))
}
