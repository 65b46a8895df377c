// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package filter

import (
	"github.com/google/uuid"

	"github.com/ontograph/ontograph/ontids"
)

// ForVersionedUrl builds the canonical filter selecting the single ontology type edition
// named by u: its base URL equal to u.Base and its version equal to u.Version.
func ForVersionedUrl(u ontids.VersionedUrl) Filter {
	return All(
		Equal(PathExpr(BaseUrlPath), ParamExpr(TextParam(u.Base.String()))),
		Equal(PathExpr(VersionPath), ParamExpr(VersionParam(uint32(u.Version)))),
	)
}

// ForEntityByEntityId builds the canonical filter selecting the single entity named by id:
// its owning web, its uuid, and its draft id (compared against null when id has none).
func ForEntityByEntityId(id ontids.EntityId) Filter {
	clauses := []Filter{
		Equal(PathExpr(OwnedByIdPath), ParamExpr(UuidParam(id.WebId))),
		Equal(PathExpr(EntityUuidPath), ParamExpr(UuidParam(id.EntityUuid))),
	}
	if id.DraftId.Valid {
		clauses = append(clauses, Equal(PathExpr(DraftIdPath), ParamExpr(UuidParam(id.DraftId.UUID))))
	} else {
		clauses = append(clauses, Equal(PathExpr(DraftIdPath), nil))
	}
	return All(clauses...)
}

// ForEntityWebs builds a filter selecting every entity owned by any of the given webs.
func ForEntityWebs(webs ...uuid.UUID) Filter {
	list := ParameterList{UuidList: webs}
	return In(PathExpr(OwnedByIdPath), list)
}
