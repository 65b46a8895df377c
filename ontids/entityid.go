// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package ontids

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
)

// EntityId identifies an entity: (WebId, EntityUuid[, DraftId]). DraftId is a separate live
// revision when present.
type EntityId struct {
	WebId      uuid.UUID
	EntityUuid uuid.UUID
	DraftId    uuid.NullUUID
}

// String renders "webId/entityUuid" or "webId/entityUuid~draftId" when a draft is present.
func (e EntityId) String() string {
	if e.DraftId.Valid {
		return fmt.Sprintf("%s/%s~%s", e.WebId, e.EntityUuid, e.DraftId.UUID)
	}
	return fmt.Sprintf("%s/%s", e.WebId, e.EntityUuid)
}

// Compare orders entity ids lexicographically by WebId, then EntityUuid, then DraftId with
// an absent DraftId sorting before a present one, returning -1, 0, or 1.
func (e EntityId) Compare(other EntityId) int {
	if c := bytes.Compare(e.WebId[:], other.WebId[:]); c != 0 {
		return c
	}
	if c := bytes.Compare(e.EntityUuid[:], other.EntityUuid[:]); c != 0 {
		return c
	}
	switch {
	case !e.DraftId.Valid && !other.DraftId.Valid:
		return 0
	case !e.DraftId.Valid:
		return -1
	case !other.DraftId.Valid:
		return 1
	default:
		return bytes.Compare(e.DraftId.UUID[:], other.DraftId.UUID[:])
	}
}

// Equal reports whether two entity ids are identical.
func (e EntityId) Equal(other EntityId) bool { return e.Compare(other) == 0 }
