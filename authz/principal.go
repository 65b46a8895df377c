// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package authz

import (
	"context"

	"github.com/google/uuid"
)

// PrincipalKind discriminates who or what a policy constraint names.
type PrincipalKind int

const (
	// ActorPrincipal names a single user or machine actor directly.
	ActorPrincipal PrincipalKind = iota
	// ActorGroupPrincipal names every member of a group, transitively through nested groups.
	ActorGroupPrincipal
	// RolePrincipal names every actor holding a role, transitively through role hierarchies.
	RolePrincipal
	// DirectGrantPrincipal names a resource rather than an actor: it matches every actor on a
	// policy for that same resource, without going through a role or group at all.
	DirectGrantPrincipal
)

// Principal is one constraint a Policy's subject clause may be written against.
type Principal struct {
	Kind PrincipalKind
	Id   uuid.UUID
}

// Actor constructs an ActorPrincipal.
func Actor(id uuid.UUID) Principal { return Principal{Kind: ActorPrincipal, Id: id} }

// ActorGroup constructs an ActorGroupPrincipal.
func ActorGroup(id uuid.UUID) Principal { return Principal{Kind: ActorGroupPrincipal, Id: id} }

// Role constructs a RolePrincipal.
func Role(id uuid.UUID) Principal { return Principal{Kind: RolePrincipal, Id: id} }

// DirectGrant constructs a DirectGrantPrincipal naming the resource directly.
func DirectGrant(resourceId uuid.UUID) Principal {
	return Principal{Kind: DirectGrantPrincipal, Id: resourceId}
}

// Hierarchy answers the two transitive-closure questions policy matching needs: whether one
// group/role contains another, and what an actor's full (transitively-closed) membership set
// is. A backend implements this over its own storage; MemoryHierarchy below is a plain map
// implementation used by tests and small deployments.
type Hierarchy interface {
	// IsParentOf reports whether child is a member of (or nested under) parent, following
	// nested group/role membership to any depth.
	IsParentOf(ctx context.Context, parent, child uuid.UUID) (bool, error)
	// HasChildren reports whether parent has any direct members at all. Policy matching does
	// not call it.
	HasChildren(ctx context.Context, parent uuid.UUID) (bool, error)
	// MembershipClosure returns every group/role id actor transitively belongs to.
	MembershipClosure(ctx context.Context, actor uuid.UUID) ([]uuid.UUID, error)
}

// MemoryHierarchy is an in-memory Hierarchy backed by a direct-membership adjacency map,
// suitable for tests and the single-process deployment mode.
type MemoryHierarchy struct {
	// members maps a group/role id to its direct members (actors or nested groups/roles).
	members map[uuid.UUID][]uuid.UUID
}

// NewMemoryHierarchy constructs an empty MemoryHierarchy.
func NewMemoryHierarchy() *MemoryHierarchy {
	return &MemoryHierarchy{members: make(map[uuid.UUID][]uuid.UUID)}
}

// AddMember records child as a direct member of parent.
func (h *MemoryHierarchy) AddMember(parent, child uuid.UUID) {
	h.members[parent] = append(h.members[parent], child)
}

func (h *MemoryHierarchy) HasChildren(_ context.Context, parent uuid.UUID) (bool, error) {
	return len(h.members[parent]) > 0, nil
}

func (h *MemoryHierarchy) IsParentOf(_ context.Context, parent, child uuid.UUID) (bool, error) {
	visited := make(map[uuid.UUID]bool)
	var walk func(uuid.UUID) bool
	walk = func(node uuid.UUID) bool {
		if visited[node] {
			return false
		}
		visited[node] = true
		for _, m := range h.members[node] {
			if m == child || walk(m) {
				return true
			}
		}
		return false
	}
	return walk(parent), nil
}

func (h *MemoryHierarchy) MembershipClosure(ctx context.Context, actor uuid.UUID) ([]uuid.UUID, error) {
	var closure []uuid.UUID
	for parent := range h.members {
		ok, err := h.IsParentOf(ctx, parent, actor)
		if err != nil {
			return nil, err
		}
		if ok {
			closure = append(closure, parent)
		}
	}
	return closure, nil
}
