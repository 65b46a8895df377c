// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package authz

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Action names an operation a policy grants or denies.
type Action string

const (
	ActionView   Action = "view"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionInstantiate Action = "instantiate"
)

// Permissions is the set of actions a policy grants together; a policy always grants or
// denies its whole Permissions set as one unit, never a subset.
type Permissions []Action

// Allows reports whether action is a member of p.
func (p Permissions) Allows(action Action) bool {
	for _, a := range p {
		if a == action {
			return true
		}
	}
	return false
}

// Effect is whether a matching policy grants or forbids its permissions.
type Effect int

const (
	Permit Effect = iota
	Forbid
)

// Policy binds a principal constraint to a set of permissions over a resource, with an
// effect. A Forbid policy that matches always wins over a Permit, mirroring how most real
// policy engines resolve conflicting grants.
type Policy struct {
	Id          uuid.UUID
	Principal   Principal
	Permissions Permissions
	Resource    uuid.UUID
	Effect      Effect
}

// matches reports whether p's principal constraint covers actor, consulting hierarchy for
// group/role/transitive membership and direct grants.
func (p Policy) matches(ctx context.Context, actor uuid.UUID, resource uuid.UUID, hierarchy Hierarchy) (bool, error) {
	switch p.Principal.Kind {
	case ActorPrincipal:
		return p.Principal.Id == actor, nil
	case DirectGrantPrincipal:
		return p.Principal.Id == resource, nil
	case ActorGroupPrincipal, RolePrincipal:
		return hierarchy.IsParentOf(ctx, p.Principal.Id, actor)
	default:
		return false, fmt.Errorf("authz: unknown principal kind %d", p.Principal.Kind)
	}
}

// Evaluate walks policies applicable to resource and decides whether actor may perform
// action: any matching Forbid policy wins outright; otherwise any matching Permit policy
// grants; absent either, the default is Denied. A backend error during matching (a broken
// hierarchy lookup) surfaces as Malformed rather than silently falling through to Denied,
// since a silent deny on backend failure cannot be told apart from an intentional deny.
func Evaluate(ctx context.Context, policies []Policy, actor uuid.UUID, resource uuid.UUID, action Action, hierarchy Hierarchy) Access {
	granted := false
	for _, p := range policies {
		if p.Resource != resource || !p.Permissions.Allows(action) {
			continue
		}
		ok, err := p.matches(ctx, actor, resource, hierarchy)
		if err != nil {
			return MalformedAccess(err)
		}
		if !ok {
			continue
		}
		if p.Effect == Forbid {
			return DeniedAccess
		}
		granted = true
	}
	if granted {
		return GrantedAccess
	}
	return DeniedAccess
}
