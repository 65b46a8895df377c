// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package authz

import (
	"context"

	"github.com/google/uuid"
)

// PolicyStore loads the policies applicable to a resource. A postgres-backed implementation
// lives in package authz/postgres; tests use a small in-memory fake struct.
type PolicyStore interface {
	PoliciesForResource(ctx context.Context, resource uuid.UUID) ([]Policy, error)
}

// Checker answers authorization questions with the sticky cache, falling back to Evaluate
// against the PolicyStore and Hierarchy on a cache miss.
type Checker struct {
	store     PolicyStore
	hierarchy Hierarchy
	cache     *Cache
}

// NewChecker constructs a Checker backed by store and hierarchy, recording decisions in the
// caller-supplied sticky cache.
func NewChecker(store PolicyStore, hierarchy Hierarchy, cache *Cache) *Checker {
	return &Checker{store: store, hierarchy: hierarchy, cache: cache}
}

// Check returns the authorization decision for actor performing action on resource, serving
// a prior decision from the sticky cache when one exists.
func (c *Checker) Check(ctx context.Context, actor uuid.UUID, action Action, resource uuid.UUID) Access {
	key := Key{Actor: actor.String(), Action: string(action), Resource: resource.String()}
	if cached, ok := c.cache.Get(key); ok {
		return cached
	}

	policies, err := c.store.PoliciesForResource(ctx, resource)
	if err != nil {
		decision := MalformedAccess(err)
		// A lookup failure is not cached: it may be transient (a dropped connection), and
		// caching it would make a resource sticky-deny for a reason that has nothing to do
		// with its policies.
		return decision
	}

	decision := Evaluate(ctx, policies, actor, resource, action, c.hierarchy)
	c.cache.Set(key, decision)
	return decision
}

// Invalidate drops every cached decision for resource, called after a policy write affecting
// it.
func (c *Checker) Invalidate(resource uuid.UUID) {
	c.cache.InvalidateResource(resource.String())
}
