// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package postgres backs authz.PolicyStore and authz.Hierarchy with PostgreSQL, mirroring the
// plain DB-interface-plus-struct shape used for the graph store's own postgres adapter.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ontograph/ontograph/authz"
)

// DB is the subset of *pgxpool.Pool / *pgx.Conn this package needs.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Schema is the DDL for the policies and principal_membership tables.
const Schema = `
CREATE TABLE IF NOT EXISTS policies (
    id                TEXT PRIMARY KEY,
    principal_kind    SMALLINT NOT NULL,
    principal_id      UUID NOT NULL,
    permissions       TEXT[] NOT NULL,
    resource          UUID NOT NULL,
    effect            SMALLINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_policies_resource ON policies(resource);

CREATE TABLE IF NOT EXISTS principal_membership (
    parent UUID NOT NULL,
    child  UUID NOT NULL,
    PRIMARY KEY (parent, child)
);
CREATE INDEX IF NOT EXISTS idx_principal_membership_child ON principal_membership(child);
`

// Store is a PolicyStore and Hierarchy backed by PostgreSQL.
type Store struct {
	db DB
}

var (
	_ authz.PolicyStore = (*Store)(nil)
	_ authz.Hierarchy   = (*Store)(nil)
)

// New constructs a Store over db. Call Migrate once before use.
func New(db DB) *Store {
	return &Store{db: db}
}

// Migrate applies Schema.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("authz/postgres: migrate: %w", err)
	}
	return nil
}

// PoliciesForResource loads every policy row naming resource.
func (s *Store) PoliciesForResource(ctx context.Context, resource uuid.UUID) ([]authz.Policy, error) {
	const query = `
		SELECT id, principal_kind, principal_id, permissions, resource, effect
		FROM policies
		WHERE resource = $1`

	rows, err := s.db.Query(ctx, query, resource)
	if err != nil {
		return nil, fmt.Errorf("authz/postgres: policies for resource %s: %w", resource, err)
	}
	defer rows.Close()

	var policies []authz.Policy
	for rows.Next() {
		var (
			p         authz.Policy
			kind      int
			effect    int
			permTexts []string
		)
		if err := rows.Scan(&p.Id, &kind, &p.Principal.Id, &permTexts, &p.Resource, &effect); err != nil {
			return nil, fmt.Errorf("authz/postgres: scan policy: %w", err)
		}
		p.Principal.Kind = authz.PrincipalKind(kind)
		p.Effect = authz.Effect(effect)
		p.Permissions = make(authz.Permissions, len(permTexts))
		for i, t := range permTexts {
			p.Permissions[i] = authz.Action(t)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("authz/postgres: policies for resource %s: %w", resource, err)
	}
	return policies, nil
}

// IsParentOf runs a recursive CTE over principal_membership to answer transitive containment
// without materializing the whole closure for every call.
func (s *Store) IsParentOf(ctx context.Context, parent, child uuid.UUID) (bool, error) {
	const query = `
		WITH RECURSIVE closure(id) AS (
			SELECT child FROM principal_membership WHERE parent = $1
			UNION
			SELECT pm.child FROM principal_membership pm
			JOIN closure c ON pm.parent = c.id
		)
		SELECT EXISTS (SELECT 1 FROM closure WHERE id = $2)`

	var found bool
	err := s.db.QueryRow(ctx, query, parent, child).Scan(&found)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("authz/postgres: is parent of: %w", err)
	}
	return found, nil
}

// HasChildren reports whether parent has any direct member at all.
func (s *Store) HasChildren(ctx context.Context, parent uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM principal_membership WHERE parent = $1)`
	var found bool
	if err := s.db.QueryRow(ctx, query, parent).Scan(&found); err != nil {
		return false, fmt.Errorf("authz/postgres: has children: %w", err)
	}
	return found, nil
}

// MembershipClosure returns every group/role actor transitively belongs to.
func (s *Store) MembershipClosure(ctx context.Context, actor uuid.UUID) ([]uuid.UUID, error) {
	const query = `
		WITH RECURSIVE closure(id) AS (
			SELECT parent FROM principal_membership WHERE child = $1
			UNION
			SELECT pm.parent FROM principal_membership pm
			JOIN closure c ON pm.child = c.id
		)
		SELECT id FROM closure`

	rows, err := s.db.Query(ctx, query, actor)
	if err != nil {
		return nil, fmt.Errorf("authz/postgres: membership closure: %w", err)
	}
	defer rows.Close()

	var closure []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("authz/postgres: scan closure member: %w", err)
		}
		closure = append(closure, id)
	}
	return closure, rows.Err()
}
