// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package postgres backs graphstore.Store with PostgreSQL: one table per resource kind, each
// carrying both temporal axes as range columns so a query can pin one axis and filter the
// other with a single range-overlap predicate.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ontograph/ontograph/entitymodel"
	"github.com/ontograph/ontograph/graphstore"
	"github.com/ontograph/ontograph/ontids"
	"github.com/ontograph/ontograph/ontology"
)

// DB is the subset of *pgxpool.Pool / *pgx.Conn this package needs.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Schema is the DDL for the four resource tables. Each row carries both temporal axes as
// tstzrange columns; decision_time/transaction_time are named for clarity even though the
// planner sees them as ordinary ranges.
const Schema = `
CREATE TABLE IF NOT EXISTS data_types (
    id                TEXT PRIMARY KEY,
    base_url          TEXT NOT NULL,
    version           INTEGER NOT NULL,
    decision_time     TSTZRANGE NOT NULL,
    transaction_time  TSTZRANGE NOT NULL,
    record            JSONB NOT NULL
);
CREATE TABLE IF NOT EXISTS property_types (
    id                TEXT PRIMARY KEY,
    base_url          TEXT NOT NULL,
    version           INTEGER NOT NULL,
    decision_time     TSTZRANGE NOT NULL,
    transaction_time  TSTZRANGE NOT NULL,
    record            JSONB NOT NULL
);
CREATE TABLE IF NOT EXISTS entity_types (
    id                TEXT PRIMARY KEY,
    base_url          TEXT NOT NULL,
    version           INTEGER NOT NULL,
    decision_time     TSTZRANGE NOT NULL,
    transaction_time  TSTZRANGE NOT NULL,
    record            JSONB NOT NULL
);
CREATE TABLE IF NOT EXISTS entities (
    web_id            UUID NOT NULL,
    entity_uuid       UUID NOT NULL,
    draft_id          UUID,
    decision_time     TSTZRANGE NOT NULL,
    transaction_time  TSTZRANGE NOT NULL,
    record            JSONB NOT NULL,
    PRIMARY KEY (web_id, entity_uuid, draft_id)
);
`

// Store is a graphstore.Store backed by PostgreSQL.
type Store struct {
	db DB
}

var _ graphstore.Store = (*Store)(nil)

// New constructs a Store over db. Call Migrate once before use.
func New(db DB) *Store { return &Store{db: db} }

// Migrate applies Schema.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("graphstore/postgres: migrate: %w", err)
	}
	return nil
}

func (s *Store) DataType(ctx context.Context, id ontids.DataTypeId, axes ontids.TemporalAxes) (*ontology.DataType, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, imageQuery("data_types", axes), ontids.TypeId(id).String(), axisArgs(axes)...).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, graphstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("graphstore/postgres: data type %s: %w", id, err)
	}
	var dt ontology.DataType
	if err := json.Unmarshal(raw, &dt); err != nil {
		return nil, fmt.Errorf("graphstore/postgres: decode data type %s: %w", id, err)
	}
	return &dt, nil
}

func (s *Store) PropertyType(ctx context.Context, id ontids.PropertyTypeId, axes ontids.TemporalAxes) (*ontology.PropertyType, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, imageQuery("property_types", axes), ontids.TypeId(id).String(), axisArgs(axes)...).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, graphstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("graphstore/postgres: property type %s: %w", id, err)
	}
	var pt ontology.PropertyType
	if err := json.Unmarshal(raw, &pt); err != nil {
		return nil, fmt.Errorf("graphstore/postgres: decode property type %s: %w", id, err)
	}
	return &pt, nil
}

func (s *Store) EntityType(ctx context.Context, id ontids.EntityTypeId, axes ontids.TemporalAxes) (*ontology.EntityType, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, imageQuery("entity_types", axes), ontids.TypeId(id).String(), axisArgs(axes)...).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, graphstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("graphstore/postgres: entity type %s: %w", id, err)
	}
	var et ontology.EntityType
	if err := json.Unmarshal(raw, &et); err != nil {
		return nil, fmt.Errorf("graphstore/postgres: decode entity type %s: %w", id, err)
	}
	return &et, nil
}

func (s *Store) Entity(ctx context.Context, id ontids.EntityId, axes ontids.TemporalAxes) (*entitymodel.Entity, error) {
	pinnedCol, variableCol := axisColumns(axes)
	query := fmt.Sprintf(`
		SELECT record FROM entities
		WHERE web_id = $1 AND entity_uuid = $2 AND draft_id IS NOT DISTINCT FROM $3
		  AND %s @> $4::timestamptz
		  AND %s && tstzrange($5::timestamptz, $6::timestamptz, '[)')
		LIMIT 1`, pinnedCol, variableCol)

	var draftId *uuid.UUID
	if id.DraftId.Valid {
		d := id.DraftId.UUID
		draftId = &d
	}

	start, end := variableBounds(axes)
	var raw []byte
	err := s.db.QueryRow(ctx, query, id.WebId, id.EntityUuid, draftId, axes.Pinned.Instant, start, end).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, graphstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("graphstore/postgres: entity %s: %w", id, err)
	}
	var e entitymodel.Entity
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("graphstore/postgres: decode entity %s: %w", id, err)
	}
	return &e, nil
}

// EntitiesLinkingTo finds every link entity whose record carries target as either link
// endpoint, at the given temporal image. The endpoints live inside the opaque record JSONB
// column rather than as indexed columns of their own, so this is a containment scan rather
// than a point lookup; callers use it only for bounded incoming-edge expansion, not as a
// general query path.
func (s *Store) EntitiesLinkingTo(ctx context.Context, target ontids.EntityId, axes ontids.TemporalAxes) ([]*entitymodel.Entity, error) {
	pinnedCol, variableCol := axisColumns(axes)
	query := fmt.Sprintf(`
		SELECT record FROM entities
		WHERE %s @> $1::timestamptz
		  AND %s && tstzrange($2::timestamptz, $3::timestamptz, '[)')
		  AND (
		    record->'Link'->'LeftEntityId'->>'WebId' = $4 AND record->'Link'->'LeftEntityId'->>'EntityUuid' = $5
		    OR record->'Link'->'RightEntityId'->>'WebId' = $4 AND record->'Link'->'RightEntityId'->>'EntityUuid' = $5
		  )`, pinnedCol, variableCol)

	start, end := variableBounds(axes)
	rows, err := s.db.Query(ctx, query, axes.Pinned.Instant, start, end, target.WebId.String(), target.EntityUuid.String())
	if err != nil {
		return nil, fmt.Errorf("graphstore/postgres: entities linking to %s: %w", target, err)
	}
	defer rows.Close()

	var out []*entitymodel.Entity
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("graphstore/postgres: entities linking to %s: %w", target, err)
		}
		var e entitymodel.Entity
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("graphstore/postgres: decode linking entity: %w", err)
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("graphstore/postgres: entities linking to %s: %w", target, err)
	}
	return out, nil
}

// VersionedUrlOf looks up an ontology type's VersionedUrl across all three ontology tables,
// since a bare TypeId does not carry which kind of type it names.
func (s *Store) VersionedUrlOf(ctx context.Context, id ontids.TypeId) (ontids.VersionedUrl, error) {
	for _, table := range []string{"data_types", "property_types", "entity_types"} {
		query := fmt.Sprintf(`SELECT base_url, version FROM %s WHERE id = $1 LIMIT 1`, table)
		var rawURL string
		var version uint32
		err := s.db.QueryRow(ctx, query, id.String()).Scan(&rawURL, &version)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return ontids.VersionedUrl{}, fmt.Errorf("graphstore/postgres: versioned url of %s: %w", id, err)
		}
		base, err := ontids.ParseBaseUrl(rawURL)
		if err != nil {
			return ontids.VersionedUrl{}, fmt.Errorf("graphstore/postgres: stored base url %q: %w", rawURL, err)
		}
		return ontids.VersionedUrl{Base: base, Version: ontids.OntologyTypeVersion(version)}, nil
	}
	return ontids.VersionedUrl{}, graphstore.ErrNotFound
}

// imageQuery builds the ontology-table lookup filtering on id plus both temporal axes.
func imageQuery(table string, axes ontids.TemporalAxes) string {
	pinnedCol, variableCol := axisColumns(axes)
	return fmt.Sprintf(`
		SELECT record FROM %s
		WHERE id = $1
		  AND %s @> $2::timestamptz
		  AND %s && tstzrange($3::timestamptz, $4::timestamptz, '[)')
		LIMIT 1`, table, pinnedCol, variableCol)
}

func axisColumns(axes ontids.TemporalAxes) (pinned, variable string) {
	if axes.Pinned.Axis == ontids.DecisionTime {
		return "decision_time", "transaction_time"
	}
	return "transaction_time", "decision_time"
}

func axisArgs(axes ontids.TemporalAxes) []any {
	start, end := variableBounds(axes)
	return []any{axes.Pinned.Instant, start, end}
}

func variableBounds(axes ontids.TemporalAxes) (any, any) {
	interval := axes.Variable.Interval()
	if interval.End == nil {
		return interval.Start, "infinity"
	}
	return interval.Start, *interval.End
}
