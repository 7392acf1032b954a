// Package pgstore provides a PostgreSQL implementation of monitor.Store.
package pgstore

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linnemanlabs/statuswatch/internal/monitor"
)

var tracer = otel.Tracer("github.com/linnemanlabs/statuswatch/internal/monitor/pgstore")

//go:embed schema.sql
var schema string

// Store persists seen identities and latest incidents in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// New applies the schema and returns a ready Store. The pool stays owned by
// the caller.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{pool: pool, now: time.Now}, nil
}

// Accept implements monitor.Store. Novelty is decided by the row count of an
// INSERT ... ON CONFLICT DO NOTHING on the identity table; running it inside
// one transaction with the latest-by-id upsert keeps the check-then-insert
// atomic across concurrent deliveries.
func (s *Store) Accept(ctx context.Context, inc *monitor.Incident) (bool, error) {
	ctx, span := tracer.Start(ctx, "pgstore.Accept", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "INSERT"),
	))
	defer span.End()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is harmless

	receivedAt := s.now()

	tag, err := tx.Exec(ctx,
		`INSERT INTO seen_updates (identity, accepted_at) VALUES ($1, $2)
		 ON CONFLICT (identity) DO NOTHING`,
		inc.Identity(), receivedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, fmt.Errorf("insert identity: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Duplicate delivery: no promotion into incidents.
		span.SetAttributes(attribute.Bool("statuswatch.duplicate", true))
		return false, nil
	}

	componentsJSON, err := json.Marshal(inc.Components)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, fmt.Errorf("marshal components: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO incidents (id, name, status, created_at, updated_at, components, latest_message, provider, received_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT (id) DO UPDATE SET
			name           = EXCLUDED.name,
			status         = EXCLUDED.status,
			created_at     = EXCLUDED.created_at,
			updated_at     = EXCLUDED.updated_at,
			components     = EXCLUDED.components,
			latest_message = EXCLUDED.latest_message,
			provider       = EXCLUDED.provider,
			received_at    = EXCLUDED.received_at`,
		inc.ID, inc.Name, inc.Status, inc.CreatedAt, inc.UpdatedAt,
		componentsJSON, inc.LatestMessage, inc.Provider, receivedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, fmt.Errorf("upsert incident: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

// List implements monitor.Store.
func (s *Store) List(ctx context.Context) ([]monitor.StoredIncident, error) {
	ctx, span := tracer.Start(ctx, "pgstore.List", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "SELECT"),
	))
	defer span.End()

	rows, err := s.pool.Query(ctx,
		`SELECT id, name, status, created_at, updated_at, components, latest_message, provider, received_at
		 FROM incidents ORDER BY received_at, id`,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("query incidents: %w", err)
	}
	defer rows.Close()

	var out []monitor.StoredIncident
	for rows.Next() {
		var (
			si             monitor.StoredIncident
			componentsJSON []byte
		)
		if err := rows.Scan(
			&si.ID, &si.Name, &si.Status, &si.CreatedAt, &si.UpdatedAt,
			&componentsJSON, &si.LatestMessage, &si.Provider, &si.ReceivedAt,
		); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("scan incident: %w", err)
		}
		if err := json.Unmarshal(componentsJSON, &si.Components); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("unmarshal components for %s: %w", si.ID, err)
		}
		out = append(out, si)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("iterate incidents: %w", err)
	}

	return out, nil
}

// Stats implements monitor.Store.
func (s *Store) Stats(ctx context.Context) (monitor.Stats, error) {
	ctx, span := tracer.Start(ctx, "pgstore.Stats", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "SELECT"),
	))
	defer span.End()

	var st monitor.Stats
	err := s.pool.QueryRow(ctx,
		`SELECT (SELECT count(*) FROM incidents), (SELECT count(*) FROM seen_updates)`,
	).Scan(&st.IncidentsTracked, &st.TotalUpdates)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return monitor.Stats{}, fmt.Errorf("count: %w", err)
	}

	return st, nil
}
