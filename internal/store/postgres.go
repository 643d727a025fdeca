package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/dealdesk-cli/internal/db"
	"github.com/sells-group/dealdesk-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 5
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS watch_events (
	id          TEXT PRIMARY KEY,
	document_id BIGINT NOT NULL,
	label       TEXT NOT NULL,
	terminal    BOOLEAN NOT NULL DEFAULT false,
	outcome     TEXT NOT NULL DEFAULT '',
	observed_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_watch_events_document_id ON watch_events(document_id);
CREATE INDEX IF NOT EXISTS idx_watch_events_observed_at ON watch_events(observed_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) RecordEvent(ctx context.Context, ev model.WatchEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.ObservedAt.IsZero() {
		ev.ObservedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO watch_events (id, document_id, label, terminal, outcome, observed_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		ev.ID, ev.DocumentID, ev.Label, ev.Terminal, ev.Outcome, ev.ObservedAt,
	)
	return eris.Wrap(err, "postgres: insert watch event")
}

func (s *PostgresStore) ListEvents(ctx context.Context, filter EventFilter) ([]model.WatchEvent, error) {
	query := `SELECT id, document_id, label, terminal, outcome, observed_at FROM watch_events`
	args := []any{}
	if filter.DocumentID != 0 {
		query += ` WHERE document_id = $1`
		args = append(args, filter.DocumentID)
	}
	query += ` ORDER BY observed_at DESC`
	if filter.Limit > 0 {
		if filter.DocumentID != 0 {
			query += ` LIMIT $2`
		} else {
			query += ` LIMIT $1`
		}
		args = append(args, filter.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list watch events")
	}
	defer rows.Close()

	var events []model.WatchEvent
	for rows.Next() {
		var ev model.WatchEvent
		if err := rows.Scan(&ev.ID, &ev.DocumentID, &ev.Label, &ev.Terminal, &ev.Outcome, &ev.ObservedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan watch event")
		}
		events = append(events, ev)
	}
	return events, eris.Wrap(rows.Err(), "postgres: iterate watch events")
}

func (s *PostgresStore) LastEvent(ctx context.Context, docID int64) (*model.WatchEvent, error) {
	var ev model.WatchEvent
	err := s.pool.QueryRow(ctx,
		`SELECT id, document_id, label, terminal, outcome, observed_at FROM watch_events
		 WHERE document_id = $1 ORDER BY observed_at DESC LIMIT 1`,
		docID,
	).Scan(&ev.ID, &ev.DocumentID, &ev.Label, &ev.Terminal, &ev.Outcome, &ev.ObservedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: last event for document %d", docID)
	}
	return &ev, nil
}
