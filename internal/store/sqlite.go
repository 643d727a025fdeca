package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/dealdesk-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS watch_events (
	id          TEXT PRIMARY KEY,
	document_id INTEGER NOT NULL,
	label       TEXT NOT NULL,
	terminal    INTEGER NOT NULL DEFAULT 0,
	outcome     TEXT NOT NULL DEFAULT '',
	observed_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_watch_events_document_id ON watch_events(document_id);
CREATE INDEX IF NOT EXISTS idx_watch_events_observed_at ON watch_events(observed_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) RecordEvent(ctx context.Context, ev model.WatchEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.ObservedAt.IsZero() {
		ev.ObservedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO watch_events (id, document_id, label, terminal, outcome, observed_at) VALUES (?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.DocumentID, ev.Label, ev.Terminal, ev.Outcome, ev.ObservedAt,
	)
	return eris.Wrap(err, "sqlite: insert watch event")
}

func (s *SQLiteStore) ListEvents(ctx context.Context, filter EventFilter) ([]model.WatchEvent, error) {
	query := `SELECT id, document_id, label, terminal, outcome, observed_at FROM watch_events`
	args := []any{}
	if filter.DocumentID != 0 {
		query += ` WHERE document_id = ?`
		args = append(args, filter.DocumentID)
	}
	query += ` ORDER BY observed_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list watch events")
	}
	defer rows.Close()

	var events []model.WatchEvent
	for rows.Next() {
		var ev model.WatchEvent
		if err := rows.Scan(&ev.ID, &ev.DocumentID, &ev.Label, &ev.Terminal, &ev.Outcome, &ev.ObservedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan watch event")
		}
		events = append(events, ev)
	}
	return events, eris.Wrap(rows.Err(), "sqlite: iterate watch events")
}

func (s *SQLiteStore) LastEvent(ctx context.Context, docID int64) (*model.WatchEvent, error) {
	var ev model.WatchEvent
	err := s.db.QueryRowContext(ctx,
		`SELECT id, document_id, label, terminal, outcome, observed_at FROM watch_events
		 WHERE document_id = ? ORDER BY observed_at DESC LIMIT 1`,
		docID,
	).Scan(&ev.ID, &ev.DocumentID, &ev.Label, &ev.Terminal, &ev.Outcome, &ev.ObservedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: last event for document %d", docID)
	}
	return &ev, nil
}
