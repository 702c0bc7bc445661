// Package postgres mirrors audit events into a Postgres table for retention
// and ad-hoc querying beyond the life of the session log files.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"scribe/internal/collector"
)

const appendTimeout = 5 * time.Second

const schema = `
CREATE TABLE IF NOT EXISTS audit_events (
	id          UUID PRIMARY KEY,
	session_id  TEXT        NOT NULL,
	occurred_at TEXT        NOT NULL,
	source      TEXT        NOT NULL,
	event_type  TEXT        NOT NULL,
	detail      JSONB,
	recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Sink appends events to the audit_events table.
type Sink struct {
	db      *sql.DB
	session string
}

// New opens the database, verifies connectivity, and ensures the table
// exists. The collector is a local tool with no migration pipeline, so the
// sink owns its schema.
func New(dsn, sessionID string) (*Sink, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure audit_events table: %w", err)
	}
	return &Sink{db: db, session: sessionID}, nil
}

func (s *Sink) Name() string { return "postgres" }

func (s *Sink) Append(evt collector.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()

	var detail any
	if len(evt.Detail) > 0 {
		detail = []byte(evt.Detail)
	}

	query := `
		INSERT INTO audit_events (id, session_id, occurred_at, source, event_type, detail)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := s.db.ExecContext(ctx, query,
		uuid.New(),
		s.session,
		evt.Timestamp,
		evt.Source,
		evt.EventType,
		detail,
	); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *Sink) Close() error {
	return s.db.Close()
}
