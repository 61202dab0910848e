// Package sqlite provides a SQLite-backed implementation of
// orderlog.Repository.
//
// The default DSN is an in-memory database: the log lives as long as the
// process. Pointing it at a file keeps an audit trail on disk, but nothing
// is read back into the catalog or order book at start-up.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jcmexdev/storefront/internal/orderlog"

	// Pure-Go SQLite driver, no CGO.
	_ "modernc.org/sqlite"
)

// MemoryPath selects a private in-memory database.
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS order_events (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Not UNIQUE: one row per status an order takes.
    order_id        INTEGER     NOT NULL,
    status          TEXT        NOT NULL,
    previous_status TEXT        NOT NULL DEFAULT '',
    note            TEXT        NOT NULL DEFAULT '',
    trace_id        TEXT        NOT NULL DEFAULT '',
    span_id         TEXT        NOT NULL DEFAULT '',

    -- RFC3339 stored as TEXT, SQLite idiom.
    recorded_at     TEXT        NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_order_events_order_id ON order_events(order_id, id);
CREATE INDEX IF NOT EXISTS idx_order_events_trace_id ON order_events(trace_id);
`

// Repository is the SQLite implementation of orderlog.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
//
//	repo, err := sqlite.Open(sqlite.MemoryPath)
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	// Use "sqlite", not "sqlite3" for the modernc driver.
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// A single connection: one writer, and an in-memory database only lives
	// as long as its connection.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

// Close releases the database connection. Call it with defer in main().
func (r *Repository) Close() error {
	return r.db.Close()
}

// Append inserts a new event.
func (r *Repository) Append(ctx context.Context, event *orderlog.Event) error {
	const q = `
		INSERT INTO order_events
			(order_id, status, previous_status, note, trace_id, span_id, recorded_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		event.OrderID,
		event.Status,
		event.PreviousStatus,
		event.Note,
		event.TraceID,
		event.SpanID,
		formatTime(event.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: append event for order %d: %w", event.OrderID, err)
	}
	return nil
}

// History returns the events of one order in the order they were appended.
func (r *Repository) History(ctx context.Context, orderID int) ([]orderlog.Event, error) {
	const q = `
		SELECT order_id, status, previous_status, note, trace_id, span_id, recorded_at
		FROM   order_events
		WHERE  order_id = ?
		ORDER  BY id ASC`

	rows, err := r.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: history for order %d: %w", orderID, err)
	}
	defer rows.Close()

	var out []orderlog.Event
	for rows.Next() {
		var (
			ev         orderlog.Event
			recordedAt string
		)
		if err := rows.Scan(
			&ev.OrderID,
			&ev.Status,
			&ev.PreviousStatus,
			&ev.Note,
			&ev.TraceID,
			&ev.SpanID,
			&recordedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scan event for order %d: %w", orderID, err)
		}
		if ev.RecordedAt, err = parseTime(recordedAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: history for order %d: %w", orderID, err)
	}
	return out, nil
}

// applySchema runs the DDL statements once. Idempotent due to IF NOT EXISTS.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return nil
}

var _ orderlog.Repository = (*Repository)(nil)
