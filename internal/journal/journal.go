// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/btczview/internal/bridge"
	"github.com/jeranaias/btczview/internal/host"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNoSession     = errors.New("no session started")
	ErrEmptyJournal  = errors.New("journal has no sessions")
	ErrDatabaseError = errors.New("database error")
)

// =============================================================================
// TYPES
// =============================================================================

// Direction tells calls from events.
type Direction string

const (
	DirectionIn  Direction = "in"  // host call
	DirectionOut Direction = "out" // bridge event
)

// Session is one recorded run.
type Session struct {
	ID        string
	StartedAt time.Time
	Label     string
	Calls     int
	Events    int
}

// Entry is one recorded call or event.
type Entry struct {
	ID        int64
	SessionID string
	At        time.Time
	Direction Direction
	Payload   json.RawMessage
}

// =============================================================================
// JOURNAL
// =============================================================================

// Journal appends calls and events to the current session.
type Journal struct {
	db *sql.DB

	mu      sync.Mutex
	session string
	now     func() time.Time
}

// Open opens or creates the journal at path. ":memory:" keeps it in memory.
func Open(path string) (*Journal, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time; a single connection also
	// keeps an in-memory database alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(InitMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Journal{db: db, now: time.Now}, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Begin starts a new session and makes it current.
func (j *Journal) Begin(ctx context.Context, label string) (string, error) {
	id := uuid.NewString()
	j.mu.Lock()
	defer j.mu.Unlock()

	_, err := j.db.ExecContext(ctx,
		"INSERT INTO sessions (id, started_at, label) VALUES (?, ?, ?)",
		id, j.now().UnixNano(), label)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	j.session = id
	log.Printf("JOURNAL_SESSION | id=%s label=%s", id, label)
	return id, nil
}

// Session returns the current session id, or "" before Begin.
func (j *Journal) Session() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.session
}

func (j *Journal) append(dir Direction, payload []byte) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.session == "" {
		return ErrNoSession
	}
	_, err := j.db.Exec(
		"INSERT INTO entries (session_id, at, direction, payload) VALUES (?, ?, ?, ?)",
		j.session, j.now().UnixNano(), string(dir), string(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// RecordCall appends an inbound call.
func (j *Journal) RecordCall(c host.Call) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return j.append(DirectionIn, data)
}

// RecordEvent appends an outbound event.
func (j *Journal) RecordEvent(e bridge.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return j.append(DirectionOut, data)
}

// Observe records c, logging failures. It fits host.Dispatcher.Observe.
func (j *Journal) Observe(c host.Call) {
	if err := j.RecordCall(c); err != nil {
		log.Printf("JOURNAL_WRITE_FAILED | method=%s err=%v", c.Method, err)
	}
}

// Send records e, logging failures. It makes a Journal a bridge.Sink.
func (j *Journal) Send(e bridge.Event) {
	if err := j.RecordEvent(e); err != nil {
		log.Printf("JOURNAL_WRITE_FAILED | action=%s err=%v", e.Action, err)
	}
}

// =============================================================================
// QUERIES
// =============================================================================

// Sessions lists recorded sessions, oldest first.
func (j *Journal) Sessions(ctx context.Context) ([]Session, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT s.id, s.started_at, s.label,
		       COALESCE(SUM(e.direction = 'in'), 0),
		       COALESCE(SUM(e.direction = 'out'), 0)
		FROM sessions s
		LEFT JOIN entries e ON e.session_id = s.id
		GROUP BY s.id
		ORDER BY s.started_at, s.rowid`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var s Session
		var started int64
		if err := rows.Scan(&s.ID, &started, &s.Label, &s.Calls, &s.Events); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		s.StartedAt = time.Unix(0, started)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Latest returns the id of the most recent session.
func (j *Journal) Latest(ctx context.Context) (string, error) {
	var id string
	err := j.db.QueryRowContext(ctx,
		"SELECT id FROM sessions ORDER BY started_at DESC, rowid DESC LIMIT 1").Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrEmptyJournal
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return id, nil
}

// Entries returns a session's entries in order. An empty dir returns both
// directions.
func (j *Journal) Entries(ctx context.Context, sessionID string, dir Direction) ([]Entry, error) {
	query := "SELECT id, session_id, at, direction, payload FROM entries WHERE session_id = ?"
	args := []any{sessionID}
	if dir != "" {
		query += " AND direction = ?"
		args = append(args, string(dir))
	}
	query += " ORDER BY id"

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var at int64
		var d, payload string
		if err := rows.Scan(&e.ID, &e.SessionID, &at, &d, &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		e.At = time.Unix(0, at)
		e.Direction = Direction(d)
		e.Payload = json.RawMessage(payload)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Prune deletes all but the newest keep sessions.
func (j *Journal) Prune(ctx context.Context, keep int) (int64, error) {
	res, err := j.db.ExecContext(ctx, `
		DELETE FROM sessions WHERE id NOT IN (
			SELECT id FROM sessions ORDER BY started_at DESC, rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return res.RowsAffected()
}
