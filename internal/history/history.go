// Package history persists processed queries to SQLite so past
// routing decisions and tool calls can be inspected.
package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	// SQLite driver (required for database/sql registration).
	_ "github.com/mattn/go-sqlite3"

	apperrors "github.com/relay-ai/relay/internal/errors"
)

// Store is the query history log.
type Store struct {
	db   *sql.DB
	path string
}

// Entry is one processed query.
type Entry struct {
	ID        string
	SessionID string
	Utterance string
	Route     string
	Tool      string
	Outcome   string
	CreatedAt time.Time
}

// Open opens (and if needed creates) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, apperrors.NewBuilder(apperrors.CodeHistoryUnavailable, "cannot create history directory").
				Wrap(err).
				Permanent().
				Build()
		}
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, apperrors.NewBuilder(apperrors.CodeHistoryUnavailable, "cannot open history database").
			Wrap(err).
			Permanent().
			Build()
	}

	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	store := &Store{db: db, path: path}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS queries (
		id          TEXT PRIMARY KEY,
		session_id  TEXT NOT NULL,
		utterance   TEXT NOT NULL,
		route       TEXT NOT NULL,
		tool        TEXT,
		outcome     TEXT,
		created_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
	);

	CREATE INDEX IF NOT EXISTS idx_queries_session ON queries(session_id, created_at);
	`)
	return err
}

// Record logs one processed query. Failures are swallowed: history is
// best-effort and must never break query processing.
func (s *Store) Record(ctx context.Context, sessionID, utterance, route, tool, outcome string) {
	if s == nil || s.db == nil {
		return
	}

	_, _ = s.db.ExecContext(ctx, `
		INSERT INTO queries (id, session_id, utterance, route, tool, outcome, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), sessionID, utterance, route, tool, outcome, time.Now().Unix())
}

// Recent returns the newest entries for a session, newest first.
func (s *Store) Recent(ctx context.Context, sessionID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, utterance, route, tool, outcome, created_at
		FROM queries
		WHERE session_id = ?
		ORDER BY created_at DESC, id
		LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, apperrors.NewBuilder(apperrors.CodeHistoryUnavailable, "cannot read history").
			Wrap(err).
			Temporary().
			Build()
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Utterance, &e.Route, &e.Tool, &e.Outcome, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Size returns the database file size in bytes.
func (s *Store) Size() int64 {
	info, err := os.Stat(s.path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
