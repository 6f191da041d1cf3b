// Package history keeps a SQLite journal of completed roster fetches.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/crewwatch-io/crewwatch/internal/crew"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS fetches (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    fetched_at INTEGER NOT NULL,
    crew_count INTEGER NOT NULL,
    members    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_fetches_fetched_at ON fetches (fetched_at DESC);
`

// Fetch is one journal entry.
type Fetch struct {
	ID        int64
	FetchedAt time.Time
	CrewCount int
	Members   []crew.Member
}

// Store persists the fetch journal in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if necessary) the journal database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("history path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordFetch inserts one journal entry for a completed fetch.
func (s *Store) RecordFetch(ctx context.Context, at time.Time, members []crew.Member) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("history store is not configured")
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	payload, err := json.Marshal(members)
	if err != nil {
		return fmt.Errorf("encode members: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx,
		"INSERT INTO fetches (fetched_at, crew_count, members) VALUES (?, ?, ?)",
		at.UTC().UnixMilli(), len(members), string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert fetch record: %w", err)
	}
	return nil
}

// Recent returns the most recent journal entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Fetch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("history store is not configured")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT id, fetched_at, crew_count, members FROM fetches ORDER BY fetched_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query fetch records: %w", err)
	}
	defer rows.Close()

	var fetches []Fetch
	for rows.Next() {
		var (
			f       Fetch
			atMilli int64
			payload string
		)
		if err := rows.Scan(&f.ID, &atMilli, &f.CrewCount, &payload); err != nil {
			return nil, fmt.Errorf("scan fetch record: %w", err)
		}
		f.FetchedAt = time.UnixMilli(atMilli).UTC()
		if err := json.Unmarshal([]byte(payload), &f.Members); err != nil {
			return nil, fmt.Errorf("decode members: %w", err)
		}
		fetches = append(fetches, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fetch records: %w", err)
	}
	return fetches, nil
}
