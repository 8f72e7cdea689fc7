package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"deals-service/internal/catalog/model"
)

var ErrNoSnapshot = errors.New("no catalog snapshot")

const schema = `
CREATE TABLE IF NOT EXISTS deals (
	id        TEXT PRIMARY KEY,
	position  INTEGER NOT NULL,
	name      TEXT NOT NULL,
	category  TEXT NOT NULL,
	card_type TEXT NOT NULL,
	payload   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS snapshot_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// Snapshot persists the last good catalog so a restart can serve it while
// the feed is unreachable.
type Snapshot struct {
	db   *sql.DB
	path string
}

func OpenSnapshot(path string) (*Snapshot, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init snapshot schema: %w", err)
	}
	return &Snapshot{db: db, path: path}, nil
}

func (s *Snapshot) Close() error { return s.db.Close() }

func (s *Snapshot) Path() string { return s.path }

// Save replaces the stored catalog in one transaction.
func (s *Snapshot) Save(ctx context.Context, deals []model.Deal, source string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM deals`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO deals (id, position, name, category, card_type, payload) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for i, d := range deals {
		payload, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("encode deal %s: %w", d.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, d.ID, i, d.Name, string(d.Category), string(d.CardType), string(payload)); err != nil {
			return fmt.Errorf("insert deal %s: %w", d.ID, err)
		}
	}
	meta := map[string]string{
		"source":   source,
		"saved_at": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot_meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, k, v); err != nil {
			return fmt.Errorf("write snapshot meta: %w", err)
		}
	}
	return tx.Commit()
}

// Load returns the stored catalog in its saved order and the source it came from.
func (s *Snapshot) Load(ctx context.Context) ([]model.Deal, string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM deals ORDER BY position`)
	if err != nil {
		return nil, "", fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	var deals []model.Deal
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, "", fmt.Errorf("scan snapshot: %w", err)
		}
		var d model.Deal
		if err := json.Unmarshal([]byte(payload), &d); err != nil {
			return nil, "", fmt.Errorf("decode snapshot row: %w", err)
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("read snapshot: %w", err)
	}
	if len(deals) == 0 {
		return nil, "", ErrNoSnapshot
	}

	var source string
	err = s.db.QueryRowContext(ctx, `SELECT value FROM snapshot_meta WHERE key = 'source'`).Scan(&source)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, "", fmt.Errorf("read snapshot meta: %w", err)
	}
	return deals, source, nil
}
