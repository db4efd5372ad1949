// Package history persists deployment records in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one deployment attempt, successful or not.
type Record struct {
	ID         int64     `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	Locator    string    `json:"locator"`
	Provider   string    `json:"provider"`
	Region     string    `json:"region,omitempty"`
	Language   string    `json:"language,omitempty"`
	Framework  string    `json:"framework,omitempty"`
	Strategy   string    `json:"strategy,omitempty"`
	TemplateID string    `json:"templateId,omitempty"`
	Address    string    `json:"address,omitempty"`
	URL        string    `json:"url,omitempty"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
}

// Store wraps the deployments table.
type Store struct {
	db *sql.DB
}

const schema = `CREATE TABLE IF NOT EXISTS deployments (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at  TEXT NOT NULL,
	locator     TEXT NOT NULL,
	provider    TEXT NOT NULL,
	region      TEXT NOT NULL DEFAULT '',
	language    TEXT NOT NULL DEFAULT '',
	framework   TEXT NOT NULL DEFAULT '',
	strategy    TEXT NOT NULL DEFAULT '',
	template_id TEXT NOT NULL DEFAULT '',
	address     TEXT NOT NULL DEFAULT '',
	url         TEXT NOT NULL DEFAULT '',
	success     INTEGER NOT NULL,
	error       TEXT NOT NULL DEFAULT ''
)`

// Open creates (if needed) and opens the store at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Add inserts the record and returns its assigned id.
func (s *Store) Add(ctx context.Context, r *Record) (int64, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO deployments
		 (created_at, locator, provider, region, language, framework, strategy, template_id, address, url, success, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.CreatedAt.Format(time.RFC3339), r.Locator, r.Provider, r.Region,
		r.Language, r.Framework, r.Strategy, r.TemplateID, r.Address, r.URL,
		boolToInt(r.Success), r.Error)
	if err != nil {
		return 0, fmt.Errorf("insert deployment record: %w", err)
	}
	return res.LastInsertId()
}

// List returns the most recent records, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, locator, provider, region, language, framework,
		        strategy, template_id, address, url, success, error
		 FROM deployments ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list deployments: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// Get looks a single record up by id.
func (s *Store) Get(ctx context.Context, id int64) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, locator, provider, region, language, framework,
		        strategy, template_id, address, url, success, error
		 FROM deployments WHERE id = ?`, id)
	r, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("deployment %d not found", id)
	}
	return r, err
}

func scanRecord(scan func(dest ...any) error) (*Record, error) {
	var r Record
	var created string
	var success int
	if err := scan(&r.ID, &created, &r.Locator, &r.Provider, &r.Region, &r.Language,
		&r.Framework, &r.Strategy, &r.TemplateID, &r.Address, &r.URL, &success, &r.Error); err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, created); err == nil {
		r.CreatedAt = t
	}
	r.Success = success != 0
	return &r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
