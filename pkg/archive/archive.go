// Package archive keeps exported portfolio documents in a SQLite file so the
// server can list and re-download earlier exports.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound 指定 ID 的导出记录不存在
var ErrNotFound = errors.New("archive: export not found")

const schema = `CREATE TABLE IF NOT EXISTS exports (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	file_name  TEXT NOT NULL,
	theme      TEXT NOT NULL,
	template   TEXT NOT NULL,
	html       TEXT NOT NULL,
	created_at INTEGER NOT NULL
)`

// Export 一份已导出的作品集文档
type Export struct {
	ID        int64     `json:"id"`
	FileName  string    `json:"fileName"`
	Theme     string    `json:"theme"`
	Template  string    `json:"template"`
	HTML      string    `json:"html,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summary 列表项，不含文档正文
type Summary struct {
	ID        int64     `json:"id"`
	FileName  string    `json:"fileName"`
	Theme     string    `json:"theme"`
	Template  string    `json:"template"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists exports in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

// Open opens (creating if needed) the archive database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("archive path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create exports table: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save inserts e and returns its new ID. A zero CreatedAt is set to now.
func (s *Store) Save(ctx context.Context, e Export) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(e.FileName) == "" {
		return 0, fmt.Errorf("file name is required")
	}
	if e.HTML == "" {
		return 0, fmt.Errorf("html is required")
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO exports (file_name, theme, template, html, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.FileName, e.Theme, e.Template, e.HTML, toMillis(e.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert export: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert export id: %w", err)
	}
	return id, nil
}

// List returns up to limit summaries, newest first. limit <= 0 means 50.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, file_name, theme, template, length(html), created_at
		   FROM exports ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer rows.Close()

	out := make([]Summary, 0)
	for rows.Next() {
		var (
			sum     Summary
			created int64
		)
		if err := rows.Scan(&sum.ID, &sum.FileName, &sum.Theme, &sum.Template, &sum.Size, &created); err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		sum.CreatedAt = fromMillis(created)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	return out, nil
}

// Get returns one export including its HTML.
func (s *Store) Get(ctx context.Context, id int64) (Export, error) {
	if err := ctx.Err(); err != nil {
		return Export{}, err
	}

	var (
		e       Export
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, file_name, theme, template, html, created_at FROM exports WHERE id = ?`, id,
	).Scan(&e.ID, &e.FileName, &e.Theme, &e.Template, &e.HTML, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Export{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return Export{}, fmt.Errorf("get export %d: %w", id, err)
	}
	e.CreatedAt = fromMillis(created)
	return e, nil
}

// Delete removes one export.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM exports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete export %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete export %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// Prune deletes exports created before cutoff and returns how many were removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM exports WHERE created_at < ?`, toMillis(cutoff))
	if err != nil {
		return 0, fmt.Errorf("prune exports: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune exports: %w", err)
	}
	return n, nil
}
