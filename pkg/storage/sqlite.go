package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// documentName is the row, key or document id the snapshot is stored under
// when a backend has room for more than one.
const documentName = "graph"

// SQLiteBackend keeps the document as one row of the documents table.
type SQLiteBackend struct {
	db   *sql.DB
	path string
}

// NewSQLiteBackend opens (or creates) the database at path and migrates its
// schema. Use ":memory:" for a throwaway database.
func NewSQLiteBackend(ctx context.Context, path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// a single connection keeps ":memory:" databases alive between calls
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to sqlite: %w", err)
	}

	b := &SQLiteBackend{db: db, path: path}
	if err := b.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return b, nil
}

func (b *SQLiteBackend) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		name TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := b.db.ExecContext(ctx, schema)
	return err
}

// Load selects the stored document.
func (b *SQLiteBackend) Load(ctx context.Context) ([]byte, bool, error) {
	var body string
	err := b.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE name = ?`, documentName).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query document: %w", err)
	}
	return []byte(body), true, nil
}

// Save upserts the document row.
func (b *SQLiteBackend) Save(ctx context.Context, data []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO documents (name, body, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at
	`, documentName, string(data))
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

// Close closes the database.
func (b *SQLiteBackend) Close() error { return b.db.Close() }

func (b *SQLiteBackend) String() string { return location("sqlite", b.path) }

var _ Backend = (*SQLiteBackend)(nil)
