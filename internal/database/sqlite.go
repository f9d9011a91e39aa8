package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS documents (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT    NOT NULL UNIQUE,
	collection TEXT    NOT NULL,
	data       TEXT    NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// OpenSQLite opens (or creates) the database at path and creates the
// documents table. ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and serialises writers
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		sqliteSchema,
		`CREATE INDEX IF NOT EXISTS documents_collection_idx ON documents (collection, seq)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			closeErr := db.Close()
			if closeErr != nil {
				return nil, fmt.Errorf("creating schema: %w (also failed to close: %v)", err, closeErr)
			}
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return db, nil
}
