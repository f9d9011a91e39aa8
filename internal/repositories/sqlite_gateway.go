package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// SQLiteGateway keeps documents as JSON text in the documents table created
// by database.OpenSQLite.
type SQLiteGateway struct {
	db *sql.DB
}

func NewSQLiteGateway(db *sql.DB) *SQLiteGateway {
	return &SQLiteGateway{db: db}
}

func (r *SQLiteGateway) List(ctx context.Context, collection string) ([]Document, error) {
	query := `SELECT id, data FROM documents WHERE collection = ? ORDER BY seq ASC`

	docs, err := r.queryDocuments(ctx, query, collection)
	if err != nil {
		return nil, remoteErr("list", collection, "", err)
	}
	return docs, nil
}

func (r *SQLiteGateway) Query(ctx context.Context, collection, field string, value any) ([]Document, error) {
	query := `SELECT id, data FROM documents
	          WHERE collection = ? AND json_extract(data, ?) = ?
	          ORDER BY seq ASC`

	docs, err := r.queryDocuments(ctx, query, collection, "$."+field, value)
	if err != nil {
		return nil, remoteErr("query", collection, "", err)
	}
	return docs, nil
}

func (r *SQLiteGateway) queryDocuments(ctx context.Context, query string, args ...any) (docs []Document, err error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	docs = []Document{}
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		doc := Document{}
		if err := json.Unmarshal([]byte(data), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
		}
		doc[IDField] = id
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}
	return docs, nil
}

func (r *SQLiteGateway) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	data, err := json.Marshal(withoutID(doc))
	if err != nil {
		return "", remoteErr("insert", collection, "", fmt.Errorf("failed to marshal document: %w", err))
	}

	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO documents (id, collection, data) VALUES (?, ?, ?)`,
		id, collection, string(data),
	)
	if err != nil {
		return "", remoteErr("insert", collection, "", fmt.Errorf("failed to insert document: %w", err))
	}
	return id, nil
}

// Update reads, merges and writes the document inside one transaction.
// json_patch is not used because it merges nested objects recursively.
func (r *SQLiteGateway) Update(ctx context.Context, collection, id string, patch Document) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return remoteErr("update", collection, id, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var data string
	err = tx.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = ? AND id = ?`, collection, id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return remoteErr("update", collection, id, ErrNotFound)
	}
	if err != nil {
		return remoteErr("update", collection, id, fmt.Errorf("failed to read document: %w", err))
	}

	doc := Document{}
	if err = json.Unmarshal([]byte(data), &doc); err != nil {
		return remoteErr("update", collection, id, fmt.Errorf("failed to decode document: %w", err))
	}
	for k, v := range withoutID(patch) {
		doc[k] = v
	}

	merged, err := json.Marshal(doc)
	if err != nil {
		return remoteErr("update", collection, id, fmt.Errorf("failed to marshal document: %w", err))
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE documents SET data = ?, updated_at = CURRENT_TIMESTAMP WHERE collection = ? AND id = ?`,
		string(merged), collection, id,
	); err != nil {
		return remoteErr("update", collection, id, fmt.Errorf("failed to update document: %w", err))
	}

	if err = tx.Commit(); err != nil {
		return remoteErr("update", collection, id, fmt.Errorf("failed to commit: %w", err))
	}
	return nil
}

func (r *SQLiteGateway) Delete(ctx context.Context, collection, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return remoteErr("delete", collection, id, fmt.Errorf("failed to delete document: %w", err))
	}
	return nil
}
