package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresGateway stores every collection in the JSONB documents table
// created by database.EnsureDocumentSchema.
type PostgresGateway struct {
	pool *pgxpool.Pool
}

func NewPostgresGateway(pool *pgxpool.Pool) *PostgresGateway {
	return &PostgresGateway{pool: pool}
}

func (r *PostgresGateway) List(ctx context.Context, collection string) ([]Document, error) {
	query := `SELECT id, data
	          FROM documents
	          WHERE collection = $1
	          ORDER BY seq ASC`

	docs, err := r.queryDocuments(ctx, query, collection)
	if err != nil {
		return nil, remoteErr("list", collection, "", err)
	}
	return docs, nil
}

func (r *PostgresGateway) Query(ctx context.Context, collection, field string, value any) ([]Document, error) {
	filter, err := json.Marshal(map[string]any{field: value})
	if err != nil {
		return nil, remoteErr("query", collection, "", fmt.Errorf("failed to marshal filter: %w", err))
	}

	// @> on a single-key object is an equality predicate on that field
	query := `SELECT id, data
	          FROM documents
	          WHERE collection = $1 AND data @> $2::jsonb
	          ORDER BY seq ASC`

	docs, err := r.queryDocuments(ctx, query, collection, string(filter))
	if err != nil {
		return nil, remoteErr("query", collection, "", err)
	}
	return docs, nil
}

func (r *PostgresGateway) queryDocuments(ctx context.Context, query string, args ...any) ([]Document, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		var id uuid.UUID
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		doc := Document{}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
		}
		doc[IDField] = id.String()
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}
	return docs, nil
}

func (r *PostgresGateway) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	data, err := json.Marshal(withoutID(doc))
	if err != nil {
		return "", remoteErr("insert", collection, "", fmt.Errorf("failed to marshal document: %w", err))
	}

	query := `INSERT INTO documents (id, collection, data)
	          VALUES ($1, $2, $3::jsonb)
	          RETURNING id`

	var id uuid.UUID
	if err := r.pool.QueryRow(ctx, query, uuid.New(), collection, string(data)).Scan(&id); err != nil {
		return "", remoteErr("insert", collection, "", fmt.Errorf("failed to insert document: %w", err))
	}
	return id.String(), nil
}

// Update merges patch with the jsonb || operator, which replaces top-level
// keys only.
func (r *PostgresGateway) Update(ctx context.Context, collection, id string, patch Document) error {
	docID, err := uuid.Parse(id)
	if err != nil {
		return remoteErr("update", collection, id, ErrNotFound)
	}

	data, err := json.Marshal(withoutID(patch))
	if err != nil {
		return remoteErr("update", collection, id, fmt.Errorf("failed to marshal patch: %w", err))
	}

	query := `UPDATE documents
	          SET data = data || $3::jsonb,
	              updated_at = NOW()
	          WHERE collection = $1 AND id = $2
	          RETURNING id`

	var updated uuid.UUID
	err = r.pool.QueryRow(ctx, query, collection, docID, string(data)).Scan(&updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return remoteErr("update", collection, id, ErrNotFound)
	}
	if err != nil {
		return remoteErr("update", collection, id, fmt.Errorf("failed to update document: %w", err))
	}
	return nil
}

func (r *PostgresGateway) Delete(ctx context.Context, collection, id string) error {
	docID, err := uuid.Parse(id)
	if err != nil {
		return nil
	}

	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`

	if _, err := r.pool.Exec(ctx, query, collection, docID); err != nil {
		return remoteErr("delete", collection, id, fmt.Errorf("failed to delete document: %w", err))
	}
	return nil
}
