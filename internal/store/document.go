package store

import (
	"encoding/json"
	"fmt"

	"github.com/prudhvinik1/estatesync/internal/repositories"
)

const (
	createdAtField = "createdAt"
	updatedAtField = "updatedAt"
)

// toDocument converts an entity into its document form using its json tags.
func toDocument[T any](v T) (repositories.Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entity: %w", err)
	}
	doc := repositories.Document{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to encode entity: %w", err)
	}
	return doc, nil
}

func fromDocument[T any](doc repositories.Document) (T, error) {
	var v T
	data, err := json.Marshal(doc)
	if err != nil {
		return v, fmt.Errorf("failed to decode document: %w", err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("failed to decode document: %w", err)
	}
	return v, nil
}

// merge returns base with every key of patch overwritten. Nested values are
// replaced, not merged.
func merge(base, patch repositories.Document) repositories.Document {
	out := base.Clone()
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// writable strips the identifier and the given fields from doc.
func writable(doc repositories.Document, transient []string) repositories.Document {
	out := doc.Clone()
	delete(out, repositories.IDField)
	for _, f := range transient {
		delete(out, f)
	}
	return out
}
