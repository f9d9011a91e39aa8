package repositories

import "context"

// IDField is the document key under which gateways report the identifier.
const IDField = "id"

// Document is a schemaless record of a remote collection.
type Document map[string]any

// Clone returns a shallow copy of d.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Gateway is the boundary to the remote document store. Implementations
// report every failure as a *RemoteIOError and never retry.
type Gateway interface {
	// List returns every document of the collection, each carrying IDField.
	List(ctx context.Context, collection string) ([]Document, error)
	// Query returns the documents whose field equals value.
	Query(ctx context.Context, collection, field string, value any) ([]Document, error)
	// Insert stores doc under a newly generated identifier and returns it.
	Insert(ctx context.Context, collection string, doc Document) (string, error)
	// Update shallow-merges patch into the document with the given id.
	Update(ctx context.Context, collection, id string, patch Document) error
	// Delete removes the document with the given id. Missing ids are not an error.
	Delete(ctx context.Context, collection, id string) error
}

type PreferenceRepository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
