package repositories

import (
	"context"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

type memoryCollection struct {
	order []string
	docs  map[string]Document
}

// MemoryGateway keeps collections in process. Used for local development and tests.
type MemoryGateway struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{collections: make(map[string]*memoryCollection)}
}

func (g *MemoryGateway) List(ctx context.Context, collection string) ([]Document, error) {
	return g.filter(ctx, "list", collection, func(Document) bool { return true })
}

func (g *MemoryGateway) Query(ctx context.Context, collection, field string, value any) ([]Document, error) {
	return g.filter(ctx, "query", collection, func(d Document) bool {
		v, ok := d[field]
		return ok && reflect.DeepEqual(v, value)
	})
}

func (g *MemoryGateway) filter(ctx context.Context, op, collection string, keep func(Document) bool) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, remoteErr(op, collection, "", err)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	c, ok := g.collections[collection]
	if !ok {
		return []Document{}, nil
	}

	docs := make([]Document, 0, len(c.order))
	for _, id := range c.order {
		d := c.docs[id]
		if !keep(d) {
			continue
		}
		out := d.Clone()
		out[IDField] = id
		docs = append(docs, out)
	}
	return docs, nil
}

func (g *MemoryGateway) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", remoteErr("insert", collection, "", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.collections[collection]
	if !ok {
		c = &memoryCollection{docs: make(map[string]Document)}
		g.collections[collection] = c
	}

	id := uuid.NewString()
	c.order = append(c.order, id)
	c.docs[id] = withoutID(doc)
	return id, nil
}

func (g *MemoryGateway) Update(ctx context.Context, collection, id string, patch Document) error {
	if err := ctx.Err(); err != nil {
		return remoteErr("update", collection, id, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.collections[collection]
	if !ok {
		return remoteErr("update", collection, id, ErrNotFound)
	}
	d, ok := c.docs[id]
	if !ok {
		return remoteErr("update", collection, id, ErrNotFound)
	}

	merged := d.Clone()
	for k, v := range withoutID(patch) {
		merged[k] = v
	}
	c.docs[id] = merged
	return nil
}

func (g *MemoryGateway) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return remoteErr("delete", collection, id, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.collections[collection]
	if !ok {
		return nil
	}
	if _, ok := c.docs[id]; !ok {
		return nil
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}
