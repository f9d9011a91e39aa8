// Package store keeps in-memory mirrors of remote collections.
//
// A Store owns the ordered item list of one entity kind together with a
// loading flag and the last failure message. Every mutation is written to the
// gateway first and reconciled into the local list only after the remote call
// succeeds. Consistency with other writers is pull based: Fetch replaces the
// whole list.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/prudhvinik1/estatesync/internal/repositories"
)

// ErrInvalidDocument marks a write whose result would not decode into the
// store's entity type.
var ErrInvalidDocument = errors.New("document does not match entity")

// Entity is implemented by every record kept in a Store.
type Entity interface {
	EntityID() string
}

// State is a consistent snapshot of a Store.
type State[T any] struct {
	Items   []T    `json:"items"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

type settings struct {
	now func() time.Time
}

type Option func(*settings)

// WithClock sets the clock used for createdAt/updatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

type Store[T Entity] struct {
	kind     Kind
	gw       repositories.Gateway
	log      zerolog.Logger
	now      func() time.Time
	decorate func(T) T

	mu      sync.RWMutex
	items   []T
	pending int
	errMsg  string
}

func New[T Entity](kind Kind, gw repositories.Gateway, log zerolog.Logger, opts ...Option) *Store[T] {
	cfg := settings{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store[T]{
		kind:  kind,
		gw:    gw,
		log:   log.With().Str("collection", kind.Collection).Logger(),
		now:   cfg.now,
		items: []T{},
	}
}

// WithDecorator installs fn to be applied to every item entering the list.
// It must be called before the store is shared.
func (s *Store[T]) WithDecorator(fn func(T) T) *Store[T] {
	s.decorate = fn
	return s
}

func (s *Store[T]) Kind() Kind         { return s.kind }
func (s *Store[T]) Collection() string { return s.kind.Collection }

// Fetch replaces the list with the remote collection. On failure the list is
// left as it was and Err reports the load failure.
func (s *Store[T]) Fetch(ctx context.Context) {
	s.begin()
	defer s.end()

	docs, err := s.gw.List(ctx, s.kind.Collection)
	if err != nil {
		s.fail(s.kind.LoadFailed(), "fetch", err)
		return
	}

	items := s.decodeAll(docs)

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	s.log.Debug().Int("count", len(items)).Msg("fetched")
}

// FetchWhere loads the documents whose field equals value and swaps them in
// for the local items matched by owned. It returns the fresh items, or an
// empty slice when the query fails.
func (s *Store[T]) FetchWhere(ctx context.Context, field string, value any, owned func(T) bool) []T {
	s.begin()
	defer s.end()

	docs, err := s.gw.Query(ctx, s.kind.Collection, field, value)
	if err != nil {
		s.fail(s.kind.LoadFailed(), "query", err)
		return []T{}
	}

	fresh := s.decodeAll(docs)

	s.mu.Lock()
	next := make([]T, 0, len(s.items)+len(fresh))
	for _, item := range s.items {
		if !owned(item) {
			next = append(next, item)
		}
	}
	s.items = append(next, fresh...)
	s.mu.Unlock()

	out := make([]T, len(fresh))
	copy(out, fresh)
	return out
}

// Add writes data as a new document and appends it to the list. Server
// timestamps replace whatever data carries. The gateway error is returned
// unchanged.
func (s *Store[T]) Add(ctx context.Context, data T) (string, error) {
	s.begin()
	defer s.end()

	doc, err := s.newDocument(data)
	if err != nil {
		s.fail(s.kind.AddFailed(), "add", err)
		return "", err
	}

	id, err := s.gw.Insert(ctx, s.kind.Collection, doc)
	if err != nil {
		s.fail(s.kind.AddFailed(), "add", err)
		return "", err
	}

	doc[repositories.IDField] = id
	item, err := s.decode(doc)
	if err != nil {
		s.fail(s.kind.AddFailed(), "add", err)
		return id, err
	}

	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
	s.log.Debug().Str("id", id).Msg("added")
	return id, nil
}

// Update writes patch to the document and merges it into the local entry.
// A patch that would leave the entry undecodable is rejected with
// ErrInvalidDocument before anything is written.
//
// When the entry is not held locally the remote write still happens and the
// list is resynchronised with Fetch. A failed resync does not fail the
// update: the write has landed, so callers that need a fresh list must check
// Err afterwards.
func (s *Store[T]) Update(ctx context.Context, id string, patch repositories.Document) error {
	s.begin()
	defer s.end()

	p := writable(patch, s.kind.Transient)
	delete(p, createdAtField)
	p[updatedAtField] = s.now()

	if err := s.checkPatch(id, p); err != nil {
		s.fail(s.kind.UpdateFailed(), "update", err)
		return err
	}

	if err := s.gw.Update(ctx, s.kind.Collection, id, p); err != nil {
		s.fail(s.kind.UpdateFailed(), "update", err)
		return err
	}

	found, err := s.patchLocal(id, p)
	if err != nil || !found {
		s.log.Warn().Err(err).Str("id", id).Bool("found", found).Msg("local copy out of date, resynchronising")
		s.Fetch(ctx)
	}
	return nil
}

// Delete removes the document and drops it from the list.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	s.begin()
	defer s.end()

	if err := s.gw.Delete(ctx, s.kind.Collection, id); err != nil {
		s.fail(s.kind.DeleteFailed(), "delete", err)
		return err
	}

	s.mu.Lock()
	next := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if item.EntityID() != id {
			next = append(next, item)
		}
	}
	s.items = next
	s.mu.Unlock()
	return nil
}

// SeedIfEmpty inserts samples when the remote collection holds no documents
// and then fetches. The emptiness check and the writes are not atomic.
func (s *Store[T]) SeedIfEmpty(ctx context.Context, samples []T) (bool, error) {
	existing, err := s.gw.List(ctx, s.kind.Collection)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	for _, sample := range samples {
		doc, err := s.newDocument(sample)
		if err != nil {
			return false, err
		}
		if _, err := s.gw.Insert(ctx, s.kind.Collection, doc); err != nil {
			return false, err
		}
	}

	s.log.Info().Int("count", len(samples)).Msg("seeded sample data")
	s.Fetch(ctx)
	return true, nil
}

func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Loading reports whether any operation is in flight.
func (s *Store[T]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending > 0
}

// Err returns the message of the last failed operation, or "".
func (s *Store[T]) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

func (s *Store[T]) Snapshot() State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]T, len(s.items))
	copy(items, s.items)
	return State[T]{Items: items, Loading: s.pending > 0, Error: s.errMsg}
}

func (s *Store[T]) begin() {
	s.mu.Lock()
	s.pending++
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *Store[T]) end() {
	s.mu.Lock()
	s.pending--
	s.mu.Unlock()
}

func (s *Store[T]) fail(msg, op string, err error) {
	s.log.Error().Err(err).Str("op", op).Msg(msg)
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}

func (s *Store[T]) newDocument(data T) (repositories.Document, error) {
	doc, err := toDocument(data)
	if err != nil {
		return nil, err
	}
	doc = writable(doc, s.kind.Transient)
	now := s.now()
	doc[createdAtField] = now
	doc[updatedAtField] = now
	return doc, nil
}

// checkPatch decodes patch merged over the local entry, or over a zero entry
// when none is held.
func (s *Store[T]) checkPatch(id string, patch repositories.Document) error {
	s.mu.RLock()
	var base T
	if i := s.indexOf(id); i >= 0 {
		base = s.items[i]
	}
	s.mu.RUnlock()

	doc, err := toDocument(base)
	if err != nil {
		return err
	}
	if _, err := fromDocument[T](merge(doc, patch)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}

func (s *Store[T]) patchLocal(id string, patch repositories.Document) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	doc, err := toDocument(s.items[i])
	if err != nil {
		return true, err
	}
	item, err := s.decode(merge(doc, patch))
	if err != nil {
		return true, err
	}
	s.items[i] = item
	return true, nil
}

// indexOf must be called with mu held.
func (s *Store[T]) indexOf(id string) int {
	for i, item := range s.items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}

func (s *Store[T]) decode(doc repositories.Document) (T, error) {
	item, err := fromDocument[T](doc)
	if err != nil {
		return item, err
	}
	if s.decorate != nil {
		item = s.decorate(item)
	}
	return item, nil
}

// decodeAll skips documents that do not decode so one bad record cannot
// empty the mirror.
func (s *Store[T]) decodeAll(docs []repositories.Document) []T {
	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		item, err := s.decode(doc)
		if err != nil {
			s.log.Warn().Err(err).Interface("id", doc[repositories.IDField]).Msg("skipping undecodable document")
			continue
		}
		items = append(items, item)
	}
	return items
}
