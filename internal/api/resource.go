package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prudhvinik1/estatesync/internal/repositories"
	"github.com/prudhvinik1/estatesync/internal/services"
	"github.com/prudhvinik1/estatesync/internal/store"
)

// collection is the part of an entity store served over HTTP.
type collection[T store.Entity] interface {
	services.Fetcher
	Kind() store.Kind
	Snapshot() store.State[T]
	Get(id string) (T, bool)
	Add(ctx context.Context, item T) (string, error)
	Update(ctx context.Context, id string, patch repositories.Document) error
	Delete(ctx context.Context, id string) error
}

// resource serves the CRUD routes of one collection.
type resource[T store.Entity] struct {
	coll     collection[T]
	ensure   func(context.Context, services.Fetcher)
	validate func(T) error
	log      zerolog.Logger
}

func newResource[T store.Entity](coll collection[T], stores *services.Stores, log zerolog.Logger) *resource[T] {
	return &resource[T]{
		coll:   coll,
		ensure: stores.EnsureLoaded,
		log:    log.With().Str("collection", coll.Collection()).Logger(),
	}
}

// mount registers the collection routes on r. A non-nil list replaces the
// default listing handler.
func (res *resource[T]) mount(r chi.Router, list http.HandlerFunc) {
	if list == nil {
		list = res.list
	}
	r.Get("/", list)
	r.Post("/", res.create)
	r.Post("/refresh", res.refresh)
	r.Get("/{id}", res.get)
	r.Patch("/{id}", res.update)
	r.Delete("/{id}", res.delete)
}

// list GET /api/{kind}
func (res *resource[T]) list(w http.ResponseWriter, r *http.Request) {
	res.ensure(r.Context(), res.coll)
	writeJSON(w, res.log, http.StatusOK, res.coll.Snapshot())
}

// refresh POST /api/{kind}/refresh
func (res *resource[T]) refresh(w http.ResponseWriter, r *http.Request) {
	res.coll.Fetch(r.Context())
	snap := res.coll.Snapshot()
	if snap.Error != "" {
		writeError(w, res.log, http.StatusBadGateway, snap.Error)
		return
	}
	writeJSON(w, res.log, http.StatusOK, snap)
}

// get GET /api/{kind}/{id}
func (res *resource[T]) get(w http.ResponseWriter, r *http.Request) {
	res.ensure(r.Context(), res.coll)
	item, ok := res.coll.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, res.log, http.StatusNotFound, res.coll.Kind().Singular+" not found")
		return
	}
	writeJSON(w, res.log, http.StatusOK, item)
}

// create POST /api/{kind}
func (res *resource[T]) create(w http.ResponseWriter, r *http.Request) {
	var item T
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, res.log, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if res.validate != nil {
		if err := res.validate(item); err != nil {
			writeError(w, res.log, http.StatusBadRequest, err.Error())
			return
		}
	}

	id, err := res.coll.Add(r.Context(), item)
	if err != nil {
		writeStoreError(w, res.log, err, res.coll.Kind().AddFailed())
		return
	}

	created, ok := res.coll.Get(id)
	if !ok {
		writeJSON(w, res.log, http.StatusCreated, map[string]string{"id": id})
		return
	}
	writeJSON(w, res.log, http.StatusCreated, created)
}

// update PATCH /api/{kind}/{id}
func (res *resource[T]) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch repositories.Document
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil || patch == nil {
		writeError(w, res.log, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := res.coll.Update(r.Context(), id, patch); err != nil {
		writeStoreError(w, res.log, err, res.coll.Kind().UpdateFailed())
		return
	}

	item, ok := res.coll.Get(id)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, res.log, http.StatusOK, item)
}

// delete DELETE /api/{kind}/{id}
func (res *resource[T]) delete(w http.ResponseWriter, r *http.Request) {
	if err := res.coll.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, res.log, err, res.coll.Kind().DeleteFailed())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
