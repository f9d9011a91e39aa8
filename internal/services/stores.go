// Package services wires the entity stores together. It owns the
// dependencies between stores: rent payments need tenants for display names,
// sample payments need properties, tenants and contracts.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/prudhvinik1/estatesync/internal/models"
	"github.com/prudhvinik1/estatesync/internal/repositories"
	"github.com/prudhvinik1/estatesync/internal/store"
	"github.com/prudhvinik1/estatesync/internal/views"
)

type Config struct {
	// Now defaults to the UTC wall clock.
	Now func() time.Time
	// ExpiringWindow defaults to views.DefaultExpiringWindow.
	ExpiringWindow time.Duration
}

// Stores is the set of entity stores sharing one gateway.
type Stores struct {
	Buildings    *store.Store[models.Building]
	Properties   *store.Store[models.Property]
	Tenants      *store.Store[models.Tenant]
	Contracts    *store.Store[models.Contract]
	Tasks        *TaskStore
	Activities   *store.Store[models.Activity]
	RentPayments *RentPaymentStore

	gw             repositories.Gateway
	loader         *Loader
	log            zerolog.Logger
	now            func() time.Time
	expiringWindow time.Duration
}

func NewStores(gw repositories.Gateway, log zerolog.Logger, cfg Config) *Stores {
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	if cfg.ExpiringWindow <= 0 {
		cfg.ExpiringWindow = views.DefaultExpiringWindow
	}
	clock := store.WithClock(cfg.Now)
	loader := NewLoader(log)

	s := &Stores{
		Buildings:      store.New[models.Building](store.Buildings, gw, log, clock),
		Properties:     store.New[models.Property](store.Properties, gw, log, clock),
		Tenants:        store.New[models.Tenant](store.Tenants, gw, log, clock),
		Contracts:      store.New[models.Contract](store.Contracts, gw, log, clock),
		Tasks:          &TaskStore{Store: store.New[models.Task](store.Tasks, gw, log, clock)},
		Activities:     store.New[models.Activity](store.Activities, gw, log, clock),
		gw:             gw,
		loader:         loader,
		log:            log,
		now:            cfg.Now,
		expiringWindow: cfg.ExpiringWindow,
	}
	s.RentPayments = newRentPaymentStore(gw, log, s.Tenants, s.Properties, loader, clock)
	return s
}

// EnsureLoaded fetches f unless it already holds items.
func (s *Stores) EnsureLoaded(ctx context.Context, f Fetcher) {
	s.loader.EnsureLoaded(ctx, f)
}

// FetchAll refreshes every store in dependency order.
func (s *Stores) FetchAll(ctx context.Context) {
	s.Buildings.Fetch(ctx)
	s.Properties.Fetch(ctx)
	s.Tenants.Fetch(ctx)
	s.Contracts.Fetch(ctx)
	s.Tasks.Fetch(ctx)
	s.Activities.Fetch(ctx)
	s.RentPayments.Fetch(ctx)
}

func (s *Stores) Now() time.Time { return s.now() }
