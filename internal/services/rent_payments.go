package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/prudhvinik1/estatesync/internal/models"
	"github.com/prudhvinik1/estatesync/internal/repositories"
	"github.com/prudhvinik1/estatesync/internal/store"
)

const (
	UnknownTenant       = "Unknown Tenant"
	UnknownPropertyType = "Unknown Property Type"
)

// RentPaymentStore attaches tenant display fields to every payment it holds.
// The tenant store is loaded before payments are read or written so that the
// names resolve.
type RentPaymentStore struct {
	*store.Store[models.RentPayment]

	tenants    *store.Store[models.Tenant]
	properties *store.Store[models.Property]
	loader     *Loader
}

func newRentPaymentStore(
	gw repositories.Gateway,
	log zerolog.Logger,
	tenants *store.Store[models.Tenant],
	properties *store.Store[models.Property],
	loader *Loader,
	opts ...store.Option,
) *RentPaymentStore {
	s := &RentPaymentStore{
		tenants:    tenants,
		properties: properties,
		loader:     loader,
	}
	s.Store = store.New[models.RentPayment](store.RentPayments, gw, log, opts...).WithDecorator(s.enrich)
	return s
}

func (s *RentPaymentStore) Fetch(ctx context.Context) {
	s.loader.EnsureLoaded(ctx, s.properties)
	s.loader.EnsureLoaded(ctx, s.tenants)
	s.Store.Fetch(ctx)
}

// FetchByTenant replaces the tenant's payments with the remote ones and
// returns them. On failure it returns an empty slice and records the error.
func (s *RentPaymentStore) FetchByTenant(ctx context.Context, tenantID string) []models.RentPayment {
	s.loader.EnsureLoaded(ctx, s.tenants)
	return s.FetchWhere(ctx, "tenantId", tenantID, func(p models.RentPayment) bool {
		return p.TenantID == tenantID
	})
}

func (s *RentPaymentStore) Add(ctx context.Context, payment models.RentPayment) (string, error) {
	s.loader.EnsureLoaded(ctx, s.tenants)
	return s.Store.Add(ctx, payment)
}

func (s *RentPaymentStore) enrich(p models.RentPayment) models.RentPayment {
	p.TenantName = UnknownTenant
	p.PropertyName = UnknownPropertyType

	tenant, ok := s.tenants.Get(p.TenantID)
	if !ok {
		return p
	}
	if tenant.Name != "" {
		p.TenantName = tenant.Name
	}
	if tenant.PropertyType != "" {
		p.PropertyName = string(tenant.PropertyType)
	}
	return p
}
