package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prudhvinik1/estatesync/internal/models"
	"github.com/prudhvinik1/estatesync/internal/repositories"
	"github.com/prudhvinik1/estatesync/internal/views"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestStores(gw repositories.Gateway) *Stores {
	return NewStores(gw, zerolog.Nop(), Config{Now: func() time.Time { return fixedNow }})
}

// countingGateway counts List calls per collection and can hold them until
// release is closed.
type countingGateway struct {
	repositories.Gateway
	lists   sync.Map
	release chan struct{}
}

func (g *countingGateway) List(ctx context.Context, collection string) ([]repositories.Document, error) {
	n, _ := g.lists.LoadOrStore(collection, new(atomic.Int32))
	n.(*atomic.Int32).Add(1)
	if g.release != nil {
		<-g.release
	}
	return g.Gateway.List(ctx, collection)
}

func (g *countingGateway) listCalls(collection string) int {
	n, ok := g.lists.Load(collection)
	if !ok {
		return 0
	}
	return int(n.(*atomic.Int32).Load())
}

func TestLoader_EnsureLoaded_SharesInFlightFetch(t *testing.T) {
	ctx := context.Background()
	mem := repositories.NewMemoryGateway()
	_, err := mem.Insert(ctx, "tenants", repositories.Document{"name": "John Doe"})
	require.NoError(t, err)

	gw := &countingGateway{Gateway: mem, release: make(chan struct{})}
	stores := newTestStores(gw)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stores.EnsureLoaded(ctx, stores.Tenants)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(gw.release)
	wg.Wait()

	assert.Equal(t, 1, gw.listCalls("tenants"))
	assert.Equal(t, 1, stores.Tenants.Len())
}

func TestLoader_EnsureLoaded_SkipsLoadedStore(t *testing.T) {
	ctx := context.Background()
	gw := &countingGateway{Gateway: repositories.NewMemoryGateway()}
	stores := newTestStores(gw)

	_, err := stores.Tenants.Add(ctx, models.Tenant{Name: "John Doe"})
	require.NoError(t, err)

	stores.EnsureLoaded(ctx, stores.Tenants)

	assert.Equal(t, 0, gw.listCalls("tenants"))
}

func TestRentPayments_Add_EnrichesAndStripsDisplayFields(t *testing.T) {
	ctx := context.Background()
	gw := repositories.NewMemoryGateway()
	stores := newTestStores(gw)

	tenantID, err := stores.Tenants.Add(ctx, models.Tenant{Name: "John Doe", PropertyType: models.PropertyTypeApartment})
	require.NoError(t, err)

	id, err := stores.RentPayments.Add(ctx, models.RentPayment{
		TenantID:     tenantID,
		Amount:       decimal.NewFromInt(1200),
		PaymentMonth: "2024-03",
		TenantName:   "stale",
		PropertyName: "stale",
	})
	require.NoError(t, err)

	payment, ok := stores.RentPayments.Get(id)
	require.True(t, ok)
	assert.Equal(t, "John Doe", payment.TenantName)
	assert.Equal(t, "Apartment", payment.PropertyName)

	docs, err := gw.List(ctx, "rentPayments")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.NotContains(t, docs[0], "tenantName")
	assert.NotContains(t, docs[0], "propertyName")
}

func TestRentPayments_UnknownTenantFallbacks(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores(repositories.NewMemoryGateway())

	id, err := stores.RentPayments.Add(ctx, models.RentPayment{TenantID: "missing", PaymentMonth: "2024-03"})
	require.NoError(t, err)

	payment, ok := stores.RentPayments.Get(id)
	require.True(t, ok)
	assert.Equal(t, UnknownTenant, payment.TenantName)
	assert.Equal(t, UnknownPropertyType, payment.PropertyName)
}

func TestRentPayments_Fetch_LoadsDependenciesFirst(t *testing.T) {
	ctx := context.Background()
	gw := repositories.NewMemoryGateway()
	tenantID, err := gw.Insert(ctx, "tenants", repositories.Document{"name": "Sarah Johnson", "propertyType": "Shop"})
	require.NoError(t, err)
	_, err = gw.Insert(ctx, "properties", repositories.Document{"name": "Rental Shop", "status": "rented", "price": "60000"})
	require.NoError(t, err)
	_, err = gw.Insert(ctx, "rentPayments", repositories.Document{"tenantId": tenantID, "amount": "2200", "paymentMonth": "2024-02"})
	require.NoError(t, err)

	stores := newTestStores(gw)
	stores.RentPayments.Fetch(ctx)

	assert.Equal(t, 1, stores.Tenants.Len())
	assert.Equal(t, 1, stores.Properties.Len())
	items := stores.RentPayments.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Sarah Johnson", items[0].TenantName)
	assert.Equal(t, "Shop", items[0].PropertyName)
}

func TestRentPayments_FetchByTenant_ReplacesOnlyThatTenant(t *testing.T) {
	ctx := context.Background()
	gw := repositories.NewMemoryGateway()
	stores := newTestStores(gw)

	_, err := stores.RentPayments.Add(ctx, models.RentPayment{TenantID: "t1", PaymentMonth: "2024-01"})
	require.NoError(t, err)
	_, err = stores.RentPayments.Add(ctx, models.RentPayment{TenantID: "t2", PaymentMonth: "2024-01"})
	require.NoError(t, err)
	// written by another client
	_, err = gw.Insert(ctx, "rentPayments", repositories.Document{"tenantId": "t1", "paymentMonth": "2024-02"})
	require.NoError(t, err)

	fresh := stores.RentPayments.FetchByTenant(ctx, "t1")

	require.Len(t, fresh, 2)
	for _, p := range fresh {
		assert.Equal(t, "t1", p.TenantID)
	}
	items := stores.RentPayments.Items()
	assert.Len(t, items, 3)
	var t2 int
	for _, p := range items {
		if p.TenantID == "t2" {
			t2++
		}
	}
	assert.Equal(t, 1, t2)
}

func TestTasks_Toggle(t *testing.T) {
	ctx := context.Background()
	gw := repositories.NewMemoryGateway()
	stores := newTestStores(gw)

	id, err := stores.Tasks.Add(ctx, models.Task{Title: "Schedule property inspection", Due: "2024-03-25"})
	require.NoError(t, err)

	require.NoError(t, stores.Tasks.Toggle(ctx, id))

	task, ok := stores.Tasks.Get(id)
	require.True(t, ok)
	assert.True(t, task.Done)

	docs, err := gw.List(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, true, docs[0]["done"])

	require.NoError(t, stores.Tasks.Toggle(ctx, id))
	task, _ = stores.Tasks.Get(id)
	assert.False(t, task.Done)
}

func TestTasks_Toggle_UnknownIDIsNoop(t *testing.T) {
	stores := newTestStores(repositories.NewMemoryGateway())

	assert.NoError(t, stores.Tasks.Toggle(context.Background(), "missing"))
	assert.Empty(t, stores.Tasks.Err())
}

func TestSeedAll_PopulatesEveryCollectionOnce(t *testing.T) {
	ctx := context.Background()
	gw := repositories.NewMemoryGateway()
	stores := newTestStores(gw)

	require.NoError(t, stores.SeedAll(ctx))

	want := map[string]int{
		"buildings":    3,
		"properties":   6,
		"tenants":      2,
		"contracts":    3,
		"tasks":        4,
		"activities":   4,
		"rentPayments": 6,
	}
	for collection, n := range want {
		docs, err := gw.List(ctx, collection)
		require.NoError(t, err)
		assert.Len(t, docs, n, collection)
	}

	// a second run finds every collection populated
	again := newTestStores(gw)
	require.NoError(t, again.SeedAll(ctx))
	for collection, n := range want {
		docs, err := gw.List(ctx, collection)
		require.NoError(t, err)
		assert.Len(t, docs, n, collection)
	}
}

func TestSeedRentPayments_LinksLeasesToTenants(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores(repositories.NewMemoryGateway())

	seeded, err := stores.SeedRentPayments(ctx)
	require.NoError(t, err)
	require.True(t, seeded)

	payments := stores.RentPayments.Items()
	require.Len(t, payments, 6)

	months := map[string]int{}
	names := map[string]bool{}
	for _, p := range payments {
		months[p.PaymentMonth]++
		names[p.TenantName] = true
		assert.NotEmpty(t, p.TenantID)
		assert.Regexp(t, `^REC-\d{4}$`, p.ReceiptNumber)
	}
	assert.Equal(t, map[string]int{"2024-03": 2, "2024-02": 2, "2024-01": 2}, months)
	assert.Equal(t, map[string]bool{"John Doe": true, "Sarah Johnson": true}, names)
}

func TestSeedRentPayments_SkipsSaleContracts(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores(repositories.NewMemoryGateway())

	_, err := stores.SeedRentPayments(ctx)
	require.NoError(t, err)

	var saleID string
	for _, c := range stores.Contracts.Items() {
		if c.ContractType == models.ContractTypeSale {
			saleID = c.ID
		}
	}
	require.NotEmpty(t, saleID)
	for _, p := range stores.RentPayments.Items() {
		assert.NotEqual(t, saleID, p.ContractID)
	}
	assert.True(t, decimal.NewFromInt(12000).Equal(views.TotalPayments(stores.RentPayments.Items())))
}

func TestSeedRentPayments_StoresAmountsAsNumbers(t *testing.T) {
	ctx := context.Background()
	gw := repositories.NewMemoryGateway()
	_, err := newTestStores(gw).SeedRentPayments(ctx)
	require.NoError(t, err)

	docs, err := gw.List(ctx, "rentPayments")
	require.NoError(t, err)
	require.NotEmpty(t, docs)
	for _, doc := range docs {
		assert.IsType(t, float64(0), doc["amount"])
	}

	contracts, err := gw.List(ctx, "contracts")
	require.NoError(t, err)
	for _, doc := range contracts {
		assert.IsType(t, float64(0), doc["amount"])
		assert.IsType(t, float64(0), doc["depositAmount"])
	}
}

func TestDashboard_CountsRenewalsFromContracts(t *testing.T) {
	ctx := context.Background()
	gw := repositories.NewMemoryGateway()
	require.NoError(t, newTestStores(gw).SeedAll(ctx))

	stores := newTestStores(gw)
	stats := stores.Dashboard(ctx)

	assert.Equal(t, 6, stats.TotalProperties)
	assert.Equal(t, 2, stats.ActiveContracts)
	assert.True(t, decimal.NewFromInt(8000).Equal(stats.TotalRentalIncome), stats.TotalRentalIncome.String())
	assert.True(t, decimal.NewFromInt(7200).Equal(stats.LastMonthIncome), stats.LastMonthIncome.String())
	assert.Equal(t, 6, stats.NewProperties)
	assert.Equal(t, 1, stats.PendingRenewals)

	expiring := stores.ExpiringContracts(ctx)
	require.Len(t, expiring, 1)
	assert.Equal(t, "Residential Lease Contract", expiring[0].Title)
}
