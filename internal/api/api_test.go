package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prudhvinik1/estatesync/internal/models"
	"github.com/prudhvinik1/estatesync/internal/preferences"
	"github.com/prudhvinik1/estatesync/internal/repositories"
	"github.com/prudhvinik1/estatesync/internal/services"
	"github.com/prudhvinik1/estatesync/internal/store"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type downGateway struct{}

func (downGateway) err(op, collection string) error {
	return &repositories.RemoteIOError{Op: op, Collection: collection, Err: errors.New("connection refused")}
}

func (g downGateway) List(_ context.Context, c string) ([]repositories.Document, error) {
	return nil, g.err("list", c)
}

func (g downGateway) Query(_ context.Context, c, _ string, _ any) ([]repositories.Document, error) {
	return nil, g.err("query", c)
}

func (g downGateway) Insert(_ context.Context, c string, _ repositories.Document) (string, error) {
	return "", g.err("insert", c)
}

func (g downGateway) Update(_ context.Context, c, _ string, _ repositories.Document) error {
	return g.err("update", c)
}

func (g downGateway) Delete(_ context.Context, c, _ string) error {
	return g.err("delete", c)
}

func newTestServer(t *testing.T, gw repositories.Gateway) http.Handler {
	t.Helper()
	stores := services.NewStores(gw, zerolog.Nop(), services.Config{Now: func() time.Time { return fixedNow }})
	theme := preferences.NewThemeStore(context.Background(), repositories.NewMemoryPreferenceRepository(), zerolog.Nop())
	return NewServer(stores, theme, zerolog.Nop()).Router()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(t, repositories.NewMemoryGateway()), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestMetrics(t *testing.T) {
	w := do(t, newTestServer(t, repositories.NewMemoryGateway()), http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBuildings_CRUD(t *testing.T) {
	h := newTestServer(t, repositories.NewMemoryGateway())

	w := do(t, h, http.MethodPost, "/api/buildings", map[string]any{"name": "Building A", "totalUnits": 10})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.Building](t, w)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Building A", created.Name)
	assert.Equal(t, fixedNow, created.CreatedAt)

	w = do(t, h, http.MethodGet, "/api/buildings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	state := decode[store.State[models.Building]](t, w)
	require.Len(t, state.Items, 1)
	assert.False(t, state.Loading)

	w = do(t, h, http.MethodPatch, "/api/buildings/"+created.ID, map[string]any{"totalUnits": 12})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.Building](t, w)
	assert.Equal(t, 12, updated.TotalUnits)
	assert.Equal(t, "Building A", updated.Name)

	w = do(t, h, http.MethodGet, "/api/buildings/options", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []models.BuildingOption{{Label: "Building A", Value: created.ID}}, decode[[]models.BuildingOption](t, w))

	w = do(t, h, http.MethodDelete, "/api/buildings/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/api/buildings/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreate_InvalidJSON(t *testing.T) {
	w := do(t, newTestServer(t, repositories.NewMemoryGateway()), http.MethodPost, "/api/properties", "{")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdate_MissingDocument(t *testing.T) {
	w := do(t, newTestServer(t, repositories.NewMemoryGateway()), http.MethodPatch, "/api/tenants/nope", map[string]any{"name": "x"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Failed to update tenant", decode[ErrorResponse](t, w).Message)
}

func TestUpdate_WrongTypeIsRejected(t *testing.T) {
	h := newTestServer(t, repositories.NewMemoryGateway())
	w := do(t, h, http.MethodPost, "/api/buildings", map[string]any{"name": "Building A", "totalUnits": 10})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.Building](t, w)

	w = do(t, h, http.MethodPatch, "/api/buildings/"+created.ID, map[string]any{"totalUnits": "ten"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Failed to update building", decode[ErrorResponse](t, w).Message)

	w = do(t, h, http.MethodPost, "/api/buildings/refresh", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(t, h, http.MethodGet, "/api/buildings/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, decode[models.Building](t, w).TotalUnits)
}

func TestGatewayDown(t *testing.T) {
	h := newTestServer(t, downGateway{})

	w := do(t, h, http.MethodPost, "/api/contracts/refresh", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Failed to load contracts", decode[ErrorResponse](t, w).Message)

	w = do(t, h, http.MethodPost, "/api/contracts", map[string]any{"title": "Lease"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Failed to add contract", decode[ErrorResponse](t, w).Message)

	w = do(t, h, http.MethodGet, "/api/contracts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	state := decode[store.State[models.Contract]](t, w)
	assert.Empty(t, state.Items)
	assert.Equal(t, "Failed to load contracts", state.Error)
}

func TestRentPayments_ValidationAndTenantFilter(t *testing.T) {
	h := newTestServer(t, repositories.NewMemoryGateway())

	w := do(t, h, http.MethodPost, "/api/rent-payments", map[string]any{"tenantId": "t1", "paymentMonth": "March"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, p := range []map[string]any{
		{"tenantId": "t1", "paymentMonth": "2024-01", "amount": "500"},
		{"tenantId": "t1", "paymentMonth": "2024-02", "amount": "500"},
		{"tenantId": "t2", "paymentMonth": "2024-02", "amount": "700"},
	} {
		w = do(t, h, http.MethodPost, "/api/rent-payments", p)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = do(t, h, http.MethodGet, "/api/rent-payments?tenantId=t1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	payments := decode[[]models.RentPayment](t, w)
	require.Len(t, payments, 2)
	for _, p := range payments {
		assert.Equal(t, "t1", p.TenantID)
		assert.Equal(t, services.UnknownTenant, p.TenantName)
	}

	w = do(t, h, http.MethodGet, "/api/rent-payments/summary?year=2023", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		Total         string            `json:"total"`
		TotalByTenant map[string]string `json:"totalByTenant"`
		Months        []string          `json:"months"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, "1700", summary.Total)
	assert.Equal(t, "1000", summary.TotalByTenant["t1"])
	require.Len(t, summary.Months, 12)
	assert.Equal(t, "2023-01", summary.Months[0])

	w = do(t, h, http.MethodGet, "/api/rent-payments/summary?year=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTasks_Toggle(t *testing.T) {
	h := newTestServer(t, repositories.NewMemoryGateway())

	w := do(t, h, http.MethodPost, "/api/tasks", map[string]any{"title": "Schedule inspection", "due": "2024-03-25"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	task := decode[models.Task](t, w)

	w = do(t, h, http.MethodPost, "/api/tasks/"+task.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[models.Task](t, w).Done)

	w = do(t, h, http.MethodPost, "/api/tasks", map[string]any{"title": "Bad date", "due": "25/03/2024"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSeedAndDashboard(t *testing.T) {
	h := newTestServer(t, repositories.NewMemoryGateway())

	w := do(t, h, http.MethodPost, "/api/seed", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	counts := decode[map[string]int](t, w)
	assert.Equal(t, 6, counts["properties"])
	assert.Equal(t, 6, counts["rentPayments"])

	w = do(t, h, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[models.DashboardStats](t, w)
	assert.Equal(t, 6, stats.TotalProperties)
	assert.Equal(t, 2, stats.ActiveContracts)
	assert.Equal(t, "8000", stats.TotalRentalIncome.String())
	assert.Equal(t, 1, stats.PendingRenewals)

	w = do(t, h, http.MethodGet, "/api/contracts/expiring", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Contract](t, w), 1)
}

func TestTheme(t *testing.T) {
	h := newTestServer(t, repositories.NewMemoryGateway())

	w := do(t, h, http.MethodGet, "/api/preferences/theme", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"darkMode":false}`, w.Body.String())

	w = do(t, h, http.MethodPost, "/api/preferences/theme/toggle", nil)
	assert.JSONEq(t, `{"darkMode":true}`, w.Body.String())

	w = do(t, h, http.MethodPut, "/api/preferences/theme", map[string]any{"darkMode": false})
	assert.JSONEq(t, `{"darkMode":false}`, w.Body.String())
}
