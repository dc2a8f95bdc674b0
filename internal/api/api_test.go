package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Shivarajkushals/Dashboard/internal/api/middleware"
	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/Shivarajkushals/Dashboard/internal/metrics"
	"github.com/Shivarajkushals/Dashboard/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	lastFilter domain.FilterSet
	err        error
}

func (r *fakeRepo) StoreDailySales(ctx context.Context, f domain.FilterSet) ([]domain.DailySales, error) {
	r.lastFilter = f
	return []domain.DailySales{
		{Store: "Store 01", BillDate: f.FromDate, Sales: 1250, Qty: 10, Bills: 4},
		{Store: "Store 01", BillDate: f.LastYear().FromDate, Sales: 1000},
	}, r.err
}

func (r *fakeRepo) ShopTypeDailySales(ctx context.Context, f domain.FilterSet) ([]domain.DailySales, error) {
	return nil, r.err
}

func (r *fakeRepo) MonthlyStoreSales(ctx context.Context, f domain.FilterSet) ([]domain.MonthCell, error) {
	return []domain.MonthCell{{Store: "Store 01", Month: "2025-03", Sales: 5, Qty: 1}}, r.err
}

func (r *fakeRepo) ListStores(ctx context.Context) ([]domain.StoreOption, error) {
	return []domain.StoreOption{{Store: "Store 01"}}, r.err
}

func (r *fakeRepo) ListShopTypes(ctx context.Context) ([]domain.ShopTypeOption, error) {
	return nil, r.err
}

func (r *fakeRepo) ListTranTypes(ctx context.Context) ([]domain.TranTypeOption, error) {
	return nil, r.err
}

func newTestRouter(t *testing.T, repo *fakeRepo) (*gin.Engine, *prometheus.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)
	svc := service.NewSalesService(repo, nil, rec)
	return NewRouter(&Services{SalesService: svc}, []string{"*"}, Observability{Recorder: rec, Gatherer: reg}), reg
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestStoreSummary(t *testing.T) {
	repo := &fakeRepo{}
	router, _ := newTestRouter(t, repo)

	w := get(router, "/api/store-summary/?from_date=2025-03-01&to_date=2025-03-31&store=Store+01")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	var rows []domain.SummaryRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Store 01", rows[0].Store)
	assert.Equal(t, 25.0, rows[0].GrowthPercent)
	assert.Equal(t, 125.0, rows[0].AvgSellingPrice)
	assert.Equal(t, 2.5, rows[0].UnitsPerTransaction)

	assert.Equal(t, "Store 01", repo.lastFilter.Store)
	assert.Equal(t, domain.NewDate(2025, 3, 31), repo.lastFilter.ToDate)
}

func TestMissingDatesAreRejected(t *testing.T) {
	router, _ := newTestRouter(t, &fakeRepo{})

	for _, target := range []string{
		"/api/store-summary/",
		"/api/shop-type-summary/?from_date=2025-03-01",
		"/api/month-on-month/?to_date=2025-03-01",
	} {
		w := get(router, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.JSONEq(t, `{"error":"from_date and to_date are required"}`, w.Body.String(), target)
	}
}

func TestMalformedQueryIsRejected(t *testing.T) {
	router, _ := newTestRouter(t, &fakeRepo{})

	w := get(router, "/api/store-summary/?from_date=01-03-2025&to_date=2025-03-31")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "from_date")

	w = get(router, "/api/store-summary/?from_date=2025-04-01&to_date=2025-03-31")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmptySummaryIsAnArray(t *testing.T) {
	router, _ := newTestRouter(t, &fakeRepo{})

	w := get(router, "/api/shop-type-summary/?from_date=2025-03-01&to_date=2025-03-31")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = get(router, "/api/tran_type-list/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestMonthOnMonthAndLists(t *testing.T) {
	router, _ := newTestRouter(t, &fakeRepo{})

	w := get(router, "/api/month-on-month/?from_date=2025-03-01&to_date=2025-03-31")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"months":["2025-03"],"stores":[{"store":"Store 01","data":[{"sales":5,"qty":1}]}]}`, w.Body.String())

	w = get(router, "/api/store-list/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"store":"Store 01"}]`, w.Body.String())
}

func TestRepositoryFailureIs500(t *testing.T) {
	router, _ := newTestRouter(t, &fakeRepo{err: errors.New("connection refused")})

	w := get(router, "/api/store-list/")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed to load store list", body["error"])
	assert.Equal(t, "connection refused", body["details"])
}

func TestHealthAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t, &fakeRepo{})

	w := get(router, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	get(router, "/api/store-list/")
	w = get(router, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `sales_api_requests_total{route="/api/store-list/",status="2xx"} 1`)
}

func TestRequestIDIsPropagated(t *testing.T) {
	router, _ := newTestRouter(t, &fakeRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	origins, all := normalizeAllowedOrigins([]string{"http://a.test, http://b.test", " "})
	assert.False(t, all)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, origins)

	_, all = normalizeAllowedOrigins([]string{"*"})
	assert.True(t, all)
}
