package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/detailing-dashboard/internal/api"
	"github.com/vfg2006/detailing-dashboard/internal/api/handler"
	"github.com/vfg2006/detailing-dashboard/internal/config"
	"github.com/vfg2006/detailing-dashboard/internal/domain"
	"github.com/vfg2006/detailing-dashboard/internal/metrics"
	"github.com/vfg2006/detailing-dashboard/internal/usecases/dashboarding"
	"github.com/vfg2006/detailing-dashboard/pkg/log"
	"github.com/vfg2006/detailing-dashboard/pkg/middleware"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	log.SetupTestLogger()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	ds := domain.NewDataset("csv:test.csv", "v1", day, []string{"City", "Date of Service", "Service", "Amount"}, []domain.Transaction{
		{City: "NY", ServiceDate: day, Service: "Polish", Amount: decimal.NewFromInt(100), Fields: []string{"NY", "2024-03-01", "Polish", "100"}},
		{City: "LA", ServiceDate: day.AddDate(0, 0, 1), Service: "Wash", Amount: decimal.NewFromInt(50), Fields: []string{"LA", "2024-03-02", "Wash", "50"}},
	})

	cfg := &config.Config{
		Server:    config.Server{AllowedOrigins: []string{"http://localhost:3000"}},
		Dashboard: config.Dashboard{Title: "Detailing Bulls", PageSize: 10},
	}

	m := metrics.NewMetrics(prometheus.NewRegistry())
	svc := dashboarding.NewDashboardService(ds, m)

	return api.NewHandler(cfg, svc, m, handler.PageConfig{Title: cfg.Dashboard.Title, PageSize: 10}, handler.CronJobServices{})
}

func TestHandler_Routes(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		method string
		path   string
		status int
		body   string
	}{
		{method: http.MethodGet, path: "/healthcheck", status: http.StatusOK},
		{method: http.MethodGet, path: "/", status: http.StatusOK, body: "Detailing Bulls"},
		{method: http.MethodGet, path: "/v1/filters", status: http.StatusOK, body: `"cities":["LA","NY"]`},
		{method: http.MethodGet, path: "/v1/dashboard?city=NY", status: http.StatusOK, body: `"total_revenue":100`},
		{method: http.MethodGet, path: "/v1/transactions?city=LA", status: http.StatusOK, body: `"total_rows":1`},
		{method: http.MethodGet, path: "/v1/charts/service-revenue.svg", status: http.StatusOK, body: "<svg"},
		{method: http.MethodGet, path: "/v1/charts/daily-revenue.svg?city=Nowhere", status: http.StatusOK, body: "No data for this selection"},
		{method: http.MethodGet, path: "/v1/cron/status", status: http.StatusOK},
		{method: http.MethodPost, path: "/v1/cron/source-watch/run", status: http.StatusInternalServerError},
		{method: http.MethodGet, path: "/v1/dashboard?start_date=01-03-2024", status: http.StatusBadRequest, body: "VAL_003"},
		{method: http.MethodGet, path: "/v1/unknown", status: http.StatusNotFound, body: "route not found"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(middleware.CorrelationIDHeader))
			if tt.body != "" {
				assert.Contains(t, rec.Body.String(), tt.body)
			}
		})
	}
}

func TestHandler_MetricsCountRequests(t *testing.T) {
	h := newTestHandler(t)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `detailing_dashboard_http_requests_total{route="/v1/dashboard",status="200"} 1`)
	assert.Contains(t, rec.Body.String(), "detailing_dashboard_pipeline_runs_total 1")
}

func TestHandler_CorsPreflight(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/dashboard", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandler_Gzip(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/filters", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Header().Get("Content-Encoding"), "gzip"))
}
