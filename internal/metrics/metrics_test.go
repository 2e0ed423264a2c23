package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/detailing-dashboard/internal/metrics"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.ObservePipeline(time.Millisecond, 3)
		m.SetDatasetRecords(10)
		m.SetSourceDrift(true)
	})

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	assert.NotNil(t, m.Instrument("/", h))
}

func TestMetrics_Instrument(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	h := m.Instrument("/v1/dashboard", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	for i := 0; i < 2; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))
	}

	count, err := testutil.GatherAndCount(reg, "detailing_dashboard_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	m.SetSourceDrift(true)
	m.SetDatasetRecords(42)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `detailing_dashboard_http_requests_total{route="/v1/dashboard",status="400"} 2`)
	assert.Contains(t, rec.Body.String(), "detailing_dashboard_source_drift 1")
	assert.Contains(t, rec.Body.String(), "detailing_dashboard_dataset_records 42")
}
