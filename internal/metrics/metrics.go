package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "detailing_dashboard"

// Metrics groups the collectors exposed on /metrics. A nil *Metrics is valid
// and records nothing, which keeps tests free of registry setup.
type Metrics struct {
	gatherer prometheus.Gatherer

	pipelineRuns     prometheus.Counter
	pipelineDuration prometheus.Histogram
	pipelineRecords  prometheus.Histogram
	datasetRecords   prometheus.Gauge
	sourceDrift      prometheus.Gauge
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// NewMetrics registers every collector on reg. Passing a fresh
// prometheus.NewRegistry() isolates tests from the default registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		pipelineRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Number of filter-aggregate pipeline executions.",
		}),
		pipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Time spent computing one dashboard view.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5},
		}),
		pipelineRecords: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_filtered_records",
			Help:      "Records kept by the filter stage.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		datasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_records",
			Help:      "Transactions held by the loaded dataset.",
		}),
		sourceDrift: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_drift",
			Help:      "1 when the source changed since the dataset was loaded.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(
		m.pipelineRuns,
		m.pipelineDuration,
		m.pipelineRecords,
		m.datasetRecords,
		m.sourceDrift,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

func (m *Metrics) ObservePipeline(elapsed time.Duration, records int) {
	if m == nil {
		return
	}
	m.pipelineRuns.Inc()
	m.pipelineDuration.Observe(elapsed.Seconds())
	m.pipelineRecords.Observe(float64(records))
}

func (m *Metrics) SetDatasetRecords(n int) {
	if m == nil {
		return
	}
	m.datasetRecords.Set(float64(n))
}

func (m *Metrics) SetSourceDrift(drifted bool) {
	if m == nil {
		return
	}
	if drifted {
		m.sourceDrift.Set(1)
		return
	}
	m.sourceDrift.Set(0)
}

// Instrument wraps next so every response is counted under route.
func (m *Metrics) Instrument(route string, next http.Handler) http.Handler {
	if m == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		m.httpRequests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
