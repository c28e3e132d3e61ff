package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API and
// the generation engine.
type MetricsService struct {
	registry             *prometheus.Registry
	handler              http.Handler
	requestDuration      *prometheus.HistogramVec
	requestTotal         *prometheus.CounterVec
	generationRuns       *prometheus.CounterVec
	generationDuration   prometheus.Histogram
	generationEntries    prometheus.Gauge
	generationShortfalls prometheus.Gauge
}

// NewMetricsService registers the collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	generationRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "generation_runs_total",
		Help: "Generation runs grouped by result",
	}, []string{"status"})

	generationDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "generation_run_duration_seconds",
		Help:    "Wall time of generation runs",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	})

	generationEntries := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "generation_last_entries",
		Help: "Entries placed by the most recent generation run",
	})

	generationShortfalls := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "generation_last_shortfalls",
		Help: "Unplaced hour buckets reported by the most recent generation run",
	})

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		requestDuration,
		requestTotal,
		generationRuns,
		generationDuration,
		generationEntries,
		generationShortfalls,
	)

	return &MetricsService{
		registry:             registry,
		handler:              promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:      requestDuration,
		requestTotal:         requestTotal,
		generationRuns:       generationRuns,
		generationDuration:   generationDuration,
		generationEntries:    generationEntries,
		generationShortfalls: generationShortfalls,
	}
}

// Handler exposes the scrape endpoint.
func (m *MetricsService) Handler() http.Handler {
	return m.handler
}

// ObserveHTTPRequest records one handled request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	code := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, code).Inc()
}

// ObserveGenerationRun records the result and wall time of one run.
func (m *MetricsService) ObserveGenerationRun(status string, duration time.Duration) {
	m.generationRuns.WithLabelValues(status).Inc()
	m.generationDuration.Observe(duration.Seconds())
}

// SetGenerationStats publishes the size of the most recent run.
func (m *MetricsService) SetGenerationStats(entries, shortfalls int) {
	m.generationEntries.Set(float64(entries))
	m.generationShortfalls.Set(float64(shortfalls))
}
