package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Scan metrics
	ScansTotal    *prometheus.CounterVec
	ScanDuration  prometheus.Histogram
	ScanErrors    prometheus.Counter
	RescansTotal  *prometheus.CounterVec

	// Resolution metrics
	ResolutionsTotal   prometheus.Counter
	ResolutionDuration prometheus.Histogram

	// Report cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Snapshot metrics
	SnapshotOperationsTotal *prometheus.CounterVec

	// Graph metrics
	ModulesTotal prometheus.Gauge
	EdgesTotal   prometheus.Gauge
	CyclesTotal  prometheus.Gauge
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		// HTTP metrics
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modscope_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "modscope_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "modscope_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "path"},
		),

		// Scan metrics
		ScansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modscope_scans_total",
				Help: "Total number of project scans",
			},
			[]string{"status"},
		),
		ScanDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "modscope_scan_duration_seconds",
				Help:    "Project scan duration in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
		),
		ScanErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "modscope_scan_errors_total",
				Help: "Total number of failed project scans",
			},
		),
		RescansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modscope_rescans_total",
				Help: "Total number of triggered rescans",
			},
			[]string{"trigger"},
		),

		// Resolution metrics
		ResolutionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "modscope_resolutions_total",
				Help: "Total number of dependency resolutions",
			},
		),
		ResolutionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "modscope_resolution_duration_seconds",
				Help:    "Dependency resolution duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
		),

		// Report cache metrics
		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modscope_cache_hits_total",
				Help: "Total number of report cache hits",
			},
			[]string{"format"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modscope_cache_misses_total",
				Help: "Total number of report cache misses",
			},
			[]string{"format"},
		),

		// Snapshot metrics
		SnapshotOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modscope_snapshot_operations_total",
				Help: "Total number of snapshot storage operations",
			},
			[]string{"operation", "status"},
		),

		// Graph metrics
		ModulesTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "modscope_modules_total",
				Help: "Number of modules in the current graph",
			},
		),
		EdgesTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "modscope_edges_total",
				Help: "Number of direct dependency edges in the current graph",
			},
		),
		CyclesTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "modscope_cycles_total",
				Help: "Number of cyclic dependency paths in the current resolution",
			},
		),
	}

	// Register all metrics
	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPResponseSize,
		m.ScansTotal,
		m.ScanDuration,
		m.ScanErrors,
		m.RescansTotal,
		m.ResolutionsTotal,
		m.ResolutionDuration,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.SnapshotOperationsTotal,
		m.ModulesTotal,
		m.EdgesTotal,
		m.CyclesTotal,
	)

	return m
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// HTTPMetricsMiddleware instruments HTTP requests with Prometheus metrics
func HTTPMetricsMiddleware(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rw.statusCode)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
			metrics.HTTPResponseSize.WithLabelValues(r.Method, r.URL.Path).Observe(float64(rw.bytesWritten))
		})
	}
}

// MetricsHandler returns the /metrics handler for the registry
func MetricsHandler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
