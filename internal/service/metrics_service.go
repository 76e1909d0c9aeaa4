package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation on a private registry.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheWrite      prometheus.Observer
	cacheLookups    *prometheus.CounterVec
	cacheEvictions  prometheus.Counter
	attendanceMarks *prometheus.CounterVec
	reportDuration  *prometheus.HistogramVec
}

// NewMetricsService registers the API collectors.
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

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_lookups_total",
		Help: "Cache lookups by result",
	}, []string{"result"})

	cacheEvictions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_invalidated_keys_total",
		Help: "Cached entries removed after writes",
	})

	attendanceMarks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_marks_total",
		Help: "Attendance marks written, by status",
	}, []string{"status"})

	reportDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "attendance_report_duration_seconds",
		Help:    "Time spent computing attendance reports",
		Buckets: prometheus.DefBuckets,
	}, []string{"report"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(
		requestDuration, requestTotal,
		cacheLatency, cacheWrite, cacheLookups, cacheEvictions,
		attendanceMarks, reportDuration,
		goroutines,
		collectors.NewGoCollector(),
	)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheLatency:    cacheLatency,
		cacheWrite:      cacheWrite,
		cacheLookups:    cacheLookups,
		cacheEvictions:  cacheEvictions,
		attendanceMarks: attendanceMarks,
		reportDuration:  reportDuration,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry returns the registry backing the service.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheOperation records a cache hit or miss.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// RecordCacheInvalidation counts keys removed by an invalidation.
func (m *MetricsService) RecordCacheInvalidation(removed int) {
	if m == nil || removed <= 0 {
		return
	}
	m.cacheEvictions.Add(float64(removed))
}

// RecordAttendanceMark counts a written mark.
func (m *MetricsService) RecordAttendanceMark(status string) {
	if m == nil {
		return
	}
	m.attendanceMarks.WithLabelValues(status).Inc()
}

// ObserveReport records how long a report took to compute.
func (m *MetricsService) ObserveReport(report string, duration time.Duration) {
	if m == nil {
		return
	}
	m.reportDuration.WithLabelValues(report).Observe(duration.Seconds())
}
