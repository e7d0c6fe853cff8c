package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Bulk import record outcomes
const (
	ResultCreated = "created"
	ResultSkipped = "skipped"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "academia_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "academia_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	bulkImportRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "academia_bulk_import_records_total",
		Help: "Records processed by bulk imports by entity and result",
	}, []string{"entity", "result"})

	storeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "academia_store_errors_total",
		Help: "Unexpected document store failures by entity",
	}, []string{"entity"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveBulkImport adds the created and skipped record counts of one bulk import
func ObserveBulkImport(entity string, created, skipped int) {
	bulkImportRecords.WithLabelValues(entity, ResultCreated).Add(float64(created))
	bulkImportRecords.WithLabelValues(entity, ResultSkipped).Add(float64(skipped))
}

// ObserveStoreError increments the store failure counter
func ObserveStoreError(entity string) {
	storeErrors.WithLabelValues(entity).Inc()
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
