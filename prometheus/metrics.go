package prometheus

import (
	"time"

	"ecommerce-api/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Entity operation metrics
	UserOperationsCounter    prometheus.CounterVec
	ProductOperationsCounter prometheus.CounterVec
	OrderOperationsCounter   prometheus.CounterVec

	// Validation metrics
	ValidationFailuresCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// User metrics
	UserOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_user_operations_total",
			Help: "Total number of user operations",
		},
		[]string{"operation"},
	)

	// Product metrics
	ProductOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_operations_total",
			Help: "Total number of product operations",
		},
		[]string{"operation"},
	)

	// Order metrics
	OrderOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_order_operations_total",
			Help: "Total number of order operations",
		},
		[]string{"operation"},
	)

	// Validation metrics
	ValidationFailuresCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_validation_failures_total",
			Help: "Total number of payload validation failures",
		},
		[]string{"entity"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordUserOperation increments the counter for user operations
func RecordUserOperation(operation string) {
	UserOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordProductOperation increments the counter for product operations
func RecordProductOperation(operation string) {
	ProductOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordOrderOperation increments the counter for order operations
func RecordOrderOperation(operation string) {
	OrderOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordValidationFailure increments the counter for validation failures
func RecordValidationFailure(entity string) {
	ValidationFailuresCounter.WithLabelValues(entity).Inc()
}
