package prometheus

import (
	"time"

	"mall-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	LoginCounter      prometheus.Counter
	AuthErrorsCounter prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Resource operation metrics
	ShopOperationsCounter     prometheus.CounterVec
	ProductOperationsCounter  prometheus.CounterVec
	FootfallOperationsCounter prometheus.CounterVec
	SalesOperationsCounter    prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	LoginCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_login_attempts_total",
			Help: "Total number of login attempts",
		},
	)

	AuthErrorsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication and authorization errors",
		},
		[]string{"reason"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	ShopOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_shop_operations_total",
			Help: "Total number of shop operations",
		},
		[]string{"operation"},
	)

	ProductOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_operations_total",
			Help: "Total number of product operations",
		},
		[]string{"operation"},
	)

	FootfallOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_footfall_operations_total",
			Help: "Total number of footfall operations",
		},
		[]string{"operation"},
	)

	SalesOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_sales_operations_total",
			Help: "Total number of sales operations",
		},
		[]string{"operation"},
	)

	initialized = true
}

var initialized bool

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if !initialized {
			return
		}
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordLoginAttempt increments the login attempt counter
func RecordLoginAttempt() {
	if !initialized {
		return
	}
	LoginCounter.Inc()
}

// RecordAuthError increments the counter for a specific auth failure reason
func RecordAuthError(reason string) {
	if !initialized {
		return
	}
	AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// RecordShopOperation increments the counter for shop operations
func RecordShopOperation(operation string) {
	if !initialized {
		return
	}
	ShopOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordProductOperation increments the counter for product operations
func RecordProductOperation(operation string) {
	if !initialized {
		return
	}
	ProductOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordFootfallOperation increments the counter for footfall operations
func RecordFootfallOperation(operation string) {
	if !initialized {
		return
	}
	FootfallOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordSalesOperation increments the counter for sales operations
func RecordSalesOperation(operation string) {
	if !initialized {
		return
	}
	SalesOperationsCounter.WithLabelValues(operation).Inc()
}
