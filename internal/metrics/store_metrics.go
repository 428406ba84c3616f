package metrics

import "github.com/prometheus/client_golang/prometheus"

// Store operation metrics
var (
	StoreOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_operations_total",
		Help:      "Total number of comparison store operations by operation and status",
	}, []string{"operation", "status"})

	StoreOperationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_operation_duration_seconds",
		Help:      "Duration of comparison store operations in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	StoredComparisons = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "recent_comparisons",
		Help:      "Number of comparisons in the recency index",
	})
)

// RecordStoreOperation records a store operation outcome.
func RecordStoreOperation(operation string, err error, durationSeconds float64) {
	status := "success"
	if err != nil {
		status = "error"
	}
	StoreOperationsTotal.WithLabelValues(operation, status).Inc()
	StoreOperationDuration.WithLabelValues(operation).Observe(durationSeconds)
}

// UpdateRecentComparisons sets the recency index size.
func UpdateRecentComparisons(count int) {
	StoredComparisons.Set(float64(count))
}
