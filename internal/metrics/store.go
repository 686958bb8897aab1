package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Document store Prometheus metrics.
var (
	StoreOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cinedex",
			Name:      "store_operation_duration_seconds",
			Help:      "Document store operation duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"op", "collection"},
	)

	StoreErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinedex",
			Name:      "store_errors_total",
			Help:      "Total document store operation errors",
		},
		[]string{"op", "collection"},
	)
)

var storeMetricsRegistered bool

// RegisterStoreMetrics registers document store metrics. Must be called once from main.
func RegisterStoreMetrics() {
	if storeMetricsRegistered {
		return
	}
	prometheus.MustRegister(StoreOperationDuration)
	prometheus.MustRegister(StoreErrorsTotal)
	storeMetricsRegistered = true
}

// ObserveStore records one store operation.
func ObserveStore(op, collection string, start time.Time, err error) {
	StoreOperationDuration.WithLabelValues(op, collection).Observe(time.Since(start).Seconds())
	if err != nil {
		StoreErrorsTotal.WithLabelValues(op, collection).Inc()
	}
}
