package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	StoreCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_store_call_duration_seconds",
			Help:    "Latency of data context calls against the store",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "status"},
	)

	StoreWriteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_store_write_failures_total",
			Help: "Writes to the store that returned an error",
		},
		[]string{"operation"},
	)

	SnapshotRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_snapshot_refresh_total",
			Help: "Snapshot reloads by collection and outcome",
		},
		[]string{"collection", "status"},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordStoreCall(operation string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	StoreCallDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

func IncrementStoreWriteFailure(operation string) {
	StoreWriteFailures.WithLabelValues(operation).Inc()
}

func IncrementSnapshotRefresh(collection string, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	SnapshotRefreshes.WithLabelValues(collection, status).Inc()
}
