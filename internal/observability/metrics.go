package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "socialmedia",
		Name:      "operations_total",
		Help:      "Usecase operations by name and outcome.",
	}, []string{"operation", "outcome"})

	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "socialmedia",
		Name:      "operation_duration_seconds",
		Help:      "Usecase operation latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	// OrphanedBlobs counts blobs uploaded for a post whose row was never written.
	OrphanedBlobs = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "socialmedia",
		Name:      "orphaned_blobs_total",
		Help:      "Blobs left behind by a failed post insert.",
	})

	EventPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "socialmedia",
		Name:      "event_publish_failures_total",
		Help:      "Post events that could not be published.",
	}, []string{"type"})
)

func ObserveOperation(operation string, outcome string, started time.Time) {
	operationsTotal.WithLabelValues(operation, outcome).Inc()
	operationDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}
