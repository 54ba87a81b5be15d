// Package metrics exposes the forum's Prometheus collectors.
package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "foro"

var (
	// Registry holds the application collectors plus the Go and process ones.
	Registry = prometheus.NewRegistry()

	graphqlOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "operations_total",
			Help:      "GraphQL operations executed, by operation name and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	graphqlDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "operation_duration_seconds",
			Help:      "Duration of GraphQL operations.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"operation"},
	)

	uploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upload",
			Name:      "files_total",
			Help:      "Files received on /upload, by outcome.",
		},
		[]string{"outcome"},
	)

	uploadBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upload",
			Name:      "bytes_total",
			Help:      "Bytes stored by successful uploads.",
		},
	)

	jobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "runs_total",
			Help:      "Scheduled job runs, by job and outcome.",
		},
		[]string{"job", "outcome"},
	)

	jobDeleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "deleted_rows_total",
			Help:      "Rows removed by scheduled jobs.",
		},
		[]string{"job"},
	)
)

func init() {
	Registry.MustRegister(
		graphqlOperations,
		graphqlDuration,
		uploads,
		uploadBytes,
		jobRuns,
		jobDeleted,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordGraphQL counts one executed operation. failed is true when the
// response carried errors.
func RecordGraphQL(operation string, d time.Duration, failed bool) {
	if operation == "" {
		operation = "anonymous"
	}
	result := "ok"
	if failed {
		result = "error"
	}
	graphqlOperations.WithLabelValues(operation, result).Inc()
	graphqlDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func RecordUpload(size int64, err error) {
	uploads.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		uploadBytes.Add(float64(size))
	}
}

// RecordJob counts a scheduled job run and the rows it removed.
func RecordJob(job string, deleted int64, err error) {
	jobRuns.WithLabelValues(job, outcome(err)).Inc()
	if err == nil && deleted > 0 {
		jobDeleted.WithLabelValues(job).Add(float64(deleted))
	}
}
