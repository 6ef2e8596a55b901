package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	PipelineOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_operations_total",
			Help: "Total number of pipeline operations by result",
		},
		[]string{"operation", "result"},
	)

	PipelineOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_operation_duration_seconds",
			Help:    "Duration of pipeline operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	OrphansResolved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_orphans_resolved_total",
			Help: "Total number of applications placed into the first stage because their stage was not found",
		},
	)

	CandidatesHired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_candidates_hired_total",
			Help: "Total number of applications moved to the Hired stage",
		},
	)
)

// Observe учитывает результат и длительность операции.
// Использование: defer func() { metrics.Observe("sync", start, err) }()
func Observe(operation string, start time.Time, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	PipelineOperations.WithLabelValues(operation, result).Inc()
	PipelineOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
