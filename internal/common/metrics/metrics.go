// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	StructuringEntitiesDetected = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "structuring_entities_detected",
			Help:    "Entities detected per structuring run, by family",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		},
		[]string{"family"},
	)

	StructuringFallbackRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "structuring_fallback_runs_total",
			Help: "Structuring runs that produced the generic fallback output",
		},
	)
)
