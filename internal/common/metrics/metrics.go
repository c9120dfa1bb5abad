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

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	ApplicationsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_applications_scored_total",
			Help: "Applications scored, by outcome",
		},
		[]string{"outcome"},
	)

	ApplicationScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ranking_application_score",
			Help:    "Distribution of computed application scores (0-100)",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		},
	)

	ScoringDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ranking_scoring_duration_seconds",
			Help:    "Time spent in engine operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	ScoreIndexFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ranking_score_index_failures_total",
			Help: "Score documents that could not be indexed into Elasticsearch",
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_cache_lookups_total",
			Help: "Read-through cache lookups by entity and result",
		},
		[]string{"entity", "result"},
	)
)
