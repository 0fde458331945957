// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "study_ingested_total",
			Help: "Total number of records written by kind and action",
		},
		[]string{"kind", "action"},
	)

	AcademicScoreHistogram = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "study_academic_score",
			Help:    "Distribution of computed academic scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	RiskLevelTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "study_risk_level_total",
			Help: "Subject risk evaluations by resulting level",
		},
		[]string{"level"},
	)

	DashboardCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "study_dashboard_cache_total",
			Help: "Dashboard cache lookups by result",
		},
		[]string{"result"},
	)

	DifficultyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "study_difficulty_requests_total",
			Help: "Calls to the difficulty classifier by outcome",
		},
		[]string{"outcome"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
