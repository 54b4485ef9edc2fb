package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StageCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "design_stage_completed_total",
			Help: "Total number of pipeline stages that produced an artifact",
		},
		[]string{"stage"},
	)

	StageFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "design_stage_failed_total",
			Help: "Total number of pipeline stages that failed, by classified reason",
		},
		[]string{"stage", "reason"},
	)

	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "design_run_duration_seconds",
			Help:    "Wall-clock duration of end-to-end pipeline runs",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
		[]string{"result"},
	)
)
