package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "readad_store_operations_total",
		Help: "Annotation store operations by operation and result",
	}, []string{"operation", "result"})

	summaryJobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "readad_summary_jobs_total",
		Help: "Summary jobs by stage and result",
	}, []string{"stage", "result"})

	summaryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "readad_summary_duration_seconds",
		Help:    "Time spent producing one summary",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	})

	workspaceSavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "readad_workspace_persist_total",
		Help: "Workspace save and load operations by result",
	}, []string{"operation", "result"})
)
