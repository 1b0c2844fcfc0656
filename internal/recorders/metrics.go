package recorders

import (
	"portfolio-views/internal/shared/metrics"
)

const (
	outcomeRecorded = "recorded"
	outcomeNotFound = "not_found"
	outcomeFailed   = "failed"
)

var (
	// metricViewsRecordedTotal counts view requests per recording mode. In
	// buffered mode "recorded" means the view was handed to the aggregator,
	// not that it was persisted.
	metricViewsRecordedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubRecording,
			Name:      "views_recorded_total",
		},
		[]string{"mode", "outcome"},
	)
)
