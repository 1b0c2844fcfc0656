package aggregators

import (
	"portfolio-views/internal/shared/metrics"
)

var (
	// metricFlushTotal counts flush attempts that reached the store, labelled by
	// error code. A failed flush drops its batch, so every non-empty error_code
	// sample stands for views that were lost.
	metricFlushTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "flush_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	// metricFlushedKeys observes the number of distinct usernames per flushed batch.
	metricFlushedKeys = metrics.NewHistogram(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "flushed_keys",
			Buckets:   metrics.ExponentialBuckets(1, 4, 8),
		},
	)

	metricPendingKeys = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "pending_keys",
		},
	)
)
