package portfolios

import (
	"portfolio-views/internal/shared/metrics"
)

var (
	metricPortfolioCreatedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPortfolio,
			Name:      "created_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	// metricBotViewsSkippedTotal counts views answered without recording
	// because the user agent was classified as a bot.
	metricBotViewsSkippedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPortfolio,
			Name:      "bot_views_skipped_total",
		},
		[]string{"bot"},
	)
)
