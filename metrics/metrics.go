// Package metrics provides Prometheus metrics for the portfolio service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomePopulated   = "populated"
	OutcomeEmpty       = "empty"
	OutcomeUnavailable = "unavailable"
	OutcomeCancelled   = "cancelled"
)

var (
	// FeedLoadsTotal counts settled or torn-down feed views by outcome.
	FeedLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "feed_loads_total",
			Help:      "Total number of feed views by outcome",
		},
		[]string{"outcome"},
	)

	// FeedFetchDuration measures the outbound GitHub listing call.
	FeedFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "portfolio",
			Name:      "feed_fetch_duration_seconds",
			Help:      "Duration of GitHub repository listing calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// FeedErrorsTotal counts feed failures by reason code.
	FeedErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "feed_errors_total",
			Help:      "Total number of feed failures by reason",
		},
		[]string{"reason"},
	)

	// FeedItems observes the projected feed length.
	FeedItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "portfolio",
			Name:      "feed_items",
			Help:      "Distribution of projected feed sizes",
			Buckets:   []float64{0, 1, 2, 3, 4, 6, 8, 10},
		},
	)
)
