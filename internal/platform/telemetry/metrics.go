package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalyticsRequests counts analytics operations. Labels: operation, result (ok, error).
	AnalyticsRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "retrolog",
			Subsystem: "analytics",
			Name:      "requests_total",
			Help:      "Total number of analytics computations by operation and result",
		},
		[]string{"operation", "result"},
	)

	AnalyticsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "retrolog",
			Subsystem: "analytics",
			Name:      "duration_seconds",
			Help:      "Duration of analytics computations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	InsightsPersisted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "retrolog",
			Name:      "insights_persisted_total",
			Help:      "Total number of insight records written",
		},
		[]string{"insight_type"},
	)

	// Suggestions counts calls to the external suggestion provider. Labels: result (ok, error, skipped).
	Suggestions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "retrolog",
			Name:      "suggestions_total",
			Help:      "Total number of suggestion provider calls",
		},
		[]string{"result"},
	)
)

// ObserveAnalytics records one finished computation.
func ObserveAnalytics(operation string, started time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	AnalyticsRequests.WithLabelValues(operation, result).Inc()
	AnalyticsDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}
