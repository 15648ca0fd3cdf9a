package dto

import (
	"time"

	"retrolog/internal/modules/analytics/domain"
)

// RangeInput scopes a request. Zero bounds default to the last 30 days
// ending today; an empty granularity means daily buckets.
type RangeInput struct {
	UserID      string
	From        time.Time
	To          time.Time
	Granularity string
}

type InsightInput struct {
	RangeInput
	Kind            string
	Persist         bool
	SessionID       string
	WithSuggestions bool
}

type ListInsightsInput struct {
	UserID     string
	Type       string
	ActiveOnly bool
	Limit      int
}

type SetInsightActiveInput struct {
	ID     string
	Active bool
}

// The engine's view types already carry their JSON shape.
type (
	DashboardOutput      = domain.Dashboard
	StreakOutput         = domain.StreakReport
	CalendarDayOutput    = domain.CalendarDay
	ChartsOutput         = domain.Charts
	WorkLogStatsOutput   = domain.WorkLogStats
	PatternsOutput       = domain.PatternReport
	RecommendationOutput = domain.Recommendation
	InsightOutput        = domain.Insight
	SeriesPoint          = domain.SeriesPoint
	Bucket               = domain.Bucket
)
