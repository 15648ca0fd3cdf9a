package in

import (
	"context"

	"retrolog/internal/modules/analytics/dto"
)

type Usecase interface {
	Dashboard(ctx context.Context, input dto.RangeInput) (dto.DashboardOutput, error)
	Streaks(ctx context.Context, input dto.RangeInput) (dto.StreakOutput, error)
	Calendar(ctx context.Context, input dto.RangeInput) ([]dto.CalendarDayOutput, error)
	Charts(ctx context.Context, input dto.RangeInput) (dto.ChartsOutput, error)
	WorkLogStats(ctx context.Context, input dto.RangeInput) (dto.WorkLogStatsOutput, error)
	Patterns(ctx context.Context, input dto.RangeInput) (dto.PatternsOutput, error)
	Recommendations(ctx context.Context, input dto.RangeInput) ([]dto.RecommendationOutput, error)
	GenerateInsight(ctx context.Context, input dto.InsightInput) (dto.InsightOutput, error)
	ListInsights(ctx context.Context, input dto.ListInsightsInput) ([]dto.InsightOutput, error)
	SetInsightActive(ctx context.Context, input dto.SetInsightActiveInput) (dto.InsightOutput, error)
}
