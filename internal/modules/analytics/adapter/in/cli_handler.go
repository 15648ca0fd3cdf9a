package in

import (
	"context"

	"retrolog/internal/modules/analytics/dto"
	analyticsin "retrolog/internal/modules/analytics/port/in"
)

type CLIHandler struct {
	usecase analyticsin.Usecase
}

func NewCLIHandler(usecase analyticsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// RangeArgs are raw flag values; empty strings fall back to defaults.
type RangeArgs struct {
	UserID      string
	From        string
	To          string
	Granularity string
}

func (a RangeArgs) input() (dto.RangeInput, error) {
	from, err := queryDate(a.From)
	if err != nil {
		return dto.RangeInput{}, err
	}
	to, err := queryDate(a.To)
	if err != nil {
		return dto.RangeInput{}, err
	}
	return dto.RangeInput{UserID: a.UserID, From: from, To: to, Granularity: a.Granularity}, nil
}

func (h CLIHandler) Dashboard(ctx context.Context, args RangeArgs) (dto.DashboardOutput, error) {
	input, err := args.input()
	if err != nil {
		return dto.DashboardOutput{}, err
	}
	return h.usecase.Dashboard(ctx, input)
}

func (h CLIHandler) Streaks(ctx context.Context, args RangeArgs) (dto.StreakOutput, error) {
	input, err := args.input()
	if err != nil {
		return dto.StreakOutput{}, err
	}
	return h.usecase.Streaks(ctx, input)
}

func (h CLIHandler) Calendar(ctx context.Context, args RangeArgs) ([]dto.CalendarDayOutput, error) {
	input, err := args.input()
	if err != nil {
		return nil, err
	}
	return h.usecase.Calendar(ctx, input)
}

func (h CLIHandler) Charts(ctx context.Context, args RangeArgs) (dto.ChartsOutput, error) {
	input, err := args.input()
	if err != nil {
		return dto.ChartsOutput{}, err
	}
	return h.usecase.Charts(ctx, input)
}

func (h CLIHandler) WorkLogStats(ctx context.Context, args RangeArgs) (dto.WorkLogStatsOutput, error) {
	input, err := args.input()
	if err != nil {
		return dto.WorkLogStatsOutput{}, err
	}
	return h.usecase.WorkLogStats(ctx, input)
}

func (h CLIHandler) Patterns(ctx context.Context, args RangeArgs) (dto.PatternsOutput, error) {
	input, err := args.input()
	if err != nil {
		return dto.PatternsOutput{}, err
	}
	return h.usecase.Patterns(ctx, input)
}

func (h CLIHandler) Recommendations(ctx context.Context, args RangeArgs) ([]dto.RecommendationOutput, error) {
	input, err := args.input()
	if err != nil {
		return nil, err
	}
	return h.usecase.Recommendations(ctx, input)
}

func (h CLIHandler) GenerateInsight(ctx context.Context, args RangeArgs, kind string, persist, withSuggestions bool, sessionID string) (dto.InsightOutput, error) {
	input, err := args.input()
	if err != nil {
		return dto.InsightOutput{}, err
	}
	return h.usecase.GenerateInsight(ctx, dto.InsightInput{
		RangeInput:      input,
		Kind:            kind,
		Persist:         persist,
		SessionID:       sessionID,
		WithSuggestions: withSuggestions,
	})
}

func (h CLIHandler) ListInsights(ctx context.Context, userID, insightType string, activeOnly bool, limit int) ([]dto.InsightOutput, error) {
	return h.usecase.ListInsights(ctx, dto.ListInsightsInput{UserID: userID, Type: insightType, ActiveOnly: activeOnly, Limit: limit})
}

func (h CLIHandler) SetInsightActive(ctx context.Context, id string, active bool) (dto.InsightOutput, error) {
	return h.usecase.SetInsightActive(ctx, dto.SetInsightActiveInput{ID: id, Active: active})
}
