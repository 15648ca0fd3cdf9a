package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"retrolog/internal/modules/analytics/domain"
	"retrolog/internal/modules/analytics/dto"
	analyticsin "retrolog/internal/modules/analytics/port/in"
	"retrolog/internal/modules/analytics/service"
	"retrolog/internal/platform/clock"
	apperrors "retrolog/internal/platform/errors"
)

// DefaultRangeDays is the window used when a request names no bounds.
const DefaultRangeDays = 30

// Settings are the per-installation values every request inherits.
type Settings struct {
	DefaultUser string
	WeekStart   time.Weekday
	Location    *time.Location
}

type Interactor struct {
	svc      *service.AnalyticsService
	clock    clock.Clock
	settings Settings
}

func NewInteractor(svc *service.AnalyticsService, clk clock.Clock, settings Settings) analyticsin.Usecase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &Interactor{svc: svc, clock: clk, settings: settings}
}

func (i *Interactor) Dashboard(ctx context.Context, input dto.RangeInput) (dto.DashboardOutput, error) {
	ac, err := i.context(input)
	if err != nil {
		return dto.DashboardOutput{}, err
	}
	return i.svc.Dashboard(ctx, ac)
}

func (i *Interactor) Streaks(ctx context.Context, input dto.RangeInput) (dto.StreakOutput, error) {
	ac, err := i.context(input)
	if err != nil {
		return dto.StreakOutput{}, err
	}
	return i.svc.Streaks(ctx, ac)
}

func (i *Interactor) Calendar(ctx context.Context, input dto.RangeInput) ([]dto.CalendarDayOutput, error) {
	ac, err := i.context(input)
	if err != nil {
		return nil, err
	}
	return i.svc.Calendar(ctx, ac)
}

func (i *Interactor) Charts(ctx context.Context, input dto.RangeInput) (dto.ChartsOutput, error) {
	ac, err := i.context(input)
	if err != nil {
		return dto.ChartsOutput{}, err
	}
	g, err := domain.ParseGranularity(input.Granularity)
	if err != nil {
		return dto.ChartsOutput{}, err
	}
	return i.svc.Charts(ctx, ac, g)
}

func (i *Interactor) WorkLogStats(ctx context.Context, input dto.RangeInput) (dto.WorkLogStatsOutput, error) {
	ac, err := i.context(input)
	if err != nil {
		return dto.WorkLogStatsOutput{}, err
	}
	g, err := domain.ParseGranularity(input.Granularity)
	if err != nil {
		return dto.WorkLogStatsOutput{}, err
	}
	return i.svc.WorkLogStats(ctx, ac, g)
}

func (i *Interactor) Patterns(ctx context.Context, input dto.RangeInput) (dto.PatternsOutput, error) {
	ac, err := i.context(input)
	if err != nil {
		return dto.PatternsOutput{}, err
	}
	return i.svc.Patterns(ctx, ac)
}

func (i *Interactor) Recommendations(ctx context.Context, input dto.RangeInput) ([]dto.RecommendationOutput, error) {
	ac, err := i.context(input)
	if err != nil {
		return nil, err
	}
	return i.svc.Recommendations(ctx, ac)
}

func (i *Interactor) GenerateInsight(ctx context.Context, input dto.InsightInput) (dto.InsightOutput, error) {
	kind, err := domain.ParseAnalysisKind(input.Kind)
	if err != nil {
		return dto.InsightOutput{}, err
	}
	ac, err := i.context(input.RangeInput)
	if err != nil {
		return dto.InsightOutput{}, err
	}
	return i.svc.GenerateInsight(ctx, ac, kind, service.InsightOptions{
		Persist:         input.Persist,
		SessionID:       strings.TrimSpace(input.SessionID),
		WithSuggestions: input.WithSuggestions,
	})
}

func (i *Interactor) ListInsights(ctx context.Context, input dto.ListInsightsInput) ([]dto.InsightOutput, error) {
	filter := domain.InsightFilter{
		UserID:     i.user(input.UserID),
		ActiveOnly: input.ActiveOnly,
		Limit:      input.Limit,
	}
	if input.Type != "" {
		insightType, err := parseInsightType(input.Type)
		if err != nil {
			return nil, err
		}
		filter.Type = insightType
	}
	return i.svc.ListInsights(ctx, filter)
}

func (i *Interactor) SetInsightActive(ctx context.Context, input dto.SetInsightActiveInput) (dto.InsightOutput, error) {
	return i.svc.SetInsightActive(ctx, strings.TrimSpace(input.ID), input.Active)
}

// context resolves defaults against the clock. A one-sided range extends the
// default window from the given bound.
func (i *Interactor) context(input dto.RangeInput) (domain.AnalyticsContext, error) {
	now := i.clock.Now()
	today := domain.CivilDay(now, i.settings.Location)
	from, to := input.From, input.To
	switch {
	case from.IsZero() && to.IsZero():
		to = today
		from = today.AddDate(0, 0, -(DefaultRangeDays - 1))
	case from.IsZero():
		from = domain.CivilDay(to, time.UTC).AddDate(0, 0, -(DefaultRangeDays - 1))
	case to.IsZero():
		to = today
		if domain.CivilDay(from, time.UTC).After(to) {
			to = domain.CivilDay(from, time.UTC)
		}
	}
	r, err := domain.NewDateRange(from, to)
	if err != nil {
		return domain.AnalyticsContext{}, err
	}
	return domain.AnalyticsContext{
		UserID:    i.user(input.UserID),
		Range:     r,
		Now:       now,
		WeekStart: i.settings.WeekStart,
		Location:  i.settings.Location,
	}, nil
}

func (i *Interactor) user(userID string) string {
	if trimmed := strings.TrimSpace(userID); trimmed != "" {
		return trimmed
	}
	return i.settings.DefaultUser
}

func parseInsightType(value string) (domain.InsightType, error) {
	t := domain.InsightType(strings.ToLower(strings.TrimSpace(value)))
	switch t {
	case domain.InsightSummary, domain.InsightSentiment, domain.InsightTrend, domain.InsightRecommendation, domain.InsightPattern:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown insight type %q", apperrors.ErrInvalidInput, value)
}
