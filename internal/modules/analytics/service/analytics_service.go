package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"retrolog/internal/modules/analytics/domain"
	analyticsout "retrolog/internal/modules/analytics/port/out"
	apperrors "retrolog/internal/platform/errors"
	"retrolog/internal/platform/id"
	"retrolog/internal/platform/telemetry"
)

// AnalyticsService runs the engine over snapshots read through its ports.
// Every operation is a pure computation over one read except GenerateInsight,
// which may write a single insight.
type AnalyticsService struct {
	journal     analyticsout.JournalReader
	worklogs    analyticsout.WorkLogReader
	insights    analyticsout.InsightStore
	suggestions analyticsout.SuggestionProvider
	idGen       id.Generator
	logger      *zap.Logger
}

type Dependencies struct {
	Journal     analyticsout.JournalReader
	WorkLogs    analyticsout.WorkLogReader
	Insights    analyticsout.InsightStore
	Suggestions analyticsout.SuggestionProvider
	IDs         id.Generator
	Logger      *zap.Logger
}

func NewAnalyticsService(deps Dependencies) *AnalyticsService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	idGen := deps.IDs
	if idGen == nil {
		idGen = id.UUID{}
	}
	return &AnalyticsService{
		journal:     deps.Journal,
		worklogs:    deps.WorkLogs,
		insights:    deps.Insights,
		suggestions: deps.Suggestions,
		idGen:       idGen,
		logger:      logger.Named("analytics"),
	}
}

type InsightOptions struct {
	Persist         bool
	SessionID       string
	WithSuggestions bool
}

func (s *AnalyticsService) Dashboard(ctx context.Context, ac domain.AnalyticsContext) (out domain.Dashboard, err error) {
	defer s.observe("dashboard", ac, time.Now(), &err)
	ac = normalize(ac)
	if err = ac.Validate(); err != nil {
		return domain.Dashboard{}, err
	}
	history, err := s.load(ctx, ac.UserID, domain.DateRange{})
	if err != nil {
		return domain.Dashboard{}, err
	}
	snap := history.Within(ac.Range, ac.Location)
	charts, err := domain.BuildCharts(ac.Range, domain.TrendGranularity(ac.Range), ac.WeekStart, ac.Location, snap)
	if err != nil {
		return domain.Dashboard{}, err
	}
	summary := domain.Summarize(ac.Range, snap)
	work := domain.SummarizeWork(snap.WorkLogs)
	productivity, source := domain.ProductivityScore(snap, work)
	return domain.Dashboard{
		Period:             summary,
		Streak:             domain.Streaks(domain.ActiveDays(history), ac.Today()),
		Work:               work,
		WorkLogsAvailable:  snap.WorkLogsAvailable,
		Productivity:       productivity,
		ProductivitySource: source,
		Trends:             charts.Trends,
		Recommendations:    domain.Recommend(domain.RecommendationInputFrom(summary, work, productivity), domain.DefaultRules),
	}, nil
}

// Streaks walks the full history; only the current run is capped by the lookback.
func (s *AnalyticsService) Streaks(ctx context.Context, ac domain.AnalyticsContext) (out domain.StreakReport, err error) {
	defer s.observe("streaks", ac, time.Now(), &err)
	ac = normalize(ac)
	if err = validateUser(ac); err != nil {
		return domain.StreakReport{}, err
	}
	history, err := s.load(ctx, ac.UserID, domain.DateRange{})
	if err != nil {
		return domain.StreakReport{}, err
	}
	return domain.Streaks(domain.ActiveDays(history), ac.Today()), nil
}

func (s *AnalyticsService) Calendar(ctx context.Context, ac domain.AnalyticsContext) (out []domain.CalendarDay, err error) {
	defer s.observe("calendar", ac, time.Now(), &err)
	snap, err := s.rangeSnapshot(ctx, &ac)
	if err != nil {
		return nil, err
	}
	return domain.Calendar(ac.Range, snap, ac.Location)
}

func (s *AnalyticsService) Charts(ctx context.Context, ac domain.AnalyticsContext, g domain.Granularity) (out domain.Charts, err error) {
	defer s.observe("charts", ac, time.Now(), &err)
	snap, err := s.rangeSnapshot(ctx, &ac)
	if err != nil {
		return domain.Charts{}, err
	}
	return domain.BuildCharts(ac.Range, g, ac.WeekStart, ac.Location, snap)
}

func (s *AnalyticsService) WorkLogStats(ctx context.Context, ac domain.AnalyticsContext, g domain.Granularity) (out domain.WorkLogStats, err error) {
	defer s.observe("worklog_stats", ac, time.Now(), &err)
	snap, err := s.rangeSnapshot(ctx, &ac)
	if err != nil {
		return domain.WorkLogStats{}, err
	}
	return domain.BuildWorkLogStats(ac.Range, g, ac.WeekStart, ac.Location, snap)
}

func (s *AnalyticsService) Patterns(ctx context.Context, ac domain.AnalyticsContext) (out domain.PatternReport, err error) {
	defer s.observe("patterns", ac, time.Now(), &err)
	snap, err := s.rangeSnapshot(ctx, &ac)
	if err != nil {
		return domain.PatternReport{}, err
	}
	return domain.DetectPatterns(snap, ac.Today(), ac.WeekStart), nil
}

func (s *AnalyticsService) Recommendations(ctx context.Context, ac domain.AnalyticsContext) (out []domain.Recommendation, err error) {
	defer s.observe("recommendations", ac, time.Now(), &err)
	snap, err := s.rangeSnapshot(ctx, &ac)
	if err != nil {
		return nil, err
	}
	summary := domain.Summarize(ac.Range, snap)
	work := domain.SummarizeWork(snap.WorkLogs)
	productivity, _ := domain.ProductivityScore(snap, work)
	return domain.Recommend(domain.RecommendationInputFrom(summary, work, productivity), domain.DefaultRules), nil
}

// GenerateInsight assembles one analysis and, when asked, writes it through
// the insight store. A failed write is reported as ErrPersistenceFailure.
func (s *AnalyticsService) GenerateInsight(ctx context.Context, ac domain.AnalyticsContext, kind domain.AnalysisKind, opts InsightOptions) (out domain.Insight, err error) {
	defer s.observe("generate_insight", ac, time.Now(), &err)
	ac = normalize(ac)
	if err = ac.Validate(); err != nil {
		return domain.Insight{}, err
	}
	history, err := s.load(ctx, ac.UserID, domain.DateRange{})
	if err != nil {
		return domain.Insight{}, err
	}
	snap := history.Within(ac.Range, ac.Location)
	buckets, err := domain.Buckets(ac.Range, domain.TrendGranularity(ac.Range), ac.WeekStart)
	if err != nil {
		return domain.Insight{}, err
	}
	summary := domain.Summarize(ac.Range, snap)

	var content any
	dataPoints := 0
	switch kind {
	case domain.KindEmotion:
		analysis := domain.BuildEmotionAnalysis(snap, buckets)
		content, dataPoints = analysis, analysis.ScoredItems
	case domain.KindProductivity:
		content = domain.BuildProductivityAnalysis(snap, summary, buckets, ac.Location)
		dataPoints = len(snap.Sessions) + len(snap.WorkLogs)
	case domain.KindPattern:
		content = domain.BuildPatternAnalysis(domain.DetectPatterns(snap, ac.Today(), ac.WeekStart))
		dataPoints = summary.ItemsCount
	case domain.KindComprehensive:
		comprehensive := s.comprehensive(ctx, ac, history, snap, summary, buckets, opts.WithSuggestions)
		content = comprehensive
		dataPoints = len(snap.Sessions) + summary.ItemsCount + len(snap.WorkLogs)
	default:
		return domain.Insight{}, fmt.Errorf("%w: unknown analysis kind %q", apperrors.ErrInvalidInput, kind)
	}

	payload, err := json.Marshal(content)
	if err != nil {
		return domain.Insight{}, fmt.Errorf("encode %s insight: %w", kind, err)
	}
	insight := domain.Insight{
		ID:          s.idGen.New(),
		UserID:      ac.UserID,
		SessionID:   opts.SessionID,
		Type:        kind.InsightType(),
		Kind:        kind,
		Confidence:  domain.Confidence(dataPoints),
		Content:     payload,
		DataSource:  dataSource(snap),
		Active:      true,
		PeriodStart: ac.Range.Start,
		PeriodEnd:   ac.Range.End,
		GeneratedAt: ac.Now,
	}
	if !opts.Persist {
		return insight, nil
	}
	if s.insights == nil {
		return domain.Insight{}, fmt.Errorf("%w: no insight store configured", apperrors.ErrPersistenceFailure)
	}
	if err := s.insights.Save(ctx, insight); err != nil {
		s.logger.Error("insight write failed",
			zap.String("user_id", ac.UserID),
			zap.String("operation", "generate_insight"),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return domain.Insight{}, fmt.Errorf("%w: save insight: %w", apperrors.ErrPersistenceFailure, err)
	}
	telemetry.InsightsPersisted.WithLabelValues(string(insight.Type)).Inc()
	return insight, nil
}

func (s *AnalyticsService) ListInsights(ctx context.Context, filter domain.InsightFilter) ([]domain.Insight, error) {
	if s.insights == nil {
		return []domain.Insight{}, nil
	}
	return s.insights.List(ctx, filter)
}

func (s *AnalyticsService) SetInsightActive(ctx context.Context, insightID string, active bool) (domain.Insight, error) {
	if insightID == "" {
		return domain.Insight{}, fmt.Errorf("%w: insight id is required", apperrors.ErrInvalidInput)
	}
	if s.insights == nil {
		return domain.Insight{}, fmt.Errorf("%w: insight %s", apperrors.ErrNotFound, insightID)
	}
	return s.insights.SetActive(ctx, insightID, active)
}

func (s *AnalyticsService) comprehensive(ctx context.Context, ac domain.AnalyticsContext, history, snap domain.Snapshot, summary domain.PeriodSummary, buckets []domain.Bucket, withSuggestions bool) domain.ComprehensiveAnalysis {
	work := domain.SummarizeWork(snap.WorkLogs)
	productivity, _ := domain.ProductivityScore(snap, work)
	patterns := domain.DetectPatterns(snap, ac.Today(), ac.WeekStart)
	out := domain.ComprehensiveAnalysis{
		Period:          summary,
		Streak:          domain.Streaks(domain.ActiveDays(history), ac.Today()),
		Emotion:         domain.BuildEmotionAnalysis(snap, buckets),
		Productivity:    domain.BuildProductivityAnalysis(snap, summary, buckets, ac.Location),
		Patterns:        domain.BuildPatternAnalysis(patterns),
		Recommendations: domain.Recommend(domain.RecommendationInputFrom(summary, work, productivity), domain.DefaultRules),
	}
	out.Summary = domain.ComprehensiveSummary(out.Period, out.Streak, out.Recommendations)
	if withSuggestions {
		out.Suggestions = s.suggest(ctx, ac, domain.SuggestionRequest{
			UserID:          ac.UserID,
			Period:          ac.Range.String(),
			Summary:         summary,
			RecurringThemes: patterns.RecurringThemes,
			Recommendations: out.Recommendations,
		})
	}
	return out
}

// suggest never fails the caller; provider problems are logged and dropped.
func (s *AnalyticsService) suggest(ctx context.Context, ac domain.AnalyticsContext, request domain.SuggestionRequest) []domain.Suggestion {
	if s.suggestions == nil {
		telemetry.Suggestions.WithLabelValues("skipped").Inc()
		return nil
	}
	suggestions, err := s.suggestions.Suggest(ctx, domain.KindComprehensive, request)
	if err != nil {
		telemetry.Suggestions.WithLabelValues("error").Inc()
		s.logger.Warn("suggestion provider failed",
			zap.String("user_id", ac.UserID),
			zap.String("operation", "generate_insight"),
			zap.Error(err))
		return nil
	}
	telemetry.Suggestions.WithLabelValues("ok").Inc()
	return suggestions
}

func (s *AnalyticsService) rangeSnapshot(ctx context.Context, ac *domain.AnalyticsContext) (domain.Snapshot, error) {
	*ac = normalize(*ac)
	if err := ac.Validate(); err != nil {
		return domain.Snapshot{}, err
	}
	snap, err := s.load(ctx, ac.UserID, ac.Range)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return snap.Within(ac.Range, ac.Location), nil
}

func (s *AnalyticsService) load(ctx context.Context, userID string, r domain.DateRange) (domain.Snapshot, error) {
	sessions, err := s.journal.Sessions(ctx, userID, r)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("load sessions: %w", err)
	}
	marks, err := s.journal.Marks(ctx, userID, r)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("load marks: %w", err)
	}
	snap := domain.Snapshot{Sessions: sessions, Marks: marks}
	if s.worklogs != nil {
		logs, err := s.worklogs.WorkLogs(ctx, userID, r)
		if err != nil {
			return domain.Snapshot{}, fmt.Errorf("load work logs: %w", err)
		}
		snap.WorkLogs = logs
		snap.WorkLogsAvailable = true
	}
	return snap, nil
}

func (s *AnalyticsService) observe(operation string, ac domain.AnalyticsContext, started time.Time, errp *error) {
	err := *errp
	telemetry.ObserveAnalytics(operation, started, err)
	if err != nil {
		s.logger.Debug("analytics computation failed",
			zap.String("user_id", ac.UserID),
			zap.String("operation", operation),
			zap.Error(err))
		return
	}
	s.logger.Debug("analytics computed",
		zap.String("user_id", ac.UserID),
		zap.String("operation", operation),
		zap.Duration("elapsed", time.Since(started)))
}

func normalize(ac domain.AnalyticsContext) domain.AnalyticsContext {
	if ac.Location == nil {
		ac.Location = time.UTC
	}
	return ac
}

func validateUser(ac domain.AnalyticsContext) error {
	if ac.UserID == "" {
		return fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	return nil
}

func dataSource(snap domain.Snapshot) string {
	if snap.WorkLogsAvailable && len(snap.WorkLogs) > 0 {
		return "journal+work_logs"
	}
	return "journal"
}
