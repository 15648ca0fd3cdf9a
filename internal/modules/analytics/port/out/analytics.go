package out

import (
	"context"

	"retrolog/internal/modules/analytics/domain"
)

// JournalReader reads one user's journal. A zero range reads the full history.
type JournalReader interface {
	Sessions(ctx context.Context, userID string, r domain.DateRange) ([]domain.Session, error)
	Marks(ctx context.Context, userID string, r domain.DateRange) ([]domain.Mark, error)
}

// WorkLogReader is optional; a nil reader means work logs are not tracked.
type WorkLogReader interface {
	WorkLogs(ctx context.Context, userID string, r domain.DateRange) ([]domain.WorkLog, error)
}

type InsightStore interface {
	Save(ctx context.Context, insight domain.Insight) error
	List(ctx context.Context, filter domain.InsightFilter) ([]domain.Insight, error)
	SetActive(ctx context.Context, id string, active bool) (domain.Insight, error)
}

// SuggestionProvider is optional; failures never abort an assembly.
type SuggestionProvider interface {
	Suggest(ctx context.Context, kind domain.AnalysisKind, request domain.SuggestionRequest) ([]domain.Suggestion, error)
}
