package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"retrolog/internal/modules/analytics/domain"
	"retrolog/internal/modules/analytics/dto"
	"retrolog/internal/modules/analytics/service"
	"retrolog/internal/platform/clock"
	apperrors "retrolog/internal/platform/errors"
)

type fakeJournal struct {
	users []string
}

func (f *fakeJournal) Sessions(_ context.Context, userID string, _ domain.DateRange) ([]domain.Session, error) {
	f.users = append(f.users, userID)
	return nil, nil
}

func (f *fakeJournal) Marks(context.Context, string, domain.DateRange) ([]domain.Mark, error) {
	return nil, nil
}

func newInteractor(journal *fakeJournal, loc *time.Location) *Interactor {
	svc := service.NewAnalyticsService(service.Dependencies{Journal: journal})
	now := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
	return NewInteractor(svc, clock.Fixed{At: now}, Settings{DefaultUser: "me", WeekStart: time.Monday, Location: loc}).(*Interactor)
}

func TestDefaultRangeIsThirtyDaysEndingToday(t *testing.T) {
	t.Parallel()
	journal := &fakeJournal{}
	uc := newInteractor(journal, time.UTC)

	out, err := uc.Dashboard(context.Background(), dto.RangeInput{})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	wantEnd := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	if !out.Period.End.Equal(wantEnd) || !out.Period.Start.Equal(wantEnd.AddDate(0, 0, -29)) {
		t.Fatalf("period = %s..%s", out.Period.Start, out.Period.End)
	}
	if out.Period.Days != DefaultRangeDays {
		t.Fatalf("days = %d", out.Period.Days)
	}
	if len(journal.users) == 0 || journal.users[0] != "me" {
		t.Fatalf("default user not applied: %v", journal.users)
	}
}

func TestTodayFollowsConfiguredLocation(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("UTC+2", 2*60*60)
	uc := newInteractor(&fakeJournal{}, loc)

	ac, err := uc.context(dto.RangeInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("context: %v", err)
	}
	// 23:30 UTC is already the next day two hours east
	if got := domain.DayKey(ac.Range.End); got != "2024-03-11" {
		t.Fatalf("range end = %s", got)
	}
	if ac.UserID != "u1" {
		t.Fatalf("explicit user should win, got %s", ac.UserID)
	}
}

func TestOneSidedRanges(t *testing.T) {
	t.Parallel()
	uc := newInteractor(&fakeJournal{}, time.UTC)
	to := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	ac, err := uc.context(dto.RangeInput{To: to})
	if err != nil {
		t.Fatalf("context: %v", err)
	}
	if domain.DayKey(ac.Range.Start) != "2024-01-31" || domain.DayKey(ac.Range.End) != "2024-02-29" {
		t.Fatalf("unexpected range %s", ac.Range)
	}

	future := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	ac, err = uc.context(dto.RangeInput{From: future})
	if err != nil {
		t.Fatalf("context: %v", err)
	}
	if !ac.Range.Start.Equal(future) || !ac.Range.End.Equal(future) {
		t.Fatalf("future start should collapse to one day, got %s", ac.Range)
	}
}

func TestInteractorRejectsBadInput(t *testing.T) {
	t.Parallel()
	uc := newInteractor(&fakeJournal{}, time.UTC)
	ctx := context.Background()

	_, err := uc.Dashboard(ctx, dto.RangeInput{
		From: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, apperrors.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := uc.Charts(ctx, dto.RangeInput{Granularity: "hourly"}); !errors.Is(err, apperrors.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for granularity, got %v", err)
	}
	if _, err := uc.GenerateInsight(ctx, dto.InsightInput{Kind: "horoscope"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for kind, got %v", err)
	}
	if _, err := uc.ListInsights(ctx, dto.ListInsightsInput{Type: "gossip"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for type, got %v", err)
	}
}
