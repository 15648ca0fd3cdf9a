package out

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"retrolog/internal/modules/analytics/domain"
	apperrors "retrolog/internal/platform/errors"
)

func TestSQLiteInsightStoreRoundTrip(t *testing.T) {
	t.Parallel()
	store, err := NewSQLiteInsightStore(filepath.Join(t.TempDir(), "index", "retrolog.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	base := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

	insights := []domain.Insight{
		{ID: "a", UserID: "u1", SessionID: "s1", Type: domain.InsightSentiment, Kind: domain.KindEmotion, Confidence: 0.4, Content: []byte(`{"average":3.5}`), DataSource: "journal", Active: true, PeriodStart: start, PeriodEnd: end, GeneratedAt: base},
		{ID: "b", UserID: "u1", Type: domain.InsightTrend, Kind: domain.KindProductivity, Confidence: 0.6, Content: []byte(`{}`), DataSource: "journal+work_logs", Active: true, PeriodStart: start, PeriodEnd: end, GeneratedAt: base.Add(time.Hour)},
		{ID: "c", UserID: "u2", Type: domain.InsightSentiment, Kind: domain.KindEmotion, Confidence: 0.2, Content: []byte(`{}`), DataSource: "journal", Active: true, PeriodStart: start, PeriodEnd: end, GeneratedAt: base.Add(2 * time.Hour)},
	}
	for _, insight := range insights {
		if err := store.Save(ctx, insight); err != nil {
			t.Fatalf("save %s: %v", insight.ID, err)
		}
	}

	all, err := store.List(ctx, domain.InsightFilter{UserID: "u1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != "b" || all[1].ID != "a" {
		t.Fatalf("expected newest first for u1, got %+v", all)
	}
	got := all[1]
	if got.SessionID != "s1" || string(got.Content) != `{"average":3.5}` || !got.GeneratedAt.Equal(base) || !got.PeriodEnd.Equal(end) {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	updated, err := store.SetActive(ctx, "a", false)
	if err != nil {
		t.Fatalf("set active: %v", err)
	}
	if updated.Active {
		t.Fatalf("insight should be inactive")
	}
	active, err := store.List(ctx, domain.InsightFilter{UserID: "u1", ActiveOnly: true})
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ID != "b" {
		t.Fatalf("unexpected active insights %+v", active)
	}

	sentiment, err := store.List(ctx, domain.InsightFilter{Type: domain.InsightSentiment, Limit: 1})
	if err != nil {
		t.Fatalf("list sentiment: %v", err)
	}
	if len(sentiment) != 1 || sentiment[0].ID != "c" {
		t.Fatalf("unexpected sentiment page %+v", sentiment)
	}

	if _, err := store.SetActive(ctx, "missing", true); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Save(ctx, insights[0]); err == nil {
		t.Fatalf("duplicate id should be rejected")
	}
}
