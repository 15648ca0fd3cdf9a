package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	apperrors "retrolog/internal/platform/errors"
)

func TestConfidenceSaturates(t *testing.T) {
	t.Parallel()
	cases := map[int]float64{-1: 0.2, 0: 0.2, 4: 0.4, 15: 0.95, 500: 0.95}
	for points, want := range cases {
		if got := Confidence(points); got != want {
			t.Fatalf("%d points: expected %v, got %v", points, want, got)
		}
	}
}

func TestAnalysisKindMapsToInsightType(t *testing.T) {
	t.Parallel()
	cases := map[string]InsightType{
		"emotion_analysis": InsightSentiment,
		"productivity":     InsightTrend,
		"Pattern_Analysis": InsightPattern,
		"comprehensive":    InsightSummary,
	}
	for raw, want := range cases {
		kind, err := ParseAnalysisKind(raw)
		if err != nil {
			t.Fatalf("%q: %v", raw, err)
		}
		if kind.InsightType() != want {
			t.Fatalf("%q: expected %s, got %s", raw, want, kind.InsightType())
		}
	}
	if _, err := ParseAnalysisKind("horoscope"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestEmotionAnalysisDistribution(t *testing.T) {
	t.Parallel()
	r := mustRange(Date(2025, 1, 1), Date(2025, 1, 4))
	snap := Snapshot{Sessions: []Session{
		sessionOn(Date(2025, 1, 1), item(CategoryKeep, nil, intPtr(2)), item(CategoryProblem, nil, intPtr(1))),
		sessionOn(Date(2025, 1, 4), item(CategoryKeep, intPtr(5), intPtr(5)), item(CategoryTry, nil, nil)),
	}}
	buckets, err := Buckets(r, GranularityDay, time.Monday)
	if err != nil {
		t.Fatalf("buckets: %v", err)
	}
	analysis := BuildEmotionAnalysis(snap, buckets)
	if analysis.ScoredItems != 3 || analysis.Distribution["5"] != 1 || analysis.Distribution["3"] != 0 {
		t.Fatalf("unexpected distribution %+v", analysis)
	}
	if analysis.Trend != TrendUp {
		t.Fatalf("expected emotion trend up, got %s", analysis.Trend)
	}
	if len(analysis.ByCategory) != 3 || analysis.ByCategory[2].AverageEmotion != nil {
		t.Fatalf("unexpected category scores %+v", analysis.ByCategory)
	}
	if _, err := json.Marshal(analysis); err != nil {
		t.Fatalf("marshal: %v", err)
	}
}

func TestProductivityFallsBackToSessions(t *testing.T) {
	t.Parallel()
	at := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	sessions := []Session{sessionOn(Date(2025, 1, 1), completed(Item{}, at), Item{})}
	productivity := 2

	score, source := ProductivityScore(Snapshot{Sessions: sessions}, WorkSummary{})
	if source != ProductivityFromSessions || score == nil || *score != 3 {
		t.Fatalf("expected session score 3, got %v from %s", score, source)
	}

	logs := []WorkLog{{ID: "w1", StartedAt: at, Productivity: &productivity}}
	snap := Snapshot{Sessions: sessions, WorkLogs: logs, WorkLogsAvailable: true}
	score, source = ProductivityScore(snap, SummarizeWork(logs))
	if source != ProductivityFromWorkLogs || *score != 2 {
		t.Fatalf("expected work log score 2, got %v from %s", *score, source)
	}

	score, source = ProductivityScore(Snapshot{}, WorkSummary{})
	if score != nil || source != ProductivityUnavailable {
		t.Fatalf("expected no productivity, got %v from %s", score, source)
	}
}

func TestSummarizeWork(t *testing.T) {
	t.Parallel()
	start := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	logs := []WorkLog{
		{ID: "a", Category: "dev", Project: "api", StartedAt: start, EndedAt: timePtr(start.Add(5 * time.Hour)), Billable: true, Status: WorkCompleted},
		{ID: "b", Category: "dev", StartedAt: start, EndedAt: timePtr(start.Add(time.Hour)), Status: WorkCompleted},
		{ID: "c", Category: "", StartedAt: start, Status: WorkInProgress},
	}
	work := SummarizeWork(logs)
	if work.TotalMinutes != 360 || work.BillableMinutes != 300 || work.LongSessionCount != 1 || work.CompletedCount != 2 {
		t.Fatalf("unexpected summary %+v", work)
	}
	if work.LongSessionShare != 0.33 || work.TotalFormatted != "6h 00m" {
		t.Fatalf("unexpected share or format %+v", work)
	}
	if work.ByCategory[0].Name != "dev" || work.ByCategory[0].Minutes != 360 || work.ByCategory[1].Name != "uncategorized" {
		t.Fatalf("unexpected categories %+v", work.ByCategory)
	}
	if len(work.ByProject) != 1 || work.ByProject[0].Formatted != "5h 00m" {
		t.Fatalf("unexpected projects %+v", work.ByProject)
	}
}

func TestLinkedMinutesCountsEachLogOncePerCategory(t *testing.T) {
	t.Parallel()
	start := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	logs := []WorkLog{{ID: "w1", StartedAt: start, EndedAt: timePtr(start.Add(30 * time.Minute))}}
	items := []Item{
		{Category: CategoryTry, Links: []WorkLink{{WorkLogID: "w1"}}},
		{Category: CategoryTry, Links: []WorkLink{{WorkLogID: "w1"}, {WorkLogID: "missing"}}},
		{Category: CategoryKeep, Links: []WorkLink{{WorkLogID: "w1"}}},
	}
	linked := LinkedMinutes(items, logs)
	if linked[CategoryTry] != 30 || linked[CategoryKeep] != 30 {
		t.Fatalf("unexpected linked minutes %v", linked)
	}
}

func TestCalendarMarksActiveDays(t *testing.T) {
	t.Parallel()
	r := mustRange(Date(2025, 1, 1), Date(2025, 1, 3))
	start := time.Date(2025, 1, 3, 23, 30, 0, 0, time.UTC)
	snap := Snapshot{
		Sessions: []Session{sessionOn(Date(2025, 1, 1), Item{})},
		Marks:    []Mark{{Date: Date(2025, 1, 2), Type: "milestone", Note: "shipped"}},
		WorkLogs: []WorkLog{{StartedAt: start, EndedAt: timePtr(start.Add(45 * time.Minute))}},
	}
	days, err := Calendar(r, snap, time.UTC)
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if len(days) != 3 || !days[0].Active || days[0].Items != 1 {
		t.Fatalf("unexpected first day %+v", days[0])
	}
	if days[1].Mark == nil || days[1].Mark.Type != "milestone" || !days[1].Active {
		t.Fatalf("unexpected second day %+v", days[1])
	}
	if days[2].Active || days[2].WorkMinutes != 45 {
		t.Fatalf("unexpected third day %+v", days[2])
	}
}
