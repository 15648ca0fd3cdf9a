package domain

import (
	"errors"
	"testing"
	"time"

	apperrors "retrolog/internal/platform/errors"
)

func labels(buckets []Bucket) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.Label
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestWeekBucketsAlignToWeekStartAndClip(t *testing.T) {
	t.Parallel()
	r := mustRange(Date(2025, 1, 1), Date(2025, 1, 14))
	buckets, err := Buckets(r, GranularityWeek, time.Monday)
	if err != nil {
		t.Fatalf("buckets: %v", err)
	}
	want := []string{"2024-12-30", "2025-01-06", "2025-01-13"}
	if got := labels(buckets); !equalStrings(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !buckets[0].Start.Equal(r.Start) || !buckets[2].End.Equal(r.End) {
		t.Fatalf("expected outer buckets clipped to range, got %v..%v", buckets[0].Start, buckets[2].End)
	}
	if !buckets[1].End.Equal(Date(2025, 1, 12)) {
		t.Fatalf("expected middle bucket to end on sunday, got %v", buckets[1].End)
	}

	sunday, err := Buckets(r, GranularityWeek, time.Sunday)
	if err != nil {
		t.Fatalf("buckets: %v", err)
	}
	if got := labels(sunday); !equalStrings(got, []string{"2024-12-29", "2025-01-05", "2025-01-12"}) {
		t.Fatalf("unexpected sunday labels %v", got)
	}
}

func TestCalendarBucketLabels(t *testing.T) {
	t.Parallel()
	r := mustRange(Date(2024, 11, 15), Date(2025, 2, 10))
	cases := map[Granularity][]string{
		GranularityMonth:   {"2024-11", "2024-12", "2025-01", "2025-02"},
		GranularityQuarter: {"2024-Q4", "2025-Q1"},
		GranularityYear:    {"2024", "2025"},
	}
	for g, want := range cases {
		buckets, err := Buckets(r, g, time.Monday)
		if err != nil {
			t.Fatalf("%s: %v", g, err)
		}
		if got := labels(buckets); !equalStrings(got, want) {
			t.Fatalf("%s: expected %v, got %v", g, want, got)
		}
	}
}

func TestAggregateEmitsEmptyBuckets(t *testing.T) {
	t.Parallel()
	r := mustRange(Date(2025, 1, 1), Date(2025, 1, 7))
	buckets, err := Aggregate(r, GranularityDay, time.Monday, SessionRecords(nil))
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(buckets) != 7 {
		t.Fatalf("expected 7 day buckets, got %d", len(buckets))
	}
	for _, b := range buckets {
		if b.Total != 0 || b.Completed != 0 || len(b.ByType) != 0 {
			t.Fatalf("expected empty bucket, got %+v", b)
		}
	}
}

func TestAggregateCountsByTypeAndIgnoresOutOfRange(t *testing.T) {
	t.Parallel()
	r := mustRange(Date(2025, 1, 1), Date(2025, 1, 31))
	records := []Record{
		{Day: Date(2025, 1, 2), Completed: true, Kind: "keep"},
		{Day: Date(2025, 1, 2), Kind: "problem"},
		{Day: Date(2025, 1, 20), Kind: "problem"},
		{Day: Date(2025, 2, 1), Kind: "keep"},
	}
	buckets, err := Aggregate(r, GranularityMonth, time.Monday, records)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(buckets) != 1 {
		t.Fatalf("expected one month bucket, got %d", len(buckets))
	}
	b := buckets[0]
	if b.Total != 3 || b.Completed != 1 || b.ByType["problem"] != 2 || b.ByType["keep"] != 1 {
		t.Fatalf("unexpected bucket %+v", b)
	}
	if b.CompletionRate() != 33.33 {
		t.Fatalf("expected 33.33 completion, got %v", b.CompletionRate())
	}
}

func TestBucketsRejectInvalidWindows(t *testing.T) {
	t.Parallel()
	if _, err := NewDateRange(Date(2025, 2, 1), Date(2025, 1, 1)); !errors.Is(err, apperrors.ErrInvalidRange) {
		t.Fatalf("expected invalid range for inverted dates, got %v", err)
	}
	inverted := DateRange{Start: Date(2025, 2, 1), End: Date(2025, 1, 1)}
	if _, err := Buckets(inverted, GranularityDay, time.Monday); !errors.Is(err, apperrors.ErrInvalidRange) {
		t.Fatalf("expected invalid range, got %v", err)
	}
	huge := mustRange(Date(2000, 1, 1), Date(2010, 1, 1))
	if _, err := Buckets(huge, GranularityDay, time.Monday); !errors.Is(err, apperrors.ErrInvalidRange) {
		t.Fatalf("expected bucket limit error, got %v", err)
	}
	if _, err := Buckets(huge, GranularityMonth, time.Monday); err != nil {
		t.Fatalf("expected month buckets within limit, got %v", err)
	}
	if _, err := ParseGranularity("fortnight"); !errors.Is(err, apperrors.ErrInvalidRange) {
		t.Fatalf("expected invalid range for unknown granularity, got %v", err)
	}
}

func TestAverageSeriesKeepsGaps(t *testing.T) {
	t.Parallel()
	r := mustRange(Date(2025, 1, 1), Date(2025, 1, 3))
	buckets, err := Buckets(r, GranularityDay, time.Monday)
	if err != nil {
		t.Fatalf("buckets: %v", err)
	}
	samples := []Sample{{Day: Date(2025, 1, 1), Value: 2}, {Day: Date(2025, 1, 1), Value: 5}, {Day: Date(2025, 1, 3), Value: 4}}
	series := AverageSeries(buckets, samples)
	if series[0].Average == nil || *series[0].Average != 3.5 || series[0].Count != 2 {
		t.Fatalf("unexpected first point %+v", series[0])
	}
	if series[1].Average != nil || series[1].Count != 0 {
		t.Fatalf("expected gap on second day, got %+v", series[1])
	}
}

func TestWeekOfKeepProblemTryScenario(t *testing.T) {
	t.Parallel()
	r := mustRange(Date(2025, 1, 1), Date(2025, 1, 7))
	done := time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{}
	for day := r.Start; !day.After(r.End); day = day.AddDate(0, 0, 1) {
		snap.Sessions = append(snap.Sessions, sessionOn(day,
			completed(item(CategoryKeep, intPtr(4), nil), done),
			completed(item(CategoryProblem, intPtr(4), nil), done),
			completed(item(CategoryTry, intPtr(4), nil), done),
		))
	}

	if got := Summarize(r, snap).ItemsCount; got != 21 {
		t.Fatalf("expected 21 items in summary, got %d", got)
	}
	// 2025-01-01 is a wednesday, so a wednesday week holds the whole range.
	weekly, err := Aggregate(r, GranularityWeek, time.Wednesday, ItemRecords(snap.Items()))
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(weekly) != 1 || weekly[0].Total != 21 {
		t.Fatalf("expected a single weekly bucket with 21 items, got %+v", weekly)
	}

	var try *SuccessPattern
	patterns := SuccessPatterns(snap.Items())
	for i := range patterns {
		if patterns[i].Category == CategoryTry {
			try = &patterns[i]
		}
	}
	if try == nil || try.Classification != ImpactHigh || *try.AverageImpact != 4 {
		t.Fatalf("expected high try pattern, got %+v", try)
	}
}

func TestZeroSessionScenario(t *testing.T) {
	t.Parallel()
	r := mustRange(Date(2025, 1, 1), Date(2025, 1, 31))
	snap := Snapshot{}

	buckets, err := Aggregate(r, GranularityWeek, time.Monday, SessionRecords(snap.Sessions))
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(buckets) != 5 {
		t.Fatalf("expected 5 week buckets, got %d", len(buckets))
	}
	if CurrentStreak(ActiveDays(snap), r.End) != 0 {
		t.Fatalf("expected zero streak")
	}
	emotion := BuildEmotionAnalysis(snap, buckets)
	if emotion.Trend != TrendStable {
		t.Fatalf("expected stable trend, got %s", emotion.Trend)
	}
	summary := Summarize(r, snap)
	recs := Recommend(RecommendationInputFrom(summary, SummarizeWork(nil), nil), DefaultRules)
	if len(recs) != 1 || recs[0].Type != "consistency" {
		t.Fatalf("expected only the consistency recommendation, got %+v", recs)
	}
}
