package domain

import (
	"testing"
	"time"
)

func quietInput() RecommendationInput {
	productivity := 4.0
	emotion := 4.0
	return RecommendationInput{
		ReflectionFrequencyRate: 80,
		ProblemCount:            2,
		TryCount:                2,
		AverageProductivity:     &productivity,
		LongSessionShare:        0.1,
		WorkSessionCount:        10,
		AverageEmotion:          &emotion,
		ItemCompletionRate:      90,
		ItemsCount:              12,
	}
}

func types(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Type
	}
	return out
}

func TestRecommendNoRuleMatches(t *testing.T) {
	t.Parallel()
	recs := Recommend(quietInput(), DefaultRules)
	if recs == nil || len(recs) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", recs)
	}
}

func TestRecommendKeepsRuleOrder(t *testing.T) {
	t.Parallel()
	in := quietInput()
	low := 2.0
	in.AverageProductivity = &low
	in.ReflectionFrequencyRate = 20
	got := types(Recommend(in, DefaultRules))
	if !equalStrings(got, []string{"consistency", "productivity"}) {
		t.Fatalf("expected consistency then productivity, got %v", got)
	}
}

func TestRecommendThresholdsAreStrict(t *testing.T) {
	t.Parallel()
	in := quietInput()
	in.ReflectionFrequencyRate = 50
	in.ProblemCount, in.TryCount = 4, 2
	edge := 3.0
	in.AverageProductivity = &edge
	in.LongSessionShare = 0.30
	if got := Recommend(in, DefaultRules); len(got) != 0 {
		t.Fatalf("expected no recommendation at the thresholds, got %v", types(got))
	}

	in.ProblemCount = 5
	in.LongSessionShare = 0.31
	got := types(Recommend(in, DefaultRules))
	if !equalStrings(got, []string{"action_planning", "work_life_balance"}) {
		t.Fatalf("unexpected recommendations %v", got)
	}
}

func TestRecommendIsTotalOnEmptyInput(t *testing.T) {
	t.Parallel()
	got := types(Recommend(RecommendationInput{}, DefaultRules))
	if !equalStrings(got, []string{"consistency"}) {
		t.Fatalf("expected only consistency for empty metrics, got %v", got)
	}
}

func TestRecommendSupplementaryRules(t *testing.T) {
	t.Parallel()
	in := quietInput()
	sad := 2.0
	in.AverageEmotion = &sad
	in.ItemCompletionRate = 40
	got := types(Recommend(in, DefaultRules))
	if !equalStrings(got, []string{"wellbeing", "follow_through"}) {
		t.Fatalf("unexpected recommendations %v", got)
	}
	in.ItemsCount = MinItemsForCompletion - 1
	if got := types(Recommend(in, DefaultRules)); !equalStrings(got, []string{"wellbeing"}) {
		t.Fatalf("expected completion rule to need enough items, got %v", got)
	}
}

func workLogs(total, long int) []WorkLog {
	start := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	logs := make([]WorkLog, total)
	for i := range logs {
		minutes := 60
		if i < long {
			minutes = 300
		}
		logs[i] = WorkLog{ID: string(rune('a' + i)), StartedAt: start, EndedAt: timePtr(start.Add(time.Duration(minutes) * time.Minute))}
	}
	return logs
}

func TestLongSessionRuleUsesUnroundedShare(t *testing.T) {
	t.Parallel()
	summary := PeriodSummary{ActiveDays: 10, Days: 10}

	work := SummarizeWork(workLogs(23, 7))
	if work.LongSessionShare != 0.3 {
		t.Fatalf("expected displayed share 0.3, got %v", work.LongSessionShare)
	}
	got := types(Recommend(RecommendationInputFrom(summary, work, nil), DefaultRules))
	if !equalStrings(got, []string{"work_life_balance"}) {
		t.Fatalf("expected 7 of 23 long sessions to recommend breaks, got %v", got)
	}

	exact := SummarizeWork(workLogs(10, 3))
	if got := Recommend(RecommendationInputFrom(summary, exact, nil), DefaultRules); len(got) != 0 {
		t.Fatalf("expected exactly 30%% long sessions to stay quiet, got %v", types(got))
	}
}

func TestConsistencyRuleUsesUnroundedRate(t *testing.T) {
	t.Parallel()
	r := mustRange(Date(2000, 1, 1), Date(2000, 1, 1).AddDate(0, 0, 10000))
	snap := Snapshot{}
	for i := 0; i < 5000; i++ {
		snap.Marks = append(snap.Marks, Mark{UserID: "u1", Date: r.Start.AddDate(0, 0, 2*i)})
	}
	summary := Summarize(r, snap)
	if summary.Days != 10001 || summary.ActiveDays != 5000 || summary.ReflectionFrequencyRate != 50 {
		t.Fatalf("unexpected summary days=%d active=%d rate=%v", summary.Days, summary.ActiveDays, summary.ReflectionFrequencyRate)
	}
	got := types(Recommend(RecommendationInputFrom(summary, SummarizeWork(nil), nil), DefaultRules))
	if !equalStrings(got, []string{"consistency"}) {
		t.Fatalf("expected 5000 of 10001 days to recommend consistency, got %v", got)
	}

	half := Summarize(mustRange(Date(2025, 1, 1), Date(2025, 1, 4)), Snapshot{Marks: []Mark{
		{UserID: "u1", Date: Date(2025, 1, 1)},
		{UserID: "u1", Date: Date(2025, 1, 3)},
	}})
	if got := Recommend(RecommendationInputFrom(half, SummarizeWork(nil), nil), DefaultRules); len(got) != 0 {
		t.Fatalf("expected exactly half the days to stay quiet, got %v", types(got))
	}
}
