package domain

import (
	"fmt"
	"testing"
	"time"
)

func TestRecurringThemesRequireThreeOccurrences(t *testing.T) {
	t.Parallel()
	items := []Item{
		{Tags: []string{"focus", "meetings"}},
		{Tags: []string{"Focus ", "meetings"}},
		{Tags: []string{"focus", "focus"}},
		{Tags: []string{"deploys"}},
		{Tags: []string{"deploys"}},
		{Tags: []string{"deploys", "meetings"}},
	}
	themes := RecurringThemes(items)
	want := []TagCount{{Tag: "deploys", Count: 3}, {Tag: "focus", Count: 3}, {Tag: "meetings", Count: 3}}
	if len(themes) != len(want) {
		t.Fatalf("expected %v, got %v", want, themes)
	}
	for i := range want {
		if themes[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, themes)
		}
	}

	two := RecurringThemes([]Item{{Tags: []string{"rare"}}, {Tags: []string{"rare"}}})
	if len(two) != 0 {
		t.Fatalf("expected tag with two occurrences to be excluded, got %v", two)
	}
}

func TestRecurringThemesOrderByCount(t *testing.T) {
	t.Parallel()
	items := make([]Item, 0)
	for i := 0; i < 5; i++ {
		items = append(items, Item{Tags: []string{"often"}})
	}
	for i := 0; i < 3; i++ {
		items = append(items, Item{Tags: []string{"alpha"}})
	}
	themes := RecurringThemes(items)
	if len(themes) != 2 || themes[0].Tag != "often" || themes[1].Tag != "alpha" {
		t.Fatalf("unexpected order %v", themes)
	}
}

func TestSuccessPatternsClassifyByImpact(t *testing.T) {
	t.Parallel()
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []Item{
		completed(item(CategoryKeep, intPtr(4), nil), at),
		completed(item(CategoryKeep, intPtr(5), nil), at),
		completed(item(CategoryProblem, intPtr(3), nil), at),
		completed(item(CategoryProblem, intPtr(4), nil), at),
		completed(item(CategoryTry, nil, nil), at),
		item(CategoryTry, intPtr(5), nil),
	}
	patterns := SuccessPatterns(items)
	if len(patterns) != 3 {
		t.Fatalf("expected three categories, got %+v", patterns)
	}
	if patterns[0].Category != CategoryKeep || patterns[0].Classification != ImpactHigh {
		t.Fatalf("expected high keep pattern, got %+v", patterns[0])
	}
	if patterns[1].Classification != ImpactMedium || *patterns[1].AverageImpact != 3.5 {
		t.Fatalf("expected 3.5 to stay medium, got %+v", patterns[1])
	}
	if patterns[2].AverageImpact != nil || patterns[2].Classification != ImpactMedium || patterns[2].CompletedCount != 1 {
		t.Fatalf("expected unscored try pattern to be medium, got %+v", patterns[2])
	}
}

func TestProblemPatternsCountOverdueItems(t *testing.T) {
	t.Parallel()
	today := Date(2025, 1, 10)
	items := []Item{
		{Category: CategoryProblem, DueDate: timePtr(Date(2025, 1, 9)), EmotionScore: intPtr(2)},
		{Category: CategoryProblem, DueDate: timePtr(Date(2025, 1, 1)), EmotionScore: intPtr(1)},
		{Category: CategoryTry, DueDate: timePtr(Date(2025, 1, 5))},
		{Category: CategoryTry, DueDate: timePtr(today)},
		{Category: CategoryKeep, DueDate: timePtr(Date(2025, 1, 2)), CompletedAt: timePtr(today)},
		{Category: CategoryKeep},
	}
	patterns := ProblemPatterns(items, today)
	if len(patterns) != 2 {
		t.Fatalf("expected problem and try groups, got %+v", patterns)
	}
	if patterns[0].Category != CategoryProblem || patterns[0].OverdueCount != 2 || *patterns[0].AverageEmotion != 1.5 {
		t.Fatalf("unexpected problem group %+v", patterns[0])
	}
	if patterns[1].Category != CategoryTry || patterns[1].OverdueCount != 1 || patterns[1].AverageEmotion != nil {
		t.Fatalf("unexpected try group %+v", patterns[1])
	}
}

func TestTagCooccurrenceTopPairs(t *testing.T) {
	t.Parallel()
	items := []Item{
		{Tags: []string{"b", "a"}},
		{Tags: []string{"a", "b", "c"}},
		{Tags: []string{"A", "c"}},
		{Tags: []string{"solo"}},
	}
	pairs := TagCooccurrence(items)
	if len(pairs) != 3 {
		t.Fatalf("expected 3 pairs, got %+v", pairs)
	}
	if pairs[0] != (TagPair{A: "a", B: "b", Count: 2}) || pairs[1] != (TagPair{A: "a", B: "c", Count: 2}) {
		t.Fatalf("unexpected leading pairs %+v", pairs)
	}
	if pairs[2] != (TagPair{A: "b", B: "c", Count: 1}) {
		t.Fatalf("unexpected trailing pair %+v", pairs[2])
	}
}

func TestTagCooccurrenceBoundsTagsPerItem(t *testing.T) {
	t.Parallel()
	tags := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		tags = append(tags, fmt.Sprintf("t%02d", i))
	}
	pairs := TagCooccurrence([]Item{{Tags: tags}})
	if len(pairs) != TopTagPairs {
		t.Fatalf("expected %d pairs, got %d", TopTagPairs, len(pairs))
	}
	for _, p := range pairs {
		if p.A >= fmt.Sprintf("t%02d", MaxTagsPerItem) || p.B >= fmt.Sprintf("t%02d", MaxTagsPerItem) {
			t.Fatalf("pair %+v uses a tag beyond the per-item cap", p)
		}
	}
}

func TestWeekdayDistributionStartsAtWeekStart(t *testing.T) {
	t.Parallel()
	sessions := []Session{sessionOn(Date(2025, 1, 6), Item{}, Item{}), sessionOn(Date(2025, 1, 12))}
	dist := WeekdayDistribution(sessions, time.Monday)
	if dist[0].Weekday != "Monday" || dist[0].Sessions != 1 || dist[0].Items != 2 {
		t.Fatalf("unexpected monday entry %+v", dist[0])
	}
	if dist[6].Weekday != "Sunday" || dist[6].Sessions != 1 {
		t.Fatalf("unexpected sunday entry %+v", dist[6])
	}
}
