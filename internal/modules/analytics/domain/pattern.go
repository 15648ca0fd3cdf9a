package domain

import (
	"sort"
	"strings"
	"time"
)

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type ImpactLevel string

const (
	ImpactHigh   ImpactLevel = "high"
	ImpactMedium ImpactLevel = "medium"
)

type SuccessPattern struct {
	Category       Category    `json:"category"`
	CompletedCount int         `json:"completed_count"`
	AverageImpact  *float64    `json:"average_impact"`
	Classification ImpactLevel `json:"classification"`
}

type ProblemPattern struct {
	Category       Category `json:"category"`
	OverdueCount   int      `json:"overdue_count"`
	AverageEmotion *float64 `json:"average_emotion"`
}

type TagPair struct {
	A     string `json:"a"`
	B     string `json:"b"`
	Count int    `json:"count"`
}

type WeekdayCount struct {
	Weekday  string `json:"weekday"`
	Sessions int    `json:"sessions"`
	Items    int    `json:"items"`
}

type PatternReport struct {
	RecurringThemes []TagCount       `json:"recurring_themes"`
	SuccessPatterns []SuccessPattern `json:"success_patterns"`
	ProblemPatterns []ProblemPattern `json:"problem_patterns"`
	TagPairs        []TagPair        `json:"tag_pairs"`
	Weekdays        []WeekdayCount   `json:"weekdays"`
}

func DetectPatterns(snap Snapshot, today time.Time, weekStart time.Weekday) PatternReport {
	items := snap.Items()
	return PatternReport{
		RecurringThemes: RecurringThemes(items),
		SuccessPatterns: SuccessPatterns(items),
		ProblemPatterns: ProblemPatterns(items, today),
		TagPairs:        TagCooccurrence(items),
		Weekdays:        WeekdayDistribution(snap.Sessions, weekStart),
	}
}

// RecurringThemes returns tags seen on at least RecurringMinOccurrences items,
// by count descending then tag ascending.
func RecurringThemes(items []Item) []TagCount {
	counts := map[string]int{}
	for _, item := range items {
		for _, tag := range distinctTags(item.Tags, 0) {
			counts[tag]++
		}
	}
	out := make([]TagCount, 0)
	for tag, count := range counts {
		if count >= RecurringMinOccurrences {
			out = append(out, TagCount{Tag: tag, Count: count})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// SuccessPatterns groups completed items by category. A category whose
// completed items carry no impact score is medium.
func SuccessPatterns(items []Item) []SuccessPattern {
	grouped := map[Category][]Item{}
	for _, item := range items {
		if item.Completed() {
			grouped[item.Category] = append(grouped[item.Category], item)
		}
	}
	out := make([]SuccessPattern, 0)
	for _, category := range orderedCategories(grouped) {
		group := grouped[category]
		pattern := SuccessPattern{
			Category:       category,
			CompletedCount: len(group),
			AverageImpact:  OptionalAverage(group, ImpactField),
			Classification: ImpactMedium,
		}
		if avg, ok := AverageScore(group, ImpactField); ok && avg > HighImpactThreshold {
			pattern.Classification = ImpactHigh
		}
		out = append(out, pattern)
	}
	return out
}

// ProblemPatterns groups incomplete items whose due date is before today.
func ProblemPatterns(items []Item, today time.Time) []ProblemPattern {
	grouped := map[Category][]Item{}
	for _, item := range items {
		if Overdue(item, today) {
			grouped[item.Category] = append(grouped[item.Category], item)
		}
	}
	out := make([]ProblemPattern, 0)
	for _, category := range orderedCategories(grouped) {
		group := grouped[category]
		out = append(out, ProblemPattern{
			Category:       category,
			OverdueCount:   len(group),
			AverageEmotion: OptionalAverage(group, EmotionField),
		})
	}
	return out
}

func Overdue(item Item, today time.Time) bool {
	return !item.Completed() && item.DueDate != nil && item.DueDate.Before(today)
}

// TagCooccurrence counts unordered tag pairs that appear together on an item
// and returns the TopTagPairs most frequent. Only the first MaxTagsPerItem
// distinct tags of an item take part.
func TagCooccurrence(items []Item) []TagPair {
	type key struct{ a, b string }
	counts := map[key]int{}
	for _, item := range items {
		tags := distinctTags(item.Tags, MaxTagsPerItem)
		for i := 0; i < len(tags); i++ {
			for j := i + 1; j < len(tags); j++ {
				a, b := tags[i], tags[j]
				if b < a {
					a, b = b, a
				}
				counts[key{a, b}]++
			}
		}
	}
	out := make([]TagPair, 0, len(counts))
	for k, count := range counts {
		out = append(out, TagPair{A: k.a, B: k.b, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	if len(out) > TopTagPairs {
		out = out[:TopTagPairs]
	}
	return out
}

// WeekdayDistribution counts sessions and items per weekday, starting the
// week at weekStart.
func WeekdayDistribution(sessions []Session, weekStart time.Weekday) []WeekdayCount {
	out := make([]WeekdayCount, 7)
	for i := range out {
		out[i].Weekday = time.Weekday((int(weekStart) + i) % 7).String()
	}
	for _, s := range sessions {
		idx := (int(s.Date.Weekday()) - int(weekStart) + 7) % 7
		out[idx].Sessions++
		out[idx].Items += len(s.Items)
	}
	return out
}

func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

func distinctTags(tags []string, limit int) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(tags))
	for _, raw := range tags {
		tag := NormalizeTag(raw)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func orderedCategories[V any](grouped map[Category]V) []Category {
	out := make([]Category, 0, len(grouped))
	for _, c := range Categories {
		if _, ok := grouped[c]; ok {
			out = append(out, c)
		}
	}
	extra := make([]Category, 0)
	for c := range grouped {
		if c != CategoryKeep && c != CategoryProblem && c != CategoryTry {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}
