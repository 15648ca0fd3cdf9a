package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type CategoryScore struct {
	Category       Category `json:"category"`
	Count          int      `json:"count"`
	AverageEmotion *float64 `json:"average_emotion"`
	AverageImpact  *float64 `json:"average_impact"`
}

type EmotionAnalysis struct {
	AverageEmotion *float64        `json:"average_emotion"`
	AverageImpact  *float64        `json:"average_impact"`
	ScoredItems    int             `json:"scored_items"`
	Distribution   map[string]int  `json:"distribution"`
	ByCategory     []CategoryScore `json:"by_category"`
	Series         []SeriesPoint   `json:"series"`
	Trend          Direction       `json:"trend"`
	Summary        string          `json:"summary"`
}

// BuildEmotionAnalysis reads item emotion and impact scores over buckets.
func BuildEmotionAnalysis(snap Snapshot, buckets []Bucket) EmotionAnalysis {
	items := snap.Items()
	out := EmotionAnalysis{
		AverageEmotion: OptionalAverage(items, EmotionField),
		AverageImpact:  OptionalAverage(items, ImpactField),
		Distribution:   map[string]int{},
		ByCategory:     make([]CategoryScore, 0, len(Categories)),
	}
	for score := 1; score <= 5; score++ {
		out.Distribution[strconv.Itoa(score)] = 0
	}
	grouped := map[Category][]Item{}
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
		if item.EmotionScore != nil {
			out.ScoredItems++
			out.Distribution[strconv.Itoa(*item.EmotionScore)]++
		}
	}
	for _, category := range orderedCategories(grouped) {
		group := grouped[category]
		out.ByCategory = append(out.ByCategory, CategoryScore{
			Category:       category,
			Count:          len(group),
			AverageEmotion: OptionalAverage(group, EmotionField),
			AverageImpact:  OptionalAverage(group, ImpactField),
		})
	}
	out.Series = AverageSeries(buckets, ItemSamples(items, EmotionField))
	out.Trend = ClassifySeries(out.Series)
	if out.AverageEmotion == nil {
		out.Summary = "No emotion scores were recorded in this period."
	} else {
		out.Summary = fmt.Sprintf("Average emotion %.1f/5 across %d scored items, trend %s.", *out.AverageEmotion, out.ScoredItems, out.Trend)
	}
	return out
}

type ProductivityAnalysis struct {
	Score                 *float64           `json:"score"`
	Source                ProductivitySource `json:"source"`
	SessionCompletionRate float64            `json:"session_completion_rate"`
	ItemCompletionRate    float64            `json:"item_completion_rate"`
	AverageProgressRate   float64            `json:"average_progress_rate"`
	WorkLogsAvailable     bool               `json:"work_logs_available"`
	Work                  WorkSummary        `json:"work"`
	LinkedMinutes         map[Category]int   `json:"linked_minutes"`
	Series                []SeriesPoint      `json:"series"`
	Trend                 Direction          `json:"trend"`
	Summary               string             `json:"summary"`
}

func BuildProductivityAnalysis(snap Snapshot, summary PeriodSummary, buckets []Bucket, loc *time.Location) ProductivityAnalysis {
	work := SummarizeWork(snap.WorkLogs)
	score, source := ProductivityScore(snap, work)
	out := ProductivityAnalysis{
		Score:                 score,
		Source:                source,
		SessionCompletionRate: summary.SessionCompletionRate,
		ItemCompletionRate:    summary.ItemCompletionRate,
		AverageProgressRate:   summary.AverageProgressRate,
		WorkLogsAvailable:     snap.WorkLogsAvailable,
		Work:                  work,
		LinkedMinutes:         LinkedMinutes(snap.Items(), snap.WorkLogs),
		Series:                AverageSeries(buckets, ProductivitySamples(snap, loc)),
	}
	out.Trend = ClassifySeries(out.Series)
	parts := []string{fmt.Sprintf("%.0f%% of items completed", out.ItemCompletionRate)}
	if score != nil {
		parts = append(parts, fmt.Sprintf("productivity %.1f/5 from %s", *score, strings.ReplaceAll(string(source), "_", " ")))
	}
	if work.Count > 0 {
		parts = append(parts, fmt.Sprintf("%s logged over %d work sessions", work.TotalFormatted, work.Count))
	}
	out.Summary = strings.Join(parts, "; ") + "."
	return out
}

type PatternAnalysis struct {
	PatternReport
	Summary string `json:"summary"`
}

func BuildPatternAnalysis(report PatternReport) PatternAnalysis {
	out := PatternAnalysis{PatternReport: report}
	switch {
	case len(report.RecurringThemes) > 0:
		top := report.RecurringThemes[0]
		out.Summary = fmt.Sprintf("%q is the most recurring theme (%d items).", top.Tag, top.Count)
	case len(report.TagPairs) > 0:
		pair := report.TagPairs[0]
		out.Summary = fmt.Sprintf("%q and %q appear together most often.", pair.A, pair.B)
	default:
		out.Summary = "No recurring themes yet."
	}
	overdue := 0
	for _, p := range report.ProblemPatterns {
		overdue += p.OverdueCount
	}
	if overdue > 0 {
		out.Summary += fmt.Sprintf(" %d items are overdue.", overdue)
	}
	return out
}

type ComprehensiveAnalysis struct {
	Period          PeriodSummary        `json:"period"`
	Streak          StreakReport         `json:"streak"`
	Emotion         EmotionAnalysis      `json:"emotion_analysis"`
	Productivity    ProductivityAnalysis `json:"productivity_analysis"`
	Patterns        PatternAnalysis      `json:"pattern_analysis"`
	Recommendations []Recommendation     `json:"recommendations"`
	Suggestions     []Suggestion         `json:"suggestions,omitempty"`
	Summary         string               `json:"summary"`
}

func ComprehensiveSummary(period PeriodSummary, streak StreakReport, recs []Recommendation) string {
	text := fmt.Sprintf("%d sessions and %d items over %d days, %.0f%% of days reflected, current streak %d.",
		period.SessionsCount, period.ItemsCount, period.Days, period.ReflectionFrequencyRate, streak.Current)
	if len(recs) > 0 {
		text += fmt.Sprintf(" Top recommendation: %s.", recs[0].Title)
	}
	return text
}
