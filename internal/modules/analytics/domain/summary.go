package domain

import "time"

// PeriodSummary is the dashboard view of one date range.
type PeriodSummary struct {
	Start                   time.Time        `json:"start"`
	End                     time.Time        `json:"end"`
	Days                    int              `json:"days"`
	SessionsCount           int              `json:"sessions_count"`
	CompletedSessions       int              `json:"completed_sessions"`
	SessionCompletionRate   float64          `json:"session_completion_rate"`
	ItemsCount              int              `json:"items_count"`
	CompletedItems          int              `json:"completed_items"`
	ItemCompletionRate      float64          `json:"item_completion_rate"`
	CategoryCounts          map[Category]int `json:"category_counts"`
	ActiveDays              int              `json:"active_days"`
	MarksCount              int              `json:"marks_count"`
	ReflectionFrequencyRate float64          `json:"reflection_frequency_rate"`
	AverageProgressRate     float64          `json:"average_progress_rate"`
	AverageEmotion          *float64         `json:"average_emotion"`
	AverageImpact           *float64         `json:"average_impact"`
}

// Summarize expects snap to be already restricted to r.
func Summarize(r DateRange, snap Snapshot) PeriodSummary {
	items := snap.Items()
	out := PeriodSummary{
		Start:          r.Start,
		End:            r.End,
		Days:           r.Days(),
		SessionsCount:  len(snap.Sessions),
		ItemsCount:     len(items),
		MarksCount:     len(snap.Marks),
		CategoryCounts: map[Category]int{},
	}
	for _, c := range Categories {
		out.CategoryCounts[c] = 0
	}
	progress := make([]float64, 0, len(snap.Sessions))
	for _, s := range snap.Sessions {
		if SessionDone(s) {
			out.CompletedSessions++
		}
		progress = append(progress, ProgressRate(s))
	}
	for _, item := range items {
		if item.Completed() {
			out.CompletedItems++
		}
		out.CategoryCounts[item.Category]++
	}
	out.SessionCompletionRate = CompletionRate(snap.Sessions, SessionDone)
	out.ItemCompletionRate = CompletionRate(items, ItemDone)
	if avg, ok := Mean(progress); ok {
		out.AverageProgressRate = Round2(avg)
	}
	out.AverageEmotion = OptionalAverage(items, EmotionField)
	out.AverageImpact = OptionalAverage(items, ImpactField)

	active := 0
	for key := range ActiveDays(snap) {
		day, err := ParseDay(key)
		if err == nil && r.Contains(day) {
			active++
		}
	}
	out.ActiveDays = active
	out.ReflectionFrequencyRate = Rate(active, out.Days)
	return out
}
