package domain

import "sort"

type MinutesBreakdown struct {
	Name      string `json:"name"`
	Minutes   int    `json:"minutes"`
	Count     int    `json:"count"`
	Formatted string `json:"formatted"`
}

// WorkSummary aggregates the work logs of a range.
type WorkSummary struct {
	Count               int                `json:"count"`
	CompletedCount      int                `json:"completed_count"`
	TotalMinutes        int                `json:"total_minutes"`
	TotalFormatted      string             `json:"total_formatted"`
	BillableMinutes     int                `json:"billable_minutes"`
	AverageMinutes      float64            `json:"average_minutes"`
	AverageMood         *float64           `json:"average_mood"`
	AverageProductivity *float64           `json:"average_productivity"`
	AverageDifficulty   *float64           `json:"average_difficulty"`
	LongSessionCount    int                `json:"long_session_count"`
	LongSessionShare    float64            `json:"long_session_share"`
	ByCategory          []MinutesBreakdown `json:"by_category"`
	ByProject           []MinutesBreakdown `json:"by_project"`
}

func SummarizeWork(logs []WorkLog) WorkSummary {
	out := WorkSummary{Count: len(logs)}
	var mood, productivity, difficulty []float64
	categories := map[string]*MinutesBreakdown{}
	projects := map[string]*MinutesBreakdown{}
	for _, log := range logs {
		minutes := DurationMinutes(log)
		out.TotalMinutes += minutes
		if log.Status == WorkCompleted {
			out.CompletedCount++
		}
		if log.Billable {
			out.BillableMinutes += minutes
		}
		if minutes > LongWorkSessionMinutes {
			out.LongSessionCount++
		}
		mood = appendScore(mood, log.Mood)
		productivity = appendScore(productivity, log.Productivity)
		difficulty = appendScore(difficulty, log.Difficulty)
		addMinutes(categories, orNone(log.Category), minutes)
		if log.Project != "" {
			addMinutes(projects, log.Project, minutes)
		}
	}
	if out.Count > 0 {
		out.AverageMinutes = Round2(float64(out.TotalMinutes) / float64(out.Count))
		out.LongSessionShare = Round2(Share(out.LongSessionCount, out.Count))
	}
	out.TotalFormatted = FormatDuration(out.TotalMinutes)
	out.AverageMood = OptionalMean(mood)
	out.AverageProductivity = OptionalMean(productivity)
	out.AverageDifficulty = OptionalMean(difficulty)
	out.ByCategory = sortedBreakdown(categories)
	out.ByProject = sortedBreakdown(projects)
	return out
}

// ProductivitySource names where a productivity score came from.
type ProductivitySource string

const (
	ProductivityFromWorkLogs ProductivitySource = "work_logs"
	ProductivityFromSessions ProductivitySource = "sessions"
	ProductivityUnavailable  ProductivitySource = "none"
)

// ProductivityScore prefers self-reported work-log productivity. Without it
// each session contributes 1 + 4 * progress rate.
func ProductivityScore(snap Snapshot, work WorkSummary) (*float64, ProductivitySource) {
	if snap.WorkLogsAvailable && work.AverageProductivity != nil {
		return work.AverageProductivity, ProductivityFromWorkLogs
	}
	values := make([]float64, 0, len(snap.Sessions))
	for _, sample := range ProgressSamples(snap.Sessions) {
		values = append(values, sample.Value)
	}
	if score := OptionalMean(values); score != nil {
		return score, ProductivityFromSessions
	}
	return nil, ProductivityUnavailable
}

// LinkedMinutes sums the duration of work logs linked to items, per item
// category. A log linked to several items of one category counts once.
func LinkedMinutes(items []Item, logs []WorkLog) map[Category]int {
	byID := make(map[string]WorkLog, len(logs))
	for _, log := range logs {
		byID[log.ID] = log
	}
	out := map[Category]int{}
	seen := map[Category]map[string]bool{}
	for _, item := range items {
		for _, link := range item.Links {
			log, ok := byID[link.WorkLogID]
			if !ok {
				continue
			}
			if seen[item.Category] == nil {
				seen[item.Category] = map[string]bool{}
			}
			if seen[item.Category][log.ID] {
				continue
			}
			seen[item.Category][log.ID] = true
			out[item.Category] += DurationMinutes(log)
		}
	}
	return out
}

func appendScore(values []float64, v *int) []float64 {
	if v == nil {
		return values
	}
	return append(values, float64(*v))
}

func addMinutes(into map[string]*MinutesBreakdown, name string, minutes int) {
	entry, ok := into[name]
	if !ok {
		entry = &MinutesBreakdown{Name: name}
		into[name] = entry
	}
	entry.Minutes += minutes
	entry.Count++
}

func sortedBreakdown(in map[string]*MinutesBreakdown) []MinutesBreakdown {
	out := make([]MinutesBreakdown, 0, len(in))
	for _, entry := range in {
		entry.Formatted = FormatDuration(entry.Minutes)
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Minutes != out[j].Minutes {
			return out[i].Minutes > out[j].Minutes
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func orNone(value string) string {
	if value == "" {
		return "uncategorized"
	}
	return value
}
