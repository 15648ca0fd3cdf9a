package domain

import (
	"fmt"
	"math"
)

// ScoreField selects an optional 1..5 score from an item.
type ScoreField func(Item) *int

var (
	EmotionField ScoreField = func(i Item) *int { return i.EmotionScore }
	ImpactField  ScoreField = func(i Item) *int { return i.ImpactScore }
)

// ProgressRate is the completed share of a session's items, 0 when empty.
func ProgressRate(s Session) float64 {
	if len(s.Items) == 0 {
		return 0
	}
	done := 0
	for _, item := range s.Items {
		if item.Completed() {
			done++
		}
	}
	return float64(done) / float64(len(s.Items))
}

func PriorityWeight(p Priority) float64 {
	switch p {
	case PriorityMedium:
		return 1.5
	case PriorityHigh:
		return 2.0
	default:
		return 1.0
	}
}

func ImportanceScore(item Item) float64 {
	emotion := scoreOr(item.EmotionScore, DefaultScore)
	impact := scoreOr(item.ImpactScore, DefaultScore)
	return (emotion + impact) / 2 * PriorityWeight(item.Priority)
}

// AverageScore averages field over the items that carry it. ok is false
// when no item has a value, which callers must not read as zero.
func AverageScore(items []Item, field ScoreField) (avg float64, ok bool) {
	values := make([]float64, 0, len(items))
	for _, item := range items {
		if v := field(item); v != nil {
			values = append(values, float64(*v))
		}
	}
	return Mean(values)
}

func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// OptionalMean is Mean reported as a nil-able value for JSON payloads.
func OptionalMean(values []float64) *float64 {
	avg, ok := Mean(values)
	if !ok {
		return nil
	}
	avg = Round2(avg)
	return &avg
}

func OptionalAverage(items []Item, field ScoreField) *float64 {
	avg, ok := AverageScore(items, field)
	if !ok {
		return nil
	}
	avg = Round2(avg)
	return &avg
}

// DurationMinutes is the rounded elapsed time of a finished work log.
// Unfinished or inverted logs count as zero.
func DurationMinutes(w WorkLog) int {
	if w.EndedAt == nil || w.EndedAt.Before(w.StartedAt) {
		return 0
	}
	return int(math.Round(w.EndedAt.Sub(w.StartedAt).Minutes()))
}

func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	h, m := minutes/60, minutes%60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}

// CompletionRate is the percentage of items for which done holds, rounded to
// two decimals. An empty set has a rate of 0.
func CompletionRate[T any](items []T, done func(T) bool) float64 {
	count := 0
	for _, item := range items {
		if done(item) {
			count++
		}
	}
	return Rate(count, len(items))
}

func Rate(part, total int) float64 {
	return Round2(Percent(part, total))
}

// Percent is Rate without rounding. Threshold rules compare against it so a
// value just below a boundary is not rounded onto it.
func Percent(part, total int) float64 {
	return Share(part*100, total)
}

// Share is part/total as a fraction, 0 for an empty total.
func Share(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func scoreOr(v *int, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return float64(*v)
}

func SessionDone(s Session) bool { return s.Status == SessionCompleted }
func ItemDone(i Item) bool       { return i.Completed() }
