package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "retrolog/internal/platform/errors"
)

type Granularity string

const (
	GranularityDay     Granularity = "day"
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

func ParseGranularity(value string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(value)))
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityQuarter, GranularityYear:
		return g, nil
	case "":
		return GranularityDay, nil
	}
	return "", fmt.Errorf("%w: unknown granularity %q", apperrors.ErrInvalidRange, value)
}

// Bucket is one time window. Start and End are inclusive calendar days
// clipped to the requested range.
type Bucket struct {
	Label     string         `json:"label"`
	Start     time.Time      `json:"start"`
	End       time.Time      `json:"end"`
	Total     int            `json:"total"`
	Completed int            `json:"completed"`
	ByType    map[string]int `json:"by_type"`
}

func (b Bucket) CompletionRate() float64 {
	return Rate(b.Completed, b.Total)
}

// Record is anything that lands in a bucket.
type Record struct {
	Day       time.Time
	Completed bool
	Kind      string
}

// Buckets partitions r into calendar-aligned windows. Weeks begin on
// weekStart; months, quarters and years on their first day.
func Buckets(r DateRange, g Granularity, weekStart time.Weekday) ([]Bucket, error) {
	if _, err := ParseGranularity(string(g)); err != nil {
		return nil, err
	}
	if r.Start.After(r.End) {
		return nil, fmt.Errorf("%w: start %s is after end %s", apperrors.ErrInvalidRange, DayKey(r.Start), DayKey(r.End))
	}
	out := make([]Bucket, 0)
	for start := periodStart(r.Start, g, weekStart); !start.After(r.End); start = nextPeriod(start, g) {
		if len(out) == MaxBuckets {
			return nil, fmt.Errorf("%w: range %s exceeds %d %s buckets", apperrors.ErrInvalidRange, r, MaxBuckets, g)
		}
		end := nextPeriod(start, g).AddDate(0, 0, -1)
		bucket := Bucket{Label: bucketLabel(start, g), Start: start, End: end, ByType: map[string]int{}}
		if bucket.Start.Before(r.Start) {
			bucket.Start = r.Start
		}
		if bucket.End.After(r.End) {
			bucket.End = r.End
		}
		out = append(out, bucket)
	}
	return out, nil
}

// Aggregate counts records into buckets. Records outside r are ignored.
func Aggregate(r DateRange, g Granularity, weekStart time.Weekday, records []Record) ([]Bucket, error) {
	buckets, err := Buckets(r, g, weekStart)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		idx := BucketIndex(buckets, rec.Day)
		if idx < 0 {
			continue
		}
		buckets[idx].Total++
		if rec.Completed {
			buckets[idx].Completed++
		}
		if rec.Kind != "" {
			buckets[idx].ByType[rec.Kind]++
		}
	}
	return buckets, nil
}

// BucketIndex finds the bucket holding day, or -1.
func BucketIndex(buckets []Bucket, day time.Time) int {
	i := sort.Search(len(buckets), func(i int) bool { return !buckets[i].End.Before(day) })
	if i < len(buckets) && !day.Before(buckets[i].Start) {
		return i
	}
	return -1
}

func SessionRecords(sessions []Session) []Record {
	out := make([]Record, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, Record{Day: s.Date, Completed: SessionDone(s), Kind: string(s.Status)})
	}
	return out
}

func ItemRecords(items []Item) []Record {
	out := make([]Record, 0, len(items))
	for _, item := range items {
		out = append(out, Record{Day: item.SessionDate, Completed: item.Completed(), Kind: string(item.Category)})
	}
	return out
}

func WorkLogRecords(logs []WorkLog, loc *time.Location) []Record {
	out := make([]Record, 0, len(logs))
	for _, log := range logs {
		out = append(out, Record{Day: CivilDay(log.StartedAt, loc), Completed: log.Status == WorkCompleted, Kind: log.Category})
	}
	return out
}

// Sample is one scored observation on a calendar day.
type Sample struct {
	Day   time.Time
	Value float64
}

// SeriesPoint is a per-bucket average. Average is nil for empty buckets so
// that gaps stay distinguishable from zero.
type SeriesPoint struct {
	Label   string   `json:"label"`
	Average *float64 `json:"average"`
	Count   int      `json:"count"`
}

// SeriesTotal is a per-bucket sum.
type SeriesTotal struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

func AverageSeries(buckets []Bucket, samples []Sample) []SeriesPoint {
	sums := make([]float64, len(buckets))
	counts := make([]int, len(buckets))
	for _, s := range samples {
		if idx := BucketIndex(buckets, s.Day); idx >= 0 {
			sums[idx] += s.Value
			counts[idx]++
		}
	}
	out := make([]SeriesPoint, len(buckets))
	for i, b := range buckets {
		out[i] = SeriesPoint{Label: b.Label, Count: counts[i]}
		if counts[i] > 0 {
			avg := Round2(sums[i] / float64(counts[i]))
			out[i].Average = &avg
		}
	}
	return out
}

func SumSeries(buckets []Bucket, samples []Sample) []SeriesTotal {
	out := make([]SeriesTotal, len(buckets))
	for i, b := range buckets {
		out[i].Label = b.Label
	}
	for _, s := range samples {
		if idx := BucketIndex(buckets, s.Day); idx >= 0 {
			out[idx].Total += s.Value
			out[idx].Count++
		}
	}
	return out
}

func ItemSamples(items []Item, field ScoreField) []Sample {
	out := make([]Sample, 0, len(items))
	for _, item := range items {
		if v := field(item); v != nil {
			out = append(out, Sample{Day: item.SessionDate, Value: float64(*v)})
		}
	}
	return out
}

func WorkLogSamples(logs []WorkLog, loc *time.Location, field func(WorkLog) *int) []Sample {
	out := make([]Sample, 0, len(logs))
	for _, log := range logs {
		if v := field(log); v != nil {
			out = append(out, Sample{Day: CivilDay(log.StartedAt, loc), Value: float64(*v)})
		}
	}
	return out
}

func WorkMinuteSamples(logs []WorkLog, loc *time.Location) []Sample {
	out := make([]Sample, 0, len(logs))
	for _, log := range logs {
		out = append(out, Sample{Day: CivilDay(log.StartedAt, loc), Value: float64(DurationMinutes(log))})
	}
	return out
}

// ProgressSamples maps each non-empty session onto the 1..5 scale.
func ProgressSamples(sessions []Session) []Sample {
	out := make([]Sample, 0, len(sessions))
	for _, s := range sessions {
		if len(s.Items) == 0 {
			continue
		}
		out = append(out, Sample{Day: s.Date, Value: 1 + 4*ProgressRate(s)})
	}
	return out
}

func periodStart(day time.Time, g Granularity, weekStart time.Weekday) time.Time {
	y, m, _ := day.Date()
	switch g {
	case GranularityWeek:
		offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
		return day.AddDate(0, 0, -offset)
	case GranularityMonth:
		return Date(y, m, 1)
	case GranularityQuarter:
		return Date(y, time.Month((int(m)-1)/3*3+1), 1)
	case GranularityYear:
		return Date(y, time.January, 1)
	default:
		return day
	}
}

func nextPeriod(start time.Time, g Granularity) time.Time {
	switch g {
	case GranularityWeek:
		return start.AddDate(0, 0, 7)
	case GranularityMonth:
		return start.AddDate(0, 1, 0)
	case GranularityQuarter:
		return start.AddDate(0, 3, 0)
	case GranularityYear:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}

func bucketLabel(start time.Time, g Granularity) string {
	switch g {
	case GranularityMonth:
		return start.Format("2006-01")
	case GranularityQuarter:
		return fmt.Sprintf("%d-Q%d", start.Year(), (int(start.Month())-1)/3+1)
	case GranularityYear:
		return start.Format("2006")
	default:
		return DayKey(start)
	}
}
