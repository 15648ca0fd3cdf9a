package domain

import "time"

// Dashboard is the landing view of one range.
type Dashboard struct {
	Period             PeriodSummary      `json:"period"`
	Streak             StreakReport       `json:"streak"`
	Work               WorkSummary        `json:"work"`
	WorkLogsAvailable  bool               `json:"work_logs_available"`
	Productivity       *float64           `json:"productivity"`
	ProductivitySource ProductivitySource `json:"productivity_source"`
	Trends             TrendSet           `json:"trends"`
	Recommendations    []Recommendation   `json:"recommendations"`
}

type CalendarMark struct {
	Type MarkType `json:"type"`
	Note string   `json:"note,omitempty"`
}

type CalendarDay struct {
	Date              time.Time     `json:"date"`
	Sessions          int           `json:"sessions"`
	CompletedSessions int           `json:"completed_sessions"`
	Items             int           `json:"items"`
	CompletedItems    int           `json:"completed_items"`
	WorkMinutes       int           `json:"work_minutes"`
	Mark              *CalendarMark `json:"mark,omitempty"`
	Active            bool          `json:"active"`
}

// Calendar lays out one entry per day of r. snap must be restricted to r.
func Calendar(r DateRange, snap Snapshot, loc *time.Location) ([]CalendarDay, error) {
	buckets, err := Buckets(r, GranularityDay, time.Monday)
	if err != nil {
		return nil, err
	}
	days := make([]CalendarDay, len(buckets))
	for i, b := range buckets {
		days[i].Date = b.Start
	}
	for _, s := range snap.Sessions {
		idx := BucketIndex(buckets, s.Date)
		if idx < 0 {
			continue
		}
		days[idx].Sessions++
		days[idx].Active = true
		if SessionDone(s) {
			days[idx].CompletedSessions++
		}
		days[idx].Items += len(s.Items)
		for _, item := range s.Items {
			if item.Completed() {
				days[idx].CompletedItems++
			}
		}
	}
	for _, m := range snap.Marks {
		if idx := BucketIndex(buckets, m.Date); idx >= 0 {
			days[idx].Mark = &CalendarMark{Type: m.Type, Note: m.Note}
			days[idx].Active = true
		}
	}
	for _, log := range snap.WorkLogs {
		if idx := BucketIndex(buckets, CivilDay(log.StartedAt, loc)); idx >= 0 {
			days[idx].WorkMinutes += DurationMinutes(log)
		}
	}
	return days, nil
}

type Charts struct {
	Granularity  Granularity   `json:"granularity"`
	Sessions     []Bucket      `json:"sessions"`
	Items        []Bucket      `json:"items"`
	Emotion      []SeriesPoint `json:"emotion"`
	Impact       []SeriesPoint `json:"impact"`
	Productivity []SeriesPoint `json:"productivity"`
	Trends       TrendSet      `json:"trends"`
}

// BuildCharts produces every chart series over the same buckets.
func BuildCharts(r DateRange, g Granularity, weekStart time.Weekday, loc *time.Location, snap Snapshot) (Charts, error) {
	sessions, err := Aggregate(r, g, weekStart, SessionRecords(snap.Sessions))
	if err != nil {
		return Charts{}, err
	}
	items := snap.Items()
	itemBuckets, err := Aggregate(r, g, weekStart, ItemRecords(items))
	if err != nil {
		return Charts{}, err
	}
	out := Charts{
		Granularity:  g,
		Sessions:     sessions,
		Items:        itemBuckets,
		Emotion:      AverageSeries(sessions, ItemSamples(items, EmotionField)),
		Impact:       AverageSeries(sessions, ItemSamples(items, ImpactField)),
		Productivity: AverageSeries(sessions, ProductivitySamples(snap, loc)),
	}
	out.Trends = TrendSet{
		Emotion:      ClassifySeries(out.Emotion),
		Impact:       ClassifySeries(out.Impact),
		Productivity: ClassifySeries(out.Productivity),
	}
	return out, nil
}

// ProductivitySamples uses work-log productivity when any exists and session
// progress otherwise, mirroring ProductivityScore.
func ProductivitySamples(snap Snapshot, loc *time.Location) []Sample {
	if snap.WorkLogsAvailable {
		samples := WorkLogSamples(snap.WorkLogs, loc, func(w WorkLog) *int { return w.Productivity })
		if len(samples) > 0 {
			return samples
		}
	}
	return ProgressSamples(snap.Sessions)
}

type WorkLogStats struct {
	Available    bool          `json:"available"`
	Granularity  Granularity   `json:"granularity"`
	Summary      WorkSummary   `json:"summary"`
	Buckets      []Bucket      `json:"buckets"`
	Minutes      []SeriesTotal `json:"minutes"`
	Mood         []SeriesPoint `json:"mood"`
	Productivity []SeriesPoint `json:"productivity"`
}

func BuildWorkLogStats(r DateRange, g Granularity, weekStart time.Weekday, loc *time.Location, snap Snapshot) (WorkLogStats, error) {
	buckets, err := Aggregate(r, g, weekStart, WorkLogRecords(snap.WorkLogs, loc))
	if err != nil {
		return WorkLogStats{}, err
	}
	return WorkLogStats{
		Available:    snap.WorkLogsAvailable,
		Granularity:  g,
		Summary:      SummarizeWork(snap.WorkLogs),
		Buckets:      buckets,
		Minutes:      SumSeries(buckets, WorkMinuteSamples(snap.WorkLogs, loc)),
		Mood:         AverageSeries(buckets, WorkLogSamples(snap.WorkLogs, loc, func(w WorkLog) *int { return w.Mood })),
		Productivity: AverageSeries(buckets, WorkLogSamples(snap.WorkLogs, loc, func(w WorkLog) *int { return w.Productivity })),
	}, nil
}

// TrendGranularity picks the bucket size used for trend classification in
// dashboards and insights.
func TrendGranularity(r DateRange) Granularity {
	switch days := r.Days(); {
	case days <= 14:
		return GranularityDay
	case days <= 180:
		return GranularityWeek
	default:
		return GranularityMonth
	}
}
