package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "retrolog/internal/platform/errors"
)

type SessionStatus string

const (
	SessionNotStarted SessionStatus = "not_started"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionPending    SessionStatus = "pending"
)

type Category string

const (
	CategoryKeep    Category = "keep"
	CategoryProblem Category = "problem"
	CategoryTry     Category = "try"
)

// Categories lists item categories in display order.
var Categories = []Category{CategoryKeep, CategoryProblem, CategoryTry}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type WorkStatus string

const (
	WorkInProgress WorkStatus = "in_progress"
	WorkCompleted  WorkStatus = "completed"
	WorkPaused     WorkStatus = "paused"
	WorkCancelled  WorkStatus = "cancelled"
)

type MarkType string

type WorkLink struct {
	WorkLogID string
	Relevance int
	Notes     string
}

type Item struct {
	ID           string
	SessionID    string
	SessionDate  time.Time
	Category     Category
	Content      string
	DueDate      *time.Time
	StartDate    *time.Time
	EndDate      *time.Time
	EmotionScore *int
	ImpactScore  *int
	Priority     Priority
	Tags         []string
	Assignee     string
	Notes        string
	CompletedAt  *time.Time
	Links        []WorkLink
}

func (i Item) Completed() bool {
	return i.CompletedAt != nil
}

type Session struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Date        time.Time
	Status      SessionStatus
	Tags        []string
	CompletedAt *time.Time
	Items       []Item
}

type WorkLog struct {
	ID           string
	UserID       string
	Title        string
	Category     string
	Project      string
	StartedAt    time.Time
	EndedAt      *time.Time
	Mood         *int
	Productivity *int
	Difficulty   *int
	Tags         []string
	Billable     bool
	Status       WorkStatus
}

type Mark struct {
	UserID string
	Date   time.Time
	Note   string
	Type   MarkType
}

// Snapshot is the immutable journal view one computation works on.
// WorkLogsAvailable is false when no work-log source is wired, which is
// different from a source that returned nothing.
type Snapshot struct {
	Sessions          []Session
	Marks             []Mark
	WorkLogs          []WorkLog
	WorkLogsAvailable bool
}

func (s Snapshot) Items() []Item {
	out := make([]Item, 0)
	for _, session := range s.Sessions {
		out = append(out, session.Items...)
	}
	return out
}

// Within keeps the records whose calendar day falls inside r.
func (s Snapshot) Within(r DateRange, loc *time.Location) Snapshot {
	out := Snapshot{WorkLogsAvailable: s.WorkLogsAvailable}
	for _, session := range s.Sessions {
		if r.Contains(session.Date) {
			out.Sessions = append(out.Sessions, session)
		}
	}
	for _, mark := range s.Marks {
		if r.Contains(mark.Date) {
			out.Marks = append(out.Marks, mark)
		}
	}
	for _, log := range s.WorkLogs {
		if r.Contains(CivilDay(log.StartedAt, loc)) {
			out.WorkLogs = append(out.WorkLogs, log)
		}
	}
	return out
}

const dayLayout = "2006-01-02"

// Date builds a calendar day. Calendar days are midnight UTC throughout the
// engine so that day arithmetic never crosses a DST boundary.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CivilDay returns the calendar day t falls on when observed in loc.
func CivilDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Date(y, m, d)
}

func DayKey(day time.Time) string {
	return day.Format(dayLayout)
}

func ParseDay(value string) (time.Time, error) {
	day, err := time.Parse(dayLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", apperrors.ErrInvalidInput, value)
	}
	return day, nil
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	start = CivilDay(start, time.UTC)
	end = CivilDay(end, time.UTC)
	if start.After(end) {
		return DateRange{}, fmt.Errorf("%w: start %s is after end %s", apperrors.ErrInvalidRange, DayKey(start), DayKey(end))
	}
	return DateRange{Start: start, End: end}, nil
}

// LastDays is the range of n days ending at end.
func LastDays(end time.Time, n int) DateRange {
	if n < 1 {
		n = 1
	}
	end = CivilDay(end, time.UTC)
	return DateRange{Start: end.AddDate(0, 0, -(n - 1)), End: end}
}

func (r DateRange) Days() int {
	if r.Start.After(r.End) {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func (r DateRange) Contains(day time.Time) bool {
	return !day.Before(r.Start) && !day.After(r.End)
}

// Union spans both ranges and any gap between them.
func (r DateRange) Union(other DateRange) DateRange {
	out := r
	if other.Start.Before(out.Start) {
		out.Start = other.Start
	}
	if other.End.After(out.End) {
		out.End = other.End
	}
	return out
}

func (r DateRange) String() string {
	return DayKey(r.Start) + ".." + DayKey(r.End)
}

// AnalyticsContext scopes one request. Nothing in the engine reads ambient
// state; everything it needs arrives here.
type AnalyticsContext struct {
	UserID    string
	Range     DateRange
	Now       time.Time
	WeekStart time.Weekday
	Location  *time.Location
}

func (c AnalyticsContext) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	if c.Range.Start.IsZero() || c.Range.End.IsZero() {
		return fmt.Errorf("%w: date range is required", apperrors.ErrInvalidRange)
	}
	if c.Range.Start.After(c.Range.End) {
		return fmt.Errorf("%w: start %s is after end %s", apperrors.ErrInvalidRange, DayKey(c.Range.Start), DayKey(c.Range.End))
	}
	return nil
}

// Today is the calendar day of Now in the request location.
func (c AnalyticsContext) Today() time.Time {
	return CivilDay(c.Now, c.Location)
}
