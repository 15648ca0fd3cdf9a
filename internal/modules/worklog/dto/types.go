package dto

import "time"

type StartInput struct {
	UserID   string
	Title    string
	Category string
	Project  string
	Tags     []string
	Billable bool
}

type StartOutput struct {
	WorkLogID string
	Title     string
	StartedAt time.Time
}

type StopInput struct {
	WorkLogID    string
	Status       string
	Description  string
	Mood         *int
	Productivity *int
	Difficulty   *int
}

// LogInput records a finished work log after the fact.
type LogInput struct {
	UserID       string
	Title        string
	Description  string
	Category     string
	Project      string
	StartedAt    time.Time
	EndedAt      time.Time
	Mood         *int
	Productivity *int
	Difficulty   *int
	Tags         []string
	Billable     bool
}

type ListInput struct {
	UserID string
	From   time.Time
	To     time.Time
}

type ReindexInput struct{}

type ActiveOutput struct {
	WorkLogID string    `json:"work_log_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Project   string    `json:"project"`
	StartedAt time.Time `json:"started_at"`
}

type WorkLogOutput struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Category        string     `json:"category"`
	Project         string     `json:"project"`
	StartedAt       time.Time  `json:"start_time"`
	EndedAt         *time.Time `json:"end_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Mood            *int       `json:"mood_score,omitempty"`
	Productivity    *int       `json:"productivity_score,omitempty"`
	Difficulty      *int       `json:"difficulty_score,omitempty"`
	Tags            []string   `json:"tags"`
	Billable        bool       `json:"billable"`
	Status          string     `json:"status"`
	NotePath        string     `json:"note_path"`
}
