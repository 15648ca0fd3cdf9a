package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	apperrors "retrolog/internal/platform/errors"
)

const SchemaVersion = 1

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusPaused     Status = "paused"
	StatusCancelled  Status = "cancelled"
)

func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	switch status {
	case StatusInProgress, StatusCompleted, StatusPaused, StatusCancelled:
		return status, nil
	case "":
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("%w: unsupported work log status %q", apperrors.ErrInvalidInput, value)
}

// ActiveWorkLog is the running timer persisted between CLI invocations.
type ActiveWorkLog struct {
	WorkLogID string    `json:"work_log_id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Project   string    `json:"project"`
	Tags      []string  `json:"tags"`
	Billable  bool      `json:"billable"`
	StartedAt time.Time `json:"started_at"`
}

type Scores struct {
	Mood         *int
	Productivity *int
	Difficulty   *int
}

func (s Scores) Validate() error {
	for name, v := range map[string]*int{"mood": s.Mood, "productivity": s.Productivity, "difficulty": s.Difficulty} {
		if v != nil && (*v < 1 || *v > 5) {
			return fmt.Errorf("%w: %s must be between 1 and 5, got %d", apperrors.ErrInvalidInput, name, *v)
		}
	}
	return nil
}

// ListQuery selects work logs by user and by the calendar day they started,
// inclusive. An empty user or a zero bound leaves that side open.
type ListQuery struct {
	UserID string
	From   time.Time
	To     time.Time
}

type WorkLog struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Category    string
	Project     string
	StartedAt   time.Time
	EndedAt     *time.Time
	Scores      Scores
	Tags        []string
	Billable    bool
	Status      Status
	NotePath    string
}

// DurationMinutes is nil while the log has no end.
func (w WorkLog) DurationMinutes() *int {
	if w.EndedAt == nil {
		return nil
	}
	minutes := int(math.Round(w.EndedAt.Sub(w.StartedAt).Minutes()))
	if minutes < 0 {
		minutes = 0
	}
	return &minutes
}

func (w WorkLog) Validate() error {
	if strings.TrimSpace(w.ID) == "" {
		return fmt.Errorf("%w: work log id is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(w.UserID) == "" {
		return fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(w.Title) == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}
	if w.StartedAt.IsZero() {
		return fmt.Errorf("%w: start time is required", apperrors.ErrInvalidInput)
	}
	if w.EndedAt != nil && w.EndedAt.Before(w.StartedAt) {
		return fmt.Errorf("%w: end time is before start time", apperrors.ErrInvalidInput)
	}
	if _, err := ParseStatus(string(w.Status)); err != nil {
		return err
	}
	return w.Scores.Validate()
}
