package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "retrolog/internal/platform/errors"
)

type SessionStatus string

const (
	StatusNotStarted SessionStatus = "not_started"
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	StatusPending    SessionStatus = "pending"
)

type Category string

const (
	CategoryKeep    Category = "keep"
	CategoryProblem Category = "problem"
	CategoryTry     Category = "try"
)

type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type MarkType string

const (
	MarkReflection  MarkType = "reflection"
	MarkMilestone   MarkType = "milestone"
	MarkGoal        MarkType = "goal"
	MarkAchievement MarkType = "achievement"
	MarkLearning    MarkType = "learning"
	MarkOther       MarkType = "other"
)

const (
	ManagedItemsStart = "<!-- retrolog:items:start -->"
	ManagedItemsEnd   = "<!-- retrolog:items:end -->"
	SchemaVersion     = 1
	DateLayout        = "2006-01-02"
)

type WorkLink struct {
	WorkLogID string
	Relevance int
	Notes     string
}

type Item struct {
	ID           string
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
	CreatedAt    time.Time
	CompletedAt  *time.Time
	Links        []WorkLink
}

type Session struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Date        time.Time
	Status      SessionStatus
	Tags        []string
	Slug        string
	NotePath    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
	Items       []Item
}

// RangeQuery selects one user's records dated within [From, To]. An empty
// user or a zero bound leaves that side open.
type RangeQuery struct {
	UserID string
	From   time.Time
	To     time.Time
}

type SessionDocument struct {
	Session Session
	Body    string
}

type Mark struct {
	UserID   string
	Date     time.Time
	Note     string
	Type     MarkType
	NotePath string
}

func ParseStatus(value string) (SessionStatus, error) {
	status := SessionStatus(strings.TrimSpace(value))
	switch status {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusPending:
		return status, nil
	case "":
		return StatusNotStarted, nil
	}
	return "", fmt.Errorf("%w: unsupported session status %q", apperrors.ErrInvalidInput, value)
}

func ParseCategory(value string) (Category, error) {
	category := Category(strings.ToLower(strings.TrimSpace(value)))
	switch category {
	case CategoryKeep, CategoryProblem, CategoryTry:
		return category, nil
	}
	return "", fmt.Errorf("%w: unsupported item category %q", apperrors.ErrInvalidInput, value)
}

func ParsePriority(value string) (Priority, error) {
	priority := Priority(strings.ToLower(strings.TrimSpace(value)))
	switch priority {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh:
		return priority, nil
	}
	return "", fmt.Errorf("%w: unsupported priority %q", apperrors.ErrInvalidInput, value)
}

func ParseMarkType(value string) (MarkType, error) {
	markType := MarkType(strings.ToLower(strings.TrimSpace(value)))
	switch markType {
	case MarkReflection, MarkMilestone, MarkGoal, MarkAchievement, MarkLearning, MarkOther:
		return markType, nil
	case "":
		return MarkReflection, nil
	}
	return "", fmt.Errorf("%w: unsupported mark type %q", apperrors.ErrInvalidInput, value)
}

// ValidateScore accepts nil or a value on the 1..5 scale.
func ValidateScore(name string, v *int) error {
	if v == nil {
		return nil
	}
	if *v < 1 || *v > 5 {
		return fmt.Errorf("%w: %s must be between 1 and 5, got %d", apperrors.ErrInvalidInput, name, *v)
	}
	return nil
}

// SetStatus keeps CompletedAt set exactly when the session is completed.
func (s *Session) SetStatus(status SessionStatus, now time.Time) {
	s.Status = status
	if status == StatusCompleted {
		if s.CompletedAt == nil {
			s.CompletedAt = &now
		}
		return
	}
	s.CompletedAt = nil
}

func (s *Session) FindItem(itemID string) (*Item, error) {
	for idx := range s.Items {
		if s.Items[idx].ID == itemID {
			return &s.Items[idx], nil
		}
	}
	return nil, fmt.Errorf("%w: item %s in session %s", apperrors.ErrNotFound, itemID, s.ID)
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(s.UserID) == "" {
		return fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}
	if s.Date.IsZero() {
		return fmt.Errorf("%w: session date is required", apperrors.ErrInvalidInput)
	}
	if _, err := ParseStatus(string(s.Status)); err != nil {
		return err
	}
	if (s.Status == StatusCompleted) != (s.CompletedAt != nil) {
		return fmt.Errorf("%w: completed_at must be set only for completed sessions", apperrors.ErrInvalidInput)
	}
	for _, item := range s.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (i Item) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return fmt.Errorf("%w: item id is required", apperrors.ErrInvalidInput)
	}
	if _, err := ParseCategory(string(i.Category)); err != nil {
		return err
	}
	if strings.TrimSpace(i.Content) == "" {
		return fmt.Errorf("%w: item content is required", apperrors.ErrInvalidInput)
	}
	if _, err := ParsePriority(string(i.Priority)); err != nil {
		return err
	}
	if err := ValidateScore("emotion_score", i.EmotionScore); err != nil {
		return err
	}
	if err := ValidateScore("impact_score", i.ImpactScore); err != nil {
		return err
	}
	if i.StartDate != nil && i.EndDate != nil && i.EndDate.Before(*i.StartDate) {
		return fmt.Errorf("%w: item end date is before its start date", apperrors.ErrInvalidInput)
	}
	for _, link := range i.Links {
		if strings.TrimSpace(link.WorkLogID) == "" {
			return fmt.Errorf("%w: work log id is required", apperrors.ErrInvalidInput)
		}
		relevance := link.Relevance
		if err := ValidateScore("relevance_score", &relevance); err != nil {
			return err
		}
	}
	return nil
}

func (m Mark) Validate() error {
	if strings.TrimSpace(m.UserID) == "" {
		return fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	if m.Date.IsZero() {
		return fmt.Errorf("%w: mark date is required", apperrors.ErrInvalidInput)
	}
	if _, err := ParseMarkType(string(m.Type)); err != nil {
		return err
	}
	if len(m.Note) > 280 {
		return fmt.Errorf("%w: mark note is longer than 280 characters", apperrors.ErrInvalidInput)
	}
	return nil
}
