package dto

import "time"

type CreateSessionInput struct {
	UserID      string
	Title       string
	Description string
	Date        time.Time
	Status      string
	Tags        []string
}

type ListSessionsInput struct {
	UserID string
	From   time.Time
	To     time.Time
}

type SetSessionStatusInput struct {
	SessionID string
	Status    string
}

type AddItemInput struct {
	SessionID    string
	Category     string
	Content      string
	DueDate      *time.Time
	StartDate    *time.Time
	EndDate      *time.Time
	EmotionScore *int
	ImpactScore  *int
	Priority     string
	Tags         []string
	Assignee     string
	Notes        string
}

type CompleteItemInput struct {
	SessionID string
	ItemID    string
	Done      bool
}

type LinkWorkLogInput struct {
	SessionID string
	ItemID    string
	WorkLogID string
	Relevance int
	Notes     string
}

type SetMarkInput struct {
	UserID string
	Date   time.Time
	Note   string
	Type   string
}

type ListMarksInput struct {
	UserID string
	From   time.Time
	To     time.Time
}

type ReindexInput struct{}

type WorkLinkOutput struct {
	WorkLogID string `json:"work_log_id"`
	Relevance int    `json:"relevance_score"`
	Notes     string `json:"notes,omitempty"`
}

type ItemOutput struct {
	ID           string           `json:"id"`
	SessionID    string           `json:"session_id"`
	Category     string           `json:"category"`
	Content      string           `json:"content"`
	DueDate      *time.Time       `json:"due_date,omitempty"`
	StartDate    *time.Time       `json:"start_date,omitempty"`
	EndDate      *time.Time       `json:"end_date,omitempty"`
	EmotionScore *int             `json:"emotion_score,omitempty"`
	ImpactScore  *int             `json:"impact_score,omitempty"`
	Priority     string           `json:"priority,omitempty"`
	Tags         []string         `json:"tags"`
	Assignee     string           `json:"assignee,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	CompletedAt  *time.Time       `json:"completed_at,omitempty"`
	Links        []WorkLinkOutput `json:"links,omitempty"`
}

type SessionOutput struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Date        time.Time    `json:"session_date"`
	Status      string       `json:"status"`
	Tags        []string     `json:"tags"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	NotePath    string       `json:"note_path"`
	Items       []ItemOutput `json:"items"`
}

type MarkOutput struct {
	UserID   string    `json:"user_id"`
	Date     time.Time `json:"date"`
	Note     string    `json:"note,omitempty"`
	Type     string    `json:"mark_type"`
	NotePath string    `json:"note_path"`
}
