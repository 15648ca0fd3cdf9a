package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	apperrors "retrolog/internal/platform/errors"
)

type InsightType string

const (
	InsightSummary        InsightType = "summary"
	InsightSentiment      InsightType = "sentiment"
	InsightTrend          InsightType = "trend"
	InsightRecommendation InsightType = "recommendation"
	InsightPattern        InsightType = "pattern"
)

// AnalysisKind names the shape of an assembled insight payload.
type AnalysisKind string

const (
	KindEmotion       AnalysisKind = "emotion_analysis"
	KindProductivity  AnalysisKind = "productivity_analysis"
	KindPattern       AnalysisKind = "pattern_analysis"
	KindComprehensive AnalysisKind = "comprehensive"
)

var AnalysisKinds = []AnalysisKind{KindEmotion, KindProductivity, KindPattern, KindComprehensive}

func ParseAnalysisKind(value string) (AnalysisKind, error) {
	kind := AnalysisKind(strings.ToLower(strings.TrimSpace(value)))
	switch kind {
	case KindEmotion, KindProductivity, KindPattern, KindComprehensive:
		return kind, nil
	// short forms accepted on the command line
	case "emotion":
		return KindEmotion, nil
	case "productivity":
		return KindProductivity, nil
	case "pattern", "patterns":
		return KindPattern, nil
	}
	return "", fmt.Errorf("%w: unknown analysis kind %q", apperrors.ErrInvalidInput, value)
}

func (k AnalysisKind) InsightType() InsightType {
	switch k {
	case KindEmotion:
		return InsightSentiment
	case KindProductivity:
		return InsightTrend
	case KindPattern:
		return InsightPattern
	default:
		return InsightSummary
	}
}

// Insight is the only record the engine writes.
type Insight struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	SessionID   string          `json:"session_id,omitempty"`
	Type        InsightType     `json:"insight_type"`
	Kind        AnalysisKind    `json:"kind"`
	Confidence  float64         `json:"confidence_score"`
	Content     json.RawMessage `json:"content"`
	DataSource  string          `json:"data_source"`
	Active      bool            `json:"is_active"`
	PeriodStart time.Time       `json:"period_start"`
	PeriodEnd   time.Time       `json:"period_end"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// Confidence grows with the number of data points and saturates at 0.95.
func Confidence(dataPoints int) float64 {
	if dataPoints < 0 {
		dataPoints = 0
	}
	return Round2(math.Min(0.95, 0.2+0.05*float64(dataPoints)))
}

// Suggestion is an optional AI-authored improvement idea.
type Suggestion struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Plan        []string `json:"plan,omitempty"`
	Source      string   `json:"source,omitempty"`
}

// SuggestionRequest carries the aggregate view sent to a suggestion provider.
// It never contains raw item text.
type SuggestionRequest struct {
	UserID          string           `json:"user_id"`
	Period          string           `json:"period"`
	Summary         PeriodSummary    `json:"summary"`
	RecurringThemes []TagCount       `json:"recurring_themes"`
	Recommendations []Recommendation `json:"recommendations"`
}

// InsightFilter selects stored insights. Zero fields match everything.
type InsightFilter struct {
	UserID     string
	Type       InsightType
	ActiveOnly bool
	Limit      int
}
