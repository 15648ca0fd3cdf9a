package domain

import (
	"errors"
	"testing"
	"time"

	apperrors "retrolog/internal/platform/errors"
)

func validSession() Session {
	return Session{ID: "s1", UserID: "me", Title: "Sprint 4", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Status: StatusInProgress}
}

func TestSetStatusMaintainsCompletedAt(t *testing.T) {
	t.Parallel()
	s := validSession()
	now := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)

	s.SetStatus(StatusCompleted, now)
	if s.CompletedAt == nil || !s.CompletedAt.Equal(now) {
		t.Fatalf("expected completed_at to be set, got %v", s.CompletedAt)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("validate completed: %v", err)
	}
	s.SetStatus(StatusPending, now)
	if s.CompletedAt != nil {
		t.Fatalf("expected completed_at to be cleared")
	}

	broken := validSession()
	broken.CompletedAt = &now
	if err := broken.Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for completed_at on open session, got %v", err)
	}
}

func TestItemValidation(t *testing.T) {
	t.Parallel()
	six := 6
	three := 3
	cases := []struct {
		name string
		item Item
		ok   bool
	}{
		{name: "valid", item: Item{ID: "i", Category: CategoryTry, Content: "pair more", ImpactScore: &three}, ok: true},
		{name: "bad category", item: Item{ID: "i", Category: "idea", Content: "x"}},
		{name: "empty content", item: Item{ID: "i", Category: CategoryKeep}},
		{name: "score out of range", item: Item{ID: "i", Category: CategoryKeep, Content: "x", EmotionScore: &six}},
		{name: "bad relevance", item: Item{ID: "i", Category: CategoryKeep, Content: "x", Links: []WorkLink{{WorkLogID: "w", Relevance: 0}}}},
	}
	for _, tc := range cases {
		err := tc.item.Validate()
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("%s: expected invalid input, got %v", tc.name, err)
		}
	}
}

func TestParseMarkTypeDefaultsToReflection(t *testing.T) {
	t.Parallel()
	got, err := ParseMarkType("")
	if err != nil || got != MarkReflection {
		t.Fatalf("expected reflection default, got %q %v", got, err)
	}
	if _, err := ParseMarkType("holiday"); err == nil {
		t.Fatalf("expected unsupported mark type error")
	}
}
