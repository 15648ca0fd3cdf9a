package domain

import "time"

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func item(category Category, impact, emotion *int, tags ...string) Item {
	return Item{Category: category, ImpactScore: impact, EmotionScore: emotion, Tags: tags}
}

func completed(i Item, at time.Time) Item {
	i.CompletedAt = timePtr(at)
	return i
}

func sessionOn(day time.Time, items ...Item) Session {
	s := Session{ID: "s-" + DayKey(day), UserID: "u1", Date: day, Status: SessionInProgress}
	for idx := range items {
		items[idx].SessionID = s.ID
		items[idx].SessionDate = day
	}
	s.Items = items
	return s
}

func mustRange(start, end time.Time) DateRange {
	r, err := NewDateRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}
