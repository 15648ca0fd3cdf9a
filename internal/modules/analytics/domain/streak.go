package domain

import (
	"sort"
	"time"
)

// DaySet is a set of calendar days keyed by YYYY-MM-DD.
type DaySet map[string]struct{}

func (d DaySet) Add(day time.Time) {
	d[DayKey(day)] = struct{}{}
}

func (d DaySet) Has(day time.Time) bool {
	_, ok := d[DayKey(day)]
	return ok
}

// ActiveDays collects every day carrying a session or a mark.
func ActiveDays(snap Snapshot) DaySet {
	days := DaySet{}
	for _, s := range snap.Sessions {
		days.Add(s.Date)
	}
	for _, m := range snap.Marks {
		days.Add(m.Date)
	}
	return days
}

// CurrentStreak counts consecutive active days ending at ref, looking back at
// most StreakLookbackDays days.
func CurrentStreak(days DaySet, ref time.Time) int {
	streak := 0
	for i := 0; i < StreakLookbackDays; i++ {
		if !days.Has(ref.AddDate(0, 0, -i)) {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak reports the same value as CurrentStreak. Existing consumers
// read it that way; LongestStreakFullHistory is the true maximum.
func LongestStreak(days DaySet, ref time.Time) int {
	return CurrentStreak(days, ref)
}

// LongestStreakFullHistory is the longest run of consecutive days in the set.
func LongestStreakFullHistory(days DaySet) int {
	keys := make([]string, 0, len(days))
	for key := range days {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	longest, run := 0, 0
	var prev time.Time
	for _, key := range keys {
		day, err := time.Parse(dayLayout, key)
		if err != nil {
			continue
		}
		if run > 0 && prev.AddDate(0, 0, 1).Equal(day) {
			run++
		} else {
			run = 1
		}
		prev = day
		if run > longest {
			longest = run
		}
	}
	return longest
}

type StreakReport struct {
	ReferenceDate      time.Time `json:"reference_date"`
	Current            int       `json:"current"`
	Longest            int       `json:"longest"`
	LongestFullHistory int       `json:"longest_full_history"`
}

func Streaks(days DaySet, ref time.Time) StreakReport {
	return StreakReport{
		ReferenceDate:      ref,
		Current:            CurrentStreak(days, ref),
		Longest:            LongestStreak(days, ref),
		LongestFullHistory: LongestStreakFullHistory(days),
	}
}
