package models

import "github.com/opjerryisgood-cloud/water-app/internal/constants"

// DrinkEvent is one logged intake.
type DrinkEvent struct {
	Time   string `json:"time"`   // local time of day, HH:MM
	Amount int    `json:"amount"` // milliliters, always > 0
}

// DailyLog holds a day's drinks in insertion order. Deletion addresses
// entries by position, so the order must never be rearranged.
type DailyLog []DrinkEvent

// Total returns the sum of all amounts in the log.
func (l DailyLog) Total() int {
	total := 0
	for _, e := range l {
		total += e.Amount
	}
	return total
}

// LogArchive maps a YYYY-MM-DD date to that day's log. It is the unit of
// persistence: every save writes the whole archive.
type LogArchive map[string]DailyLog

// NewLogArchive returns an empty archive.
func NewLogArchive() LogArchive {
	return make(LogArchive)
}

// Clone returns a deep copy so callers can hand out snapshots without
// sharing backing arrays.
func (a LogArchive) Clone() LogArchive {
	out := make(LogArchive, len(a))
	for date, log := range a {
		cp := make(DailyLog, len(log))
		copy(cp, log)
		out[date] = cp
	}
	return out
}

// Normalize replaces nil logs with empty ones so they encode as [] rather than null.
func (a LogArchive) Normalize() LogArchive {
	if a == nil {
		return NewLogArchive()
	}
	for date, log := range a {
		if log == nil {
			a[date] = DailyLog{}
		}
	}
	return a
}

// HistoryEntry is one row of the displayed history. OriginalIndex is the
// event's position in insertion order, which is what deletion expects.
type HistoryEntry struct {
	Time          string `json:"time"`
	Amount        int    `json:"amount"`
	OriginalIndex int    `json:"original_index"`
}

// Summary is the read-only view of one day's log consumed by the presentation layer.
type Summary struct {
	Date          string           `json:"date"`
	Goal          int              `json:"goal"`
	Total         int              `json:"total"`
	ProgressRatio float64          `json:"progress_ratio"`
	Status        constants.Status `json:"status"`
	Deficit       int              `json:"deficit"`
	History       []HistoryEntry   `json:"history"`
}

// GoalMet reports whether the day's total reached the goal.
func (s Summary) GoalMet() bool {
	return s.Status == constants.StatusGoalMet
}
