package models

import "github.com/opjerryisgood-cloud/water-app/internal/constants"

// Summarize computes the summary of log against goal. A non-positive goal
// is treated as already met.
func Summarize(date string, log DailyLog, goal int) Summary {
	total := log.Total()

	ratio := 1.0
	if goal > 0 {
		ratio = float64(total) / float64(goal)
		if ratio > 1 {
			ratio = 1
		}
		if ratio < 0 {
			ratio = 0
		}
	}

	s := Summary{
		Date:          date,
		Goal:          goal,
		Total:         total,
		ProgressRatio: ratio,
		Status:        constants.StatusGoalMet,
		History:       make([]HistoryEntry, 0, len(log)),
	}
	if total < goal {
		s.Status = constants.StatusRemaining
		s.Deficit = goal - total
	}

	// newest first, each row keeps its insertion position
	for i := len(log) - 1; i >= 0; i-- {
		s.History = append(s.History, HistoryEntry{
			Time:          log[i].Time,
			Amount:        log[i].Amount,
			OriginalIndex: i,
		})
	}
	return s
}
