package tracker

import (
	"slices"

	"github.com/opjerryisgood-cloud/water-app/internal/constants"
	"github.com/opjerryisgood-cloud/water-app/internal/logger"
	"github.com/opjerryisgood-cloud/water-app/internal/models"
	"github.com/opjerryisgood-cloud/water-app/internal/utils"
)

// AddEvent appends a drink of amount milliliters to today's log, stamped
// with the current time of day, and saves the archive. Non-positive
// amounts are ignored.
func (t *Tracker) AddEvent(amount int) models.Summary {
	today := t.ensureToday()
	if amount <= 0 {
		logger.Debug("Ignoring non-positive amount", "amount", amount)
		return t.SummaryFor(today)
	}

	event := models.DrinkEvent{
		Time:   utils.TimeOfDay(t.now()),
		Amount: amount,
	}
	t.archive[today] = append(t.archive[today], event)
	t.persist()

	logger.Debug("Drink added", "date", today, "time", event.Time, "amount", amount)
	return t.SummaryFor(today)
}

// AddPreset adds one of the one-tap amounts. Anything else is ignored.
func (t *Tracker) AddPreset(amount int) models.Summary {
	if !slices.Contains(constants.Presets, amount) {
		logger.Debug("Ignoring unknown preset", "amount", amount)
		return t.Summary()
	}
	return t.AddEvent(amount)
}

// AddCustom parses a typed amount and adds it. Empty, non-numeric, zero
// and negative input leaves the archive untouched and is not saved.
func (t *Tracker) AddCustom(raw string) models.Summary {
	amount, err := utils.ParseAmount(raw)
	if err != nil {
		logger.Debug("Ignoring custom amount", "input", raw, "error", err)
		return t.Summary()
	}
	return t.AddEvent(amount)
}

// DeleteEvent removes the drink at index (insertion order) from today's
// log. Later drinks shift down by one. An out-of-range index is a no-op.
func (t *Tracker) DeleteEvent(index int) models.Summary {
	today := t.ensureToday()
	log := t.archive[today]
	if index < 0 || index >= len(log) {
		logger.Debug("Ignoring stale delete index", "index", index, "len", len(log))
		return t.SummaryFor(today)
	}

	removed := log[index]
	t.archive[today] = slices.Delete(log, index, index+1)
	t.persist()

	logger.Debug("Drink deleted", "date", today, "index", index, "amount", removed.Amount)
	return t.SummaryFor(today)
}

// Summary returns today's summary.
func (t *Tracker) Summary() models.Summary {
	return t.SummaryFor(t.ensureToday())
}

// SummaryFor returns the summary of date without touching the archive. A
// date with no log yields an empty summary.
func (t *Tracker) SummaryFor(date string) models.Summary {
	return models.Summarize(date, t.archive[date], t.goal)
}
