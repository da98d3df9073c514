// Package tracker owns the in-memory drink archive. Every read and write
// of drink data goes through a Tracker; mutations are persisted through a
// storage.Provider on a best-effort basis.
package tracker

import (
	"time"

	"github.com/opjerryisgood-cloud/water-app/internal/constants"
	"github.com/opjerryisgood-cloud/water-app/internal/logger"
	"github.com/opjerryisgood-cloud/water-app/internal/models"
	"github.com/opjerryisgood-cloud/water-app/internal/storage"
	"github.com/opjerryisgood-cloud/water-app/internal/utils"
)

// Notifier receives persistence failures. It is a side channel only: the
// in-memory archive stays authoritative whatever happens to the write.
type Notifier func(err error)

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithGoal sets the daily goal in milliliters.
func WithGoal(goal int) Option {
	return func(t *Tracker) {
		t.goal = goal
	}
}

// WithNotifier registers a callback for failed saves.
func WithNotifier(n Notifier) Option {
	return func(t *Tracker) {
		t.notify = n
	}
}

// Tracker is not safe for concurrent use. Callers run one operation at a
// time, the way UI events arrive.
type Tracker struct {
	store   storage.Provider
	archive models.LogArchive
	goal    int
	now     func() time.Time
	notify  Notifier

	loadErr error
	saveErr error
}

// New loads the archive from store and makes sure today's log exists.
// A failed load is logged and replaced by an empty archive.
func New(store storage.Provider, opts ...Option) *Tracker {
	t := &Tracker{
		store: store,
		goal:  constants.DailyGoalML,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}

	archive, err := store.Load()
	if err != nil {
		logger.Warn("Failed to load archive, starting empty",
			"backend", store.Backend(), "location", store.Location(), "error", err)
		t.loadErr = err
		archive = nil
	}
	t.archive = archive.Normalize()
	t.ensureToday()

	logger.Debug("Archive loaded", "backend", store.Backend(), "days", len(t.archive))
	return t
}

// Now returns the tracker's clock reading.
func (t *Tracker) Now() time.Time {
	return t.now()
}

// Today returns the archive key for the current date.
func (t *Tracker) Today() string {
	return utils.DateKey(t.now())
}

// Goal returns the daily goal in milliliters.
func (t *Tracker) Goal() int {
	return t.goal
}

// Backend reports which persistence strategy backs this tracker.
func (t *Tracker) Backend() constants.Backend {
	return t.store.Backend()
}

// LoadErr returns the error that forced an empty archive at startup, if any.
func (t *Tracker) LoadErr() error {
	return t.loadErr
}

// LastSaveErr returns the outcome of the most recent save attempt.
func (t *Tracker) LastSaveErr() error {
	return t.saveErr
}

// Snapshot returns a deep copy of the whole archive.
func (t *Tracker) Snapshot() models.LogArchive {
	return t.archive.Clone()
}

// ensureToday inserts an empty log for the current date. It does not
// persist; the new day is written with the next mutation.
func (t *Tracker) ensureToday() string {
	today := t.Today()
	if _, ok := t.archive[today]; !ok {
		t.archive[today] = models.DailyLog{}
	}
	return today
}

func (t *Tracker) persist() {
	err := t.store.Save(t.archive.Clone())
	t.saveErr = err
	if err == nil {
		return
	}

	logger.Warn("Failed to save archive, keeping changes in memory",
		"backend", t.store.Backend(), "location", t.store.Location(), "error", err)
	if t.notify != nil {
		t.notify(err)
	}
}
