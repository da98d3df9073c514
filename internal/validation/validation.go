package validation

import (
	"fmt"
	"sort"
	"time"

	"github.com/opjerryisgood-cloud/water-app/internal/constants"
	"github.com/opjerryisgood-cloud/water-app/internal/models"
	"github.com/opjerryisgood-cloud/water-app/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidDate       ConflictType = "invalid_date"
	ConflictFutureDate        ConflictType = "future_date"
	ConflictInvalidTime       ConflictType = "invalid_time"
	ConflictNonPositiveAmount ConflictType = "non_positive_amount"
	ConflictOversizedAmount   ConflictType = "oversized_amount"
)

// Conflict represents one malformed entry in an archive
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string // archive key
	Index       int    // position in the day's log, -1 for whole-day conflicts
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks drink archives for entries the tracker would never write
type Validator struct {
	now func() time.Time
}

// New creates a new Validator
func New() *Validator {
	return &Validator{now: time.Now}
}

// ValidateArchive reports conflicts in date order so reports are stable.
func (v *Validator) ValidateArchive(archive models.LogArchive) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	today := v.now().Format(constants.DateFormat)

	dates := make([]string, 0, len(archive))
	for date := range archive {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		if _, err := time.Parse(constants.DateFormat, date); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Invalid date key %q (expected YYYY-MM-DD)", date),
				Date:        date,
				Index:       -1,
			})
			continue
		}
		// keys compare correctly as strings once they parse
		if date > today {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureDate,
				Description: fmt.Sprintf("Date %s is in the future", date),
				Date:        date,
				Index:       -1,
			})
		}

		for i, event := range archive[date] {
			if !utils.ValidateTimeFormat(event.Time) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidTime,
					Description: fmt.Sprintf("%s drink #%d has invalid time %q", date, i, event.Time),
					Date:        date,
					Index:       i,
				})
			}
			if event.Amount <= 0 {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictNonPositiveAmount,
					Description: fmt.Sprintf("%s drink #%d has non-positive amount %d", date, i, event.Amount),
					Date:        date,
					Index:       i,
				})
			} else if event.Amount > constants.MaxDrinkML {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictOversizedAmount,
					Description: fmt.Sprintf("%s drink #%d has amount %d above %d ml", date, i, event.Amount, constants.MaxDrinkML),
					Date:        date,
					Index:       i,
				})
			}
		}
	}

	return result
}

// AutoFixArchive returns a copy of archive without the entries named by
// conflicts. Future dates are reported but kept, since a skewed clock
// is the likelier cause.
func AutoFixArchive(conflicts []Conflict, archive models.LogArchive) (models.LogArchive, []FixAction) {
	fixed := archive.Clone()
	var actions []FixAction

	drop := make(map[string]map[int]Conflict)
	for _, c := range conflicts {
		switch c.Type {
		case ConflictInvalidDate:
			delete(fixed, c.Date)
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Removed day %q", c.Date),
				SourceConflict: c,
			})
		case ConflictInvalidTime, ConflictNonPositiveAmount, ConflictOversizedAmount:
			if drop[c.Date] == nil {
				drop[c.Date] = make(map[int]Conflict)
			}
			drop[c.Date][c.Index] = c
		}
	}

	for date, indexes := range drop {
		log, ok := fixed[date]
		if !ok {
			continue
		}
		kept := make(models.DailyLog, 0, len(log))
		for i, event := range log {
			if c, bad := indexes[i]; bad {
				actions = append(actions, FixAction{
					Action:         fmt.Sprintf("Removed %s drink #%d (%s, %d ml)", date, i, event.Time, event.Amount),
					SourceConflict: c,
				})
				continue
			}
			kept = append(kept, event)
		}
		fixed[date] = kept
	}

	return fixed, actions
}
