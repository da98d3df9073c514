package storage

import (
	"github.com/opjerryisgood-cloud/water-app/internal/constants"
	"github.com/opjerryisgood-cloud/water-app/internal/models"
)

// Provider persists the whole drink archive. Implementations never keep a
// reference to an archive passed to Save, and Load always returns a fresh copy.
type Provider interface {
	// Load returns the stored archive. A backend with nothing stored yet
	// returns an empty archive and a nil error.
	Load() (models.LogArchive, error)
	// Save overwrites the stored archive with archive.
	Save(archive models.LogArchive) error
	// Raw returns the stored payload without decoding it, or nil when
	// nothing is stored.
	Raw() ([]byte, error)

	Backend() constants.Backend
	// Location describes where the archive lives, for diagnostics.
	Location() string
}
