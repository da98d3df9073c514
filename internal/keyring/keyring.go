package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/opjerryisgood-cloud/water-app/internal/constants"
)

var (
	// ErrNotFound is returned when no archive is stored in the keyring
	ErrNotFound = errors.New("archive not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetArchive retrieves the serialized archive from the OS keyring.
// Returns ErrNotFound if nothing is stored.
func GetArchive() (string, error) {
	payload, err := keyring.Get(constants.AppName, constants.KeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return payload, nil
}

// SetArchive stores the serialized archive in the OS keyring, replacing
// whatever was there.
func SetArchive(payload string) error {
	if payload == "" {
		return errors.New("archive payload cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.KeyringUser, payload); err != nil {
		return fmt.Errorf("failed to store archive in keyring: %w", err)
	}
	return nil
}

// DeleteArchive removes the archive from the OS keyring.
func DeleteArchive() error {
	err := keyring.Delete(constants.AppName, constants.KeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete archive from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, constants.KeyringProbeUser)
	// ErrNotFound means the keyring answered and is simply empty
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
