package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/opjerryisgood-cloud/water-app/internal/constants"
	"github.com/opjerryisgood-cloud/water-app/internal/keyring"
	"github.com/opjerryisgood-cloud/water-app/internal/models"
)

// KeyringStore keeps the archive under a single key in the OS secure storage.
type KeyringStore struct{}

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (s *KeyringStore) Load() (models.LogArchive, error) {
	payload, err := keyring.GetArchive()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return models.NewLogArchive(), nil
		}
		return nil, err
	}

	archive, err := decodeArchive([]byte(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to parse keyring payload: %w", err)
	}
	return archive, nil
}

func (s *KeyringStore) Raw() ([]byte, error) {
	payload, err := keyring.GetArchive()
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(payload), nil
}

func (s *KeyringStore) Save(archive models.LogArchive) error {
	data, err := encodeArchive(archive, "")
	if err != nil {
		return err
	}
	return keyring.SetArchive(strings.TrimSpace(string(data)))
}

func (s *KeyringStore) Backend() constants.Backend {
	return constants.BackendSecureKV
}

func (s *KeyringStore) Location() string {
	return fmt.Sprintf("keyring://%s/%s", constants.AppName, constants.KeyringUser)
}
