package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/opjerryisgood-cloud/water-app/internal/constants"
	"github.com/opjerryisgood-cloud/water-app/internal/models"
)

const fileIndent = "    "

// JSONStore keeps the archive in a single pretty-printed JSON file.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Load() (models.LogArchive, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.NewLogArchive(), nil
		}
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}

	archive, err := decodeArchive(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return archive, nil
}

func (s *JSONStore) Raw() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (s *JSONStore) Save(archive models.LogArchive) error {
	data, err := encodeArchive(archive, fileIndent)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	return nil
}

func (s *JSONStore) Backend() constants.Backend {
	return constants.BackendFileJSON
}

func (s *JSONStore) Location() string {
	return s.path
}
