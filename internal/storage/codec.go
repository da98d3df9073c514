package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/opjerryisgood-cloud/water-app/internal/models"
)

// ErrCorrupt is returned when stored data exists but cannot be decoded.
var ErrCorrupt = errors.New("stored archive is corrupt")

// encodeArchive serializes archive as a JSON object keyed by date. indent
// of "" produces the compact form used by the keyring.
func encodeArchive(archive models.LogArchive, indent string) ([]byte, error) {
	archive = archive.Clone().Normalize()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(archive); err != nil {
		return nil, fmt.Errorf("failed to serialize archive: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeArchive(data []byte) (models.LogArchive, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrCorrupt)
	}

	var archive models.LogArchive
	if err := json.Unmarshal(data, &archive); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	// a bare `null` decodes without error into a nil map
	if archive == nil {
		return nil, fmt.Errorf("%w: document is not an object", ErrCorrupt)
	}
	return archive.Normalize(), nil
}
