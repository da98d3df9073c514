package storage

import (
	"github.com/opjerryisgood-cloud/water-app/internal/constants"
	"github.com/opjerryisgood-cloud/water-app/internal/keyring"
	"github.com/opjerryisgood-cloud/water-app/internal/logger"
)

// probeKeyring is swapped out in tests.
var probeKeyring = keyring.IsAvailable

// Options controls backend selection.
type Options struct {
	// DataFile is where the file backend keeps the archive.
	DataFile string
	// SecureStorage allows the keyring backend when the platform offers one.
	SecureStorage bool
}

// Detect picks the backend for this process. It probes the keyring exactly
// once; callers must keep the result instead of calling Detect again.
func Detect(opts Options) constants.Backend {
	if !opts.SecureStorage {
		logger.Debug("Secure storage disabled by config")
		return constants.BackendFileJSON
	}
	if probeKeyring() {
		logger.Debug("OS keyring available")
		return constants.BackendSecureKV
	}
	logger.Info("OS keyring unavailable, using JSON file", "path", opts.DataFile)
	return constants.BackendFileJSON
}

// Open builds the provider for backend.
func Open(backend constants.Backend, opts Options) Provider {
	if backend == constants.BackendSecureKV {
		return NewKeyringStore()
	}
	return NewJSONStore(opts.DataFile)
}
