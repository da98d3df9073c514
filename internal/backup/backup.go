package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/opjerryisgood-cloud/water-app/internal/constants"
	"github.com/opjerryisgood-cloud/water-app/internal/models"
	"github.com/opjerryisgood-cloud/water-app/internal/storage"
)

// BackupInfo contains information about a snapshot file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64

	counter int
}

// unreadablePrefix marks raw copies; parseStamp rejects it, which keeps
// them out of ListBackups and rotation.
const unreadablePrefix = "unreadable-"

// Manager writes and rotates archive snapshots. Snapshots use the same
// JSON layout as the file backend, whichever backend is active.
type Manager struct {
	backupDir  string
	maxBackups int
	now        func() time.Time
}

// NewManager creates a manager keeping at most maxBackups snapshots under
// <dataDir>/backups. A non-positive limit falls back to the default.
func NewManager(dataDir string, maxBackups int) *Manager {
	if maxBackups <= 0 {
		maxBackups = constants.MaxBackups
	}
	return &Manager{
		backupDir:  filepath.Join(dataDir, constants.BackupDirName),
		maxBackups: maxBackups,
		now:        time.Now,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup writes archive to a new timestamped snapshot and rotates old ones.
func (m *Manager) CreateBackup(archive models.LogArchive) (string, error) {
	return m.createBackup(archive, false)
}

func (m *Manager) createBackup(archive models.LogArchive, skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.uniquePath()
	if err != nil {
		return "", err
	}

	if err := storage.NewJSONStore(path).Save(archive); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			// keep the new snapshot even if old ones linger
			fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
		}
	}

	return path, nil
}

// uniquePath picks a minute-precision name, adding seconds and then a
// counter when snapshots are taken in quick succession.
func (m *Manager) uniquePath() (string, error) {
	now := m.now()
	name := func(stamp string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	}

	path := name(now.Format(constants.BackupTimestampFormat))
	if !exists(path) {
		return path, nil
	}

	stamp := now.Format("20060102-150405")
	path = name(stamp)
	for counter := 1; exists(path); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = name(fmt.Sprintf("%s-%d", stamp, counter))
	}
	return path, nil
}

// ListBackups returns all snapshots, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
			continue
		}

		timestamp, counter, ok := parseStamp(strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix))
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, name),
			Timestamp: timestamp,
			Size:      info.Size(),
			counter:   counter,
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].counter > backups[j].counter
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// parseStamp accepts YYYYMMDD-HHMM, YYYYMMDD-HHMMSS and either with a -N counter.
func parseStamp(s string) (time.Time, int, bool) {
	counter := 0
	parts := strings.Split(s, "-")
	if len(parts) == 3 {
		n, err := strconv.Atoi(parts[2])
		if err != nil || n <= 0 {
			return time.Time{}, 0, false
		}
		counter = n
		s = parts[0] + "-" + parts[1]
	}
	for _, layout := range []string{constants.BackupTimestampFormat, "20060102-150405"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, counter, true
		}
	}
	return time.Time{}, 0, false
}

// rotateBackups removes old snapshots beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := m.maxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// LoadBackup reads a snapshot. Unlike the live stores, a missing or
// corrupt snapshot is an error: restoring garbage must not wipe data.
func (m *Manager) LoadBackup(path string) (models.LogArchive, error) {
	if !exists(path) {
		return nil, fmt.Errorf("backup file does not exist: %s", path)
	}

	archive, err := storage.NewJSONStore(path).Load()
	if err != nil {
		return nil, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}
	return archive, nil
}

// RestoreBackup snapshots current (without rotation) and writes the
// archive found at path through store.
func (m *Manager) RestoreBackup(path string, current models.LogArchive, store storage.Provider) (string, error) {
	archive, err := m.LoadBackup(path)
	if err != nil {
		return "", err
	}

	safety, err := m.createBackup(current, true)
	if err != nil {
		return "", fmt.Errorf("failed to back up current archive before restore: %w", err)
	}

	if err := store.Save(archive); err != nil {
		return safety, fmt.Errorf("failed to restore archive: %w", err)
	}
	return safety, nil
}

// PreserveRaw copies the store's payload byte for byte into the backup
// directory, for archives too damaged to snapshot normally. The copy is
// never listed or rotated. It returns "" when nothing is stored.
func (m *Manager) PreserveRaw(store storage.Provider) (string, error) {
	raw, err := store.Raw()
	if err != nil {
		return "", fmt.Errorf("failed to read current archive: %w", err)
	}
	if raw == nil {
		return "", nil
	}
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	stamp := unreadablePrefix + m.now().Format("20060102-150405")
	for counter := 0; counter <= 100; counter++ {
		name := stamp
		if counter > 0 {
			name = fmt.Sprintf("%s-%d", stamp, counter)
		}
		path := filepath.Join(m.backupDir, constants.BackupFilePrefix+name+constants.BackupFileSuffix)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create raw copy: %w", err)
		}
		if _, err := f.Write(raw); err != nil {
			f.Close()
			return "", fmt.Errorf("failed to write raw copy: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to write raw copy: %w", err)
		}
		return path, nil
	}
	return "", fmt.Errorf("failed to generate unique raw copy filename")
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
