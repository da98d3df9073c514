// Package lock keeps a single process in charge of the archive. The lock
// file holds "pid|executable"; a lock whose process is gone is stale and
// may be taken over.
package lock

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/opjerryisgood-cloud/water-app/internal/constants"
	"github.com/opjerryisgood-cloud/water-app/internal/logger"
)

// ErrLocked is returned when another live process holds the lock.
var ErrLocked = errors.New("archive is in use by another process")

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
	executableFunc  = currentExecutable
)

// Lock is a held lock file.
type Lock struct {
	path string
}

// Holder describes the process named in a lock file.
type Holder struct {
	PID        int
	Executable string
}

// Path returns the lock file location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, constants.LockFileName)
}

// Acquire takes the lock in dir, replacing a stale one. The lock file
// appears atomically with its content, so two processes racing for it
// cannot both win.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := Path(dir)
	content := fmt.Sprintf("%d|%s", getpidFunc(), executableFunc())

	for attempt := 0; ; attempt++ {
		err := publish(dir, path, content)
		if err == nil {
			return &Lock{path: path}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to write lock file: %w", err)
		}
		if attempt > 0 {
			return nil, lockedError(path)
		}
		if err := clearStale(path); err != nil {
			return nil, err
		}
	}
}

// publish links a fully written temp file to path. Link fails with
// os.ErrExist when path is already taken.
func publish(dir, path, content string) error {
	tmp, err := os.CreateTemp(dir, constants.LockFileName+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Link(tmp.Name(), path)
}

// clearStale removes the lock at path unless a live process holds it.
// A lock rewritten since it was judged stale is left alone.
func clearStale(path string) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read lock file: %w", err)
	}

	holder, err := parseHolder(raw)
	switch {
	case err != nil:
		logger.Warn("Replacing unreadable lock", "path", path, "error", err)
	case alive(holder):
		return fmt.Errorf("%w (pid %d, %s)", ErrLocked, holder.PID, holder.Executable)
	default:
		logger.Info("Replacing stale lock", "pid", holder.PID, "executable", holder.Executable)
	}

	if current, err := os.ReadFile(path); err != nil || !bytes.Equal(current, raw) {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stale lock: %w", err)
	}
	return nil
}

func lockedError(path string) error {
	holder, err := ReadHolder(path)
	if err != nil {
		return ErrLocked
	}
	return fmt.Errorf("%w (pid %d, %s)", ErrLocked, holder.PID, holder.Executable)
}

// Release removes the lock file. Releasing twice is harmless.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// ReadHolder parses the lock file at path.
func ReadHolder(path string) (Holder, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Holder{}, err
	}
	return parseHolder(content)
}

func parseHolder(content []byte) (Holder, error) {
	parts := strings.SplitN(strings.TrimSpace(string(content)), "|", 2)
	if len(parts) != 2 {
		return Holder{}, errors.New("lock file is malformed")
	}

	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return Holder{}, errors.New("invalid process ID in lock file")
	}
	return Holder{PID: pid, Executable: parts[1]}, nil
}

// IsHeld reports whether a live process other than this one holds the lock in dir.
func IsHeld(dir string) (Holder, bool) {
	holder, err := ReadHolder(Path(dir))
	if err != nil {
		return Holder{}, false
	}
	return holder, alive(holder)
}

func alive(h Holder) bool {
	if h.PID == getpidFunc() {
		return false
	}
	process, err := findProcessFunc(h.PID)
	if err != nil || process == nil {
		return false
	}
	// pid reuse: a different program now owns the number
	return h.Executable == "" || process.Executable() == h.Executable
}

func currentExecutable() string {
	exe, err := os.Executable()
	if err != nil {
		return constants.AppName
	}
	return filepath.Base(exe)
}
