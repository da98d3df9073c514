package lock

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ps "github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int {
	return m.pid
}

func (m *mockProcess) PPid() int {
	return 0
}

func (m *mockProcess) Executable() string {
	return m.executable
}

func stubProcesses(t *testing.T, running map[int]string) {
	t.Helper()
	oldFind, oldPid, oldExe := findProcessFunc, getpidFunc, executableFunc
	t.Cleanup(func() {
		findProcessFunc, getpidFunc, executableFunc = oldFind, oldPid, oldExe
	})

	getpidFunc = func() int { return 100 }
	executableFunc = func() string { return "water" }
	findProcessFunc = func(pid int) (ps.Process, error) {
		exe, ok := running[pid]
		if !ok {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: exe}, nil
	}
}

func TestAcquireAndRelease(t *testing.T) {
	stubProcesses(t, nil)
	dir := t.TempDir()

	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}

	holder, err := ReadHolder(Path(dir))
	if err != nil {
		t.Fatalf("ReadHolder() failed: %v", err)
	}
	if holder.PID != 100 || holder.Executable != "water" {
		t.Errorf("holder = %+v, want pid 100 executable water", holder)
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release() failed: %v", err)
	}
	if _, err := os.Stat(Path(dir)); !os.IsNotExist(err) {
		t.Error("lock file still present after Release()")
	}
	if err := l.Release(); err != nil {
		t.Errorf("second Release() returned %v", err)
	}
}

func TestAcquireHeldByLiveProcess(t *testing.T) {
	stubProcesses(t, map[int]string{4242: "water"})
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte("4242|water"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Acquire(dir)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("Acquire() error = %v, want ErrLocked", err)
	}

	holder, held := IsHeld(dir)
	if !held || holder.PID != 4242 {
		t.Errorf("IsHeld() = %+v, %v; want pid 4242 held", holder, held)
	}
}

func TestAcquireReplacesStaleLock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		running map[int]string
	}{
		{name: "dead process", content: "4242|water", running: nil},
		{name: "pid reused by another program", content: "4242|water", running: map[int]string{4242: "bash"}},
		{name: "own pid", content: "100|water", running: map[int]string{100: "water"}},
		{name: "malformed", content: "garbage", running: nil},
		{name: "bad pid", content: "abc|water", running: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubProcesses(t, tt.running)
			dir := t.TempDir()
			if err := os.WriteFile(Path(dir), []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			l, err := Acquire(dir)
			if err != nil {
				t.Fatalf("Acquire() failed on stale lock: %v", err)
			}
			defer l.Release()

			holder, err := ReadHolder(Path(dir))
			if err != nil || holder.PID != 100 {
				t.Errorf("lock not taken over: %+v, %v", holder, err)
			}
		})
	}
}

func TestReleaseNil(t *testing.T) {
	var l *Lock
	if err := l.Release(); err != nil {
		t.Errorf("nil Release() returned %v", err)
	}
}

func TestAcquireLeavesOnlyLockFile(t *testing.T) {
	stubProcesses(t, nil)
	dir := t.TempDir()

	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}
	defer l.Release()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != filepath.Base(Path(dir)) {
		t.Errorf("lock dir entries = %v, want only the lock file", entries)
	}
}

// TestAcquireConcurrentProcesses runs several copies of the test binary
// against one directory; exactly one may win while the winner is alive.
func TestAcquireConcurrentProcesses(t *testing.T) {
	if dir := os.Getenv("WATER_LOCK_DIR"); dir != "" {
		l, err := Acquire(dir)
		switch {
		case errors.Is(err, ErrLocked):
			fmt.Print("locked")
		case err != nil:
			fmt.Print(err)
			os.Exit(1)
		default:
			fmt.Print("acquired")
			time.Sleep(3 * time.Second)
			l.Release()
		}
		os.Exit(0)
	}

	dir := t.TempDir()
	const workers = 4
	cmds := make([]*exec.Cmd, workers)
	outs := make([]*bytes.Buffer, workers)
	for i := range cmds {
		outs[i] = &bytes.Buffer{}
		cmds[i] = exec.Command(os.Args[0], "-test.run=TestAcquireConcurrentProcesses$")
		cmds[i].Env = append(os.Environ(), "WATER_LOCK_DIR="+dir)
		cmds[i].Stdout = outs[i]
		if err := cmds[i].Start(); err != nil {
			t.Fatalf("failed to start worker %d: %v", i, err)
		}
	}

	acquired, locked := 0, 0
	for i, cmd := range cmds {
		if err := cmd.Wait(); err != nil {
			t.Fatalf("worker %d failed: %v (%s)", i, err, outs[i].String())
		}
		switch strings.TrimSpace(outs[i].String()) {
		case "acquired":
			acquired++
		case "locked":
			locked++
		default:
			t.Errorf("worker %d printed %q", i, outs[i].String())
		}
	}
	if acquired != 1 || locked != workers-1 {
		t.Errorf("acquired = %d, locked = %d; want 1 and %d", acquired, locked, workers-1)
	}
}
