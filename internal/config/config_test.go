package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opjerryisgood-cloud/water-app/internal/constants"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if !cfg.Storage.SecureStorage {
		t.Error("SecureStorage should default to true")
	}
	if cfg.Backup.MaxSnapshots != constants.MaxBackups {
		t.Errorf("MaxSnapshots = %d, want %d", cfg.Backup.MaxSnapshots, constants.MaxBackups)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Setenv("WATER_TEST_DIR", "/srv/water")
	path := writeConfig(t, `
storage:
  data_file: ${WATER_TEST_DIR}/record.json
  secure_storage: false
log:
  debug: true
`)

	cfg := NewDefaultConfig()
	if err := Load(path, cfg); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Storage.DataFile != "/srv/water/record.json" {
		t.Errorf("DataFile = %q, want env-expanded path", cfg.Storage.DataFile)
	}
	if cfg.Storage.SecureStorage {
		t.Error("SecureStorage = true, want false")
	}
	if !cfg.Log.Debug {
		t.Error("Debug = false, want true")
	}
	// untouched keys keep their defaults
	if cfg.Backup.MaxSnapshots != constants.MaxBackups {
		t.Errorf("MaxSnapshots = %d, want default %d", cfg.Backup.MaxSnapshots, constants.MaxBackups)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "too many snapshots", content: "backup:\n  max_snapshots: 500\n", wantErr: "validation"},
		{name: "zero snapshots", content: "backup:\n  max_snapshots: 0\n", wantErr: "validation"},
		{name: "directory data file", content: "storage:\n  data_file: /tmp/water/\n", wantErr: "validation"},
		{name: "bad yaml", content: "storage: [unclosed\n", wantErr: "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			err := Load(writeConfig(t, tt.content), cfg)
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadOptionalMissingFile(t *testing.T) {
	cfg := NewDefaultConfig()
	err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"), cfg)
	if err != nil {
		t.Fatalf("LoadOptional() on missing file failed: %v", err)
	}
	if !cfg.Storage.SecureStorage {
		t.Error("defaults changed by missing config file")
	}
}

func TestResolveDataFile(t *testing.T) {
	cfg := NewDefaultConfig()
	if got := cfg.ResolveDataFile("/data"); got != filepath.Join("/data", constants.DataFileName) {
		t.Errorf("ResolveDataFile() = %q, want default file in data dir", got)
	}

	cfg.Storage.DataFile = "/elsewhere/water.json"
	if got := cfg.ResolveDataFile("/data"); got != "/elsewhere/water.json" {
		t.Errorf("ResolveDataFile() = %q, want configured path", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandPath("~/water"); got != filepath.Join(home, "water") {
		t.Errorf("ExpandPath(~/water) = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath(/abs/path) = %q", got)
	}
	if got := ExpandPath("~user/x"); got != "~user/x" {
		t.Errorf("ExpandPath(~user/x) = %q, want unchanged", got)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := NewDefaultConfig()
	cfg.Storage.SecureStorage = false
	cfg.Log.Debug = true

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := NewDefaultConfig()
	if err := Load(path, loaded); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Storage.SecureStorage || !loaded.Log.Debug {
		t.Errorf("round trip lost values: %+v", loaded)
	}
	if loaded.Backup.MaxSnapshots != constants.MaxBackups {
		t.Errorf("MaxSnapshots = %d, want %d", loaded.Backup.MaxSnapshots, constants.MaxBackups)
	}
}
