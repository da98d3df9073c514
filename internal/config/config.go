// Package config holds the optional YAML configuration of the water CLI.
package config

import (
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/opjerryisgood-cloud/water-app/internal/constants"
)

// Config represents the application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Backup  BackupConfig  `yaml:"backup"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	return c.Backup.Validate()
}

// StorageConfig controls where the archive lives.
type StorageConfig struct {
	// DataFile is used by the file backend. Empty means <data-dir>/water_record.json.
	DataFile string `yaml:"data_file"`
	// SecureStorage lets the OS keyring back the archive when it is available.
	SecureStorage bool `yaml:"secure_storage"`
}

// Validate validates the storage configuration.
func (c *StorageConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DataFile, validation.By(notDirectory)),
	)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Debug bool   `yaml:"debug"`
	Dir   string `yaml:"dir"`
}

// BackupConfig holds snapshot retention.
type BackupConfig struct {
	MaxSnapshots int `yaml:"max_snapshots"`
}

// Validate validates the backup configuration.
func (c *BackupConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MaxSnapshots, validation.Required, validation.Min(1), validation.Max(100)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			SecureStorage: true,
		},
		Backup: BackupConfig{
			MaxSnapshots: constants.MaxBackups,
		},
	}
}

// ResolveDataFile returns the archive file path, defaulting into dataDir.
func (c *Config) ResolveDataFile(dataDir string) string {
	if c.Storage.DataFile != "" {
		return ExpandPath(c.Storage.DataFile)
	}
	return filepath.Join(dataDir, constants.DataFileName)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func notDirectory(value interface{}) error {
	path, _ := value.(string)
	if path == "" {
		return nil
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return validation.NewError("validation_not_file", "must be a file path, not a directory")
	}
	return nil
}
