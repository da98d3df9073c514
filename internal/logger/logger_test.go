package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opjerryisgood-cloud/water-app/internal/constants"
)

func TestInit(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")

	err := Init(Config{
		Debug:   false,
		DataDir: dataDir,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(dataDir, constants.LogDirName)
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if SessionID == "" {
		t.Error("SessionID is empty after initialization")
	}
	if want := filepath.Join(logDir, constants.LogFileName); FilePath() != want {
		t.Errorf("FilePath() = %q, want %q", FilePath(), want)
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message", "amount", 300)
	Error("Test error message")

	data, err := os.ReadFile(filepath.Join(logDir, constants.LogFileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "Test warning message") {
		t.Errorf("log file missing warning line: %q", content)
	}
	if strings.Contains(content, "Test debug message") {
		t.Errorf("debug line written outside debug mode: %q", content)
	}
	if !strings.Contains(content, SessionID) {
		t.Errorf("log file missing session id %s", SessionID)
	}
}

func TestInitCustomLogDir(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "custom-logs")

	err := Init(Config{
		Debug:   true,
		LogDir:  logDir,
		DataDir: "/unused",
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}

	if _, err := os.Stat(logDir); err != nil {
		t.Errorf("custom log directory not created: %v", err)
	}

	Debug("Test debug message in debug mode")
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestClose(t *testing.T) {
	if err := Init(Config{DataDir: t.TempDir()}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if Logger != nil || FilePath() != "" {
		t.Error("logger still active after Close")
	}
	Info("dropped after close")
	if err := Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
