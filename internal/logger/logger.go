// Package logger is the diagnostic side channel. Load and save failures,
// rejected input and lifecycle events land in a rotating file under the data
// directory, and on stderr too when debug is on.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/opjerryisgood-cloud/water-app/internal/constants"
)

// Rotation limits for the log file.
const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 28
)

var (
	// Logger is nil until Init; every helper tolerates that.
	Logger *log.Logger
	// SessionID tags every line written by this process
	SessionID string

	file *lumberjack.Logger
)

// Config selects where logs go and how verbose they are.
type Config struct {
	Debug bool
	// LogDir overrides <DataDir>/logs when set
	LogDir  string
	DataDir string
}

// Dir returns the directory log files are written to.
func (c Config) Dir() string {
	if c.LogDir != "" {
		return c.LogDir
	}
	return filepath.Join(c.DataDir, constants.LogDirName)
}

// Init opens the rotating log file and installs the process-wide logger.
func Init(cfg Config) error {
	dir := cfg.Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file = &lumberjack.Logger{
		Filename:   filepath.Join(dir, constants.LogFileName),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}

	opts := log.Options{
		ReportTimestamp: true,
		Level:           log.InfoLevel,
		Prefix:          "water",
	}
	// stderr only in debug mode, the screen belongs to the UI otherwise
	var out io.Writer = file
	if cfg.Debug {
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
		out = io.MultiWriter(os.Stderr, file)
	}

	SessionID = uuid.NewString()
	Logger = log.NewWithOptions(out, opts).With("session", SessionID)
	return nil
}

// FilePath returns the active log file, or "" before Init.
func FilePath() string {
	if file == nil {
		return ""
	}
	return file.Filename
}

// Close flushes and releases the log file. Logging afterwards is a no-op.
func Close() error {
	Logger = nil
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func emit(level log.Level, msg string, keyvals []interface{}) {
	if Logger == nil {
		return
	}
	Logger.Helper()
	Logger.Log(level, msg, keyvals...)
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) { emit(log.DebugLevel, msg, keyvals) }

// Info logs an info message
func Info(msg string, keyvals ...interface{}) { emit(log.InfoLevel, msg, keyvals) }

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) { emit(log.WarnLevel, msg, keyvals) }

// Error logs an error message
func Error(msg string, keyvals ...interface{}) { emit(log.ErrorLevel, msg, keyvals) }
