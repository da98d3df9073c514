package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opjerryisgood-cloud/water-app/internal/backup"
	"github.com/opjerryisgood-cloud/water-app/internal/config"
	"github.com/opjerryisgood-cloud/water-app/internal/constants"
	"github.com/opjerryisgood-cloud/water-app/internal/lock"
	"github.com/opjerryisgood-cloud/water-app/internal/logger"
	"github.com/opjerryisgood-cloud/water-app/internal/models"
	"github.com/opjerryisgood-cloud/water-app/internal/storage"
	"github.com/opjerryisgood-cloud/water-app/internal/tracker"
)

type Context struct {
	Config         *config.Config
	ConfigPath     string
	DataDir        string
	StorageOptions storage.Options
	Store          storage.Provider
	In             io.Reader
	Out            io.Writer

	// TrackerOptions are applied when the tracker is first built
	TrackerOptions []tracker.Option

	tracker *tracker.Tracker
}

// Tracker builds the process-wide tracker on first use. Loading happens
// exactly once per process.
func (c *Context) Tracker() *tracker.Tracker {
	if c.tracker == nil {
		c.tracker = tracker.New(c.Store, c.TrackerOptions...)
	}
	return c.tracker
}

// MaxSnapshots is the configured snapshot retention.
func (c *Context) MaxSnapshots() int {
	if c.Config == nil {
		return constants.MaxBackups
	}
	return c.Config.Backup.MaxSnapshots
}

// Backups returns the snapshot manager for the data directory.
func (c *Context) Backups() *backup.Manager {
	return backup.NewManager(c.DataDir, c.MaxSnapshots())
}

// Lock takes the single-owner lock for commands that write the archive.
func (c *Context) Lock() (*lock.Lock, error) {
	return lock.Acquire(c.DataDir)
}

// Stdout returns the command output writer.
func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// PerformAutomaticBackup snapshots the archive and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	path, err := c.Backups().CreateBackup(c.Tracker().Snapshot())
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
		return
	}
	logger.Debug("Automatic backup created", "path", path)
}

// Stdin returns the reader used for confirmations.
func (c *Context) Stdin() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

var (
	totalStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	goalMetStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// StatusLine renders the goal state the way the screen shows it.
func StatusLine(s models.Summary) string {
	if s.GoalMet() {
		return "Goal met!"
	}
	return fmt.Sprintf("%d ml to go", s.Deficit)
}

// PrintSummary writes a human readable summary.
func PrintSummary(w io.Writer, s models.Summary) {
	fmt.Fprintf(w, "%s  %s\n", mutedStyle.Render(s.Date), totalStyle.Render(fmt.Sprintf("%d / %d ml", s.Total, s.Goal)))
	fmt.Fprintf(w, "%s %3.0f%%\n", ProgressText(s.ProgressRatio, 20), s.ProgressRatio*100)
	if s.GoalMet() {
		fmt.Fprintln(w, goalMetStyle.Render(StatusLine(s)))
	} else {
		fmt.Fprintln(w, pendingStyle.Render(StatusLine(s)))
	}

	if len(s.History) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No drinks logged."))
		return
	}
	fmt.Fprintln(w)
	for _, h := range s.History {
		fmt.Fprintf(w, "  [%d] %s  +%d ml\n", h.OriginalIndex, h.Time, h.Amount)
	}
}

// PrintSummaryJSON writes the summary in its machine-readable form.
func PrintSummaryJSON(w io.Writer, s models.Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// ProgressText draws a plain text bar of the given width for ratio in [0,1].
func ProgressText(ratio float64, width int) string {
	filled := int(ratio*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
