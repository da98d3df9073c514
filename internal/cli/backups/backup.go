package backups

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opjerryisgood-cloud/water-app/internal/cli"
	"github.com/opjerryisgood-cloud/water-app/internal/validation"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Backups()
	backupPath, err := mgr.CreateBackup(ctx.Tracker().Snapshot())
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Fprintf(ctx.Stdout(), "✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Backups()
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	out := ctx.Stdout()
	if len(backups) == 0 {
		fmt.Fprintln(out, "No backups found.")
		fmt.Fprintf(out, "Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	fmt.Fprintf(out, "Available backups (%d total, keeping most recent %d):\n\n", len(backups), ctx.MaxSnapshots())
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04")
		fmt.Fprintf(out, "  %s  %s  (%.1f KB)\n", timestamp, filepath.Base(b.Path), sizeKB)
	}
	fmt.Fprintf(out, "\nBackup directory: %s\n", mgr.GetBackupDir())

	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Backups()
	backupPath, err := c.resolve(mgr.GetBackupDir())
	if err != nil {
		return err
	}

	out := ctx.Stdout()

	snapshot, err := mgr.LoadBackup(backupPath)
	if err != nil {
		return err
	}
	if result := validation.New().ValidateArchive(snapshot); result.HasConflicts() {
		fmt.Fprintf(out, "⚠️  Backup has %d malformed entries; run 'water doctor --fix' after restoring.\n", len(result.Conflicts))
	}

	loadErr := ctx.Tracker().LoadErr()
	if loadErr != nil {
		fmt.Fprintf(out, "⚠️  Current records could not be read (%v).\n", loadErr)
		fmt.Fprintln(out, "They will be copied unchanged into the backup directory before restoring.")
	}

	if !c.Yes {
		fmt.Fprintln(out, "⚠️  WARNING: This will replace all recorded drinks with the backup.")
		fmt.Fprintln(out, "A backup of your current records will be created before restoring.")
		fmt.Fprintf(out, "\nRestore from: %s\n", backupPath)
		fmt.Fprint(out, "Continue? [y/N]: ")

		reader := bufio.NewReader(ctx.Stdin())
		response, err := reader.ReadString('\n')
		if err != nil && response == "" {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Restore cancelled.")
			return nil
		}
	}

	l, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer l.Release()

	if loadErr != nil {
		kept, err := mgr.PreserveRaw(ctx.Store)
		if err != nil {
			return fmt.Errorf("restore aborted: %w", err)
		}
		if kept != "" {
			fmt.Fprintf(out, "Copied unreadable records to: %s\n", filepath.Base(kept))
		}
	}

	safety, err := mgr.RestoreBackup(backupPath, ctx.Tracker().Snapshot(), ctx.Store)
	if safety != "" {
		fmt.Fprintf(out, "Created backup of current records: %s\n", filepath.Base(safety))
	}
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Fprintf(out, "✓ Records restored to %s\n", ctx.Store.Location())
	return nil
}

// resolve accepts an absolute path, a path relative to the working
// directory, or a bare file name inside the backup directory.
func (c *BackupRestoreCmd) resolve(backupDir string) (string, error) {
	backupPath := c.BackupFile

	if filepath.IsAbs(backupPath) {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			return "", fmt.Errorf("backup file not found: %s", backupPath)
		}
		return backupPath, nil
	}

	if _, err := os.Stat(backupPath); err == nil {
		absPath, err := filepath.Abs(backupPath)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return absPath, nil
	}

	possiblePath := filepath.Join(backupDir, c.BackupFile)
	if _, err := os.Stat(possiblePath); err == nil {
		return possiblePath, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", backupDir)
}
