package system

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/opjerryisgood-cloud/water-app/internal/cli"
	"github.com/opjerryisgood-cloud/water-app/internal/constants"
	"github.com/opjerryisgood-cloud/water-app/internal/keyring"
	"github.com/opjerryisgood-cloud/water-app/internal/lock"
	"github.com/opjerryisgood-cloud/water-app/internal/models"
	"github.com/opjerryisgood-cloud/water-app/internal/validation"
)

type DoctorCmd struct {
	Fix bool `help:"Remove malformed drinks from the archive (a backup is taken first)."`
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Backend: %s (%s)\n\n", ctx.Store.Backend(), ctx.Store.Location())

	hasError := false
	report := func(name string, err error) {
		if err != nil {
			fmt.Fprintf(out, "❌ %s: FAIL\n", name)
			fmt.Fprintf(out, "   Error: %v\n", err)
			hasError = true
			return
		}
		fmt.Fprintf(out, "✓ %s: OK\n", name)
	}

	// Check 1: archive readable
	archive, loadErr := ctx.Store.Load()
	report("Archive readable", loadErr)

	// Check 2: archive contents (only if readable)
	if loadErr == nil {
		result := validation.New().ValidateArchive(archive)
		if result.HasConflicts() && cmd.Fix {
			if err := fixArchive(ctx, archive, result.Conflicts); err != nil {
				report("Archive contents", err)
			} else {
				fmt.Fprintln(out, "✓ Archive contents: FIXED")
			}
		} else if result.HasConflicts() {
			report("Archive contents", fmt.Errorf("%d malformed entries (run 'water doctor --fix')\n%s", len(result.Conflicts), result.FormatReport()))
		} else {
			report("Archive contents", nil)
		}
	} else {
		fmt.Fprintln(out, "⊘ Archive contents: SKIPPED (archive not readable)")
	}

	// Check 3: keyring (informational when secure storage is off)
	checkKeyring(ctx, out)

	// Check 4: data directory writable
	report("Data directory writable", checkWritable(ctx.DataDir))

	// Check 5: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Fprintln(out, "⚠ Backups present: WARNING")
		fmt.Fprintf(out, "   %v\n", err)
	} else {
		fmt.Fprintln(out, "✓ Backups present: OK")
	}

	// Check 6: another instance holding the archive (warning only)
	if holder, held := lock.IsHeld(ctx.DataDir); held {
		fmt.Fprintln(out, "⚠ Single instance: WARNING")
		fmt.Fprintf(out, "   archive is in use by PID %d (%s)\n", holder.PID, holder.Executable)
	} else {
		fmt.Fprintln(out, "✓ Single instance: OK")
	}

	// Check 7: clock/timezone sanity
	report("Clock/timezone", checkClockTimezone())

	fmt.Fprintln(out)
	if hasError {
		fmt.Fprintln(out, "Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Fprintln(out, "All diagnostics passed!")
	return nil
}

// fixArchive snapshots the archive, then saves it without the conflicting entries.
func fixArchive(ctx *cli.Context, archive models.LogArchive, conflicts []validation.Conflict) error {
	l, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer l.Release()

	if _, err := ctx.Backups().CreateBackup(archive); err != nil {
		return fmt.Errorf("backup before fix failed: %w", err)
	}

	fixed, actions := validation.AutoFixArchive(conflicts, archive)
	if err := ctx.Store.Save(fixed); err != nil {
		return fmt.Errorf("failed to save fixed archive: %w", err)
	}
	for _, a := range actions {
		fmt.Fprintf(ctx.Stdout(), "   %s\n", a.Action)
	}
	return nil
}

func checkKeyring(ctx *cli.Context, out io.Writer) {
	available := keyring.IsAvailable()
	switch {
	case ctx.Store.Backend() == constants.BackendSecureKV:
		fmt.Fprintln(out, "✓ OS keyring: OK (in use)")
	case !ctx.StorageOptions.SecureStorage:
		fmt.Fprintln(out, "⊘ OS keyring: SKIPPED (secure storage disabled)")
	case available:
		fmt.Fprintln(out, "⚠ OS keyring: WARNING")
		fmt.Fprintln(out, "   keyring is available now but was not at startup")
	default:
		fmt.Fprintln(out, "⚠ OS keyring: WARNING")
		fmt.Fprintln(out, "   keyring unavailable, drinks are kept in the JSON file")
	}
}

func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}
	probe, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return fmt.Errorf("cannot write to %s: %w", dir, err)
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(filepath.Clean(name))
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := ctx.Backups().ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'water backup create'")
	}

	return nil
}

func checkClockTimezone() error {
	now := time.Now()

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	return nil
}
