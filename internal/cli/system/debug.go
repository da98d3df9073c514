package system

import (
	"encoding/json"
	"fmt"

	"github.com/opjerryisgood-cloud/water-app/internal/cli"
	"github.com/opjerryisgood-cloud/water-app/internal/lock"
	"github.com/opjerryisgood-cloud/water-app/internal/logger"
	"github.com/opjerryisgood-cloud/water-app/internal/utils"
)

type DebugCmd struct {
	Paths *DebugPathsCmd `cmd:"" help:"Show storage, log and lock paths."`
	Dump  *DebugDumpCmd  `cmd:"" help:"Dump the raw archive as JSON."`
}

type DebugPathsCmd struct{}

func (cmd *DebugPathsCmd) Run(ctx *cli.Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"backend":    string(ctx.Store.Backend()),
		"location":   ctx.Store.Location(),
		"data_dir":   ctx.DataDir,
		"data_file":  ctx.StorageOptions.DataFile,
		"config":     ctx.ConfigPath,
		"backup_dir": ctx.Backups().GetBackupDir(),
		"lock":       lock.Path(ctx.DataDir),
		"log_file":   logger.FilePath(),
		"session":    logger.SessionID,
	}
	return writeJSON(ctx, output)
}

type DebugDumpCmd struct {
	Date string `arg:"" optional:"" help:"Only dump this date (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	tr := ctx.Tracker()
	if err := tr.LoadErr(); err != nil {
		return fmt.Errorf("failed to load archive: %w", err)
	}

	archive := tr.Snapshot()
	if cmd.Date == "" {
		return writeJSON(ctx, archive)
	}

	date, err := utils.ParseDate(cmd.Date, tr.Now())
	if err != nil {
		return err
	}
	log, ok := archive[date]
	if !ok {
		return fmt.Errorf("no drinks recorded for date: %s", date)
	}
	return writeJSON(ctx, log)
}

func writeJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Fprintln(ctx.Stdout(), string(jsonBytes))
	return nil
}
