package system

import (
	"fmt"

	"github.com/opjerryisgood-cloud/water-app/internal/cli"
	"github.com/opjerryisgood-cloud/water-app/internal/constants"
	"github.com/opjerryisgood-cloud/water-app/internal/keyring"
	"github.com/opjerryisgood-cloud/water-app/internal/storage"
)

// MigrateCmd copies the archive from the active backend into the other one.
// The source is left untouched.
type MigrateCmd struct {
	To string `arg:"" enum:"secure-kv,file-json" help:"Destination backend (secure-kv or file-json)."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	dest := constants.Backend(c.To)
	if dest == ctx.Store.Backend() {
		return fmt.Errorf("archive is already stored in %s", dest)
	}
	if dest == constants.BackendSecureKV && !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available on this system")
	}

	l, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer l.Release()

	archive, err := ctx.Store.Load()
	if err != nil {
		return fmt.Errorf("failed to load archive from %s: %w", ctx.Store.Location(), err)
	}

	target := storage.Open(dest, ctx.StorageOptions)
	if err := target.Save(archive.Normalize()); err != nil {
		return fmt.Errorf("failed to write archive to %s: %w", target.Location(), err)
	}

	fmt.Fprintf(ctx.Stdout(), "✓ Copied %d day(s) from %s to %s\n", len(archive), ctx.Store.Location(), target.Location())
	if dest == constants.BackendFileJSON {
		fmt.Fprintln(ctx.Stdout(), "  Set storage.secure_storage: false to use the file from now on.")
	}
	return nil
}
