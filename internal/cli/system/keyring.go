package system

import (
	"errors"
	"fmt"

	"github.com/opjerryisgood-cloud/water-app/internal/cli"
	"github.com/opjerryisgood-cloud/water-app/internal/keyring"
)

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()
	if !keyring.IsAvailable() {
		fmt.Fprintln(out, "❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	fmt.Fprintln(out, "✓ OS keyring is available")

	payload, err := keyring.GetArchive()
	switch {
	case err == nil:
		fmt.Fprintf(out, "✓ Drink records are stored in keyring (%d bytes)\n", len(payload))
	case errors.Is(err, keyring.ErrNotFound):
		fmt.Fprintln(out, "ℹ No drink records stored in keyring")
	default:
		return fmt.Errorf("failed to read keyring: %w", err)
	}
	return nil
}

// KeyringClearCmd removes the drink archive from the OS keyring
type KeyringClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (cmd *KeyringClearCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()
	if !cmd.Yes && !confirm(ctx, "This deletes every drink stored in the OS keyring.") {
		fmt.Fprintln(out, "Cancelled.")
		return nil
	}

	if err := keyring.DeleteArchive(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no drink records found in keyring")
		}
		return fmt.Errorf("failed to delete drink records from keyring: %w", err)
	}

	fmt.Fprintln(out, "✓ Drink records deleted from OS keyring")
	return nil
}
