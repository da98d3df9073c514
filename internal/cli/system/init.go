package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/opjerryisgood-cloud/water-app/internal/cli"
	"github.com/opjerryisgood-cloud/water-app/internal/config"
)

// InitCmd writes the active configuration to the config file so it can be
// edited by hand.
type InitCmd struct {
	Force bool `help:"Overwrite an existing config file."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path := ctx.ConfigPath
	if path == "" {
		return errors.New("no config file path set")
	}

	if _, err := os.Stat(path); err == nil {
		if !c.Force {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access config file: %w", err)
	}

	cfg := ctx.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(ctx.Stdout(), "Wrote water config to: %s\n", path)
	return nil
}
