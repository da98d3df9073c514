package main

import (
	"github.com/alecthomas/kong"
	_ "github.com/joho/godotenv/autoload"

	"github.com/opjerryisgood-cloud/water-app/internal/cli"
	"github.com/opjerryisgood-cloud/water-app/internal/cli/backups"
	"github.com/opjerryisgood-cloud/water-app/internal/cli/drinks"
	"github.com/opjerryisgood-cloud/water-app/internal/cli/system"
	"github.com/opjerryisgood-cloud/water-app/internal/config"
	"github.com/opjerryisgood-cloud/water-app/internal/constants"
	"github.com/opjerryisgood-cloud/water-app/internal/errors"
	"github.com/opjerryisgood-cloud/water-app/internal/logger"
	"github.com/opjerryisgood-cloud/water-app/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${config_file}" env:"WATER_CONFIG"`
	DataDir string `help:"Directory for the drink archive, backups and logs." default:"${data_dir}" env:"WATER_DATA_DIR"`
	Debug   bool   `help:"Enable debug logging to stderr." env:"WATER_DEBUG"`

	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive tracker." default:"1"`
	Add    drinks.AddCmd    `cmd:"" help:"Log a drink of any amount."`
	Quick  drinks.QuickCmd  `cmd:"" help:"Log a preset drink (100, 300 or 500 ml)."`
	Delete drinks.DeleteCmd `cmd:"" help:"Delete one of today's drinks."`
	Status drinks.StatusCmd `cmd:"" help:"Show progress toward the daily goal."`

	Init      system.InitCmd    `cmd:"" help:"Write a config file with the current settings."`
	Doctor    system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Migrate   system.MigrateCmd `cmd:"" help:"Copy the archive into the other storage backend."`
	DebugInfo system.DebugCmd   `cmd:"" name:"debug-info" help:"Debug commands for troubleshooting."`
	Keyring   struct {
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability." default:"1"`
		Clear  system.KeyringClearCmd  `cmd:"" help:"Delete the archive stored in the OS keyring."`
	} `cmd:"" help:"Manage the OS keyring entry."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage archive backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("water"),
		kong.Description("Daily water intake tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": config.ExpandPath(constants.DefaultConfigFile),
			"data_dir":    constants.DefaultDataDir,
		},
	)

	cfg := config.NewDefaultConfig()
	if err := config.LoadOptional(CLI.Config, cfg); err != nil {
		errors.Fatal(err)
	}

	dataDir := config.ExpandPath(CLI.DataDir)
	if err := logger.Init(logger.Config{
		Debug:   CLI.Debug || cfg.Log.Debug,
		LogDir:  config.ExpandPath(cfg.Log.Dir),
		DataDir: dataDir,
	}); err != nil {
		errors.Fatal(err)
	}

	// Detect once; every command in this process uses the same backend.
	opts := storage.Options{
		DataFile:      cfg.ResolveDataFile(dataDir),
		SecureStorage: cfg.Storage.SecureStorage,
	}
	backend := storage.Detect(opts)
	logger.Info("Starting water", "version", constants.Version, "command", ctx.Command(), "backend", backend)

	appCtx := &cli.Context{
		Config:         cfg,
		ConfigPath:     CLI.Config,
		DataDir:        dataDir,
		StorageOptions: opts,
		Store:          storage.Open(backend, opts),
	}

	err := ctx.Run(appCtx)
	errors.Fatal(err)
	_ = logger.Close()
}
