package constants

// Backend identifies the persistence strategy chosen at startup.
type Backend string

// Status is the goal state reported in a daily summary.
type Status string

const (
	AppName           = "water-app"
	DefaultDataDir    = "~/.local/share/water-app"
	DefaultConfigFile = "~/.config/water-app/config.yaml"
	Version           = "v0.3.0"

	// KeyringUser is the single secure-storage key holding the whole archive.
	KeyringUser = "water_app_data"
	// KeyringProbeUser is read once at startup to test keyring availability.
	KeyringProbeUser = "test-availability"

	DataFileName = "water_record.json"
	LogFileName  = "water.log"
	LogDirName   = "logs"

	// DailyGoalML is the fixed daily intake goal in milliliters.
	DailyGoalML = 2000

	// Preset amounts offered as one-tap buttons.
	PresetSmallML  = 100
	PresetMediumML = 300
	PresetLargeML  = 500

	// MaxDrinkML caps a single custom entry.
	MaxDrinkML = 5000

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "water-"
	BackupFileSuffix = ".json"

	LockFileName = "water.lock"

	BackendSecureKV Backend = "secure-kv"
	BackendFileJSON Backend = "file-json"

	StatusGoalMet   Status = "goal_met"
	StatusRemaining Status = "remaining"
)

// Presets lists the one-tap amounts in display order.
var Presets = []int{PresetSmallML, PresetMediumML, PresetLargeML}
