package constants

const (
	// DateFormat is the archive key format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the time-of-day format stamped on each drink (HH:MM)
	TimeFormat = "15:04"

	// BackupTimestampFormat names snapshot files, minute precision
	BackupTimestampFormat = "20060102-1504"
)
