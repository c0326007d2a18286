package commands

// Persistent flag names registered on the root command.
const (
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
)
