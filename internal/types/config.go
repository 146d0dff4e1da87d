package types

type RunMode string

const (
	// ModeLocal is the mode for running the report tooling against a local database
	ModeLocal RunMode = "local"
	// ModeProduction is the mode for running against the production database
	ModeProduction RunMode = "production"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)
