package commands

// CLI-specific constants
const (
	// DefaultEditorCommand is the default editor command
	DefaultEditorCommand = "vi"

	// TimestampFormat is used for every timestamp printed in tables.
	TimestampFormat = "2006-01-02 15:04:05"

	DefaultHistoryLimit       = 20
	DefaultSessionLimit       = 10
	MaxHistoryAnalysisRecords = 1000
	sessionPreviewWidth       = 60
)

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrHistoryStoreUnavailable  = "history store unavailable"
	ErrSessionStoreUnavailable  = "session store unavailable"
	ErrCacheStoreUnavailable    = "cache store unavailable (enable cache in config)"
	ErrLogWriterUnavailable     = "log writer unavailable"
	ErrInvalidLimit             = "--limit must be >= 0"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoHistoryRecorded        = "No executions recorded yet."
	MsgNoSessionsRecorded       = "No sessions recorded yet."
	MsgNoLogsWritten            = "No execution logs yet."
	MsgNoCachedResponses        = "No cached classifications."
	MsgCancelled                = "Cancelled."
)
