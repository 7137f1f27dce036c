package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// FilePermissions is the permission for logs and session files (rw-r--r--)
	FilePermissions = 0o644
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultToolTimeout bounds every external tool invocation
	DefaultToolTimeout = 300 * time.Second
	// DefaultModelTimeout bounds a single classifier call
	DefaultModelTimeout = 60 * time.Second
	// DefaultProbeTimeout bounds a single username probe request
	DefaultProbeTimeout = 5 * time.Second
	// DefaultCacheTTL is how long a classification stays cached
	DefaultCacheTTL = time.Hour
)

// Limit constants
const (
	// DefaultProbeConcurrency caps in-flight username probes
	DefaultProbeConcurrency = 20
	// DefaultMaxCacheEntries is the maximum number of cache entries
	DefaultMaxCacheEntries = 100
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
	// LogFileTimestampFormat names execution log files
	LogFileTimestampFormat = "20060102_150405"
)
