package domain

import "time"

// ExecutionLog is the artifact written after an approved intent runs.
type ExecutionLog struct {
	Timestamp time.Time
	Action    Action
	Target    string
	RawOutput string
	Path      string
}

// ExecutionRecord is the indexed metadata of one execution.
type ExecutionRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	Action     Action    `json:"action"`
	Target     string    `json:"target"`
	LogPath    string    `json:"log_path"`
	Success    bool      `json:"success"`
	DurationMS int64     `json:"duration_ms"`
}

// CacheEntry stores a model classification keyed by utterance hash.
type CacheEntry struct {
	Key       string    `json:"key"`
	Intent    Intent    `json:"intent"`
	Found     bool      `json:"found"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}
