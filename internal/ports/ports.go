// Package ports defines the interfaces between the application core and its adapters.
//
// The application packages (intent, gate, action, conversation) depend only on
// these abstractions; infrastructure packages provide the implementations and
// the app container wires them together.
package ports

import (
	"context"
	"time"

	"github.com/doeshing/investigator-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.investigator/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ProviderFactory builds language-model provider instances from model definitions.
type ProviderFactory interface {
	ForModel(domain.ModelDefinition) (Provider, error)
}

// Provider sends a classification prompt to a language model.
type Provider interface {
	Name() string
	Model() domain.ModelDefinition
	Generate(context.Context, ProviderRequest) (ProviderResponse, error)
}

// ProviderRequest carries the system instruction and the user's utterance.
type ProviderRequest struct {
	SystemPrompt string
	Prompt       string
	Model        domain.ModelDefinition
}

// ProviderResponse holds the raw model output. It is untrusted text.
type ProviderResponse struct {
	Reply string
}

// IntentResolver turns an utterance into an intent. The boolean is false when
// no intent was found; resolvers never fail.
type IntentResolver interface {
	Resolve(ctx context.Context, utterance string) (domain.Intent, bool)
}

// ActionExecutor runs an approved intent and returns the raw tool output, or a
// localized error string. It never returns an error.
type ActionExecutor interface {
	Execute(ctx context.Context, intent domain.Intent, lang domain.Language) string
}

// ToolInvocation describes one external subprocess call.
type ToolInvocation struct {
	Name    string
	Args    []string
	Timeout time.Duration
}

// ToolResult captures the outcome of a subprocess without raising.
type ToolResult struct {
	Output   string
	ExitCode int
	Duration time.Duration
	TimedOut bool
	NotFound bool
	Err      error
}

// ToolRunner runs external tools with a bounded timeout.
type ToolRunner interface {
	Run(ctx context.Context, inv ToolInvocation) ToolResult
}

// ReconModule is an in-process recon routine (breach lookup, username enumeration).
type ReconModule interface {
	Name() string
	Run(ctx context.Context, target string) (string, error)
}

// TargetGuard rejects targets that are unsafe to hand to external tools.
type TargetGuard interface {
	Check(intent domain.Intent) error
}

// ExecutionLogWriter persists one execution artifact and returns its path.
type ExecutionLogWriter interface {
	Write(entry domain.ExecutionLog) (string, error)
}

// SessionStore appends finished conversations to the session history.
type SessionStore interface {
	Save(record domain.SessionRecord) error
	Records() ([]domain.SessionRecord, error)
	Path() string
}

// HistoryRepository indexes executions for listing and statistics.
type HistoryRepository interface {
	Save(record domain.ExecutionRecord) error
	Records(limit int, action domain.Action) ([]domain.ExecutionRecord, error)
	Clear() error
	Path() string
}

// CacheRepository stores model classifications keyed by utterance hash.
type CacheRepository interface {
	Get(key string) (domain.CacheEntry, bool, error)
	Set(entry domain.CacheEntry) error
}

// ConfirmationPrompter asks the user a yes/no question on an interactive terminal.
type ConfirmationPrompter interface {
	Confirm(question string) (bool, error)
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
