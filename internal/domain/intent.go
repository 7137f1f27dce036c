package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidIntent marks an intent whose shape cannot be trusted.
var ErrInvalidIntent = errors.New("invalid intent")

// Intent is the structured form of a user's reconnaissance request.
// Intents are values; once resolved they are not modified.
type Intent struct {
	Action Action   `json:"action"`
	Target string   `json:"target"`
	Tools  []string `json:"tools"`
}

// NewIntent builds an intent with the action's default tool list.
func NewIntent(action Action, target string) Intent {
	return Intent{
		Action: action,
		Target: target,
		Tools:  action.DefaultTools(),
	}
}

// IsUnknown reports whether the intent carries the "no intent" sentinel.
func (i Intent) IsUnknown() bool {
	return i.Action == ActionUnknown
}

// Validate checks that an executable intent names a known action and a target.
func (i Intent) Validate() error {
	if _, ok := ParseAction(string(i.Action)); !ok {
		return fmt.Errorf("%w: action %q not in vocabulary", ErrInvalidIntent, i.Action)
	}
	if i.IsUnknown() {
		return nil
	}
	if strings.TrimSpace(i.Target) == "" {
		return fmt.Errorf("%w: %s requires a target", ErrInvalidIntent, i.Action)
	}
	return nil
}

// ToolsOrDefault returns the intent's tools, falling back to the action defaults.
func (i Intent) ToolsOrDefault() []string {
	if len(i.Tools) > 0 {
		return i.Tools
	}
	return i.Action.DefaultTools()
}
