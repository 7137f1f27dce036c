package intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/investigator-go/internal/domain"
	"github.com/doeshing/investigator-go/internal/ports"
)

// ErrNoJSON is returned when the model reply contains no {...} span.
var ErrNoJSON = errors.New("no JSON object in model reply")

// SystemPrompt instructs the model to compile a request into one intent object.
const SystemPrompt = `You are an OSINT command compiler. Convert the user's request (any language) into JSON ONLY with keys: action, target, tools.
Valid actions: scan_ip, web_scan, leak_check, username_hunt.
If you are unsure, output exactly {"action":"unknown"}`

// Classification is the outcome of the model-based stage.
// Err set means the stage failed and the fallback must run.
// Found false with no Err means the model answered "unknown".
type Classification struct {
	Intent domain.Intent
	Found  bool
	Err    error
}

// Failed reports whether the fallback stage should take over.
func (c Classification) Failed() bool {
	return c.Err != nil
}

// Classifier is the primary, model-backed resolution stage.
type Classifier struct {
	Provider ports.Provider
}

// Classify asks the model for an intent and validates its reply strictly.
func (c *Classifier) Classify(ctx context.Context, utterance string) Classification {
	if c == nil || c.Provider == nil {
		return Classification{Err: errors.New("no model provider configured")}
	}

	resp, err := c.Provider.Generate(ctx, ports.ProviderRequest{
		SystemPrompt: SystemPrompt,
		Prompt:       utterance,
		Model:        c.Provider.Model(),
	})
	if err != nil {
		return Classification{Err: fmt.Errorf("model call: %w", err)}
	}
	return ParseReply(resp.Reply)
}

// ParseReply extracts and validates the intent object from a raw model reply.
func ParseReply(reply string) Classification {
	span, err := extractObject(reply)
	if err != nil {
		return Classification{Err: err}
	}

	var raw struct {
		Action *string  `json:"action"`
		Target string   `json:"target"`
		Tools  []string `json:"tools"`
	}
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		return Classification{Err: fmt.Errorf("decode model reply: %w", err)}
	}
	if raw.Action == nil {
		return Classification{Err: fmt.Errorf("%w: missing action", domain.ErrInvalidIntent)}
	}

	action, ok := domain.ParseAction(strings.TrimSpace(*raw.Action))
	if !ok {
		return Classification{Err: fmt.Errorf("%w: action %q not in vocabulary", domain.ErrInvalidIntent, *raw.Action)}
	}
	if action == domain.ActionUnknown {
		return Classification{}
	}

	intent := domain.Intent{
		Action: action,
		Target: strings.TrimSpace(raw.Target),
		Tools:  raw.Tools,
	}
	if len(intent.Tools) == 0 {
		intent.Tools = action.DefaultTools()
	}
	if err := intent.Validate(); err != nil {
		return Classification{Err: err}
	}
	return Classification{Intent: intent, Found: true}
}

// extractObject returns the span from the first '{' to the last '}'.
func extractObject(reply string) (string, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSON
	}
	return reply[start : end+1], nil
}
