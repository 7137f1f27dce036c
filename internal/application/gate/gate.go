// Package gate holds a proposed intent until the user approves or rejects it.
package gate

import (
	"strings"

	"github.com/doeshing/investigator-go/internal/domain"
)

// State is the gate's position in the confirmation cycle.
type State int

const (
	StateIdle State = iota
	StateAwaitingConfirmation
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	default:
		return "unknown"
	}
}

// Decision is the outcome of answering a pending proposal.
type Decision int

const (
	// DecisionReprompt keeps the proposal pending and asks again.
	DecisionReprompt Decision = iota
	DecisionApprove
	DecisionReject
)

func (d Decision) String() string {
	switch d {
	case DecisionApprove:
		return "approve"
	case DecisionReject:
		return "reject"
	default:
		return "reprompt"
	}
}

// Gate is a two-state machine with at most one pending intent.
// It is not safe for concurrent use; one conversation owns one gate.
type Gate struct {
	pending *domain.Intent
}

// State reports whether a proposal is waiting for an answer.
func (g *Gate) State() State {
	if g.pending == nil {
		return StateIdle
	}
	return StateAwaitingConfirmation
}

// Pending returns the intent awaiting confirmation, if any.
func (g *Gate) Pending() (domain.Intent, bool) {
	if g.pending == nil {
		return domain.Intent{}, false
	}
	return *g.pending, true
}

// Propose stores intent as the pending proposal, replacing any earlier one.
func (g *Gate) Propose(intent domain.Intent) {
	g.pending = &intent
}

// Reset drops any pending proposal.
func (g *Gate) Reset() {
	g.pending = nil
}

// Answer applies the user's reply to the pending proposal.
// Approve and reject clear the proposal and return it; reprompt keeps it.
// Answering an idle gate is a reprompt with no intent.
func (g *Gate) Answer(lang domain.Language, reply string) (Decision, domain.Intent) {
	if g.pending == nil {
		return DecisionReprompt, domain.Intent{}
	}
	intent := *g.pending

	decision := Classify(lang, reply)
	if decision != DecisionReprompt {
		g.pending = nil
	}
	return decision, intent
}

// Classify maps a reply onto a decision using the locale's token sets.
// Matching is a case-insensitive prefix test on the trimmed reply, and the
// affirmative set is checked first.
func Classify(lang domain.Language, reply string) Decision {
	normalized := strings.ToLower(strings.TrimSpace(reply))
	if normalized == "" {
		return DecisionReprompt
	}
	if hasAnyPrefix(normalized, domain.AffirmativeTokens(lang)) {
		return DecisionApprove
	}
	if hasAnyPrefix(normalized, domain.NegativeTokens(lang)) {
		return DecisionReject
	}
	return DecisionReprompt
}

func hasAnyPrefix(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.HasPrefix(s, token) {
			return true
		}
	}
	return false
}
