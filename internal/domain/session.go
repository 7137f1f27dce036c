package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Turn is one (user utterance, system reply) pair of a transcript.
// An empty User marks a reply the system emitted on its own.
type Turn struct {
	User  string
	Reply string
}

// MarshalJSON encodes the turn as a two element array, with null for a missing utterance.
// HTML characters are written as-is.
func (t Turn) MarshalJSON() ([]byte, error) {
	var user *string
	if t.User != "" {
		user = &t.User
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([2]interface{}{user, t.Reply}); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON decodes the two element array form.
func (t *Turn) UnmarshalJSON(data []byte) error {
	var pair []*string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decode turn: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decode turn: expected 2 elements, got %d", len(pair))
	}
	*t = Turn{}
	if pair[0] != nil {
		t.User = *pair[0]
	}
	if pair[1] != nil {
		t.Reply = *pair[1]
	}
	return nil
}

// Transcript is the append-only conversation history.
type Transcript []Turn

// Append returns the transcript with one more turn.
func (t Transcript) Append(user, reply string) Transcript {
	return append(t, Turn{User: user, Reply: reply})
}

// Clone copies the transcript so later appends never alias a saved record.
func (t Transcript) Clone() Transcript {
	if t == nil {
		return nil
	}
	out := make(Transcript, len(t))
	copy(out, t)
	return out
}

// SessionRecord is one persisted conversation snapshot.
type SessionRecord struct {
	ID        string     `json:"id,omitempty"`
	Chat      Transcript `json:"chat"`
	Timestamp time.Time  `json:"ts"`
}
