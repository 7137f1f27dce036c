// Package conversation drives one chat: resolve, confirm, execute, persist.
package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/investigator-go/internal/application/gate"
	"github.com/doeshing/investigator-go/internal/domain"
	"github.com/doeshing/investigator-go/internal/ports"
)

// Conversation is the per-chat state. One goroutine owns it.
type Conversation struct {
	ID         string
	Lang       domain.Language
	Transcript domain.Transcript
	gate       gate.Gate
}

// New starts an empty conversation in lang.
func New(lang domain.Language) *Conversation {
	return &Conversation{
		ID:   uuid.NewString(),
		Lang: lang.OrDefault(),
	}
}

// Pending returns the intent awaiting confirmation, if any.
func (c *Conversation) Pending() (domain.Intent, bool) {
	return c.gate.Pending()
}

// Reset clears the transcript and any pending confirmation.
func (c *Conversation) Reset() {
	c.Transcript = nil
	c.gate.Reset()
}

// TurnResult reports what a single turn did.
type TurnResult struct {
	// Replies holds the turns appended to the transcript, in order.
	Replies  []domain.Turn
	Intent   domain.Intent
	Decision gate.Decision
	Proposed bool
	Executed bool
}

// Service runs turns against the resolver, executor and session store.
type Service struct {
	Resolver ports.IntentResolver
	Executor ports.ActionExecutor
	Sessions ports.SessionStore
	Logger   ports.Logger
	Now      func() time.Time

	// OnExecute, when set, is called before an approved intent runs and the
	// returned func after it finishes.
	OnExecute func(domain.Intent) func()
}

// Greeting is the opening line of a chat.
func Greeting(lang domain.Language) string {
	return domain.Text(domain.TextGreeting, lang)
}

// Turn processes one utterance and appends the resulting turns to conv.
func (s *Service) Turn(ctx context.Context, conv *Conversation, utterance string) TurnResult {
	start := len(conv.Transcript)
	var result TurnResult

	if _, pending := conv.Pending(); pending {
		result = s.answer(ctx, conv, utterance)
	} else {
		result = s.propose(ctx, conv, utterance)
	}

	result.Replies = append([]domain.Turn(nil), conv.Transcript[start:]...)
	return result
}

func (s *Service) answer(ctx context.Context, conv *Conversation, utterance string) TurnResult {
	lang := conv.Lang
	decision, intent := conv.gate.Answer(lang, utterance)
	result := TurnResult{Decision: decision, Intent: intent}

	switch decision {
	case gate.DecisionApprove:
		conv.Transcript = conv.Transcript.Append(utterance, domain.Text(domain.TextRunning, lang))
		raw := s.execute(ctx, intent, lang)
		conv.Transcript = conv.Transcript.Append("", fmt.Sprintf("%s\n\n```\n%s\n```", domain.Text(domain.TextDone, lang), raw))
		result.Executed = true
		s.save(conv)
	case gate.DecisionReject:
		conv.Transcript = conv.Transcript.Append(utterance, domain.Text(domain.TextCancelled, lang))
	default:
		conv.Transcript = conv.Transcript.Append(utterance, domain.Text(domain.TextConfirmQuestion, lang))
	}
	return result
}

func (s *Service) propose(ctx context.Context, conv *Conversation, utterance string) TurnResult {
	lang := conv.Lang
	intent, ok := s.resolve(ctx, utterance)
	if !ok {
		conv.Transcript = conv.Transcript.Append(utterance, domain.Text(domain.TextDidntUnderstand, lang))
		return TurnResult{}
	}

	conv.gate.Propose(intent)
	reply := domain.Explain(intent, lang) + "\n\n" + domain.Text(domain.TextConfirmQuestion, lang)
	conv.Transcript = conv.Transcript.Append(utterance, reply)
	return TurnResult{Intent: intent, Proposed: true}
}

func (s *Service) resolve(ctx context.Context, utterance string) (domain.Intent, bool) {
	if s.Resolver == nil || strings.TrimSpace(utterance) == "" {
		return domain.Intent{}, false
	}
	return s.Resolver.Resolve(ctx, utterance)
}

func (s *Service) execute(ctx context.Context, intent domain.Intent, lang domain.Language) string {
	if s.OnExecute != nil {
		if done := s.OnExecute(intent); done != nil {
			defer done()
		}
	}
	if s.Executor == nil {
		return domain.Text(domain.TextNotImplemented, lang)
	}
	return s.Executor.Execute(ctx, intent, lang)
}

// save persists the whole transcript as one session record. A failed save is
// logged and the turn continues.
func (s *Service) save(conv *Conversation) {
	if s.Sessions == nil {
		return
	}
	record := domain.SessionRecord{
		ID:        conv.ID,
		Chat:      conv.Transcript.Clone(),
		Timestamp: s.now(),
	}
	if err := s.Sessions.Save(record); err != nil && s.Logger != nil {
		s.Logger.Error("failed to save session", err, map[string]interface{}{
			"conversation": conv.ID,
			"path":         s.Sessions.Path(),
		})
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
