package intent

import (
	"regexp"
	"strings"

	"github.com/doeshing/investigator-go/internal/domain"
)

var (
	ipPattern     = regexp.MustCompile(`\b(\d{1,3}(?:\.\d{1,3}){3})\b`)
	emailPattern  = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)
	domainPattern = regexp.MustCompile(`\b((?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,})\b`)
)

const usernameKeyword = "username"

// fallbackRule matches an utterance and produces the intent for one action kind.
type fallbackRule struct {
	action domain.Action
	match  func(utterance string) (target string, ok bool)
}

// fallbackRules are evaluated in order; the first match wins.
// IP runs before email and domain so a dotted quad is never taken for a
// domain, and email runs before domain so its host part is not captured alone.
var fallbackRules = []fallbackRule{
	{action: domain.ActionScanIP, match: submatch(ipPattern, 1)},
	{action: domain.ActionLeakCheck, match: submatch(emailPattern, 0)},
	{action: domain.ActionWebScan, match: submatch(domainPattern, 1)},
	{action: domain.ActionUsernameHunt, match: matchUsername},
}

func submatch(re *regexp.Regexp, group int) func(string) (string, bool) {
	return func(utterance string) (string, bool) {
		m := re.FindStringSubmatch(utterance)
		if m == nil {
			return "", false
		}
		return m[group], true
	}
}

func matchUsername(utterance string) (string, bool) {
	if !strings.Contains(strings.ToLower(utterance), usernameKeyword) {
		return "", false
	}
	fields := strings.Fields(utterance)
	if len(fields) == 0 {
		return "", false
	}
	return fields[len(fields)-1], true
}

// Fallback resolves an utterance with the deterministic pattern rules.
// It is pure and never touches the network.
func Fallback(utterance string) (domain.Intent, bool) {
	for _, rule := range fallbackRules {
		if target, ok := rule.match(utterance); ok {
			return domain.NewIntent(rule.action, target), true
		}
	}
	return domain.Intent{}, false
}

// FallbackActions lists the action kinds the pattern rules can produce.
func FallbackActions() []domain.Action {
	actions := make([]domain.Action, 0, len(fallbackRules))
	for _, rule := range fallbackRules {
		actions = append(actions, rule.action)
	}
	return actions
}
