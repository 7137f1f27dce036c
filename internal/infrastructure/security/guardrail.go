// Package security screens intent targets before they reach external tools.
package security

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/investigator-go/assets"
	"github.com/doeshing/investigator-go/internal/domain"
	"github.com/doeshing/investigator-go/internal/pkg/filesystem"
	"github.com/doeshing/investigator-go/internal/ports"
)

// ErrTargetBlocked is returned when a target matches a guardrail rule.
var ErrTargetBlocked = errors.New("target blocked")

// Guardrail implements ports.TargetGuard.
type Guardrail struct {
	patterns  []compiledPattern
	maxLength int
	source    string
}

type compiledPattern struct {
	re      *regexp.Regexp
	rule    TargetPattern
	actions map[domain.Action]bool
}

// TargetPattern describes a regex rule. An empty Actions list applies the rule to every action.
type TargetPattern struct {
	Pattern string   `yaml:"pattern"`
	Message string   `yaml:"message"`
	Actions []string `yaml:"actions,omitempty"`
}

// RulesFile is the YAML schema root.
type RulesFile struct {
	Rules struct {
		MaxTargetLength int             `yaml:"max_target_length"`
		TargetPatterns  []TargetPattern `yaml:"target_patterns"`
	} `yaml:"rules"`
}

// NewGuardrail loads rules from path, or the embedded defaults when the file is missing.
func NewGuardrail(path string) (*Guardrail, error) {
	data, source, err := readRules(path)
	if err != nil {
		return nil, err
	}
	return NewGuardrailFromYAML(data, source)
}

// NewGuardrailFromYAML compiles a rules document.
func NewGuardrailFromYAML(data []byte, source string) (*Guardrail, error) {
	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse guardrail rules: %w", err)
	}
	if len(rules.Rules.TargetPatterns) == 0 {
		if err := yaml.Unmarshal(assets.DefaultGuardrailYAML, &rules); err != nil {
			return nil, fmt.Errorf("parse default guardrail rules: %w", err)
		}
	}

	compiled := make([]compiledPattern, 0, len(rules.Rules.TargetPatterns))
	for _, pattern := range rules.Rules.TargetPatterns {
		re, err := regexp.Compile(pattern.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile guardrail pattern %q: %w", pattern.Pattern, err)
		}
		cp := compiledPattern{re: re, rule: pattern}
		if len(pattern.Actions) > 0 {
			cp.actions = make(map[domain.Action]bool, len(pattern.Actions))
			for _, raw := range pattern.Actions {
				action, ok := domain.ParseAction(raw)
				if !ok {
					return nil, fmt.Errorf("guardrail pattern %q: unknown action %q", pattern.Pattern, raw)
				}
				cp.actions[action] = true
			}
		}
		compiled = append(compiled, cp)
	}

	return &Guardrail{
		patterns:  compiled,
		maxLength: rules.Rules.MaxTargetLength,
		source:    source,
	}, nil
}

// Check implements ports.TargetGuard.
func (g *Guardrail) Check(intent domain.Intent) error {
	if g == nil {
		return errors.New("guardrail nil")
	}
	if g.maxLength > 0 && len(intent.Target) > g.maxLength {
		return fmt.Errorf("%w: target longer than %d characters", ErrTargetBlocked, g.maxLength)
	}
	for _, pattern := range g.patterns {
		if pattern.actions != nil && !pattern.actions[intent.Action] {
			continue
		}
		if pattern.re.MatchString(intent.Target) {
			return fmt.Errorf("%w: %s", ErrTargetBlocked, pattern.rule.Message)
		}
	}
	return nil
}

// RuleCount reports how many patterns are active.
func (g *Guardrail) RuleCount() int {
	return len(g.patterns)
}

// Source names where the rules were loaded from.
func (g *Guardrail) Source() string {
	return g.source
}

func readRules(path string) ([]byte, string, error) {
	if path == "" {
		path = filesystem.AppDir("guardrail.yaml")
	}
	path = filesystem.ExpandPath(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return assets.DefaultGuardrailYAML, "embedded", nil
		}
		return nil, "", fmt.Errorf("read guardrail rules: %w", err)
	}
	return data, path, nil
}

var _ ports.TargetGuard = (*Guardrail)(nil)
