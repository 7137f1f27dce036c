package config

import (
	"testing"

	"github.com/doeshing/investigator-go/internal/domain"
)

func validConfig() domain.Config {
	return domain.Config{
		Preferences: domain.Preferences{Language: "en", DefaultModel: "local"},
		Models: []domain.ModelDefinition{
			{Name: "local", Endpoint: "http://localhost:11434/v1/chat/completions"},
		},
		Paths: domain.PathSettings{
			LogsDir:      "/tmp/logs",
			SessionsFile: "/tmp/sessions.json",
		},
		Security: domain.SecuritySettings{RulesFile: "/tmp/guardrail.yaml"},
		Cache:    domain.CacheSettings{TTL: "30m", MaxEntries: 10},
	}
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Config)
	}{
		{"no models", func(c *domain.Config) { c.Models = nil }},
		{"missing default model", func(c *domain.Config) { c.Preferences.DefaultModel = "ghost" }},
		{"duplicate model", func(c *domain.Config) { c.Models = append(c.Models, c.Models[0]) }},
		{"bad endpoint", func(c *domain.Config) { c.Models[0].Endpoint = "not a url" }},
		{"bad language", func(c *domain.Config) { c.Preferences.Language = "fr" }},
		{"negative timeout", func(c *domain.Config) { c.Preferences.ToolTimeoutSeconds = -1 }},
		{"bad ttl", func(c *domain.Config) { c.Cache.TTL = "soon" }},
		{"bad leak endpoint", func(c *domain.Config) { c.Modules.LeakCheck.Endpoint = "::nope" }},
		{"no rules file", func(c *domain.Config) { c.Security.RulesFile = "" }},
		{"no logs dir", func(c *domain.Config) { c.Paths.LogsDir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			if err := Validate(cfg); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
