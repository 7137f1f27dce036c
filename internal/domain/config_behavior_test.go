package domain_test

import (
	"testing"
	"time"

	"github.com/doeshing/investigator-go/internal/domain"
)

// TestConfig_GetDefaultModel tests retrieving the default model
func TestConfig_GetDefaultModel(t *testing.T) {
	tests := []struct {
		name        string
		config      domain.Config
		wantError   bool
		wantModelID string
	}{
		{
			name: "returns default model successfully",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultModel: "local"},
				Models: []domain.ModelDefinition{
					{Name: "local", ModelID: "mistral:7b-instruct"},
					{Name: "gpt", ModelID: "gpt-4o-mini"},
				},
			},
			wantModelID: "mistral:7b-instruct",
		},
		{
			name: "returns error when default model not found",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultModel: "nonexistent"},
				Models:      []domain.ModelDefinition{{Name: "local"}},
			},
			wantError: true,
		},
		{
			name: "returns error when no default model configured",
			config: domain.Config{
				Models: []domain.ModelDefinition{{Name: "local"}},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := tt.config.GetDefaultModel()
			if tt.wantError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if model.ModelID != tt.wantModelID {
				t.Errorf("got model ID %s, want %s", model.ModelID, tt.wantModelID)
			}
		})
	}
}

// TestConfig_GetLanguage tests locale fallback
func TestConfig_GetLanguage(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.Language
	}{
		{raw: "en", want: domain.LangEN},
		{raw: " PT ", want: domain.LangPT},
		{raw: "", want: domain.DefaultLanguage},
		{raw: "fr", want: domain.DefaultLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			cfg := domain.Config{Preferences: domain.Preferences{Language: tt.raw}}
			if got := cfg.GetLanguage(); got != tt.want {
				t.Errorf("GetLanguage() = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestConfig_Timeouts tests duration defaults
func TestConfig_Timeouts(t *testing.T) {
	var cfg domain.Config
	if got := cfg.GetToolTimeout(); got != 300*time.Second {
		t.Errorf("default tool timeout = %s, want 5m0s", got)
	}
	if got := cfg.GetCacheTTL(); got != domain.DefaultCacheTTL {
		t.Errorf("default cache ttl = %s", got)
	}

	cfg.Preferences.ToolTimeoutSeconds = 10
	cfg.Cache.TTL = "not-a-duration"
	if got := cfg.GetToolTimeout(); got != 10*time.Second {
		t.Errorf("tool timeout = %s, want 10s", got)
	}
	if got := cfg.GetCacheTTL(); got != domain.DefaultCacheTTL {
		t.Errorf("invalid ttl should fall back, got %s", got)
	}
}

// TestConfig_ToolBinary tests binary overrides
func TestConfig_ToolBinary(t *testing.T) {
	cfg := domain.Config{Tools: domain.ToolSettings{Nmap: "/opt/nmap/bin/nmap"}}
	if got := cfg.ToolBinary(domain.ToolNmap); got != "/opt/nmap/bin/nmap" {
		t.Errorf("nmap binary = %s", got)
	}
	if got := cfg.ToolBinary(domain.ToolNikto); got != "nikto" {
		t.Errorf("nikto binary = %s", got)
	}
}

// TestConfig_ValidateConsistency tests configuration consistency validation
func TestConfig_ValidateConsistency(t *testing.T) {
	valid := domain.Config{
		Preferences: domain.Preferences{DefaultModel: "local", Language: "en"},
		Models:      []domain.ModelDefinition{{Name: "local"}},
		Paths:       domain.PathSettings{LogsDir: "results/logs", SessionsFile: "memory/sessions.json"},
	}

	tests := []struct {
		name      string
		mutate    func(*domain.Config)
		wantError bool
	}{
		{name: "valid configuration", mutate: func(*domain.Config) {}},
		{name: "invalid: default model doesn't exist", mutate: func(c *domain.Config) { c.Preferences.DefaultModel = "missing" }, wantError: true},
		{name: "invalid: unsupported language", mutate: func(c *domain.Config) { c.Preferences.Language = "de" }, wantError: true},
		{name: "invalid: missing logs dir", mutate: func(c *domain.Config) { c.Paths.LogsDir = "" }, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			cfg.Models = append([]domain.ModelDefinition(nil), valid.Models...)
			tt.mutate(&cfg)
			err := cfg.ValidateConsistency()
			if tt.wantError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
