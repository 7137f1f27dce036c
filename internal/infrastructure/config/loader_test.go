package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/investigator-go/assets"
	"github.com/doeshing/investigator-go/internal/domain"
)

func TestLoadWritesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, assets.DefaultConfigYAML, written)

	assert.Equal(t, domain.LangPT, cfg.GetLanguage())
	assert.True(t, cfg.HasModel(cfg.Preferences.DefaultModel))
	assert.Equal(t, domain.DefaultToolTimeout, cfg.GetToolTimeout())
	assert.True(t, cfg.Modules.UsernameHunt.Enabled)
	require.NoError(t, cfg.ValidateConsistency())
}

func TestLoadLayersUserValuesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	user := []byte(`
preferences:
  language: en
  tool_timeout: 45
tools:
  nmap: /opt/nmap/bin/nmap
`)
	require.NoError(t, os.WriteFile(path, user, 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.LangEN, cfg.GetLanguage())
	assert.Equal(t, 45, cfg.Preferences.ToolTimeoutSeconds)
	assert.Equal(t, "/opt/nmap/bin/nmap", cfg.ToolBinary(domain.ToolNmap))
	assert.Equal(t, "nikto", cfg.ToolBinary(domain.ToolNikto))
	assert.NotEmpty(t, cfg.Models)
	assert.NotEmpty(t, cfg.Paths.SessionsFile)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preferences: [unterminated"), 0o600))

	_, err := NewFileLoader(path).Load(context.Background())
	assert.Error(t, err)
}

func TestPathResolution(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/from-env.yaml")
	assert.Equal(t, "/tmp/from-env.yaml", NewFileLoader("").Path())
	assert.Equal(t, "/tmp/flag.yaml", NewFileLoader("/tmp/flag.yaml").Path())
}

func TestHydrateDefaultsFillsBlanks(t *testing.T) {
	cfg := hydrateDefaults(domain.Config{Models: []domain.ModelDefinition{{Name: "only"}}})

	assert.Equal(t, "only", cfg.Preferences.DefaultModel)
	assert.Equal(t, string(domain.DefaultLanguage), cfg.Preferences.Language)
	assert.NotEmpty(t, cfg.Paths.LogsDir)
	assert.NotEmpty(t, cfg.Paths.HistoryDB)
	assert.Equal(t, "1h0m0s", cfg.Cache.TTL)
}
