package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContainerWithDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfgPath := filepath.Join(home, "config.yaml")

	c, err := BuildContainer(context.Background(), Options{ConfigPath: cfgPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	_, err = os.Stat(cfgPath)
	require.NoError(t, err)

	assert.NotNil(t, c.Resolver.Classifier.Provider)
	assert.NotNil(t, c.Resolver.Cache)
	assert.NotNil(t, c.Executor.LeakChecker)
	assert.NotNil(t, c.Executor.UsernameHunter)
	assert.NotNil(t, c.UsernameHunter)
	assert.Equal(t, "embedded", c.Guardrail.Source())
	assert.Equal(t, filepath.Join(home, ".investigator", "memory", "sessions.json"), c.SessionStore.Path())
	assert.Equal(t, filepath.Join(home, ".investigator", "results", "logs"), c.LogWriter.Dir())
}

func TestBuildContainerFallsBackWithoutKey(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OPENAI_API_KEY", "")

	c, err := BuildContainer(context.Background(), Options{
		ConfigPath:    filepath.Join(home, "config.yaml"),
		ModelOverride: "gpt-4o-mini",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.Nil(t, c.Resolver.Classifier.Provider)

	intent, ok := c.Resolver.Resolve(context.Background(), "scan 8.8.8.8")
	require.True(t, ok)
	assert.Equal(t, "8.8.8.8", intent.Target)
}

func TestBuildContainerDisabledModules(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfgPath := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
modules:
  leak_check:
    enabled: false
  username_hunt:
    enabled: false
cache:
  enabled: false
`), 0o600))

	c, err := BuildContainer(context.Background(), Options{ConfigPath: cfgPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.Nil(t, c.Executor.LeakChecker)
	assert.Nil(t, c.Executor.UsernameHunter)
	assert.Nil(t, c.Resolver.Cache)
}

func TestProviderBuildsOnce(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	p := NewProvider(Options{ConfigPath: filepath.Join(home, "config.yaml")})
	t.Cleanup(func() { _ = p.Close() })

	first, err := p.Get(context.Background())
	require.NoError(t, err)
	second, err := p.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
}
