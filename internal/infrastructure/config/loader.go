// Package config loads the YAML configuration from ~/.investigator/config.yaml.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/investigator-go/assets"
	"github.com/doeshing/investigator-go/internal/domain"
	"github.com/doeshing/investigator-go/internal/pkg/filesystem"
	"github.com/doeshing/investigator-go/internal/ports"
)

// EnvConfigPath overrides the config location.
const EnvConfigPath = "INVESTIGATOR_CONFIG"

// FileLoader loads YAML configuration (overridable via INVESTIGATOR_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. A non-empty path wins over the environment.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is created from the
// embedded default; values absent from the file keep their defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
			return domain.Config{}, fmt.Errorf("write default config: %w", err)
		}
		data = assets.DefaultConfigYAML
	}

	return Parse(data)
}

// Parse decodes a config document layered over the embedded defaults.
func Parse(data []byte) (domain.Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return domain.Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse config: %w", err)
	}
	return hydrateDefaults(cfg), nil
}

// Defaults returns the embedded default configuration.
func Defaults() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse embedded config: %w", err)
	}
	return cfg, nil
}

// Path returns the config file location in effect.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filesystem.AppDir("config.yaml")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Preferences.Language == "" {
		cfg.Preferences.Language = string(domain.DefaultLanguage)
	}
	if cfg.Preferences.DefaultModel == "" && len(cfg.Models) > 0 {
		cfg.Preferences.DefaultModel = cfg.Models[0].Name
	}
	if cfg.Preferences.ToolTimeoutSeconds == 0 {
		cfg.Preferences.ToolTimeoutSeconds = int(domain.DefaultToolTimeout.Seconds())
	}
	if cfg.Preferences.ModelTimeoutSeconds == 0 {
		cfg.Preferences.ModelTimeoutSeconds = int(domain.DefaultModelTimeout.Seconds())
	}
	if cfg.Paths.LogsDir == "" {
		cfg.Paths.LogsDir = filesystem.AppDir("results", "logs")
	}
	if cfg.Paths.SessionsFile == "" {
		cfg.Paths.SessionsFile = filesystem.AppDir("memory", "sessions.json")
	}
	if cfg.Paths.HistoryDB == "" {
		cfg.Paths.HistoryDB = filesystem.AppDir("history", "executions.db")
	}
	if cfg.Security.RulesFile == "" {
		cfg.Security.RulesFile = filesystem.AppDir("guardrail.yaml")
	}
	if cfg.Cache.TTL == "" {
		cfg.Cache.TTL = domain.DefaultCacheTTL.String()
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = domain.DefaultMaxCacheEntries
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
