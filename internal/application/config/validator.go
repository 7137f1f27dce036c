// Package config validates a loaded configuration before it is used.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/doeshing/investigator-go/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if len(cfg.Models) == 0 {
		return errors.New("at least one model must be configured")
	}
	if err := validateModels(cfg.Models); err != nil {
		return err
	}
	if err := cfg.ValidateConsistency(); err != nil {
		return err
	}
	if err := validatePreferences(cfg.Preferences); err != nil {
		return err
	}
	if err := validateModules(cfg.Modules); err != nil {
		return err
	}
	if err := validateSecurity(cfg.Security); err != nil {
		return err
	}
	return validateCache(cfg.Cache)
}

func validateModels(models []domain.ModelDefinition) error {
	seen := make(map[string]bool, len(models))
	for i, model := range models {
		if model.Name == "" {
			return fmt.Errorf("models[%d].name must be set", i)
		}
		if seen[model.Name] {
			return fmt.Errorf("model %s defined twice", model.Name)
		}
		seen[model.Name] = true
		if model.Endpoint == "" {
			return fmt.Errorf("model %s: endpoint must be set", model.Name)
		}
		if _, err := url.ParseRequestURI(model.Endpoint); err != nil {
			return fmt.Errorf("model %s: endpoint invalid: %w", model.Name, err)
		}
	}
	return nil
}

func validatePreferences(prefs domain.Preferences) error {
	if prefs.ToolTimeoutSeconds < 0 {
		return fmt.Errorf("preferences.tool_timeout must be >= 0")
	}
	if prefs.ModelTimeoutSeconds < 0 {
		return fmt.Errorf("preferences.model_timeout must be >= 0")
	}
	return nil
}

func validateModules(modules domain.ModuleSettings) error {
	if endpoint := modules.LeakCheck.Endpoint; endpoint != "" {
		if _, err := url.ParseRequestURI(endpoint); err != nil {
			return fmt.Errorf("modules.leak_check.endpoint invalid: %w", err)
		}
	}
	if modules.UsernameHunt.Concurrency < 0 {
		return fmt.Errorf("modules.username_hunt.concurrency must be >= 0")
	}
	if modules.UsernameHunt.TimeoutSeconds < 0 {
		return fmt.Errorf("modules.username_hunt.timeout must be >= 0")
	}
	return nil
}

func validateSecurity(sec domain.SecuritySettings) error {
	if sec.RulesFile == "" {
		return fmt.Errorf("security.rules_file must be set")
	}
	return nil
}

func validateCache(cache domain.CacheSettings) error {
	if cache.TTL != "" {
		if _, err := time.ParseDuration(cache.TTL); err != nil {
			return fmt.Errorf("cache.ttl invalid: %w", err)
		}
	}
	if cache.MaxEntries < 0 {
		return fmt.Errorf("cache.max_entries must be >= 0")
	}
	return nil
}
