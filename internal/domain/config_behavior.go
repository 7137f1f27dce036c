package domain

import (
	"fmt"
	"time"
)

// GetDefaultModel retrieves the default model definition from configuration
// Returns an error if the default model is not found
func (c *Config) GetDefaultModel() (ModelDefinition, error) {
	if c.Preferences.DefaultModel == "" {
		return ModelDefinition{}, fmt.Errorf("no default model configured")
	}
	model, ok := c.FindModelByName(c.Preferences.DefaultModel)
	if !ok {
		return ModelDefinition{}, fmt.Errorf("default model %s not found in configuration", c.Preferences.DefaultModel)
	}
	return model, nil
}

// FindModelByName searches for a model by its name
func (c *Config) FindModelByName(name string) (ModelDefinition, bool) {
	for _, model := range c.Models {
		if model.Name == name {
			return model, true
		}
	}
	return ModelDefinition{}, false
}

// HasModel checks if a model with the given name exists in the configuration
func (c *Config) HasModel(name string) bool {
	_, exists := c.FindModelByName(name)
	return exists
}

// GetLanguage returns the configured conversation locale
func (c *Config) GetLanguage() Language {
	if lang, ok := ParseLanguage(c.Preferences.Language); ok {
		return lang
	}
	return DefaultLanguage
}

// GetToolTimeout returns the per-invocation timeout for external tools
func (c *Config) GetToolTimeout() time.Duration {
	if c.Preferences.ToolTimeoutSeconds <= 0 {
		return DefaultToolTimeout
	}
	return time.Duration(c.Preferences.ToolTimeoutSeconds) * time.Second
}

// GetModelTimeout returns the timeout for a single classifier call
func (c *Config) GetModelTimeout() time.Duration {
	if c.Preferences.ModelTimeoutSeconds <= 0 {
		return DefaultModelTimeout
	}
	return time.Duration(c.Preferences.ModelTimeoutSeconds) * time.Second
}

// GetProbeConcurrency returns the username prober worker limit
func (c *Config) GetProbeConcurrency() int {
	if c.Modules.UsernameHunt.Concurrency <= 0 {
		return DefaultProbeConcurrency
	}
	return c.Modules.UsernameHunt.Concurrency
}

// GetProbeTimeout returns the timeout for one username probe
func (c *Config) GetProbeTimeout() time.Duration {
	if c.Modules.UsernameHunt.TimeoutSeconds <= 0 {
		return DefaultProbeTimeout
	}
	return time.Duration(c.Modules.UsernameHunt.TimeoutSeconds) * time.Second
}

// GetCacheTTL parses the cache TTL, falling back to the default on bad input
func (c *Config) GetCacheTTL() time.Duration {
	if c.Cache.TTL == "" {
		return DefaultCacheTTL
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || ttl <= 0 {
		return DefaultCacheTTL
	}
	return ttl
}

// GetCacheMaxEntries returns the maximum number of cache entries
func (c *Config) GetCacheMaxEntries() int {
	if c.Cache.MaxEntries <= 0 {
		return DefaultMaxCacheEntries
	}
	return c.Cache.MaxEntries
}

// ToolBinary returns the configured binary for a tool, or the tool name itself
func (c *Config) ToolBinary(tool string) string {
	var configured string
	switch tool {
	case ToolNmap:
		configured = c.Tools.Nmap
	case ToolNikto:
		configured = c.Tools.Nikto
	case ToolFfuf:
		configured = c.Tools.Ffuf
	}
	if configured == "" {
		return tool
	}
	return configured
}

// ValidateConsistency checks the internal consistency of the configuration
func (c *Config) ValidateConsistency() error {
	if c.Preferences.DefaultModel != "" && !c.HasModel(c.Preferences.DefaultModel) {
		return fmt.Errorf("default model %s does not exist in models list", c.Preferences.DefaultModel)
	}
	if c.Preferences.Language != "" {
		if _, ok := ParseLanguage(c.Preferences.Language); !ok {
			return fmt.Errorf("unsupported language %q", c.Preferences.Language)
		}
	}
	if c.Paths.LogsDir == "" {
		return fmt.Errorf("paths.logs_dir must be set")
	}
	if c.Paths.SessionsFile == "" {
		return fmt.Errorf("paths.sessions_file must be set")
	}
	return nil
}
