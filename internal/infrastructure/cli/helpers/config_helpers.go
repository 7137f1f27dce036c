package helpers

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/investigator-go/internal/domain"
)

// ConfigToGenericMap converts domain.Config to a generic map keyed by the
// same names as the YAML file.
func ConfigToGenericMap(cfg domain.Config) (map[string]interface{}, error) {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var cfgMap map[string]interface{}
	if err := yaml.Unmarshal(raw, &cfgMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal to map: %w", err)
	}
	return cfgMap, nil
}

// TraverseNestedMap retrieves a value from a nested map using a key path
// Returns the value and true if found, nil and false otherwise
func TraverseNestedMap(data interface{}, keyPath []string) (interface{}, bool) {
	if len(keyPath) == 0 {
		return data, true
	}

	switch node := data.(type) {
	case map[string]interface{}:
		next, exists := node[keyPath[0]]
		if !exists {
			return nil, false
		}
		return TraverseNestedMap(next, keyPath[1:])
	default:
		return nil, false
	}
}

// ConfigWarnings lists settings that are valid but leave a feature degraded.
func ConfigWarnings(cfg domain.Config) []string {
	var warnings []string
	if !cfg.Modules.LeakCheck.Enabled {
		warnings = append(warnings, "leak_check module disabled; leak_check requests will report a missing module")
	}
	if !cfg.Modules.UsernameHunt.Enabled {
		warnings = append(warnings, "username_hunt module disabled; username_hunt requests will report a missing module")
	}
	if !cfg.Cache.Enabled {
		warnings = append(warnings, "classification cache disabled; every request calls the model")
	}
	if len(cfg.Models) == 0 {
		warnings = append(warnings, "no models configured; requests resolve with pattern rules only")
	}
	return warnings
}
