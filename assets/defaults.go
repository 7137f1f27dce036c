// Package assets embeds the files written on first run.
package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// DefaultGuardrailYAML contains the embedded default target rules.
//
//go:embed defaults/guardrail.yaml
var DefaultGuardrailYAML []byte

// DefaultSitesYAML contains the embedded username-hunt site list.
//
//go:embed defaults/sites.yaml
var DefaultSitesYAML []byte
