package config

import (
	"time"

	"github.com/trebuchet-org/safedeploy/internal/domain"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	ConfigPath  string // empty when no safedeploy.toml was found

	// Context settings
	Network string // name or chain id, empty if not specified

	// Registry settings
	Registry          string // "embedded", a directory or an http(s) base URL
	IncludeUnreleased bool
	LatestVersion     domain.ProtocolVersion

	// Overrides pin family addresses per chain without touching the registry
	Overrides []domain.AddressOverride

	// Networks declared in safedeploy.toml, keyed by name
	Networks map[string]domain.Network

	// Execution settings
	Debug          bool
	NonInteractive bool
	Output         string // "table", "json" or "yaml"
	Timeout        time.Duration
}

// RegistryEmbedded selects the deployment assets bundled with the binary
const RegistryEmbedded = "embedded"
