// Package config handles user configuration for the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/modbank-dev/modbank/internal/meta"
	"gopkg.in/yaml.v3"
)

// Config holds user configuration loaded from ~/.bankctl/config.yaml.
type Config struct {
	// Output is the default output format (table, json, yaml).
	Output string `yaml:"output"`

	// Timeout is the default operation timeout.
	Timeout string `yaml:"timeout"`

	// DefaultRegistry is the OCI registry prefix bundle references are
	// resolved against. "bankctl plugin install dns" prepends this to
	// form "ghcr.io/modbank-dev/bundles/dns:latest".
	DefaultRegistry string `yaml:"default_registry"`

	// RequireSigning controls whether installed bundles must carry
	// valid cosign signatures.
	RequireSigning bool `yaml:"require_signing"`

	// Quiet suppresses all output except exit code.
	Quiet bool `yaml:"quiet"`

	// PluginsCache and ResetPluginsCache select the bank's scan Mode for
	// every search root (spec.md §4.5/§6).
	PluginsCache      bool `yaml:"plugins_cache"`
	ResetPluginsCache bool `yaml:"reset_plugins_cache"`

	// ScanRoots lists extra search roots beyond the platform default and
	// BANKCTL_PLUGIN_PATH.
	ScanRoots []string `yaml:"scan_roots,omitempty"`

	// Aliases maps short top-level command names to a capability name,
	// so with "resolve: dns", "bankctl resolve" expands to
	// "bankctl list --capability dns".
	Aliases map[string]string `yaml:"aliases,omitempty"`

	// Indexes lists additional bundle catalog sources.
	Indexes []IndexSource `yaml:"indexes,omitempty"`

	// Groups maps group names to a named collection of capabilities:
	// modules implementing any capability in the group are listed under
	// "bankctl <group> list".
	Groups map[string]GroupConfig `yaml:"groups,omitempty"`
}

// IndexSource defines a bundle catalog location.
type IndexSource struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

// GroupConfig defines a named capability group.
type GroupConfig struct {
	// Description is the help text shown for the group command.
	Description string `yaml:"description"`

	// Capabilities lists the capability names that belong to this group.
	Capabilities []string `yaml:"capabilities"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Output:          "table",
		Timeout:         "30s",
		DefaultRegistry: "ghcr.io/modbank-dev/bundles",
		PluginsCache:    true,
	}
}

// Load reads configuration from the given path.
// Returns DefaultConfig if the file doesn't exist.
// Returns an error only if the file exists but is malformed.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// DefaultConfigPath returns the default config file path.
// ~/.bankctl/config.yaml
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+meta.AppName, "config.yaml")
	}
	return filepath.Join(home, "."+meta.AppName, "config.yaml")
}

// DefaultConfigDir returns the default config directory.
// ~/.bankctl/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+meta.AppName)
	}
	return filepath.Join(home, "."+meta.AppName)
}

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Environment variables (higher priority than config file):
//   - BANKCTL_OUTPUT: default output format
//   - BANKCTL_TIMEOUT: default timeout
//   - BANKCTL_DEFAULT_REGISTRY: OCI registry prefix
func (c *Config) ApplyEnvOverrides() {
	prefix := strings.ToUpper(meta.AppName) + "_"
	if v := os.Getenv(prefix + "OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv(prefix + "TIMEOUT"); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(prefix + "DEFAULT_REGISTRY"); v != "" {
		c.DefaultRegistry = v
	}
}

// reservedCommands lists built-in command names that cannot be used as
// group names. Alias names are not checked against it.
var reservedCommands = map[string]bool{
	"completion": true,
	"version":    true,
	"plugin":     true,
	"group":      true,
	"list":       true,
	"search":     true,
	"help":       true,
}

// ValidateGroups checks group configuration for errors. Only checks for
// critical errors (empty name, reserved name); an empty capability list
// is allowed since a group may be in the process of being configured.
func (c *Config) ValidateGroups() error {
	for name := range c.Groups {
		if name == "" {
			return fmt.Errorf("group name cannot be empty")
		}
		if reservedCommands[name] {
			return fmt.Errorf("group name %q conflicts with built-in command", name)
		}
	}
	return nil
}

// Save writes the config to the given path as YAML.
// Creates parent directories if they don't exist.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
