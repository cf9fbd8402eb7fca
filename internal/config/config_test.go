package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Default(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output != "table" {
		t.Errorf("expected default output 'table', got %q", cfg.Output)
	}
	if cfg.Timeout != "30s" {
		t.Errorf("expected default timeout '30s', got %q", cfg.Timeout)
	}
	if !cfg.PluginsCache {
		t.Errorf("expected plugins_cache to default to true")
	}
}

func TestLoad_Valid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
output: json
timeout: 60s
default_registry: ghcr.io/custom
plugins_cache: true
reset_plugins_cache: true
scan_roots:
  - /opt/bankctl/plugins
aliases:
  resolve: dns
groups:
  net:
    description: "Networking capabilities"
    capabilities: ["dns", "ping"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Output != "json" {
		t.Errorf("expected output 'json', got %q", cfg.Output)
	}
	if cfg.Timeout != "60s" {
		t.Errorf("expected timeout '60s', got %q", cfg.Timeout)
	}
	if cfg.DefaultRegistry != "ghcr.io/custom" {
		t.Errorf("expected custom registry, got %q", cfg.DefaultRegistry)
	}
	if !cfg.ResetPluginsCache {
		t.Errorf("expected reset_plugins_cache to be true")
	}
	if len(cfg.ScanRoots) != 1 || cfg.ScanRoots[0] != "/opt/bankctl/plugins" {
		t.Errorf("unexpected scan roots: %v", cfg.ScanRoots)
	}
	if cfg.Aliases["resolve"] != "dns" {
		t.Errorf("expected alias 'resolve' -> 'dns', got %q", cfg.Aliases["resolve"])
	}
	g, ok := cfg.Groups["net"]
	if !ok || len(g.Capabilities) != 2 {
		t.Errorf("expected group 'net' with 2 capabilities, got %+v", g)
	}
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("{{invalid"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := DefaultConfig()

	t.Setenv("BANKCTL_OUTPUT", "yaml")
	t.Setenv("BANKCTL_TIMEOUT", "120s")

	cfg.ApplyEnvOverrides()

	if cfg.Output != "yaml" {
		t.Errorf("expected output 'yaml' from env, got %q", cfg.Output)
	}
	if cfg.Timeout != "120s" {
		t.Errorf("expected timeout '120s' from env, got %q", cfg.Timeout)
	}
}

func TestValidateGroupsRejectsReservedNames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Groups = map[string]GroupConfig{"plugin": {}}
	if err := cfg.ValidateGroups(); err == nil {
		t.Error("expected an error for a reserved group name")
	}
}
