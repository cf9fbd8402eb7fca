package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modbank-dev/modbank/internal/config"
)

func TestGroupList_Empty(t *testing.T) {
	cfg := config.DefaultConfig()
	cmd := newGroupCommand(cfg, "")

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"list"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(buf.String(), "No groups configured") {
		t.Errorf("expected 'No groups configured', got %q", buf.String())
	}
}

func TestGroupList_WithGroups(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Groups = map[string]config.GroupConfig{
		"network": {Description: "Network tools", Capabilities: []string{"dns", "http"}},
	}
	cmd := newGroupCommand(cfg, "")

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"list"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "network") {
		t.Errorf("expected 'network' in output, got %q", output)
	}
	if !strings.Contains(output, "dns, http") {
		t.Errorf("expected 'dns, http' in output, got %q", output)
	}
}

func TestGroupCreate(t *testing.T) {
	cfg := config.DefaultConfig()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cmd := newGroupCommand(cfg, path)

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"create", "network", "--description", "Network tools"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, exists := cfg.Groups["network"]; !exists {
		t.Error("expected group 'network' to be created")
	}

	if cfg.Groups["network"].Description != "Network tools" {
		t.Errorf("expected description 'Network tools', got %q", cfg.Groups["network"].Description)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("expected config file to be created")
	}
}

func TestGroupCreate_Duplicate(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Groups = map[string]config.GroupConfig{
		"network": {Description: "Network tools", Capabilities: []string{"dns"}},
	}

	cmd := newGroupCommand(cfg, "")
	cmd.SetArgs([]string{"create", "network"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for duplicate group")
	}
}

func TestGroupCreate_ReservedName(t *testing.T) {
	cfg := config.DefaultConfig()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cmd := newGroupCommand(cfg, path)
	cmd.SetArgs([]string{"create", "plugin"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for reserved name")
	}

	if _, exists := cfg.Groups["plugin"]; exists {
		t.Error("reserved group should not have been created")
	}
}

func TestGroupDelete(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Groups = map[string]config.GroupConfig{
		"network": {Description: "Network tools", Capabilities: []string{"dns"}},
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cmd := newGroupCommand(cfg, path)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"delete", "network"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, exists := cfg.Groups["network"]; exists {
		t.Error("expected group to be deleted")
	}
}

func TestGroupDelete_NotFound(t *testing.T) {
	cfg := config.DefaultConfig()

	cmd := newGroupCommand(cfg, "")
	cmd.SetArgs([]string{"delete", "nonexistent"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for non-existent group")
	}
}

func TestGroupAdd(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Groups = map[string]config.GroupConfig{
		"network": {Description: "Network tools", Capabilities: []string{"dns"}},
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cmd := newGroupCommand(cfg, path)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"add", "network", "http", "tcp"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	group := cfg.Groups["network"]
	if len(group.Capabilities) != 3 {
		t.Fatalf("expected 3 capabilities, got %d: %v", len(group.Capabilities), group.Capabilities)
	}
}

func TestGroupAdd_Duplicate(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Groups = map[string]config.GroupConfig{
		"network": {Description: "Network tools", Capabilities: []string{"dns"}},
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cmd := newGroupCommand(cfg, path)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"add", "network", "dns"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	group := cfg.Groups["network"]
	if len(group.Capabilities) != 1 {
		t.Errorf("expected 1 capability (no duplicate), got %d", len(group.Capabilities))
	}
}

func TestGroupAdd_GroupNotFound(t *testing.T) {
	cfg := config.DefaultConfig()

	cmd := newGroupCommand(cfg, "")
	cmd.SetArgs([]string{"add", "nonexistent", "dns"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for non-existent group")
	}
}

func TestGroupRemove(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Groups = map[string]config.GroupConfig{
		"network": {Description: "Network tools", Capabilities: []string{"dns", "http", "tcp"}},
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cmd := newGroupCommand(cfg, path)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"remove", "network", "http"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	group := cfg.Groups["network"]
	if len(group.Capabilities) != 2 {
		t.Fatalf("expected 2 capabilities, got %d: %v", len(group.Capabilities), group.Capabilities)
	}
	for _, c := range group.Capabilities {
		if c == "http" {
			t.Error("http should have been removed")
		}
	}
}

func TestGroupRemove_CapabilityNotInGroup(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Groups = map[string]config.GroupConfig{
		"network": {Description: "Network tools", Capabilities: []string{"dns"}},
	}

	cmd := newGroupCommand(cfg, "")
	cmd.SetArgs([]string{"remove", "network", "http"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for capability not in group")
	}
}
