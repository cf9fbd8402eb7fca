package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/modbank-dev/modbank/internal/config"
	"github.com/spf13/cobra"
)

func TestRegisterGroups_ListsByCapability(t *testing.T) {
	b := testBank(
		testEntry("dns-resolver", "dns", 10),
		testEntry("http-probe", "http", 5),
		testEntry("aws-describe", "aws", 5),
	)

	cfg := config.DefaultConfig()
	cfg.Groups = map[string]config.GroupConfig{
		"network": {Description: "Network tools", Capabilities: []string{"dns", "http"}},
		"cloud":   {Description: "Cloud tools", Capabilities: []string{"aws"}},
	}

	root := &cobra.Command{Use: "bankctl"}
	outputFormat := "table"
	registerGroups(root, cfg, b, &outputFormat)

	cmds := root.Commands()
	if len(cmds) != 2 {
		t.Fatalf("expected 2 group commands, got %d", len(cmds))
	}

	var networkCmd *cobra.Command
	for _, c := range cmds {
		if c.Name() == "network" {
			networkCmd = c
		}
	}
	if networkCmd == nil {
		t.Fatal("expected 'network' group command")
	}

	var buf bytes.Buffer
	networkCmd.SetOut(&buf)
	networkCmd.SetArgs([]string{"list"})
	if err := networkCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "dns-resolver") || !strings.Contains(out, "http-probe") {
		t.Errorf("expected both network modules in output, got: %s", out)
	}
	if strings.Contains(out, "aws-describe") {
		t.Errorf("did not expect cloud module in network group output, got: %s", out)
	}
}

func TestRegisterGroups_MissingCapabilityYieldsEmptyList(t *testing.T) {
	b := testBank(testEntry("dns-resolver", "dns", 10))

	cfg := config.DefaultConfig()
	cfg.Groups = map[string]config.GroupConfig{
		"empty": {Description: "Nothing advertises this", Capabilities: []string{"nonexistent"}},
	}

	root := &cobra.Command{Use: "bankctl"}
	outputFormat := "json"
	registerGroups(root, cfg, b, &outputFormat)

	if len(root.Commands()) != 1 {
		t.Fatalf("expected 1 group command, got %d", len(root.Commands()))
	}

	var buf bytes.Buffer
	root.Commands()[0].SetOut(&buf)
	root.Commands()[0].SetArgs([]string{"list"})
	if err := root.Commands()[0].Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("expected empty JSON array, got: %q", buf.String())
	}
}

func TestRegisterGroups_CapabilityInMultipleGroups(t *testing.T) {
	b := testBank(testEntry("dns-resolver", "dns", 10))

	cfg := config.DefaultConfig()
	cfg.Groups = map[string]config.GroupConfig{
		"network": {Description: "Network tools", Capabilities: []string{"dns"}},
		"debug":   {Description: "Debug tools", Capabilities: []string{"dns"}},
	}

	root := &cobra.Command{Use: "bankctl"}
	outputFormat := "table"
	registerGroups(root, cfg, b, &outputFormat)

	if len(root.Commands()) != 2 {
		t.Fatalf("expected 2 group commands, got %d", len(root.Commands()))
	}
}
