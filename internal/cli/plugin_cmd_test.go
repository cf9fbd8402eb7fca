package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modbank-dev/modbank/internal/ociplugin"
)

func TestPluginCommand_ListEmpty(t *testing.T) {
	dir := t.TempDir()
	stack, err := ociplugin.NewStack(ociplugin.ServiceConfig{CacheDir: dir})
	if err != nil {
		t.Fatalf("NewStack: %v", err)
	}

	cmd := newPluginListCommand(stack)
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "No plugin bundles installed") {
		t.Errorf("expected empty list message, got: %s", output)
	}
}

// installTestBundle installs a fake .so source file through the
// install command and returns its on-disk source path, independent of
// whatever internal filename convention FSPluginRepository.Store uses.
func installTestBundle(t *testing.T, stack *ociplugin.Stack) string {
	t.Helper()

	srcDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "testplugin.so")
	if err := os.WriteFile(srcPath, []byte("fake shared object"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cmd := newPluginInstallCommand(stack, "ghcr.io/modbank-dev/bundles")
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{srcPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !strings.Contains(buf.String(), "Installed \"testplugin\"") {
		t.Errorf("expected install confirmation, got: %s", buf.String())
	}

	return srcPath
}

func TestPluginCommand_InstallLocal(t *testing.T) {
	pluginsDir := t.TempDir()
	stack, err := ociplugin.NewStack(ociplugin.ServiceConfig{CacheDir: pluginsDir})
	if err != nil {
		t.Fatalf("NewStack: %v", err)
	}

	installTestBundle(t, stack)

	bundles, err := stack.Service.ListCachedPlugins(t.Context())
	if err != nil {
		t.Fatalf("ListCachedPlugins: %v", err)
	}
	if len(bundles) != 1 {
		t.Fatalf("expected 1 cached bundle, got %d", len(bundles))
	}
	if bundles[0].Metadata().Name() != "testplugin" {
		t.Errorf("expected cached bundle named 'testplugin', got %q", bundles[0].Metadata().Name())
	}
}

func TestPluginCommand_Remove(t *testing.T) {
	pluginsDir := t.TempDir()
	stack, err := ociplugin.NewStack(ociplugin.ServiceConfig{CacheDir: pluginsDir})
	if err != nil {
		t.Fatalf("NewStack: %v", err)
	}

	installTestBundle(t, stack)

	cmd := newPluginRemoveCommand(stack)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"testplugin"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	bundles, err := stack.Service.ListCachedPlugins(t.Context())
	if err != nil {
		t.Fatalf("ListCachedPlugins: %v", err)
	}
	if len(bundles) != 0 {
		t.Errorf("expected 0 cached bundles after removal, got %d", len(bundles))
	}
}

func TestPluginCommand_Refresh(t *testing.T) {
	cmd := newPluginRefreshCommand(nil)
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(buf.String(), "nothing to clear") {
		t.Errorf("expected nil-host message, got: %s", buf.String())
	}
}
