package bank

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// splitPathList splits a platform path-list (colon- or
// semicolon-separated, per os.PathListSeparator) into its components,
// dropping empty segments.
func splitPathList(v string) []string {
	parts := strings.Split(v, string(os.PathListSeparator))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DefaultScanRoots returns the platform-appropriate default search
// root(s): libDir joined with "plugins" when libDir is non-empty
// (the relocatable-binary case from spec.md §4.5's allocate_all),
// otherwise a platform default under the user's config directory.
func DefaultScanRoots(libDir string) []string {
	if libDir != "" {
		return []string{filepath.Join(libDir, "plugins")}
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return []string{filepath.Join(".", "bankctl", "plugins")}
	}
	return []string{filepath.Join(dir, "bankctl", "plugins")}
}

// NewHost builds a Host wired with the platform DynamicLinker, the
// default scan roots followed by any extra roots from BANKCTL_PLUGIN_PATH,
// and the given logger and core entry point.
func NewHost(logger *slog.Logger, coreEntry DescribeFunc, libDir string, pluginsCache, resetPluginsCache bool) *Host {
	roots := DefaultScanRoots(libDir)
	roots = append(roots, ScanRootsFromEnv()...)

	return &Host{
		Linker:            NewLinker(),
		Logger:            logOrDefault(logger),
		CoreEntry:         coreEntry,
		ScanRoots:         roots,
		PluginsCache:      pluginsCache,
		ResetPluginsCache: resetPluginsCache,
	}
}
