package bank

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ExtractEmbedded writes every .so file embedded in EmbeddedPlugins to
// dir, skipping any whose size on disk already matches (a cheap
// idempotence check — we don't have the embedded file's mtime to
// compare against, only its bytes). On success it returns dir so
// callers can append it to a ScanRoots slice; on failure to create dir
// it returns "" and the error.
func ExtractEmbedded(dir string) (string, error) {
	entries, err := fs.ReadDir(EmbeddedPlugins, "plugins")
	if err != nil {
		// No embedded plugins in this build (embed_plugins tag unset,
		// or nothing copied into internal/bank/plugins/).
		return dir, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), libExt) {
			continue
		}

		data, err := EmbeddedPlugins.ReadFile(filepath.Join("plugins", ent.Name()))
		if err != nil {
			continue
		}

		dest := filepath.Join(dir, ent.Name())
		if info, statErr := os.Stat(dest); statErr == nil && info.Size() == int64(len(data)) {
			continue
		}

		_ = os.WriteFile(dest, data, 0o644)
	}

	return dir, nil
}
