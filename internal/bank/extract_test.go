package bank

import "testing"

// TestExtractEmbeddedNoneIsNoop covers the default (non embed_plugins)
// build: EmbeddedPlugins carries nothing, so ExtractEmbedded must return
// the destination directory untouched rather than error.
func TestExtractEmbeddedNoneIsNoop(t *testing.T) {
	dir := t.TempDir()
	got, err := ExtractEmbedded(dir)
	if err != nil {
		t.Fatalf("ExtractEmbedded: %v", err)
	}
	if got != dir {
		t.Errorf("ExtractEmbedded returned %q, want %q", got, dir)
	}
}
