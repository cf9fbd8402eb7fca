//go:build embed_plugins

package bank

import "embed"

// EmbeddedPlugins contains the shared-object bundles baked into the
// host binary at build time.
//
// To add one, copy its .so file to internal/bank/plugins/. Unlike the
// WASM bytes this mechanism replaces, a native shared object cannot be
// dlopen'd straight out of an embed.FS — ExtractEmbedded (see
// extract.go) writes each file to a real path under a writable cache
// directory once per process, then adds that directory to the host's
// scan roots so the ordinary walker/cache path discovers them exactly
// like any other file on a search root.
//
//go:embed plugins/*.so
var EmbeddedPlugins embed.FS
