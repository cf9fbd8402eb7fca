//go:build !embed_plugins

package bank

import "embed"

// EmbeddedPlugins is empty when built without the embed_plugins tag.
var EmbeddedPlugins embed.FS
