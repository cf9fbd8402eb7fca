// Package bank implements the process-wide plugin registry: discovery,
// loading, on-disk caching, lazy mapping, and capability-filtered
// enumeration of pluggable modules.
package bank

import "time"

// ConfigOption is one configuration item advertised by a module. A
// non-nil EnumCallback marks it as carrying a live function pointer into
// the plugin's code — such options cannot survive on a cache-resurrected,
// unloaded descriptor (see allocateFile in walker.go).
type ConfigOption struct {
	Name        string
	Type        string
	Default     string
	Description string

	// EnumCallback is the list-enumeration callback advertised by the
	// plugin. Its presence is the only thing the bank inspects; invoking
	// it is outside this package's scope (host-supplied primitive).
	EnumCallback func() []string
}

// HasCallback reports whether this option carries a live callback
// pointer, per the invariant in spec.md §3: "A plugin with any config
// option that carries an enumeration callback function pointer MUST
// have loaded = true and unloadable = false."
func (o ConfigOption) HasCallback() bool {
	return o.EnumCallback != nil
}

// Module is one capability advertisement inside a plugin. The primary
// module of a descriptor (Plugin.Modules[0]) may be co-hosted with an
// ordered chain of sibling submodules, reachable as Plugin.Modules[1:].
type Module struct {
	Name        string
	Capability  string
	Score       int
	Description string
	Config      []ConfigOption

	// Plugin is a back-reference to the containing descriptor. It is a
	// relation, not an ownership edge — Module never outlives Plugin.
	Plugin *PluginDescriptor
}

// SubmoduleCount returns the length of the submodule chain co-hosted
// with m. Only meaningful (and non-zero) on the primary module of a
// descriptor; a non-primary module reports zero, matching spec.md §3's
// "submodule_count: length of the submodule list on the primary module".
func (m *Module) SubmoduleCount() int {
	if m.Plugin == nil || len(m.Plugin.Modules) == 0 || m.Plugin.Modules[0] != m {
		return 0
	}
	return len(m.Plugin.Modules) - 1
}

// HasCallbackConfig reports whether any of m's own config options
// carries a live enumeration callback. The options of sibling
// submodules are not inspected.
func (m *Module) HasCallbackConfig() bool {
	for _, c := range m.Config {
		if c.HasCallback() {
			return true
		}
	}
	return false
}

// PluginDescriptor is the in-memory record for one plugin: one shared
// object (or a statically linked unit) and its chain of modules.
type PluginDescriptor struct {
	// Modules[0] is the primary module; it is never nil for a descriptor
	// that is attached to the bank.
	Modules []*Module

	// Path is the canonical path relative to the search root that
	// produced this descriptor; empty for static plugins.
	Path string

	// AbsPath is the absolute filesystem path. Set whenever Loaded is
	// true or the descriptor was resurrected from cache.
	AbsPath string

	ModTime time.Time
	Size    int64

	// Handle is the opaque OS handle backing a mapped shared object.
	// Nil when Loaded is false.
	Handle Handle

	// Loaded reports whether the code has been mapped and the describe
	// protocol executed this session.
	Loaded bool

	// Unloadable reports whether the loader may release Handle at
	// shutdown. False for the static core and for any plugin carrying
	// callback-bearing config (see Module.HasCallbackConfig).
	Unloadable bool

	// cacheBlob is the shared-owned backing buffer for descriptors
	// resurrected from an on-disk cache. Nil for descriptors created by
	// a live load. Go's GC keeps the blob alive as long as any
	// descriptor references it; there is no manual refcount to manage.
	cacheBlob *cacheBlob
}

// Primary returns the descriptor's primary module, or nil if it has
// none (only possible for a descriptor not yet attached to the bank).
func (d *PluginDescriptor) Primary() *Module {
	if len(d.Modules) == 0 {
		return nil
	}
	return d.Modules[0]
}
