package bank

import "fmt"

// staticEntries holds the describe functions for statically linked
// plugins, registered at package-init time by RegisterStatic. It
// replaces the weakly-linked vlc_static_modules[] array: an explicit,
// possibly-empty slice instead of relying on link-time weak symbols
// (spec.md Design Notes (d)).
var staticEntries []DescribeFunc

// RegisterStatic registers a statically linked plugin's describe
// function. Call it from an init() in any package compiled into the
// host binary that wants to ship a built-in plugin.
func RegisterStatic(entry DescribeFunc) {
	staticEntries = append(staticEntries, entry)
}

// enrollStatic invokes every registered static entry via the describe
// protocol and returns the resulting descriptors, stamped loaded=true,
// unloadable=false. A describe failure for any individual entry is
// silently tolerated — spec.md §4.2, "this plugin is not in this
// build" — except for the distinguished core entry, whose failure is
// the caller's responsibility to treat as fatal.
func enrollStatic(entries []DescribeFunc) []*PluginDescriptor {
	var out []*PluginDescriptor
	for _, entry := range entries {
		d, err := describeStatic(entry)
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	return out
}

// describeStatic runs one static entry's describe protocol and applies
// the static-plugin stamp described in spec.md §4.2.
func describeStatic(entry DescribeFunc) (*PluginDescriptor, error) {
	d, err := entry()
	if err != nil {
		return nil, err
	}
	if d == nil || d.Primary() == nil {
		return nil, fmt.Errorf("bank: static plugin describe returned no primary module")
	}
	d.Loaded = true
	d.Unloadable = false
	return d, nil
}
