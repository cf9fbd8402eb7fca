//go:build linux || darwin || freebsd

package bank

import "plugin"

// stdlibLinker implements DynamicLinker on top of the standard library's
// plugin package (ELF/Mach-O .so/.dylib, cgo required). This is the
// production DynamicLinker wired by NewHost.
type stdlibLinker struct{}

// NewLinker returns the platform DynamicLinker.
func NewLinker() DynamicLinker {
	return stdlibLinker{}
}

func (stdlibLinker) Load(path string, _ bool) (Handle, error) {
	// The stdlib plugin package has no "fast" probe mode: every Open
	// runs package init()s and resolves all symbols eagerly. The hint
	// is accepted for interface conformance and ignored here.
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (stdlibLinker) Lookup(h Handle, symbol string) (DescribeFunc, error) {
	p, ok := h.(*plugin.Plugin)
	if !ok {
		return nil, ErrNoEntryPoint
	}
	sym, err := p.Lookup(symbol)
	if err != nil {
		return nil, ErrNoEntryPoint
	}
	entry, ok := sym.(func() (*PluginDescriptor, error))
	if !ok {
		return nil, ErrNoEntryPoint
	}
	return DescribeFunc(entry), nil
}

func (stdlibLinker) Unload(Handle) error {
	// Go's runtime cannot unmap a loaded plugin; see DESIGN.md and
	// SPEC_FULL.md §1. The handle is simply dropped; the OS reclaims it
	// at process exit.
	return nil
}
