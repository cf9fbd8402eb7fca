package bank

import "errors"

// Handle is an opaque OS handle to a mapped shared object. Its concrete
// type is chosen by the DynamicLinker implementation.
type Handle any

// DescribeFunc is the describe protocol: the callback-based handshake by
// which a plugin's entry point reports its modules and options to the
// host. Invoking it is the only contact this package has with plugin
// code; everything the callback does internally is out of scope
// (spec.md §1, "the description callbacks... treated as an opaque
// describe operation").
type DescribeFunc func() (*PluginDescriptor, error)

// entrySymbol is the name every plugin must export: a fixed prefix,
// analogous to vlc_entry + MODULE_SUFFIX in the source this package is
// modeled on. Go plugin symbols are simple exported identifiers, so no
// ABI-revision suffix or platform underscore-prefix is needed — the Go
// toolchain already disambiguates by build, which replaces that part of
// the original scheme (spec.md §4.3 step 2).
const entrySymbol = "ModuleEntry"

// ErrDynamicLoadingUnsupported is returned by Load and Lookup on
// platforms without dynamic-plugin support (Unload there is a no-op),
// mirroring the C !HAVE_DYNAMIC_PLUGINS build where module loading is
// compiled out entirely.
var ErrDynamicLoadingUnsupported = errors.New("bank: dynamic plugin loading not supported on this platform")

// ErrNoEntryPoint is returned when a shared object has no ModuleEntry
// symbol (spec.md §7, "no_entry").
var ErrNoEntryPoint = errors.New("bank: plugin has no ModuleEntry symbol")

// ErrDescribeFailed is returned when the entry point's describe
// protocol yields no descriptor (spec.md §7, "describe_failed").
var ErrDescribeFailed = errors.New("bank: plugin entry point returned no descriptor")

// DynamicLinker is the host-supplied dynamic-linking primitive from
// spec.md §6: Load, Lookup, Unload. It is an interface, not a concrete
// OS call, so the loader/walker/cache can be exercised in tests without
// real shared objects on disk.
type DynamicLinker interface {
	// Load maps path into the process. fast is a hint: true when the
	// plugin is only being probed for cache population, not immediate
	// use; an implementation may skip constructor execution or lazy-bind
	// symbols when fast is set and the platform supports it.
	Load(path string, fast bool) (Handle, error)

	// Lookup resolves symbol in h. Only the fixed entrySymbol name is
	// ever looked up by this package, but the method takes a name to
	// keep the interface a faithful primitive.
	Lookup(h Handle, symbol string) (DescribeFunc, error)

	// Unload releases h. Implementations that cannot release mapped
	// code (e.g. the stdlib plugin-backed linker) may treat this as a
	// no-op; see DESIGN.md.
	Unload(h Handle) error
}
