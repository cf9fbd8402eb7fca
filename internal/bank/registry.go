package bank

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// Host carries everything the bank needs from its embedder: the
// dynamic-linking primitive, a logger, the statically-linked core
// plugin's describe function, and the search-path/cache-mode
// configuration consumed by LoadPlugins (spec.md §6).
type Host struct {
	Linker DynamicLinker
	Logger *slog.Logger

	// CoreEntry describes the statically linked core plugin seeded by
	// InitBank. Its failure to describe itself is the one fatal error
	// in this package (spec.md §7: "Only InitBank's assertion that the
	// core plugin describes successfully is fatal").
	CoreEntry DescribeFunc

	// ScanRoots lists the directories LoadPlugins recurses into, in
	// order. NewHost populates it from the platform default plus
	// BANKCTL_PLUGIN_PATH (spec.md §4.5's allocate_all / §6's
	// VLC_PLUGIN_PATH).
	ScanRoots []string

	// PluginsCache and ResetPluginsCache are the two boolean
	// configuration flags of spec.md §6 that select a root's Mode.
	PluginsCache      bool
	ResetPluginsCache bool
}

// scanMode derives the Mode for every search root from the two
// configuration flags, per spec.md §4.5's allocate_all.
func (h *Host) scanMode() Mode {
	if !h.PluginsCache {
		return CacheIgnore
	}
	if h.ResetPluginsCache {
		return CacheReset
	}
	return CacheUse
}

// pluginPathEnv is the environment variable listing extra search roots,
// analogous to spec.md §6's VLC_PLUGIN_PATH.
const pluginPathEnv = "BANKCTL_PLUGIN_PATH"

// ScanRootsFromEnv returns extra roots from BANKCTL_PLUGIN_PATH, split
// on the platform path-list separator, in order.
func ScanRootsFromEnv() []string {
	v := os.Getenv(pluginPathEnv)
	if v == "" {
		return nil
	}
	return splitPathList(v)
}

// Bank is the process-wide plugin registry singleton (spec.md §3/§5).
// The zero value is ready to use.
type Bank struct {
	lock sync.Mutex

	// libs holds descriptors in reverse-insertion order: the most
	// recently prepended descriptor is libs[0]. This realizes the C
	// singly-linked list's "prepend" discipline as a slice (spec.md
	// Design Notes (a)).
	libs []*PluginDescriptor

	// caches retains the backing buffers of every cache blob that
	// produced a registered descriptor, so cache-resurrected descriptors' strings and
	// tables stay valid. Go's GC makes this list purely documentary —
	// see cache.go's cacheBlob doc comment — but it mirrors spec.md §3
	// exactly and supports EndBank's "release the cache blob chain".
	caches []*cacheBlob

	usage int
}

// InitBank acquires the bank lock and, if this is the first activation
// (usage == 0), seeds the registry with the statically linked core
// plugin. The lock is intentionally held across return: the caller must
// invoke LoadPlugins next, which releases it. This is spec.md §4.1's
// staged-locking contract, preserved verbatim because plugin discovery
// depends on configuration values that only become queryable once the
// core descriptor is installed, and the bank must look atomically
// populated to every other goroutine.
//
// InitBank's one fatal condition: if the core entry fails to describe
// itself, InitBank panics. A host whose statically linked core is
// broken is a broken build (spec.md §7).
func (b *Bank) InitBank(host *Host) {
	b.lock.Lock()

	if b.usage == 0 {
		core, err := describeStatic(host.CoreEntry)
		if err != nil {
			b.lock.Unlock()
			panic(fmt.Sprintf("bank: static core plugin failed to describe itself: %v", err))
		}
		b.libs = append([]*PluginDescriptor{core}, b.libs...)
		sortConfigOptions(b.libs)
	}

	b.usage++
}

// LoadPlugins assumes the bank lock is already held by a prior InitBank
// call on this goroutine. On the first activation this process lifetime
// (usage == 1), it enrolls every other statically linked plugin, then
// walks every configured search root, then re-sorts configuration
// options exactly once (resolving spec.md Design Notes (c)'s "sort
// exactly once after all enrollment completes"). It always releases the
// lock before returning, completing the InitBank/LoadPlugins pairing.
// Returns the total module count (primary modules plus submodules)
// across every registered descriptor.
//
// entries is enrolled in addition to whatever RegisterStatic has
// accumulated in the package-level registry; a nil entries does not
// mean "no static plugins", it means "no additional ones beyond
// RegisterStatic's" — the package-level registry is always consulted.
func (b *Bank) LoadPlugins(host *Host, entries []DescribeFunc) (int, error) {
	defer b.lock.Unlock()

	if b.usage == 1 {
		all := append(append([]DescribeFunc{}, staticEntries...), entries...)
		for _, d := range enrollStatic(all) {
			b.libs = append([]*PluginDescriptor{d}, b.libs...)
		}

		mode := host.scanMode()
		seen := make(map[*cacheBlob]bool)
		for _, root := range host.ScanRoots {
			found := allocatePath(host, root, mode)
			for _, d := range found {
				b.libs = append([]*PluginDescriptor{d}, b.libs...)
				if d.cacheBlob != nil && !seen[d.cacheBlob] {
					seen[d.cacheBlob] = true
					b.caches = append(b.caches, d.cacheBlob)
				}
			}
		}

		sortConfigOptions(b.libs)
	}

	return countModules(b.libs), nil
}

// Activate is sugar over InitBank+LoadPlugins for callers that don't
// need the staged-lock contract directly (spec.md Design Notes (b)).
// entries, as with LoadPlugins, is additional to whatever RegisterStatic
// has already accumulated.
func (b *Bank) Activate(host *Host, entries []DescribeFunc) (int, error) {
	b.InitBank(host)
	return b.LoadPlugins(host, entries)
}

// EndBank releases the bank's reference. When pluginsLoaded is true the
// caller completed a matching InitBank+LoadPlugins pair and the lock
// must be (re)acquired here; when false, the caller still holds the
// lock from an InitBank with no matching LoadPlugins. When usage drops
// to zero, the descriptor and cache-blob lists are detached under lock,
// the lock is released, and only then are OS handles unloaded — never
// while holding the bank lock, since Unload may block (spec.md §4.1,
// §5).
func (b *Bank) EndBank(host *Host, pluginsLoaded bool) {
	if pluginsLoaded {
		b.lock.Lock()
	}

	b.usage--
	if b.usage > 0 {
		b.lock.Unlock()
		return
	}

	libs := b.libs
	caches := b.caches
	b.libs = nil
	b.caches = nil
	b.lock.Unlock()

	logger := logOrDefault(host.Logger)
	for _, d := range libs {
		if d.Loaded && d.Unloadable {
			if err := host.Linker.Unload(d.Handle); err != nil {
				logger.Warn("failed to unload plugin", "path", d.AbsPath, "err", err)
			}
		}
	}
	_ = caches // released with the descriptors; see cache.go
}

// countModules sums 1+SubmoduleCount() across every descriptor,
// matching spec.md §8 property 9.
func countModules(libs []*PluginDescriptor) int {
	n := 0
	for _, d := range libs {
		if p := d.Primary(); p != nil {
			n += 1 + p.SubmoduleCount()
		}
	}
	return n
}

// sortConfigOptions marks where configuration options are sorted: once
// by InitBank after the core descriptor is seeded, and once by
// LoadPlugins after all static and dynamic enrollment completes.
// Configuration-option ordering itself is an out-of-scope external
// collaborator (spec.md §1); this hook does no sorting of its own.
func sortConfigOptions(libs []*PluginDescriptor) {
	_ = libs
}
