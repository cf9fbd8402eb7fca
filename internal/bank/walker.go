package bank

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Mode selects how a search root interacts with its on-disk cache,
// spec.md §4.5.
type Mode int

const (
	// CacheUse consults the existing cache and never writes one back.
	CacheUse Mode = iota
	// CacheReset ignores any existing cache, rebuilds it from scratch,
	// and persists the result after the scan completes.
	CacheReset
	// CacheIgnore does no cache interaction at all.
	CacheIgnore
)

// maxWalkDepth is the hard recursion bound from spec.md §4.5: a plugin
// at depth 6 from the root is never discovered.
const maxWalkDepth = 5

// libExt is the platform shared-object suffix used to build the
// filename pattern below.
const libExt = ".so"

// isPluginFilename reports whether name matches the candidate pattern
// from spec.md §6: "lib<name>_plugin<libext>" on general systems. (The
// filename-length-restricted "any file ending in <libext>" variant
// named in spec.md does not apply to modern filesystems and is not
// wired up.)
func isPluginFilename(name string) bool {
	return strings.HasPrefix(name, "lib") && strings.HasSuffix(name, "_plugin"+libExt)
}

// scanState accumulates the result of walking one search root: the
// descriptors discovered or resurrected, and (outside CacheIgnore mode)
// the parallel set to persist if the root is in CacheReset mode.
type scanState struct {
	host  *Host
	mode  Mode
	cache *discoveryCache
	fresh []*PluginDescriptor // non-nil outside CacheIgnore
	found []*PluginDescriptor
}

// allocatePath scans one search root under mode, implementing spec.md
// §4.5's allocate_path: consult/ignore/rebuild the cache, recurse to
// maxWalkDepth, discard anything left unmatched in the cache, and
// persist a fresh cache when mode is CacheReset.
func allocatePath(host *Host, root string, mode Mode) []*PluginDescriptor {
	logger := logOrDefault(host.Logger)
	st := &scanState{host: host, mode: mode}

	switch mode {
	case CacheUse:
		st.cache = loadCache(root)
	case CacheReset:
		st.cache = &discoveryCache{root: root}
	default:
		logger.Debug("ignoring plugins cache file", "root", root)
	}

	if mode != CacheIgnore {
		st.fresh = []*PluginDescriptor{}
	}

	allocateDir(st, 0, root, "")

	if st.cache != nil {
		st.cache.discardStale()
	}

	if mode == CacheReset {
		if err := saveCache(root, st.fresh); err != nil {
			logger.Warn("failed to persist plugin cache", "root", root, "err", err)
		}
	}

	return st.found
}

// allocateDir reads absDir (whose path relative to the search root is
// relDir, and whose depth below the root is depth) and recurses into
// its subdirectories while depth stays within maxWalkDepth, implementing
// spec.md §4.5's allocate_dir: a directory at depth maxWalkDepth is
// still read, but nothing one level deeper is.
func allocateDir(st *scanState, depth int, absDir, relDir string) {
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return
	}

	for _, ent := range entries {
		name := ent.Name()
		if name == "." || name == ".." {
			continue
		}

		relPath := name
		if relDir != "" {
			relPath = filepath.Join(relDir, name)
		}
		absPath := filepath.Join(absDir, name)

		info, err := os.Stat(absPath)
		if err != nil {
			continue
		}

		if info.IsDir() {
			if depth < maxWalkDepth {
				allocateDir(st, depth+1, absPath, relPath)
			}
			continue
		}

		if name == cacheFileName || !info.Mode().IsRegular() || !isPluginFilename(name) {
			continue
		}

		allocateFile(st, absPath, relPath, info.ModTime(), info.Size())
	}
}

// allocateFile resolves a single candidate file to a descriptor,
// implementing spec.md §4.5's allocate_file: try the cache first (mode
// CacheUse), fall back to a fast dynamic load, force an eager re-load
// when a cache hit carries a callback-bearing config option, then
// prepend to the bank's discovered set and (outside CacheIgnore) record
// it for cache persistence. Allocation failures for this file are
// logged and skipped; they never abort the scan (spec.md §7).
func allocateFile(st *scanState, absPath, relPath string, modTime time.Time, size int64) {
	logger := logOrDefault(st.host.Logger)

	var d *PluginDescriptor
	fromCache := false

	if st.mode == CacheUse && st.cache != nil {
		if hit, ok := st.cache.lookup(relPath, modTime, size); ok {
			hit.AbsPath = absPath
			d = hit
			fromCache = true
		}
	}

	if d == nil {
		fresh, err := loadDynamic(st.host.Linker, logger, absPath, true)
		if err != nil {
			return
		}
		fresh.Path = relPath
		fresh.ModTime = modTime
		fresh.Size = size
		d = fresh
	}

	// spec.md §4.5 step 4: a cache-resurrected (unloaded) descriptor
	// whose primary module carries a live enumeration callback cannot
	// stay unloaded — the callback only exists in mapped code. Force an
	// eager reload. This path is unreachable when mode is CacheReset,
	// since a freshly-loaded descriptor is always Loaded already.
	if fromCache && !d.Loaded && d.Primary() != nil && d.Primary().HasCallbackConfig() {
		reloaded, err := loadDynamic(st.host.Linker, logger, absPath, false)
		if err != nil {
			logger.Error("corrupt module: callback-bearing plugin could not be reloaded", "path", absPath)
			return
		}
		reloaded.Path = relPath
		reloaded.ModTime = modTime
		reloaded.Size = size
		d = reloaded
	}

	st.found = append(st.found, d)

	if st.mode != CacheIgnore {
		st.fresh = append(st.fresh, d)
	}
}
