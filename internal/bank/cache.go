package bank

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// cacheFileName is the name of the persisted blob inside a search root,
// following the one-blob-per-search-root contract of spec.md §4.4.
const cacheFileName = ".bankctl-plugins.cache"

// ClearCache removes the persisted discovery-cache blob from every one
// of host's scan roots, so the next LoadPlugins loads every plugin
// afresh. A new blob is written only by a scan in CacheReset mode;
// CacheUse and CacheIgnore scans leave the roots without one. A missing
// blob in any root is not an error.
func ClearCache(host *Host) error {
	for _, root := range host.ScanRoots {
		path := filepath.Join(root, cacheFileName)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// cacheBlob is the shared-owned backing buffer for descriptors
// resurrected from disk. Descriptors hold a pointer to the blob that
// produced them (PluginDescriptor.cacheBlob) purely so Go's garbage
// collector keeps the raw bytes reachable for as long as any descriptor
// referencing them is alive — the manual refcount and "caches" chain the
// original C implementation needs (strings point into raw bytes) has no
// equivalent here because cacheEntry already owns its own decoded
// strings; the field exists to document the same lifetime relationship
// spec.md §3 calls out, not because Go needs it to avoid a dangling
// pointer.
type cacheBlob struct {
	root string
	raw  []byte
}

// cacheEntry is one on-disk record: spec.md §3's CacheEntry — relative
// path, filesystem identity, and the full module chain.
type cacheEntry struct {
	RelPath string         `json:"rel_path"`
	ModTime time.Time      `json:"mtime"`
	Size    int64          `json:"size"`
	Modules []cacheModule  `json:"modules"`
}

type cacheModule struct {
	Name        string             `json:"name"`
	Capability  string             `json:"capability"`
	Score       int                `json:"score"`
	Description string             `json:"description"`
	Config      []cacheConfigOption `json:"config,omitempty"`
}

type cacheConfigOption struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Default     string `json:"default"`
	Description string `json:"description"`
	// HasCallback records that the live entry had an enumeration
	// callback pointer. The pointer itself cannot be serialized; its
	// presence alone drives the callback_in_unloaded re-load path in
	// walker.go.
	HasCallback bool `json:"has_callback,omitempty"`
}

// discoveryCache is the in-memory, per-search-root working set loaded
// from disk at the start of a scan (cache.load in spec.md §4.4) and
// consumed entry-by-entry as allocateFile matches live files against it.
type discoveryCache struct {
	root    string
	blob    *cacheBlob
	entries []cacheEntry // remaining, unmatched entries
}

// loadCache reads the on-disk blob for root. A missing or corrupt blob
// is equivalent to an empty cache (spec.md §7, "cache_corrupt").
func loadCache(root string) *discoveryCache {
	path := filepath.Join(root, cacheFileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		return &discoveryCache{root: root}
	}

	var entries []cacheEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return &discoveryCache{root: root}
	}

	return &discoveryCache{
		root:    root,
		blob:    &cacheBlob{root: root, raw: raw},
		entries: entries,
	}
}

// lookup searches c for an entry matching relPath, modTime, and size
// (spec.md §4.4's validity predicate). On a match it detaches and
// returns the corresponding descriptor; on any mismatch — including a
// changed mtime/size — it returns (nil, false) and leaves the entry in
// place to be discarded later by discardStale.
func (c *discoveryCache) lookup(relPath string, modTime time.Time, size int64) (*PluginDescriptor, bool) {
	for i, e := range c.entries {
		if e.RelPath != relPath {
			continue
		}
		if !e.ModTime.Equal(modTime) || e.Size != size {
			return nil, false
		}
		c.entries = append(c.entries[:i], c.entries[i+1:]...)
		return entryToDescriptor(e, c.blob), true
	}
	return nil, false
}

// discardStale drops every entry still sitting in c — files that were
// in the cache but not matched to a live file this scan — so a plugin
// removed from the search path does not linger forever (spec.md §4.4,
// "After scanning a search root, any entries still sitting in cache_head
// ... are discarded").
func (c *discoveryCache) discardStale() {
	c.entries = nil
}

// entryToDescriptor converts a decoded cacheEntry into a descriptor with
// Loaded=false and Handle=nil, carrying a reference to blob so the
// backing bytes outlive it.
func entryToDescriptor(e cacheEntry, blob *cacheBlob) *PluginDescriptor {
	d := &PluginDescriptor{
		Path:      e.RelPath,
		ModTime:   e.ModTime,
		Size:      e.Size,
		Loaded:    false,
		Handle:    nil,
		cacheBlob: blob,
	}
	mods := make([]*Module, 0, len(e.Modules))
	for _, cm := range e.Modules {
		m := &Module{
			Name:        cm.Name,
			Capability:  cm.Capability,
			Score:       cm.Score,
			Description: cm.Description,
			Plugin:      d,
		}
		m.Config = make([]ConfigOption, len(cm.Config))
		for i, cc := range cm.Config {
			m.Config[i] = ConfigOption{
				Name:        cc.Name,
				Type:        cc.Type,
				Default:     cc.Default,
				Description: cc.Description,
			}
			if cc.HasCallback {
				// A cached entry can only record that a callback
				// existed, never the pointer itself; allocateFile uses
				// this stand-in to force a fresh load before the
				// descriptor is ever used as loaded.
				m.Config[i].EnumCallback = func() []string { return nil }
			}
		}
		mods = append(mods, m)
	}
	d.Modules = mods
	return d
}

// descriptorToEntry converts a live, loaded descriptor into the form
// persisted on disk.
func descriptorToEntry(d *PluginDescriptor) cacheEntry {
	e := cacheEntry{
		RelPath: d.Path,
		ModTime: d.ModTime,
		Size:    d.Size,
	}
	for _, m := range d.Modules {
		cm := cacheModule{
			Name:        m.Name,
			Capability:  m.Capability,
			Score:       m.Score,
			Description: m.Description,
		}
		for _, c := range m.Config {
			cm.Config = append(cm.Config, cacheConfigOption{
				Name:        c.Name,
				Type:        c.Type,
				Default:     c.Default,
				Description: c.Description,
				HasCallback: c.HasCallback(),
			})
		}
		e.Modules = append(e.Modules, cm)
	}
	return e
}

// saveCache persists plugins (the freshly built set for this search
// root, added via cache.add during the scan) to root's blob. Only
// called in RESET mode, after the full scan completes (spec.md §4.4).
func saveCache(root string, plugins []*PluginDescriptor) error {
	entries := make([]cacheEntry, 0, len(plugins))
	for _, d := range plugins {
		entries = append(entries, descriptorToEntry(d))
	}

	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(root, cacheFileName)
	return os.WriteFile(path, raw, 0o644)
}
