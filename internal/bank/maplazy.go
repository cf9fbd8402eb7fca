package bank

import (
	"fmt"
	"log/slog"
	"sync"
)

// mapMu serializes lazy mapping. It is deliberately distinct from
// Bank.lock: promoting a cache-resurrected descriptor to a loaded image
// does not require the bank lock, because by the time Map can be called
// the bank itself is read-only (spec.md §4.3, §5).
var mapMu sync.Mutex

// Map promotes a cache-resurrected, unloaded module to a fully loaded
// in-memory image on first real use (spec.md §4.3's map()). If
// module.Plugin is already loaded, Map is a no-op. On failure the
// descriptor is left unloaded and the error is returned; a later Map
// call will retry, since nothing here is sticky on failure beyond the
// unloaded state itself (spec.md §8, property 10 requires idempotence
// only when promotion succeeds).
func Map(linker DynamicLinker, logger *slog.Logger, module *Module) error {
	logger = logOrDefault(logger)
	mapMu.Lock()
	defer mapMu.Unlock()

	d := module.Plugin
	if d == nil {
		return fmt.Errorf("bank: module has no owning plugin")
	}
	if d.Loaded {
		return nil
	}
	if d.AbsPath == "" {
		return fmt.Errorf("bank: cannot map %q: no absolute path recorded", d.Path)
	}

	fresh, err := loadDynamic(linker, logger, d.AbsPath, false)
	if err != nil {
		logger.Error("corrupt module", "path", d.AbsPath, "err", err)
		return ErrCorruptModule
	}

	mergeDescriptor(d, fresh)
	return nil
}

// mergeDescriptor transfers fresh-image runtime fields into cached, the
// canonical record, per spec.md §4.3 and Design Notes "Merge semantics
// on lazy map": the cached side keeps its strings and config tables
// (they were already fully populated from the on-disk cache); the OS
// handle and Loaded flag can only come from the just-loaded image, so
// those transfer. Live enumeration callback pointers also only exist on
// the fresh side — the cache never carried anything but a marker that
// one existed (see cache.go's cacheConfigOption.HasCallback) — so they
// are copied across by matching option name.
func mergeDescriptor(cached, fresh *PluginDescriptor) {
	cached.Handle = fresh.Handle
	cached.Loaded = true

	freshByModule := make(map[string]*Module, len(fresh.Modules))
	for _, m := range fresh.Modules {
		freshByModule[m.Name] = m
	}

	for _, cm := range cached.Modules {
		fm, ok := freshByModule[cm.Name]
		if !ok {
			continue
		}
		freshByOption := make(map[string]ConfigOption, len(fm.Config))
		for _, fc := range fm.Config {
			freshByOption[fc.Name] = fc
		}
		for i, cc := range cm.Config {
			if fc, ok := freshByOption[cc.Name]; ok && fc.HasCallback() {
				cm.Config[i].EnumCallback = fc.EnumCallback
			}
		}
	}
}
