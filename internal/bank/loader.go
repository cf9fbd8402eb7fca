package bank

import (
	"fmt"
	"log/slog"
)

// loadDynamic loads one shared object from absPath via linker,
// implementing spec.md §4.3's load_dynamic: map the file, resolve the
// entry symbol, invoke the describe protocol, stamp runtime fields. It
// never attaches the result to the bank — that is the caller's
// responsibility (walker.go's allocateFile).
func loadDynamic(linker DynamicLinker, logger *slog.Logger, absPath string, fast bool) (*PluginDescriptor, error) {
	logger = logOrDefault(logger)
	h, err := linker.Load(absPath, fast)
	if err != nil {
		logger.Warn("cannot load plug-in", "path", absPath, "err", err)
		return nil, fmt.Errorf("bank: loading %s: %w", absPath, err)
	}

	entry, err := linker.Lookup(h, entrySymbol)
	if err != nil {
		logger.Warn("cannot find plug-in entry point", "path", absPath, "symbol", entrySymbol)
		_ = linker.Unload(h)
		return nil, ErrNoEntryPoint
	}

	d, err := entry()
	if err != nil || d == nil || d.Primary() == nil {
		logger.Error("plugin entry point failed to describe itself", "path", absPath, "err", err)
		_ = linker.Unload(h)
		return nil, ErrDescribeFailed
	}

	d.Handle = h
	d.Loaded = true
	d.AbsPath = absPath
	if d.Primary().HasCallbackConfig() {
		d.Unloadable = false
	}
	return d, nil
}
