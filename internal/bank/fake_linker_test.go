package bank

import (
	"fmt"
	"log/slog"
	"sync"
)

// fakeLinker is an in-memory DynamicLinker used throughout this
// package's tests: it lets the loader, walker, and cache be exercised
// without real shared objects on disk, and it counts Load/Unload calls
// so tests can assert on them directly (spec.md §8 properties 5 and 10).
type fakeLinker struct {
	mu        sync.Mutex
	builders  map[string]func() (*PluginDescriptor, error)
	noEntry   map[string]bool
	loadCount map[string]int
	unloaded  map[string]int
}

func newFakeLinker() *fakeLinker {
	return &fakeLinker{
		builders:  make(map[string]func() (*PluginDescriptor, error)),
		noEntry:   make(map[string]bool),
		loadCount: make(map[string]int),
		unloaded:  make(map[string]int),
	}
}

// register installs a describe function for path.
func (f *fakeLinker) register(path string, build func() (*PluginDescriptor, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[path] = build
}

// registerNoEntry marks path as loadable but lacking the entry symbol.
func (f *fakeLinker) registerNoEntry(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.noEntry[path] = true
}

func (f *fakeLinker) loads(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadCount[path]
}

func (f *fakeLinker) Load(path string, _ bool) (Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.builders[path]; !ok && !f.noEntry[path] {
		return nil, fmt.Errorf("fakeLinker: no such plugin: %s", path)
	}
	f.loadCount[path]++
	return path, nil
}

func (f *fakeLinker) Lookup(h Handle, _ string) (DescribeFunc, error) {
	path := h.(string)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.noEntry[path] {
		return nil, ErrNoEntryPoint
	}
	build, ok := f.builders[path]
	if !ok {
		return nil, ErrNoEntryPoint
	}
	return DescribeFunc(build), nil
}

func (f *fakeLinker) Unload(h Handle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unloaded[h.(string)]++
	return nil
}

func testHost(linker DynamicLinker, roots []string, coreEntry DescribeFunc) *Host {
	return &Host{
		Linker:            linker,
		Logger:            slog.Default(),
		CoreEntry:         coreEntry,
		ScanRoots:         roots,
		PluginsCache:      true,
		ResetPluginsCache: false,
	}
}

func simpleDescriptor(name, capability string, score int) *PluginDescriptor {
	d := &PluginDescriptor{}
	m := &Module{Name: name, Capability: capability, Score: score, Plugin: d}
	d.Modules = []*Module{m}
	return d
}

func coreDescribe() (*PluginDescriptor, error) {
	return simpleDescriptor("core", "core", 0), nil
}
