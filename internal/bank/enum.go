package bank

import "sort"

// ListAll returns every module known to the bank — primary modules and
// submodules alike — in bank order. Callers must only invoke this after
// LoadPlugins has returned in some goroutine: the descriptor list is
// then treated as read-only and ListAll walks it without the bank lock
// (spec.md §5, "Read-after-load"). The returned length always equals
// Σ (1 + submodule_count) across descriptors (spec.md §8 property 9).
func (b *Bank) ListAll() []*Module {
	var out []*Module
	for _, d := range b.libs {
		out = append(out, d.Modules...)
	}
	return out
}

// ListByCapability returns every module advertising capability cap,
// sorted strictly non-increasing by score. Ties keep their bank order
// (reverse insertion: the most recently registered descriptor first)
// via a stable sort, resolving spec.md Design Notes Open Question (a)'s
// "stable sort is not required" into a concrete guarantee.
func (b *Bank) ListByCapability(cap string) []*Module {
	var out []*Module
	for _, m := range b.ListAll() {
		if m.Capability == cap {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
