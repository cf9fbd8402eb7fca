package cli

import (
	"github.com/modbank-dev/modbank/internal/bank"
)

// testEntry builds a DescribeFunc for a single-module static plugin, for
// use as one of Activate's staticEntries in tests that need a populated
// *bank.Bank without touching the filesystem.
func testEntry(name, capability string, score int) bank.DescribeFunc {
	return func() (*bank.PluginDescriptor, error) {
		d := &bank.PluginDescriptor{}
		d.Modules = []*bank.Module{{
			Name:       name,
			Capability: capability,
			Score:      score,
			Plugin:     d,
		}}
		return d, nil
	}
}

// testBank activates a *bank.Bank seeded only with the given static
// entries (plus the mandatory core entry) and no scan roots, so
// enumeration is deterministic and no disk I/O occurs.
func testBank(entries ...bank.DescribeFunc) *bank.Bank {
	host := bank.NewHost(nil, bank.CoreDescribe, "", false, false)
	host.ScanRoots = nil

	b := &bank.Bank{}
	if _, err := b.Activate(host, entries); err != nil {
		panic(err)
	}
	return b
}
