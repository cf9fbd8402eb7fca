package bank

// CoreDescribe is the describe function for bankctl's own statically
// linked core module. Every host process passes this (or an equivalent)
// as Host.CoreEntry; its failure is InitBank's one fatal condition, so
// it is deliberately trivial and allocation-light.
func CoreDescribe() (*PluginDescriptor, error) {
	d := &PluginDescriptor{Unloadable: false}
	d.Modules = []*Module{{
		Name:        "core",
		Capability:  "core",
		Score:       0,
		Description: "bankctl built-in core module",
		Plugin:      d,
	}}
	return d, nil
}
