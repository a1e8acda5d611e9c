package report

import "github.com/kilianp07/prosumption/core/factory"

var registry = factory.NewRegistry[Reporter]()

// Register adds a reporter factory identified by name.
func Register(name string, f factory.Factory[Reporter]) error {
	return registry.Register(name, f)
}

// Types returns the registered reporter type names.
func Types() []string { return registry.Names() }

// New creates the reporters described by cfgs. No configuration yields Nop,
// one yields the reporter itself and several are wrapped in a Multi.
func New(cfgs []factory.ModuleConfig) (Reporter, error) {
	if len(cfgs) == 0 {
		return Nop{}, nil
	}
	if len(cfgs) == 1 {
		return registry.Create(cfgs[0])
	}
	reporters := make([]Reporter, 0, len(cfgs))
	for _, c := range cfgs {
		r, err := registry.Create(c)
		if err != nil {
			_ = NewMulti(reporters...).Close()
			return nil, err
		}
		reporters = append(reporters, r)
	}
	return NewMulti(reporters...), nil
}
