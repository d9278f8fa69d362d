package command

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atomic-reactor/arcli/internal/props"
)

// Module is one pluggable command. Command wires the module's cobra
// command, flags and handler onto program.
type Module struct {
	Name        string
	Description string
	Help        string
	Command     func(program *cobra.Command, p *props.Props) error
}

func (m Module) validate() error {
	if m.Name == "" {
		return errors.New("command module has no name")
	}
	if m.Command == nil {
		return fmt.Errorf("command module %q has no Command function", m.Name)
	}
	return nil
}

// Source loads a set of modules.
type Source struct {
	Name string
	Load func(p *props.Props) ([]Module, error)
}

// Registry holds modules by name. Names keep the position of their first
// registration; the module stored is the latest.
type Registry struct {
	order  []string
	mods   map[string]Module
	origin map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{mods: make(map[string]Module), origin: make(map[string]string)}
}

// Add registers m, replacing any module with the same name.
func (r *Registry) Add(m Module) error {
	return r.add("", m)
}

func (r *Registry) add(source string, m Module) error {
	if err := m.validate(); err != nil {
		return err
	}
	if _, ok := r.mods[m.Name]; !ok {
		r.order = append(r.order, m.Name)
	}
	r.mods[m.Name] = m
	r.origin[m.Name] = source
	return nil
}

// Get returns the module registered under name.
func (r *Registry) Get(name string) (Module, bool) {
	m, ok := r.mods[name]
	return m, ok
}

// Origin returns the name of the source that registered name.
func (r *Registry) Origin(name string) string {
	return r.origin[name]
}

// Names returns registered names in first-registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of registered modules.
func (r *Registry) Len() int { return len(r.order) }

// Apply calls every module's Command with program and p, in registry
// order. The first failure stops startup.
func (r *Registry) Apply(program *cobra.Command, p *props.Props) error {
	for _, name := range r.order {
		if err := r.mods[name].Command(program, p); err != nil {
			return fmt.Errorf("registering command %s: %w", name, err)
		}
	}
	return nil
}

// Discover loads sources in order into a new registry. Any source or
// module failing to load aborts discovery.
func Discover(p *props.Props, sources ...Source) (*Registry, error) {
	r := NewRegistry()
	for _, src := range sources {
		if src.Load == nil {
			continue
		}
		mods, err := src.Load(p)
		if err != nil {
			return nil, fmt.Errorf("loading %s commands: %w", src.Name, err)
		}
		for _, m := range mods {
			if err := r.add(src.Name, m); err != nil {
				return nil, fmt.Errorf("loading %s commands: %w", src.Name, err)
			}
			if p != nil && p.Log != nil {
				p.Log.Debug("command registered", "name", m.Name, "source", src.Name)
			}
		}
	}
	return r, nil
}

// Static returns a Source serving a fixed list.
func Static(name string, mods ...Module) Source {
	return Source{
		Name: name,
		Load: func(*props.Props) ([]Module, error) { return mods, nil },
	}
}
