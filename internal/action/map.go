package action

import (
	"context"
	"slices"
)

// Step is one named unit of work. The returned value is recorded in the
// sequence Result under the step's name.
type Step func(ctx context.Context, opts *Options) (any, error)

// Entry pairs a step with its name for NewMap.
type Entry struct {
	Name string
	Step Step
}

// Map is an ordered mapping from step name to Step. Insertion order is
// execution order. The zero value is an empty, usable map.
type Map struct {
	names []string
	steps map[string]Step
}

// NewMap builds a map from entries in order. A repeated name replaces the
// earlier step at its original position.
func NewMap(entries ...Entry) *Map {
	m := &Map{}
	for _, e := range entries {
		m.Set(e.Name, e.Step)
	}
	return m
}

// Set stores step under name. An existing name keeps its position; a new
// name is appended. Set returns m for chaining.
func (m *Map) Set(name string, step Step) *Map {
	if m.steps == nil {
		m.steps = make(map[string]Step)
	}
	if _, ok := m.steps[name]; !ok {
		m.names = append(m.names, name)
	}
	m.steps[name] = step
	return m
}

// Get returns the step stored under name.
func (m *Map) Get(name string) (Step, bool) {
	if m == nil {
		return nil, false
	}
	s, ok := m.steps[name]
	return s, ok
}

// Has reports whether name is present.
func (m *Map) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Delete removes names in place. Absent names are ignored.
func (m *Map) Delete(names ...string) {
	if m == nil {
		return
	}
	for _, name := range names {
		if _, ok := m.steps[name]; !ok {
			continue
		}
		delete(m.steps, name)
		m.names = slices.DeleteFunc(m.names, func(n string) bool { return n == name })
	}
}

// Names returns the step names in execution order.
func (m *Map) Names() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.names)
}

// Len returns the number of steps.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// Clone returns a shallow copy that can be modified independently.
func (m *Map) Clone() *Map {
	c := &Map{}
	if m == nil {
		return c
	}
	for _, name := range m.names {
		c.Set(name, m.steps[name])
	}
	return c
}

// Merge returns a new map holding base's steps followed by each overlay
// applied left to right. A key already present keeps its position and takes
// the overlay's step; new keys are appended. Inputs are not modified.
func Merge(base *Map, overlays ...*Map) *Map {
	out := base.Clone()
	for _, o := range overlays {
		if o == nil {
			continue
		}
		for _, name := range o.names {
			out.Set(name, o.steps[name])
		}
	}
	return out
}

// Remove returns a copy of m without the named steps. Removing a name that
// is not present is a no-op.
func Remove(m *Map, names ...string) *Map {
	out := m.Clone()
	out.Delete(names...)
	return out
}

// Prefix returns a copy of m with every step renamed to prefix+name.
func Prefix(m *Map, prefix string) *Map {
	out := &Map{}
	if m == nil {
		return out
	}
	for _, name := range m.names {
		out.Set(prefix+name, m.steps[name])
	}
	return out
}
