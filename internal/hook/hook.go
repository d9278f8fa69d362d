// Package hook is a small synchronous event registry. Generators fire named
// hooks around their action sequences so that project code can inspect or
// rewrite a sequence before it runs.
package hook

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Func is an untyped hook callback. Use On and Run for typed access.
type Func func(ctx context.Context, payload any) error

type entry struct {
	id    string
	order int
	fn    Func
}

// Registry holds hook callbacks keyed by hook name.
type Registry struct {
	mu    sync.Mutex
	hooks map[string][]entry
	seq   int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{hooks: make(map[string][]entry)}
}

// Register adds fn under name and returns an id usable with Unregister.
// Lower order values run first; equal orders run in registration order.
func (r *Registry) Register(name string, order int, fn Func) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	id := fmt.Sprintf("%s#%d", name, r.seq)
	r.hooks[name] = append(r.hooks[name], entry{id: id, order: order, fn: fn})
	sort.SliceStable(r.hooks[name], func(i, j int) bool {
		return r.hooks[name][i].order < r.hooks[name][j].order
	})
	return id
}

// Unregister removes a callback by id. Unknown ids are ignored.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, entries := range r.hooks {
		for i, e := range entries {
			if e.id == id {
				r.hooks[name] = append(entries[:i], entries[i+1:]...)
				return
			}
		}
	}
}

// RunAny invokes every callback registered under name in order and stops at
// the first error. A nil registry runs nothing.
func (r *Registry) RunAny(ctx context.Context, name string, payload any) error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	entries := append([]entry(nil), r.hooks[name]...)
	r.mu.Unlock()

	for _, e := range entries {
		if err := e.fn(ctx, payload); err != nil {
			return fmt.Errorf("hook %s: %w", name, err)
		}
	}
	return nil
}

// On registers a typed callback. Payloads of another type are ignored.
func On[T any](r *Registry, name string, fn func(ctx context.Context, payload T) error) string {
	return r.Register(name, 0, func(ctx context.Context, payload any) error {
		p, ok := payload.(T)
		if !ok {
			return nil
		}
		return fn(ctx, p)
	})
}

// Run fires a typed hook.
func Run[T any](ctx context.Context, r *Registry, name string, payload T) error {
	return r.RunAny(ctx, name, payload)
}
