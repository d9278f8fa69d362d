package action

import (
	"context"
	"io"
	"log/slog"

	"github.com/atomic-reactor/arcli/internal/props"
)

// Options is the context shared by every step of one sequence. Steps may
// read and write Params freely; Props is the process-wide context.
type Options struct {
	Params Params
	Props  *props.Props

	// Action is the name of the step currently executing. Run sets it
	// before each step.
	Action string
}

// Message shows text on the shared spinner, when there is one.
func (o *Options) Message(text string) {
	if o.Props != nil && o.Props.Spinner != nil {
		o.Props.Spinner.SetText(text)
	}
}

// Result records each executed step's return value by name, in execution
// order.
type Result struct {
	names  []string
	values map[string]any
}

func newResult() *Result {
	return &Result{values: make(map[string]any)}
}

func (r *Result) record(name string, v any) {
	r.names = append(r.names, name)
	r.values[name] = v
}

// Get returns the value a step returned.
func (r *Result) Get(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[name]
	return v, ok
}

// Names returns executed step names in order.
func (r *Result) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.names...)
}

// Len returns the number of executed steps.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Values returns a copy of the name to value mapping.
func (r *Result) Values() map[string]any {
	out := make(map[string]any)
	if r == nil {
		return out
	}
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Run executes the steps of m in insertion order against opts. Each step
// finishes before the next begins. The step list is fixed when Run starts.
//
// On the first error Run stops and returns that error unchanged along with
// the results recorded so far. Steps that return a nil value succeed.
func Run(ctx context.Context, m *Map, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Params == nil {
		opts.Params = Params{}
	}
	log := logger(opts)
	res := newResult()

	for _, name := range m.Names() {
		step, _ := m.Get(name)
		opts.Action = name

		if step == nil {
			res.record(name, nil)
			continue
		}

		log.Debug("action started", "action", name)
		v, err := step(ctx, opts)
		if err != nil {
			log.Debug("action failed", "action", name, "error", err)
			return res, err
		}
		res.record(name, v)
	}

	opts.Action = ""
	return res, nil
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func logger(opts *Options) *slog.Logger {
	if opts.Props != nil && opts.Props.Log != nil {
		return opts.Props.Log
	}
	return discard
}
