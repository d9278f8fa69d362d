package action

import (
	"context"
	"errors"

	"github.com/atomic-reactor/arcli/internal/hook"
	"github.com/atomic-reactor/arcli/internal/prompt"
	"github.com/atomic-reactor/arcli/internal/spinner"
)

// Event is the payload of the hooks fired by Generate. Hooks on
// "<name>-actions" may replace or edit Map before the sequence starts.
type Event struct {
	Name    string
	Map     *Map
	Options *Options
	Result  *Result
	Err     error
}

// Messages are the status lines a generator shows around its sequence.
type Messages struct {
	Start   string
	Success string
	// Failure replaces the error text on the spinner when set.
	Failure string
}

// Generate runs m the way every command generator does: fire the
// "<name>-actions" hook, start the spinner, run the sequence, and finish
// with "<name>-complete" or "<name>-error". Fatal errors and cancellation
// stop the spinner without a failure mark; the caller decides how to exit.
func Generate(ctx context.Context, name string, m *Map, opts *Options, msgs Messages) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	hooks, sp := collaborators(opts)

	ev := &Event{Name: name, Map: m, Options: opts}
	if err := hook.Run(ctx, hooks, name+"-actions", ev); err != nil {
		return nil, err
	}

	sp.Start(msgs.Start)
	res, err := Run(ctx, ev.Map, opts)
	ev.Result = res

	if err != nil {
		ev.Err = err
		if herr := hook.Run(ctx, hooks, name+"-error", ev); herr != nil {
			logger(opts).Warn("error hook failed", "hook", name+"-error", "error", herr)
		}
		if IsFatal(err) || errors.Is(err, prompt.ErrCanceled) {
			sp.Stop()
			return res, err
		}
		msg := msgs.Failure
		if msg == "" {
			msg = err.Error()
		}
		sp.Fail(msg)
		return res, err
	}

	if err := hook.Run(ctx, hooks, name+"-complete", ev); err != nil {
		sp.Fail(err.Error())
		return res, err
	}

	if msgs.Success != "" {
		sp.Succeed(msgs.Success)
	} else {
		sp.Stop()
	}
	return res, nil
}

func collaborators(opts *Options) (*hook.Registry, spinner.Spinner) {
	var hooks *hook.Registry
	var sp spinner.Spinner = spinner.Nop()
	if p := opts.Props; p != nil {
		hooks = p.Hooks
		if p.Spinner != nil {
			sp = p.Spinner
		}
	}
	return hooks, sp
}
