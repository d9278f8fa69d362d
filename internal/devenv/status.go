package devenv

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/project"
	"github.com/atomic-reactor/arcli/internal/props"
)

// Running returns the recorded processes of the project in the working
// directory that are still alive.
func Running(p *props.Props) ([]project.Process, error) {
	st, err := project.ReadState(p.Fs, p.Cwd)
	if err != nil || st == nil {
		return nil, err
	}
	var out []project.Process
	for _, proc := range st.Processes {
		if p.Proc.Alive(proc.PID) {
			out = append(out, proc)
		}
	}
	return out, nil
}

// ProcessStatus is one row of project:status.
type ProcessStatus struct {
	project.Process
	Alive bool
}

// StatusActions returns the sequence reading the state file and probing
// each recorded process.
func StatusActions() *action.Map {
	return action.NewMap(
		action.Entry{Name: "status", Step: func(_ context.Context, opts *action.Options) (any, error) {
			p := opts.Props
			st, err := project.ReadState(p.Fs, p.Cwd)
			if err != nil || st == nil {
				return nil, err
			}
			rows := make([]ProcessStatus, 0, len(st.Processes))
			for _, proc := range st.Processes {
				rows = append(rows, ProcessStatus{Process: proc, Alive: p.Proc.Alive(proc.PID)})
			}
			return rows, nil
		}},
	)
}

// Status prints the recorded processes of the project and whether each
// is still running.
func Status(ctx context.Context, p *props.Props, params action.Params) error {
	res, err := action.Generate(ctx, "project-status", StatusActions(), &action.Options{Params: params, Props: p}, action.Messages{})
	if err != nil {
		return err
	}
	v, _ := res.Get("status")
	rows, _ := v.([]ProcessStatus)
	if len(rows) == 0 {
		fmt.Fprintln(p.Out, "No project processes recorded.")
		return nil
	}

	w := tabwriter.NewWriter(p.Out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tPORT\tPID\tSTATUS")
	for _, r := range rows {
		state := "stopped"
		if r.Alive {
			state = "running"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", r.Name, r.Port, r.PID, state)
	}
	return w.Flush()
}

// StopActions returns the sequence signalling every live recorded
// process and removing the state file.
func StopActions() *action.Map {
	return action.NewMap(
		action.Entry{Name: "terminate", Step: func(_ context.Context, opts *action.Options) (any, error) {
			p := opts.Props
			running, err := Running(p)
			if err != nil {
				return nil, err
			}
			var stopped []string
			for _, proc := range running {
				opts.Message("stopping " + proc.Name + "...")
				if err := p.Proc.Terminate(proc.PID); err != nil {
					p.Log.Warn("could not stop process", "name", proc.Name, "pid", proc.PID, "error", err)
					continue
				}
				stopped = append(stopped, proc.Name)
			}
			return stopped, nil
		}},
		action.Entry{Name: "state", Step: func(_ context.Context, opts *action.Options) (any, error) {
			p := opts.Props
			return nil, project.RemoveState(p.Fs, p.Cwd)
		}},
	)
}

// Stop stops the project's recorded processes.
func Stop(ctx context.Context, p *props.Props, params action.Params) error {
	_, err := action.Generate(ctx, "project-stop", StopActions(), &action.Options{Params: params, Props: p},
		action.Messages{Start: "Stopping project...", Success: "project stopped!"})
	return err
}
