package devenv

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/afero"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/config"
	"github.com/atomic-reactor/arcli/internal/project"
	"github.com/atomic-reactor/arcli/internal/props"
	"github.com/atomic-reactor/arcli/internal/runtime"
	"github.com/atomic-reactor/arcli/internal/tmpl"
)

// DefaultAPIPort is assumed for REST_API_URL when no api app is started.
const DefaultAPIPort = 9000

// session collects what the start steps launched.
type session struct {
	namespace string
	portFree  project.PortFree
	now       func() time.Time
	processes []project.Process
}

func (s *session) taken() []int {
	var out []int
	for _, p := range s.processes {
		out = append(out, p.Port, p.Port+1)
	}
	return out
}

// Namespace names the project: params["namespace"], the project.name
// config key, or the base name of the working directory.
func Namespace(p *props.Props, params action.Params) string {
	if ns := params.String("namespace"); ns != "" {
		return ns
	}
	if ns := p.Config.String("project.name"); ns != "" {
		return ns
	}
	return filepath.Base(p.Cwd)
}

// Enabled returns the configured apps to start. params["apps"] selects
// apps by name; otherwise every app whose directory exists is enabled.
func Enabled(p *props.Props, params action.Params) ([]config.App, error) {
	cfg, err := p.Config.Project()
	if err != nil {
		return nil, err
	}
	want := map[string]bool{}
	for _, v := range params.Strings("apps") {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				want[name] = true
			}
		}
	}

	var out []config.App
	for _, app := range cfg.Apps {
		if len(want) > 0 {
			if want[app.Name] {
				out = append(out, app)
			}
			continue
		}
		if ok, _ := afero.DirExists(p.Fs, p.Path(app.Dir)); ok {
			out = append(out, app)
		}
	}
	return out, nil
}

// appActions returns the fragment starting one app: find a port, then
// launch the project script in the app directory.
func appActions(s *session, app config.App) *action.Map {
	return action.NewMap(
		action.Entry{Name: "port", Step: func(_ context.Context, opts *action.Options) (any, error) {
			opts.Message(fmt.Sprintf("finding a port for %s...", app.Name))
			port, err := project.FreePort(app.PortMin, app.PortMax, s.portFree, s.taken()...)
			if err != nil {
				return nil, action.Fatalf("%s: %v", app.Name, err)
			}
			opts.Params.Set(app.Name+".port", port)
			return port, nil
		}},
		action.Entry{Name: "start", Step: func(ctx context.Context, opts *action.Options) (any, error) {
			p := opts.Props
			cfg, err := p.Config.Project()
			if err != nil {
				return nil, err
			}
			port := opts.Params.Int(app.Name + ".port")
			env := Env(app, port, opts.Params)
			cmd := runtime.Cmd{Name: cfg.Script, Args: cfg.Args, Dir: p.Path(app.Dir), Env: env}

			opts.Message(fmt.Sprintf("starting %s on port %d...", app.Name, port))
			pid, err := p.Proc.Start(ctx, cmd)
			if err != nil {
				return nil, fmt.Errorf("starting %s: %w", app.Name, err)
			}
			opts.Params.Set(app.Name+".pid", pid)
			s.processes = append(s.processes, project.Process{
				Name:    tmpl.Slug(s.namespace) + "." + app.Name,
				Dir:     cmd.Dir,
				Port:    port,
				PID:     pid,
				Command: cmd.String(),
				Env:     env,
			})
			return pid, nil
		}},
	)
}

// Env returns the environment an app is started with. Reactium apps also
// learn the browsersync port and where the API listens.
func Env(app config.App, port int, params action.Params) map[string]string {
	env := map[string]string{
		"NODE_ENV": "development",
		"PORT":     strconv.Itoa(port),
	}
	if app.Framework == string(project.Reactium) {
		api := params.Int("api.port")
		if api == 0 {
			api = DefaultAPIPort
		}
		env["APP_PORT"] = strconv.Itoa(port)
		env["BROWSERSYNC_PORT"] = strconv.Itoa(port + 1)
		env["REST_API_URL"] = fmt.Sprintf("http://localhost:%d/api", api)
	}
	return env
}

// closeActions returns the fragment finishing a start run: record the
// processes and print a summary.
func closeActions(s *session) *action.Map {
	return action.NewMap(
		action.Entry{Name: "state", Step: func(_ context.Context, opts *action.Options) (any, error) {
			p := opts.Props
			if len(s.processes) == 0 {
				return nil, action.Fatal("no apps to start")
			}
			st := &project.State{Namespace: s.namespace, Started: s.now().UTC(), Processes: s.processes}
			if err := project.WriteState(p.Fs, p.Cwd, st); err != nil {
				return nil, err
			}
			if err := project.Ignore(p.Fs, p.Cwd, project.StateFile); err != nil {
				return nil, err
			}
			return st, nil
		}},
		action.Entry{Name: "summary", Step: func(_ context.Context, opts *action.Options) (any, error) {
			p := opts.Props
			p.Spinner.Stop()
			w := tabwriter.NewWriter(p.Out, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "NAME\tPORT\tPID\tDIR")
			for _, proc := range s.processes {
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", proc.Name, proc.Port, proc.PID, proc.Dir)
			}
			if err := w.Flush(); err != nil {
				return nil, err
			}
			p.Spinner.Start("")
			return nil, nil
		}},
	)
}

// StartActions returns the full start sequence for apps: each app's
// fragment prefixed with its name, then the close fragment.
func StartActions(namespace string, apps []config.App, free project.PortFree, now func() time.Time) *action.Map {
	if now == nil {
		now = time.Now
	}
	s := &session{namespace: namespace, portFree: free, now: now}
	m := action.NewMap()
	for _, app := range apps {
		m = action.Merge(m, action.Prefix(appActions(s, app), app.Name+"-"))
	}
	return action.Merge(m, closeActions(s))
}

// Start launches the enabled apps of the project in the working
// directory. A project whose recorded processes are still alive is
// refused.
func Start(ctx context.Context, p *props.Props, params action.Params, free project.PortFree) error {
	if running, err := Running(p); err != nil {
		return err
	} else if len(running) > 0 {
		return action.Fatalf("project is already running (pid %d); run project:stop first", running[0].PID)
	}

	apps, err := Enabled(p, params)
	if err != nil {
		return err
	}
	ns := Namespace(p, params)
	params.Set("namespace", ns)

	m := StartActions(ns, apps, free, nil)
	_, err = action.Generate(ctx, "project-start", m, &action.Options{Params: params, Props: p},
		action.Messages{Start: "Starting project...", Success: "project start complete!"})
	return err
}
