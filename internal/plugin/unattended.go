package plugin

import (
	"context"
	"fmt"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/project"
)

// Steps of InstallActions that unattended runs leave out.
var unattendedSkip = []string{"npm", "complete", "register"}

type unattended struct {
	app     project.App
	plugins []string
}

// UnattendedActions returns the sequence installing every plugin listed
// under <app>Dependencies in package.json, one after another, in name
// order.
func UnattendedActions() *action.Map {
	u := &unattended{}
	return action.NewMap(
		action.Entry{Name: "init", Step: u.init},
		action.Entry{Name: "plugins", Step: u.list},
		action.Entry{Name: "install", Step: u.install},
		action.Entry{Name: "complete", Step: u.complete},
	)
}

func (u *unattended) init(_ context.Context, opts *action.Options) (any, error) {
	p := opts.Props
	app, err := project.Detect(p.Fs, p.Cwd)
	if err != nil {
		return nil, err
	}
	if app == "" {
		return nil, action.Fatalf("Current working directory %s is not an Actinium or Reactium project", p.Cwd)
	}
	u.app = app
	return string(app), nil
}

func (u *unattended) list(_ context.Context, opts *action.Options) (any, error) {
	p := opts.Props
	pkg, err := project.ReadPackage(p.Fs, p.Path(project.PackageFile))
	if err != nil {
		return nil, err
	}
	u.plugins = pkg.Specs(u.app.DependencyKey())
	return u.plugins, nil
}

func (u *unattended) install(ctx context.Context, opts *action.Options) (any, error) {
	p := opts.Props
	for _, spec := range u.plugins {
		p.Spinner.Persist("+", fmt.Sprintf("Installing %s...", spec))
		p.Spinner.Start("")

		steps := action.Remove(InstallActions(), unattendedSkip...)
		sub := &action.Options{
			Params: opts.Params.With(action.Params{"name": spec, "unattended": true}),
			Props:  p,
		}
		if _, err := action.Run(ctx, steps, sub); err != nil {
			return nil, fmt.Errorf("installing %s: %w", spec, err)
		}
	}
	return len(u.plugins), nil
}

func (u *unattended) complete(_ context.Context, opts *action.Options) (any, error) {
	p := opts.Props
	p.Spinner.Succeed("Installed:")
	for _, spec := range u.plugins {
		fmt.Fprintln(p.Out, "   ", spec)
	}
	return u.plugins, nil
}
