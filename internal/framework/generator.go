package framework

import (
	"context"
	"errors"
	"fmt"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/project"
	"github.com/atomic-reactor/arcli/internal/prompt"
	"github.com/atomic-reactor/arcli/internal/props"
)

// Install installs app into the working directory. A non-empty directory
// needs the "overwrite" param or a confirmation.
func Install(ctx context.Context, p *props.Props, app project.App, params action.Params) error {
	nonEmpty, err := NonEmpty(p.Fs, p.Cwd)
	if err != nil {
		return err
	}
	if nonEmpty && !params.Bool("overwrite") {
		p.Prompt.SetOverride(nil)
		p.Prompt.Start()
		err := prompt.ConfirmOrCancel(p.Prompt, "overwrite", "The current directory is not empty. Overwrite?")
		p.Prompt.Stop()
		if err != nil {
			return cancel(p, err, fmt.Sprintf("%s install canceled!", title(app)))
		}
	}

	name := string(app) + "-install"
	_, err = action.Generate(ctx, name, InstallActions(app), &action.Options{Params: params, Props: p},
		action.Messages{Start: fmt.Sprintf("Installing %s...", title(app)), Success: fmt.Sprintf("%s installed!", title(app))})
	return err
}

// Update replaces the project's core with the latest release of app after
// a confirmation, skipped by the "confirm" param.
func Update(ctx context.Context, p *props.Props, app project.App, params action.Params) error {
	if !params.Bool("confirm") {
		p.Prompt.SetOverride(nil)
		p.Prompt.Start()
		err := prompt.ConfirmOrCancel(p.Prompt, "confirm", "Are you sure you want to update?")
		p.Prompt.Stop()
		if err != nil {
			return cancel(p, err, fmt.Sprintf("%s update canceled!", title(app)))
		}
	}

	m := UpdateActions(app, nil)
	if params.Bool("core") {
		m.Delete("package", "backup")
	}
	_, err := action.Generate(ctx, string(app)+"-update", m, &action.Options{Params: params, Props: p},
		action.Messages{Start: fmt.Sprintf("%s updating...", title(app)), Success: fmt.Sprintf("%s update complete!", title(app))})
	if err == nil {
		fmt.Fprintf(p.Out, "Run: $ npm run local to launch the development environment\n")
	}
	return err
}

func cancel(p *props.Props, err error, msg string) error {
	if errors.Is(err, prompt.ErrCanceled) {
		fmt.Fprintln(p.Out, msg)
		return nil
	}
	return err
}
