package command

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/manifest"
	"github.com/atomic-reactor/arcli/internal/props"
	"github.com/atomic-reactor/arcli/internal/runtime"
	"github.com/atomic-reactor/arcli/internal/tmpl"
)

// Steps compiles declarative manifest steps into an action map. Step names
// get prefix prepended. Template sources resolve against base; every
// other path resolves against the working directory.
//
// String fields are templates rendered with TemplateData.
func Steps(steps []manifest.Step, base, prefix string) *action.Map {
	m := action.NewMap()
	for _, s := range steps {
		m.Set(prefix+s.Name, compile(s, base))
	}
	return m
}

// TemplateData is the data manifest templates see: params, cwd, home,
// config and the manifest directory.
func TemplateData(opts *action.Options, base string) map[string]any {
	data := map[string]any{"params": opts.Params, "dir": base}
	if p := opts.Props; p != nil {
		data["cwd"] = p.Cwd
		data["home"] = p.Home
		data["config"] = p.Config
	}
	return data
}

func compile(s manifest.Step, base string) action.Step {
	return func(ctx context.Context, opts *action.Options) (any, error) {
		p := opts.Props
		if p == nil {
			return nil, fmt.Errorf("step %s: no props", s.Name)
		}
		r := p.Templates
		if r == nil {
			r = tmpl.New()
		}
		data := TemplateData(opts, base)
		render := func(field, text string) (string, error) {
			return r.Render(s.Name+"."+field, text, data)
		}

		switch s.Kind() {
		case "run":
			return runStep(ctx, p, s, render)
		case "template":
			src, err := render("template", s.Template)
			if err != nil {
				return nil, err
			}
			dest, err := render("dest", s.Dest)
			if err != nil {
				return nil, err
			}
			if !filepath.IsAbs(src) {
				src = filepath.Join(base, src)
			}
			text, err := afero.ReadFile(p.Fs, src)
			if err != nil {
				return nil, fmt.Errorf("reading template %s: %w", src, err)
			}
			dest = p.Path(dest)
			if err := r.WriteFile(p.Fs, dest, string(text), data); err != nil {
				return nil, err
			}
			return dest, nil
		case "mkdir":
			dir, err := render("mkdir", s.Mkdir)
			if err != nil {
				return nil, err
			}
			dir = p.Path(dir)
			if err := p.Fs.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating %s: %w", dir, err)
			}
			return dir, nil
		case "remove":
			target, err := render("remove", s.Remove)
			if err != nil {
				return nil, err
			}
			target = p.Path(target)
			if err := p.Fs.RemoveAll(target); err != nil {
				return nil, fmt.Errorf("removing %s: %w", target, err)
			}
			return target, nil
		case "message":
			msg, err := render("message", s.Message)
			if err != nil {
				return nil, err
			}
			if p.Spinner != nil {
				p.Spinner.SetText(msg)
			}
			return msg, nil
		}
		return nil, fmt.Errorf("step %s: nothing to do", s.Name)
	}
}

func runStep(ctx context.Context, p *props.Props, s manifest.Step, render func(string, string) (string, error)) (any, error) {
	name, err := render("run", s.Run)
	if err != nil {
		return nil, err
	}
	args := make([]string, 0, len(s.Args))
	for i, a := range s.Args {
		v, err := render(fmt.Sprintf("args[%d]", i), a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	dir := p.Cwd
	if s.Dir != "" {
		d, err := render("dir", s.Dir)
		if err != nil {
			return nil, err
		}
		dir = p.Path(d)
	}
	if p.Proc == nil {
		return nil, fmt.Errorf("step %s: no process runner", s.Name)
	}
	return p.Proc.Run(ctx, runtime.Cmd{Name: name, Args: args, Dir: dir})
}
