package generate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/prompt"
	"github.com/atomic-reactor/arcli/internal/props"
	"github.com/atomic-reactor/arcli/internal/tmpl"
)

// Component kinds.
const (
	Function = "function"
	Class    = "class"
)

// ComponentsDir is where components are created unless a destination is
// given.
const ComponentsDir = "src/app/components"

var componentName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 _-]*$`)

// componentDir is the directory the component in params is written to.
func componentDir(p *props.Props, params map[string]any) string {
	dest := strings.TrimSpace(fmt.Sprint(valueOr(params["destination"], ComponentsDir)))
	return filepath.Join(p.Path(dest), tmpl.Pascal(fmt.Sprint(valueOr(params["name"], ""))))
}

func valueOr(v, def any) any {
	if v == nil || v == "" {
		return def
	}
	return v
}

// ComponentSchema returns the properties the component command asks for.
// The overwrite question only applies when the component exists.
func ComponentSchema(p *props.Props) prompt.Schema {
	return prompt.Schema{Properties: []prompt.Property{
		{
			Name:        "name",
			Description: "Component name:",
			Required:    true,
			Pattern:     componentName,
			Message:     "Name must start with a letter",
			Before:      func(v any) any { return tmpl.Pascal(fmt.Sprint(v)) },
		},
		{Name: "destination", Description: "Destination:", Default: ComponentsDir},
		{Name: "type", Description: "Component type:", Kind: prompt.Select, Choices: []string{Function, Class}, Default: Function},
		{Name: "route", Description: "Route (comma separated, blank for none):"},
		{Name: "styles", Description: "Include a stylesheet?", Kind: prompt.Confirm, Default: false, Before: truthy},
		{
			Name:        "overwrite",
			Description: "Component exists. Overwrite?",
			Kind:        prompt.Confirm,
			Default:     false,
			Ask: func(answers map[string]any) bool {
				ok, _ := afero.DirExists(p.Fs, componentDir(p, answers))
				return ok
			},
			Before: truthy,
		},
	}}
}

// ComponentActions returns the sequence writing a component directory:
// index.js, an optional route.js and an optional stylesheet.
func ComponentActions() *action.Map {
	return action.NewMap(
		action.Entry{Name: "directory", Step: componentDirectory},
		action.Entry{Name: "index", Step: componentIndex},
		action.Entry{Name: "route", Step: componentRoute},
		action.Entry{Name: "style", Step: componentStyle},
	)
}

func componentData(opts *action.Options) map[string]any {
	name := tmpl.Pascal(opts.Params.String("name"))
	var routes []string
	for _, r := range strings.Split(opts.Params.String("route"), ",") {
		if r = strings.TrimSpace(r); r != "" {
			routes = append(routes, r)
		}
	}
	return map[string]any{"name": name, "routes": routes, "type": opts.Params.StringOr("type", Function)}
}

func componentDirectory(_ context.Context, opts *action.Options) (any, error) {
	p := opts.Props
	if tmpl.Pascal(opts.Params.String("name")) == "" {
		return nil, action.Fatal("input component name")
	}
	dir := componentDir(p, opts.Params)
	opts.Message("creating component directory...")
	if err := p.Fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	return dir, nil
}

func render(opts *action.Options, src, dest string) (any, error) {
	p := opts.Props
	out, err := p.Templates.RenderFile(templates, src, componentData(opts))
	if err != nil {
		return nil, err
	}
	if err := afero.WriteFile(p.Fs, dest, []byte(out), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", dest, err)
	}
	return dest, nil
}

func componentIndex(_ context.Context, opts *action.Options) (any, error) {
	kind := opts.Params.StringOr("type", Function)
	if kind != Function && kind != Class {
		return nil, action.Fatalf("unknown component type %q", kind)
	}
	opts.Message("creating index.js...")
	return render(opts, "templates/component/"+kind+".js.tmpl", filepath.Join(componentDir(opts.Props, opts.Params), "index.js"))
}

func componentRoute(_ context.Context, opts *action.Options) (any, error) {
	if strings.TrimSpace(opts.Params.String("route")) == "" {
		return nil, nil
	}
	opts.Message("creating route.js...")
	return render(opts, "templates/component/route.js.tmpl", filepath.Join(componentDir(opts.Props, opts.Params), "route.js"))
}

func componentStyle(_ context.Context, opts *action.Options) (any, error) {
	if !opts.Params.Bool("styles") {
		return nil, nil
	}
	opts.Message("creating stylesheet...")
	name := "_" + tmpl.Slug(opts.Params.String("name")) + ".scss"
	return render(opts, "templates/component/style.scss.tmpl", filepath.Join(componentDir(opts.Props, opts.Params), name))
}

// Component creates the component described by params. A declined
// overwrite cancels before anything is written.
func Component(ctx context.Context, p *props.Props, params action.Params) error {
	if params.Has("overwrite") && !params.Bool("overwrite") {
		fmt.Fprintln(p.Out, "Component creation canceled!")
		return nil
	}
	_, err := action.Generate(ctx, "component", ComponentActions(), &action.Options{Params: params, Props: p},
		action.Messages{Start: "Creating component...", Success: "Component created!"})
	return canceled(p, err, "Component creation canceled!")
}

func truthy(v any) any {
	if s, ok := v.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "y", "yes", "true":
			return true
		}
		return false
	}
	b, _ := v.(bool)
	return b
}

func canceled(p *props.Props, err error, msg string) error {
	if errors.Is(err, prompt.ErrCanceled) {
		fmt.Fprintln(p.Out, msg)
		return nil
	}
	return err
}
