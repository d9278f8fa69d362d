package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/branding"
	"github.com/atomic-reactor/arcli/internal/manifest"
	"github.com/atomic-reactor/arcli/internal/prompt"
	"github.com/atomic-reactor/arcli/internal/props"
)

var commandName = regexp.MustCompile(`^[a-z0-9][a-z0-9:_-]*$`)

var destinations = []struct {
	re   *regexp.Regexp
	base func(p *props.Props) string
}{
	{regexp.MustCompile(`(?i)^(~/|/cwd/|cwd/)`), func(p *props.Props) string { return filepath.Join(p.Cwd, ".cli", "commands") }},
	{regexp.MustCompile(`(?i)^(/app/|app/|/core/|core/)`), func(p *props.Props) string { return filepath.Join(p.Cwd, ".core", ".cli", "commands") }},
	{regexp.MustCompile(`(?i)^(/root/|root/)`), func(p *props.Props) string { return filepath.Join(p.Home, "commands") }},
}

// Destination expands the cwd/, app/, core/ and root/ shortcuts of a
// commander destination. Anything else resolves against the working
// directory.
func Destination(p *props.Props, val string) string {
	val = filepath.ToSlash(strings.TrimSpace(val))
	for _, d := range destinations {
		if loc := d.re.FindStringIndex(val); loc != nil {
			return filepath.Join(d.base(p), filepath.FromSlash(val[loc[1]:]))
		}
	}
	return p.Path(filepath.FromSlash(val))
}

// CommanderSchema returns the properties the commander command asks for.
func CommanderSchema(p *props.Props) prompt.Schema {
	return prompt.Schema{Properties: []prompt.Property{
		{
			Name:        "command",
			Description: "Command:",
			Required:    true,
			Pattern:     commandName,
			Message:     "Use lower-case letters, digits, ':', '_' or '-'",
		},
		{
			Name:        "destination",
			Description: "Destination:",
			Required:    true,
			Message:     "Destination is a required parameter. Example: cwd/mycommand",
		},
		{
			Name:        "overwrite",
			Description: "Overwrite existing command?",
			Kind:        prompt.Confirm,
			Default:     false,
			Ask: func(answers map[string]any) bool {
				dest, _ := answers["destination"].(string)
				if dest == "" {
					return false
				}
				ok, _ := afero.Exists(p.Fs, filepath.Join(Destination(p, dest), manifest.CommandFile))
				return ok
			},
			Before: truthy,
		},
	}}
}

// CommanderActions returns the sequence writing a command manifest to
// params["destination"].
func CommanderActions() *action.Map {
	return action.NewMap(
		action.Entry{Name: "directory", Step: commanderDirectory},
		action.Entry{Name: "manifest", Step: commanderManifest},
		action.Entry{Name: "validate", Step: commanderValidate},
	)
}

func commanderPath(opts *action.Options) string {
	return filepath.Join(Destination(opts.Props, opts.Params.String("destination")), manifest.CommandFile)
}

func commanderDirectory(_ context.Context, opts *action.Options) (any, error) {
	p := opts.Props
	if opts.Params.String("destination") == "" {
		return nil, action.Fatal("input destination")
	}
	dir := filepath.Dir(commanderPath(opts))
	opts.Message("creating command directory...")
	if err := p.Fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	return dir, nil
}

func commanderManifest(_ context.Context, opts *action.Options) (any, error) {
	p := opts.Props
	opts.Message("creating " + manifest.CommandFile + "...")
	data := map[string]any{"command": opts.Params.String("command"), "cli": branding.CLIName()}
	out, err := p.Templates.RenderFile(templates, "templates/commander/command.yaml.tmpl", data)
	if err != nil {
		return nil, err
	}
	dest := commanderPath(opts)
	if err := afero.WriteFile(p.Fs, dest, []byte(out), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", dest, err)
	}
	return dest, nil
}

func commanderValidate(_ context.Context, opts *action.Options) (any, error) {
	p := opts.Props
	path := commanderPath(opts)
	if _, err := manifest.ReadCommand(p.Fs, path); err != nil {
		if p.Log != nil {
			p.Log.Warn("generated manifest does not validate", "path", path, "error", err)
		}
		return nil, err
	}
	return path, nil
}

// Commander prints the resolved params, asks for confirmation and writes
// the command manifest.
func Commander(ctx context.Context, p *props.Props, params action.Params) error {
	const canceledMsg = "Command creation canceled!"
	if params.Has("overwrite") && !params.Bool("overwrite") {
		fmt.Fprintln(p.Out, canceledMsg)
		return nil
	}

	preflight := map[string]any{
		"command":     params.String("command"),
		"destination": Destination(p, params.String("destination")),
	}
	if params.Bool("overwrite") {
		preflight["overwrite"] = true
	}
	b, err := json.MarshalIndent(preflight, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding params: %w", err)
	}
	fmt.Fprintf(p.Out, "A command will be created with the following parameters:\n%s\n", b)

	p.Prompt.Start()
	err = prompt.ConfirmOrCancel(p.Prompt, "confirmed", "Proceed?")
	p.Prompt.Stop()
	if err != nil {
		return canceled(p, err, canceledMsg)
	}

	_, err = action.Generate(ctx, "commander", CommanderActions(), &action.Options{Params: params, Props: p},
		action.Messages{Start: "Creating command...", Success: "Command creation complete!", Failure: "Command creation error!"})
	return canceled(p, err, canceledMsg)
}
