package command

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/manifest"
	"github.com/atomic-reactor/arcli/internal/prompt"
	"github.com/atomic-reactor/arcli/internal/props"
)

// ManifestSource loads every command.yaml below dir.
func ManifestSource(name, dir string) Source {
	return Source{
		Name: name,
		Load: func(p *props.Props) ([]Module, error) {
			paths, err := manifest.Find(p.Fs, dir, manifest.CommandFile)
			if err != nil {
				return nil, err
			}
			var mods []Module
			for _, path := range paths {
				c, err := manifest.ReadCommand(p.Fs, path)
				if err != nil {
					return nil, err
				}
				mods = append(mods, FromManifest(c))
			}
			return mods, nil
		},
	}
}

// ManifestSources returns one source per configured command directory, in
// precedence order.
func ManifestSources(p *props.Props) []Source {
	var out []Source
	for _, dir := range p.Config.CommandDirs(p.Home, p.Cwd, p.Root) {
		out = append(out, ManifestSource(dir, dir))
	}
	return out
}

// FromManifest turns a parsed manifest into a Module. Flags are string
// flags; prompts ask for whatever the flags left unset; the steps run as
// one action sequence named after the command.
func FromManifest(c *manifest.Command) Module {
	return Module{
		Name:        c.Name,
		Description: c.Description,
		Help:        c.Help,
		Command: func(program *cobra.Command, p *props.Props) error {
			schema, err := promptSchema(c.Prompts)
			if err != nil {
				return fmt.Errorf("%s: %w", c.Path, err)
			}
			cmd := &cobra.Command{
				Use:   c.Name,
				Short: c.Description,
				Long:  c.Help,
				Args:  cobra.NoArgs,
				RunE: func(cmd *cobra.Command, _ []string) error {
					return runManifest(cmd, p, c, schema)
				},
			}
			for _, f := range c.Flags {
				cmd.Flags().StringP(f.Name, f.Short, f.Default, f.Description)
			}
			program.AddCommand(cmd)
			return nil
		},
	}
}

func runManifest(cmd *cobra.Command, p *props.Props, c *manifest.Command, schema prompt.Schema) error {
	params := action.Params(FlagValues(cmd))

	answers, err := Resolve(p, cmd, schema)
	if errors.Is(err, prompt.ErrCanceled) {
		fmt.Fprintf(p.Out, "%s canceled!\n", c.Name)
		return nil
	}
	if err != nil {
		return err
	}
	for k, v := range answers {
		params.Set(k, v)
	}

	_, err = action.Generate(cmd.Context(), c.Name, Steps(c.Steps, filepath.Dir(c.Path), ""),
		&action.Options{Params: params, Props: p},
		action.Messages{Start: c.Name + "...", Success: c.Name + " complete!"})
	return err
}

// Resolve sets the flags the user passed as prompt overrides and asks for
// the rest of schema.
func Resolve(p *props.Props, cmd *cobra.Command, schema prompt.Schema) (map[string]any, error) {
	p.Prompt.SetOverride(FlagOverrides(cmd))
	p.Prompt.Start()
	defer p.Prompt.Stop()
	return p.Prompt.Get(schema)
}

func promptSchema(prompts []manifest.Prompt) (prompt.Schema, error) {
	var s prompt.Schema
	for _, mp := range prompts {
		prop := prompt.Property{
			Name:        mp.Name,
			Description: mp.Description,
			Required:    mp.Required,
		}
		if mp.Default != "" {
			prop.Default = mp.Default
		}
		if mp.Pattern != "" {
			re, err := regexp.Compile(mp.Pattern)
			if err != nil {
				return s, fmt.Errorf("prompt %s: %w", mp.Name, err)
			}
			prop.Pattern = re
		}
		s.Properties = append(s.Properties, prop)
	}
	return s, nil
}
