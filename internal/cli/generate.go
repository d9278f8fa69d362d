package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/command"
	"github.com/atomic-reactor/arcli/internal/generate"
	"github.com/atomic-reactor/arcli/internal/prompt"
	"github.com/atomic-reactor/arcli/internal/props"
)

// resolve asks schema with the flags the user set as overrides. A canceled
// prompt prints msg and yields nil params.
func resolve(cmd *cobra.Command, p *props.Props, schema prompt.Schema, msg string) (action.Params, error) {
	answers, err := command.Resolve(p, cmd, schema)
	if errors.Is(err, prompt.ErrCanceled) {
		fmt.Fprintln(p.Out, msg)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return action.Params(answers), nil
}

func componentModule() command.Module {
	return module("component", "Create a component", func(p *props.Props) *cobra.Command {
		cmd := &cobra.Command{
			Use:   "component",
			Short: "Create a component",
			Long:  "Create a component directory with index.js and, optionally, route.js and a stylesheet.",
			Example: `  arcli component --name Header --type class
  arcli component -n Widget -r /widget --styles`,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				params, err := resolve(cmd, p, generate.ComponentSchema(p), "Component creation canceled!")
				if params == nil || err != nil {
					return err
				}
				return generate.Component(cmd.Context(), p, params)
			},
		}
		cmd.Flags().StringP("name", "n", "", "Component name")
		cmd.Flags().StringP("destination", "d", "", "Parent directory, relative to the project")
		cmd.Flags().StringP("type", "t", "", "Component type: function or class")
		cmd.Flags().StringP("route", "r", "", "Comma separated routes")
		cmd.Flags().BoolP("styles", "s", false, "Include a stylesheet")
		cmd.Flags().BoolP("overwrite", "o", false, "Replace an existing component")
		return cmd
	})
}

const commanderHelp = `
Shortcuts:
  --destination accepts these prefixes:

    cwd/   the project's .cli/commands directory
    app/   the framework core's .core/.cli/commands directory (also core/)
    root/  the arcli home commands directory

  Commands in app/ are replaced when the framework core is updated.
`

func commanderModule() command.Module {
	return module("commander", "Create a custom command", func(p *props.Props) *cobra.Command {
		cmd := &cobra.Command{
			Use:     "commander",
			Short:   "Create a custom command",
			Long:    "Create a command.yaml manifest that arcli loads as a command." + commanderHelp,
			Example: `  arcli commander --command fubar --destination cwd/fubar`,
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				params, err := resolve(cmd, p, generate.CommanderSchema(p), "Command creation canceled!")
				if params == nil || err != nil {
					return err
				}
				return generate.Commander(cmd.Context(), p, params)
			},
		}
		cmd.Flags().StringP("command", "c", "", "Command name")
		cmd.Flags().StringP("destination", "d", "", "Directory the command is saved in")
		cmd.Flags().BoolP("overwrite", "o", false, "Overwrite an existing command")
		return cmd
	})
}
