package cli

import (
	"github.com/spf13/cobra"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/command"
	"github.com/atomic-reactor/arcli/internal/devenv"
	"github.com/atomic-reactor/arcli/internal/project"
	"github.com/atomic-reactor/arcli/internal/props"
)

func projectStartModule() command.Module {
	return module("project:start", "Start the project's apps for local development", func(p *props.Props) *cobra.Command {
		cmd := &cobra.Command{
			Use:   "project:start",
			Short: "Start the project's apps for local development",
			Long: `Start the API, admin and app of a multi-app project, each on a free port.

Apps are enabled when their directory exists, unless --apps names them.`,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return devenv.Start(cmd.Context(), p, action.Params(command.FlagValues(cmd)), project.ListenFree)
			},
		}
		cmd.Flags().StringSlice("apps", nil, "Apps to start (api, admin, app)")
		cmd.Flags().String("namespace", "", "Project name used to label processes")
		return cmd
	})
}

func projectStatusModule() command.Module {
	return module("project:status", "Show the project's running apps", func(p *props.Props) *cobra.Command {
		return &cobra.Command{
			Use:   "project:status",
			Short: "Show the project's running apps",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return devenv.Status(cmd.Context(), p, action.Params{})
			},
		}
	})
}

func projectStopModule() command.Module {
	return module("project:stop", "Stop the project's running apps", func(p *props.Props) *cobra.Command {
		return &cobra.Command{
			Use:   "project:stop",
			Short: "Stop the project's running apps",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return devenv.Stop(cmd.Context(), p, action.Params{})
			},
		}
	})
}
