package cli

import (
	"github.com/spf13/cobra"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/command"
	"github.com/atomic-reactor/arcli/internal/plugin"
	"github.com/atomic-reactor/arcli/internal/props"
)

func pluginInstallModule() command.Module {
	return module("plugin:install", "Install a plugin, or every plugin listed in package.json", func(p *props.Props) *cobra.Command {
		cmd := &cobra.Command{
			Use:     "plugin:install [name[@version]]",
			Aliases: []string{"install"},
			Short:   "Install a plugin, or every plugin listed in package.json",
			Long: `Install a plugin from the registry into the current Reactium or Actinium project.

Without a name, every plugin recorded in package.json is installed.`,
			Example: `  arcli plugin:install @atomic-reactor/reactium-ui
  arcli install reactium-ui@^2.0.0 --no-npm`,
			Args: cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				params := action.Params(command.FlagValues(cmd))
				if len(args) == 1 {
					params.Set("name", args[0])
				}
				return plugin.Install(cmd.Context(), p, params)
			},
		}
		cmd.Flags().Bool("no-npm", false, "Skip npm install of plugin dependencies")
		return cmd
	})
}

func pluginPublishModule() command.Module {
	return module("plugin:publish", "Publish a plugin to the registry", func(p *props.Props) *cobra.Command {
		cmd := &cobra.Command{
			Use:     "plugin:publish",
			Aliases: []string{"publish"},
			Short:   "Publish a plugin to the registry",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return plugin.Publish(cmd.Context(), p, action.Params(command.FlagValues(cmd)))
			},
		}
		cmd.Flags().StringP("path", "p", ".", "Plugin directory")
		cmd.Flags().StringP("bump", "b", "", "Bump the version before publishing: major, minor or patch")
		cmd.Flags().Bool("private", false, "Publish as a private plugin")
		cmd.Flags().String("username", "", "Registry username, when a login is needed")
		cmd.Flags().String("password", "", "Registry password, when a login is needed")
		return cmd
	})
}

func authModule() command.Module {
	return module("auth", "Log in to the plugin registry", func(p *props.Props) *cobra.Command {
		cmd := &cobra.Command{
			Use:   "auth",
			Short: "Log in to the plugin registry",
			Long:  "Log in to the plugin registry and store the session token in the home config.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return plugin.Auth(cmd.Context(), p, action.Params(command.FlagValues(cmd)))
			},
		}
		cmd.Flags().StringP("username", "u", "", "Registry username")
		cmd.Flags().String("password", "", "Registry password")
		return cmd
	})
}
