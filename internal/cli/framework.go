package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/command"
	"github.com/atomic-reactor/arcli/internal/framework"
	"github.com/atomic-reactor/arcli/internal/project"
	"github.com/atomic-reactor/arcli/internal/props"
)

func frameworkModules() []command.Module {
	var mods []command.Module
	for _, app := range []project.App{project.Reactium, project.Actinium} {
		mods = append(mods, frameworkInstallModule(app), frameworkUpdateModule(app))
	}
	return mods
}

func frameworkInstallModule(app project.App) command.Module {
	name := string(app) + ":install"
	desc := fmt.Sprintf("Install %s into the current directory", app)
	return module(name, desc, func(p *props.Props) *cobra.Command {
		cmd := &cobra.Command{
			Use:   name,
			Short: desc,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return framework.Install(cmd.Context(), p, app, action.Params(command.FlagValues(cmd)))
			},
		}
		cmd.Flags().BoolP("overwrite", "o", false, "Install into a non-empty directory without asking")
		cmd.Flags().Bool("no-npm", false, "Skip npm install")
		return cmd
	})
}

func frameworkUpdateModule(app project.App) command.Module {
	name := string(app) + ":update"
	desc := fmt.Sprintf("Update the %s core of the current project", app)
	return module(name, desc, func(p *props.Props) *cobra.Command {
		cmd := &cobra.Command{
			Use:   name,
			Short: desc,
			Long: desc + `.

The current .core directory and package.json are backed up to .BACKUP/update
before they are replaced.`,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return framework.Update(cmd.Context(), p, app, action.Params(command.FlagValues(cmd)))
			},
		}
		cmd.Flags().BoolP("confirm", "y", false, "Skip the confirmation prompt")
		cmd.Flags().Bool("core", false, "Only replace .core: no backup, package.json untouched")
		return cmd
	})
}
