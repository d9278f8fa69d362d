package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/branding"
	"github.com/atomic-reactor/arcli/internal/command"
	"github.com/atomic-reactor/arcli/internal/prompt"
	"github.com/atomic-reactor/arcli/internal/props"
)

// Exit codes returned by ExitCode.
const (
	ExitOK    = 0
	ExitError = 1
	ExitFatal = 2
)

// BuildInfo is injected via ldflags at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRoot returns the root command with every discovered command module
// applied. Builtin modules load first; manifest commands from the home,
// core and project directories follow, so a later module replaces an
// earlier one of the same name.
func NewRoot(p *props.Props, info BuildInfo) (*cobra.Command, *command.Registry, error) {
	root := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` scaffolds and maintains Reactium and Actinium projects:
framework install and update, plugins, components and custom commands.`,
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(p.Out)
	root.SetErr(p.Err)

	sources := append([]command.Source{command.Static("builtin", Builtin(info)...)}, command.ManifestSources(p)...)
	reg, err := command.Discover(p, sources...)
	if err != nil {
		return nil, nil, err
	}
	root.AddCommand(commandsCmd(reg))
	if err := reg.Apply(root, p); err != nil {
		return nil, nil, err
	}
	return root, reg, nil
}

// Run builds Props with opts and executes args against the command tree.
func Run(ctx context.Context, args []string, info BuildInfo, opts ...props.Option) error {
	p, err := props.New(append([]props.Option{props.WithVersion(info.Version)}, opts...)...)
	if err != nil {
		return err
	}
	defer p.Close()

	if p.FirstRun {
		p.Log.Info(fmt.Sprintf("Created %s", p.Settings.Path()))
	}

	root, _, err := NewRoot(p, info)
	if err != nil {
		return err
	}
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// Execute runs the command line of the current process and reports any
// error on stderr.
func Execute(version, commit, date string) error {
	err := Run(context.Background(), os.Args[1:], BuildInfo{Version: version, Commit: commit, Date: date})
	if err != nil && !errors.Is(err, prompt.ErrCanceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// ExitCode maps the error returned by Execute to a process exit status.
// Cancellation is a normal exit.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, prompt.ErrCanceled):
		return ExitOK
	case action.IsFatal(err):
		return ExitFatal
	}
	return ExitError
}

// Builtin returns the command modules compiled into arcli.
func Builtin(info BuildInfo) []command.Module {
	mods := []command.Module{
		pluginInstallModule(),
		pluginPublishModule(),
		authModule(),
	}
	mods = append(mods, frameworkModules()...)
	mods = append(mods,
		componentModule(),
		commanderModule(),
		projectStartModule(),
		projectStatusModule(),
		projectStopModule(),
		configModule(),
		versionModule(info),
	)
	return mods
}

// module builds a command module around a single cobra command.
func module(name, desc string, build func(p *props.Props) *cobra.Command) command.Module {
	return command.Module{
		Name:        name,
		Description: desc,
		Command: func(program *cobra.Command, p *props.Props) error {
			program.AddCommand(build(p))
			return nil
		},
	}
}
