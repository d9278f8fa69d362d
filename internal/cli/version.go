package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atomic-reactor/arcli/internal/branding"
	"github.com/atomic-reactor/arcli/internal/command"
	"github.com/atomic-reactor/arcli/internal/props"
)

func versionModule(info BuildInfo) command.Module {
	return module("version", "Print version information", func(*props.Props) *cobra.Command {
		var short, asJSON bool
		cmd := &cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				out := cmd.OutOrStdout()
				if short {
					fmt.Fprintln(out, info.Version)
					return nil
				}
				if asJSON {
					b, err := json.MarshalIndent(map[string]string{
						"version": info.Version,
						"commit":  info.Commit,
						"date":    info.Date,
					}, "", "  ")
					if err != nil {
						return fmt.Errorf("marshaling version info: %w", err)
					}
					fmt.Fprintln(out, string(b))
					return nil
				}
				fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), info.Version, info.Commit, info.Date)
				return nil
			},
		}
		cmd.Flags().BoolVar(&short, "short", false, "Print version number only")
		cmd.Flags().BoolVar(&asJSON, "json", false, "Print version info as JSON")
		return cmd
	})
}
