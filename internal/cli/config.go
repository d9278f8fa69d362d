package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atomic-reactor/arcli/internal/command"
	"github.com/atomic-reactor/arcli/internal/props"
)

func configModule() command.Module {
	return module("config", "Manage user settings", func(p *props.Props) *cobra.Command {
		cmd := &cobra.Command{
			Use:   "config",
			Short: "Manage user settings",
			Long: fmt.Sprintf(`Read and write settings stored at %s.

"get" reports the effective value, after project overrides.`, p.Settings.Path()),
		}
		cmd.AddCommand(
			&cobra.Command{
				Use:   "set <key> <value>",
				Short: "Set a configuration value",
				Args:  cobra.ExactArgs(2),
				RunE: func(cmd *cobra.Command, args []string) error {
					key, value := args[0], args[1]
					if err := p.Settings.Set(key, value); err != nil {
						return fmt.Errorf("setting config key %q: %w", key, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
					return nil
				},
			},
			&cobra.Command{
				Use:   "get <key>",
				Short: "Get a configuration value",
				Args:  cobra.ExactArgs(1),
				RunE: func(cmd *cobra.Command, args []string) error {
					v := p.Config.Get(args[0])
					if v == nil {
						v = p.Settings.Get(args[0])
					}
					switch v.(type) {
					case nil:
						return fmt.Errorf("config key %q is not set", args[0])
					case map[string]any, []any:
						out, err := json.MarshalIndent(v, "", "  ")
						if err != nil {
							return fmt.Errorf("encoding %q: %w", args[0], err)
						}
						fmt.Fprintln(cmd.OutOrStdout(), string(out))
					default:
						fmt.Fprintln(cmd.OutOrStdout(), v)
					}
					return nil
				},
			},
		)
		return cmd
	})
}
