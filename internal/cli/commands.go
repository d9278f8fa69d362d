package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/atomic-reactor/arcli/internal/command"
)

// commandsCmd lists every registered command module and where it came
// from.
func commandsCmd(reg *command.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List available commands and their source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "NAME\tSOURCE\tDESCRIPTION")
			for _, name := range reg.Names() {
				m, _ := reg.Get(name)
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, reg.Origin(name), m.Description)
			}
			return w.Flush()
		},
	}
}
