package command

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// FlagOverrides returns the flags the user set on cmd, keyed by flag name,
// for use as prompt overrides. Flags left at their default are omitted so
// that the prompt still asks for them.
func FlagOverrides(cmd *cobra.Command) map[string]any {
	out := make(map[string]any)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		out[f.Name] = flagValue(cmd, f)
	})
	return out
}

// FlagValues returns every local flag of cmd, set or not.
func FlagValues(cmd *cobra.Command) map[string]any {
	out := make(map[string]any)
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "help" {
			return
		}
		out[f.Name] = flagValue(cmd, f)
	})
	return out
}

func flagValue(cmd *cobra.Command, f *pflag.Flag) any {
	fs := cmd.Flags()
	switch f.Value.Type() {
	case "bool":
		v, _ := fs.GetBool(f.Name)
		return v
	case "int":
		v, _ := fs.GetInt(f.Name)
		return v
	case "stringSlice":
		v, _ := fs.GetStringSlice(f.Name)
		return v
	}
	return f.Value.String()
}
