package cli

import (
	"fmt"

	"github.com/modbank-dev/modbank/internal/bank"
	"github.com/modbank-dev/modbank/internal/config"
	"github.com/modbank-dev/modbank/internal/output"
	"github.com/spf13/cobra"
)

// newListCommand creates the "list" command: the CLI's window onto
// internal/bank's enumeration API. --capability expands a configured
// alias before querying; --group expands to every capability in a
// configured group.
func newListCommand(cfg *config.Config, b *bank.Bank, outputFormat *string) *cobra.Command {
	var capability, group string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered modules",
		RunE: func(cmd *cobra.Command, args []string) error {
			var modules []*bank.Module
			switch {
			case group != "":
				g, ok := cfg.Groups[group]
				if !ok {
					return fmt.Errorf("unknown group %q", group)
				}
				return listByCapabilities(cmd, b, g.Capabilities, *outputFormat)
			case capability != "":
				if expanded, ok := cfg.Aliases[capability]; ok {
					capability = expanded
				}
				modules = b.ListByCapability(capability)
			default:
				modules = b.ListAll()
			}

			f, err := output.NewFormatter(*outputFormat)
			if err != nil {
				return err
			}
			return f.Format(cmd.OutOrStdout(), modules)
		},
	}

	cmd.Flags().StringVar(&capability, "capability", "", "Only list modules advertising this capability (or alias)")
	cmd.Flags().StringVar(&group, "group", "", "Only list modules in this configured capability group")
	return cmd
}

// listByCapabilities renders every module across a set of capabilities,
// used by group commands to present their combined module set.
func listByCapabilities(cmd *cobra.Command, b *bank.Bank, capabilities []string, format string) error {
	var modules []*bank.Module
	for _, cap := range capabilities {
		modules = append(modules, b.ListByCapability(cap)...)
	}

	f, err := output.NewFormatter(format)
	if err != nil {
		return err
	}
	if len(modules) == 0 {
		return f.Format(cmd.OutOrStdout(), nil)
	}
	return f.Format(cmd.OutOrStdout(), modules)
}
