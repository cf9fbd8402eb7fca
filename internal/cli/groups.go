package cli

import (
	"github.com/modbank-dev/modbank/internal/bank"
	"github.com/modbank-dev/modbank/internal/config"
	"github.com/spf13/cobra"
)

// registerGroups creates one subcommand per configured capability group,
// each exposing a "list" command over the union of its capabilities'
// modules (spec.md's enumeration API, filtered and merged client-side).
func registerGroups(root *cobra.Command, cfg *config.Config, b *bank.Bank, outputFormat *string) {
	for groupName, groupCfg := range cfg.Groups {
		groupName, groupCfg := groupName, groupCfg // capture for closure

		groupCmd := &cobra.Command{
			Use:   groupName,
			Short: groupCfg.Description,
		}

		groupCmd.AddCommand(&cobra.Command{
			Use:   "list",
			Short: "List modules in this group",
			RunE: func(cmd *cobra.Command, args []string) error {
				return listByCapabilities(cmd, b, groupCfg.Capabilities, *outputFormat)
			},
		})

		root.AddCommand(groupCmd)
	}
}
