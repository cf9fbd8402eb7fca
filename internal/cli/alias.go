package cli

import (
	"fmt"

	"github.com/modbank-dev/modbank/internal/bank"
	"github.com/spf13/cobra"
)

// registerAliases adds one top-level command per configured alias.
//
// Aliases are defined in config as a short name mapped to a capability:
//
//	aliases:
//	  resolve: dns
//	  ping: icmp
//
// "bankctl resolve" then lists every module advertising the "dns"
// capability, equivalent to "bankctl list --capability dns".
func registerAliases(root *cobra.Command, aliases map[string]string, b *bank.Bank, outputFormat *string) {
	for name, capability := range aliases {
		aliasName := name             // capture for closure
		aliasCapability := capability // capture for closure

		cmd := &cobra.Command{
			Use:   aliasName,
			Short: fmt.Sprintf("Alias for: list --capability %s", aliasCapability),
			RunE: func(cmd *cobra.Command, args []string) error {
				return listByCapabilities(cmd, b, []string{aliasCapability}, *outputFormat)
			},
		}

		root.AddCommand(cmd)
	}
}
