// Package cli implements the command-line interface for bankctl.
package cli

import (
	"github.com/modbank-dev/modbank/internal/bank"
	"github.com/modbank-dev/modbank/internal/config"
	"github.com/modbank-dev/modbank/internal/ociplugin"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the top-level CLI command. b must already have
// completed a successful Activate so that list/group/alias commands have
// an immediately queryable module set; bundles may be nil when the OCI
// plugin stack failed to initialize, in which case "plugin install/list"
// are disabled but discovery-backed commands continue to work.
func NewRootCommand(cfg *config.Config, b *bank.Bank, host *bank.Host, bundles *ociplugin.Stack) *cobra.Command {
	var (
		outputFormat string
		verbose      bool
		quiet        bool
	)

	root := &cobra.Command{
		Use:   "bankctl",
		Short: "Plugin bank inspection tool",
		Long: `bankctl is a general-purpose plugin bank manager and inspection tool.
It discovers, loads, caches, and enumerates native shared-object modules
advertising capabilities, and can install module bundles from OCI
registries.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&outputFormat, "output", cfg.Output, "Output format: table, json, yaml")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().BoolVar(&quiet, "quiet", cfg.Quiet, "Suppress output; exit code indicates result")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if quiet {
			outputFormat = "quiet"
		}
	}

	root.AddCommand(newCompletionCommand())
	root.AddCommand(newVersionCommand())
	root.AddCommand(newListCommand(cfg, b, &outputFormat))
	root.AddCommand(newGroupCommand(cfg, config.DefaultConfigPath()))
	root.AddCommand(newSearchCommand(cfg))

	if bundles != nil {
		root.AddCommand(newPluginCommand(bundles, host, cfg.DefaultRegistry))
	}

	registerOutputFormatCompletion(root)
	registerGroups(root, cfg, b, &outputFormat)

	if len(cfg.Aliases) > 0 {
		registerAliases(root, cfg.Aliases, b, &outputFormat)
	}

	return root
}
