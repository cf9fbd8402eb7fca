package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/modbank-dev/modbank/internal/catalog"
	"github.com/modbank-dev/modbank/internal/config"
	"github.com/spf13/cobra"
)

// newSearchCommand creates the "search" command: it queries the
// configured bundle catalogs for installable modules, independent of
// what is already loaded in the local bank.
func newSearchCommand(cfg *config.Config) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search plugin bundle catalogs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query string
			if len(args) == 1 {
				query = args[0]
			}

			sources := catalogSources(cfg)
			results, err := catalog.SearchAll(cmd.Context(), sources, query, refresh)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No matching bundles found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLATEST\tCAPABILITIES\tSOURCE\tDESCRIPTION")
			for _, r := range results {
				fmt.Fprintf(w, "%s\t%s\t%v\t%s\t%s\n",
					r.Name, r.Latest, r.Capabilities, r.Source, r.Description)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Bypass the local index cache and refetch")
	return cmd
}

// catalogSources converts the configured index sources to catalog's
// type, falling back to the official default index when none are
// configured.
func catalogSources(cfg *config.Config) []catalog.IndexSource {
	if len(cfg.Indexes) == 0 {
		return []catalog.IndexSource{{URL: catalog.DefaultIndexURL, Name: "official"}}
	}

	sources := make([]catalog.IndexSource, len(cfg.Indexes))
	for i, s := range cfg.Indexes {
		sources[i] = catalog.IndexSource{URL: s.URL, Name: s.Name}
	}
	return sources
}
