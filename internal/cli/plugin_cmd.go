package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/modbank-dev/modbank/internal/bank"
	"github.com/modbank-dev/modbank/internal/ociplugin"
	hostentities "github.com/reglet-dev/reglet-host-sdk/plugin/entities"
	hostvalues "github.com/reglet-dev/reglet-host-sdk/plugin/values"
	"github.com/spf13/cobra"
)

// newPluginCommand creates the "plugin" management command group: it
// installs, lists, and removes the shared-object bundles internal/bank
// discovers on its scan roots.
func newPluginCommand(stack *ociplugin.Stack, host *bank.Host, defaultRegistry string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugin",
		Short: "Manage plugin bundles",
	}

	cmd.AddCommand(
		newPluginListCommand(stack),
		newPluginInstallCommand(stack, defaultRegistry),
		newPluginRemoveCommand(stack),
		newPluginPruneCommand(stack),
		newPluginRefreshCommand(host),
	)

	return cmd
}

// newPluginListCommand creates the "plugin list" command.
func newPluginListCommand(stack *ociplugin.Stack) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed plugin bundles",
		RunE: func(cmd *cobra.Command, args []string) error {
			bundles, err := stack.Service.ListCachedPlugins(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(bundles) == 0 {
				fmt.Fprintln(out, "No plugin bundles installed in local cache.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tVERSION\tDIGEST\tDESCRIPTION")
			for _, p := range bundles {
				meta := p.Metadata()
				digest := p.Digest().String()
				if len(digest) > 19 {
					digest = digest[:19] + "..."
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					meta.Name(), meta.Version(), digest, meta.Description())
			}
			return w.Flush()
		},
	}
}

// newPluginInstallCommand creates the "plugin install" command.
func newPluginInstallCommand(stack *ociplugin.Stack, defaultRegistry string) *cobra.Command {
	return &cobra.Command{
		Use:   "install <reference>",
		Short: "Install a plugin bundle from an OCI registry or local file",
		Long: `Install a plugin bundle from an OCI registry or a local .so file.

Examples:
  bankctl plugin install dns                                  # Install latest from default registry
  bankctl plugin install dns@1.2.0                            # Install specific version
  bankctl plugin install ghcr.io/my-org/bundles/custom:1.0.0  # Install from custom registry
  bankctl plugin install ./custom.so                          # Install from local file`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			out := cmd.OutOrStdout()
			ctx := cmd.Context()

			isLocal := strings.HasSuffix(target, ".so") ||
				strings.HasPrefix(target, "./") ||
				strings.HasPrefix(target, "../") ||
				filepath.IsAbs(target)

			if isLocal {
				return installFromLocalFile(ctx, stack, target, out)
			}

			ref := resolveOCIRef(target, defaultRegistry)
			fmt.Fprintf(out, "Pulling %s ...\n", ref)

			bundleRef, err := hostvalues.ParsePluginReference(ref)
			if err != nil {
				return fmt.Errorf("invalid plugin reference %q: %w", ref, err)
			}

			artifact, err := stack.Service.Pull(ctx, bundleRef)
			if err != nil {
				return fmt.Errorf("pulling plugin bundle: %w", err)
			}

			meta := artifact.Metadata()
			fmt.Fprintf(out, "Installed %s@%s\n", meta.Name(), meta.Version())
			fmt.Fprintln(out, "Add the bundle cache directory to your scan roots and restart bankctl to discover it.")

			return nil
		},
	}
}

// installFromLocalFile installs a .so file into the local cache.
func installFromLocalFile(ctx context.Context, stack *ociplugin.Stack, path string, out io.Writer) error {
	fmt.Fprintf(out, "Installing from local file: %s\n", path)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening plugin bundle: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), ".so")

	ref, err := hostvalues.ParsePluginReference(name)
	if err != nil {
		return fmt.Errorf("invalid plugin name %q: %w", name, err)
	}

	digest, err := hostvalues.ComputeDigestSHA256(f)
	if err != nil {
		return fmt.Errorf("computing digest: %w", err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding plugin bundle: %w", err)
	}

	metadata := hostvalues.NewPluginMetadata(name, "local", "", nil)
	bundle := hostentities.NewPlugin(ref, digest, metadata)

	storedPath, err := stack.Repository.Store(ctx, bundle, f)
	if err != nil {
		return fmt.Errorf("storing plugin bundle: %w", err)
	}

	fmt.Fprintf(out, "Installed %q to %s\n", name, storedPath)
	return nil
}

// newPluginRemoveCommand creates the "plugin remove" command.
func newPluginRemoveCommand(stack *ociplugin.Stack) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <reference>",
		Aliases: []string{"uninstall", "rm"},
		Short:   "Remove a plugin bundle from local cache",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := hostvalues.ParsePluginReference(args[0])
			if err != nil {
				return fmt.Errorf("invalid plugin reference: %w", err)
			}

			if err := stack.Repository.Delete(cmd.Context(), ref); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed plugin bundle %q\n", args[0])
			return nil
		},
	}
}

// newPluginPruneCommand creates the "plugin prune" command.
func newPluginPruneCommand(stack *ociplugin.Stack) *cobra.Command {
	var keepVersions int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove old plugin bundle versions from cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := stack.Service.PruneCache(cmd.Context(), keepVersions); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned plugin bundle cache (keeping %d versions per bundle)\n", keepVersions)
			return nil
		},
	}

	cmd.Flags().IntVar(&keepVersions, "keep", 3, "Number of versions to keep per bundle")
	return cmd
}

// newPluginRefreshCommand creates the "plugin refresh" command.
func newPluginRefreshCommand(host *bank.Host) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Clear the plugin discovery cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Clearing plugin discovery cache...")

			if host == nil {
				fmt.Fprintln(out, "No plugin host configured; nothing to clear.")
				return nil
			}

			if err := bank.ClearCache(host); err != nil {
				return fmt.Errorf("clearing discovery cache: %w", err)
			}

			fmt.Fprintln(out, "Discovery cache cleared. It is rewritten on the next run with reset_plugins_cache enabled.")
			return nil
		},
	}
}

// resolveOCIRef builds a full OCI reference from a short name or full reference.
func resolveOCIRef(target, defaultRegistry string) string {
	if strings.Contains(target, "/") {
		return target
	}

	name, version := parseNameVersion(target)
	if version == "" {
		version = "latest"
	}

	return fmt.Sprintf("%s/%s:%s", defaultRegistry, name, version)
}

// parseNameVersion splits "dns@1.2.0" into ("dns", "1.2.0").
func parseNameVersion(s string) (name, version string) {
	if idx := strings.Index(s, "@"); idx >= 0 {
		return s[:idx], s[idx+1:]
	}
	return s, ""
}
