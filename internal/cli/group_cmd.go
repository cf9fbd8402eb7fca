package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/modbank-dev/modbank/internal/config"
	"github.com/spf13/cobra"
)

// newGroupCommand creates the "group" management command.
func newGroupCommand(cfg *config.Config, configPath string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage capability groups",
	}

	cmd.AddCommand(
		newGroupListCommand(cfg),
		newGroupCreateCommand(cfg, configPath),
		newGroupDeleteCommand(cfg, configPath),
		newGroupAddCommand(cfg, configPath),
		newGroupRemoveCommand(cfg, configPath),
	)

	return cmd
}

// newGroupListCommand creates the "group list" command.
func newGroupListCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all capability groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(cfg.Groups) == 0 {
				_, _ = fmt.Fprintln(out, "No groups configured.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "GROUP\tDESCRIPTION\tCAPABILITIES")
			for name, group := range cfg.Groups {
				caps := strings.Join(group.Capabilities, ", ")
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", name, group.Description, caps)
			}
			return w.Flush()
		},
	}
}

// newGroupCreateCommand creates the "group create" command.
func newGroupCreateCommand(cfg *config.Config, configPath string) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new capability group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if cfg.Groups == nil {
				cfg.Groups = make(map[string]config.GroupConfig)
			}

			if _, exists := cfg.Groups[name]; exists {
				return fmt.Errorf("group %q already exists", name)
			}

			cfg.Groups[name] = config.GroupConfig{
				Description:  description,
				Capabilities: []string{},
			}
			if err := cfg.ValidateGroups(); err != nil {
				delete(cfg.Groups, name)
				return err
			}

			if err := cfg.Save(configPath); err != nil {
				delete(cfg.Groups, name)
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created group %q\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Description for the group")
	return cmd
}

// newGroupDeleteCommand creates the "group delete" command.
func newGroupDeleteCommand(cfg *config.Config, configPath string) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a capability group",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if _, exists := cfg.Groups[name]; !exists {
				return fmt.Errorf("group %q not found", name)
			}

			old := cfg.Groups[name]
			delete(cfg.Groups, name)

			if err := cfg.Save(configPath); err != nil {
				cfg.Groups[name] = old
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted group %q\n", name)
			return nil
		},
	}
}

// newGroupAddCommand creates the "group add" command.
func newGroupAddCommand(cfg *config.Config, configPath string) *cobra.Command {
	return &cobra.Command{
		Use:   "add <group> <capability>...",
		Short: "Add capabilities to a group",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			groupName := args[0]
			capNames := args[1:]

			group, exists := cfg.Groups[groupName]
			if !exists {
				return fmt.Errorf("group %q not found", groupName)
			}

			existing := make(map[string]bool)
			for _, c := range group.Capabilities {
				existing[c] = true
			}

			var added []string
			for _, c := range capNames {
				if existing[c] {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %q is already in group %q, skipping\n", c, groupName)
					continue
				}
				group.Capabilities = append(group.Capabilities, c)
				existing[c] = true
				added = append(added, c)
			}

			if len(added) == 0 {
				return nil
			}

			cfg.Groups[groupName] = group

			if err := cfg.Save(configPath); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s to group %q\n", strings.Join(added, ", "), groupName)
			return nil
		},
	}
}

// newGroupRemoveCommand creates the "group remove" command.
func newGroupRemoveCommand(cfg *config.Config, configPath string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <group> <capability>...",
		Short: "Remove capabilities from a group",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			groupName := args[0]
			capNames := args[1:]

			group, exists := cfg.Groups[groupName]
			if !exists {
				return fmt.Errorf("group %q not found", groupName)
			}

			toRemove := make(map[string]bool)
			for _, c := range capNames {
				toRemove[c] = true
			}

			existing := make(map[string]bool)
			for _, c := range group.Capabilities {
				existing[c] = true
			}
			for _, c := range capNames {
				if !existing[c] {
					return fmt.Errorf("capability %q is not in group %q", c, groupName)
				}
			}

			var remaining []string
			for _, c := range group.Capabilities {
				if !toRemove[c] {
					remaining = append(remaining, c)
				}
			}
			group.Capabilities = remaining
			cfg.Groups[groupName] = group

			if err := cfg.Save(configPath); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from group %q\n", strings.Join(capNames, ", "), groupName)
			return nil
		},
	}
}
