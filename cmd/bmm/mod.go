package main

import (
	"fmt"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"

	"github.com/spf13/cobra"
)

var modCmd = &cobra.Command{
	Use:   "mod",
	Short: "Edit a mod in the library",
	Long: `Commands for editing a single mod. A mod can be referred to by its id,
a unique id prefix, its file name or its display name.`,
}

var modEnableCmd = &cobra.Command{
	Use:   "enable <mod>",
	Short: "Mark a mod to be applied",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModSetEnabled(cmd, args[0], true)
	},
}

var modDisableCmd = &cobra.Command{
	Use:   "disable <mod>",
	Short: "Mark a mod to be uninstalled",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModSetEnabled(cmd, args[0], false)
	},
}

var modRenameCmd = &cobra.Command{
	Use:   "rename <mod> <display-name>",
	Short: "Change a mod's display name",
	Long: `Change the label shown for a mod. The file name, which decides which game
file the mod replaces, never changes.

Example:
  bmm mod rename hero_skin.bundle "Red cape"`,
	Args: cobra.ExactArgs(2),
	RunE: runModRename,
}

var modDeleteCmd = &cobra.Command{
	Use:   "delete <mod>",
	Short: "Remove a mod from the library",
	Long: `Remove a mod from the registry and delete its library copy. Game files are
not touched: a mod deleted while applied stays in the game, with the original
left at <target>.bak. Run 'bmm mod disable' and 'bmm uninstall' first to
restore the original.`,
	Args: cobra.ExactArgs(1),
	RunE: runModDelete,
}

func init() {
	modCmd.AddCommand(modEnableCmd)
	modCmd.AddCommand(modDisableCmd)
	modCmd.AddCommand(modRenameCmd)
	modCmd.AddCommand(modDeleteCmd)
	rootCmd.AddCommand(modCmd)
}

func runModSetEnabled(cmd *cobra.Command, ref string, enabled bool) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	mod, err := service.FindMod(ref)
	if err != nil {
		return err
	}
	if _, err := service.UpdateMod(mod.ID, domain.ModUpdate{Enabled: &enabled}); err != nil {
		return fmt.Errorf("updating mod: %w", err)
	}

	state := "enabled"
	next := "bmm apply"
	if !enabled {
		state = "disabled"
		next = "bmm uninstall"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s. Run '%s' to update the game files.\n", mod.FileName, state, next)
	return nil
}

func runModRename(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	mod, err := service.FindMod(args[0])
	if err != nil {
		return err
	}
	name := args[1]
	mods, err := service.UpdateMod(mod.ID, domain.ModUpdate{DisplayName: &name})
	if err != nil {
		return fmt.Errorf("updating mod: %w", err)
	}

	for _, m := range mods {
		if m.ID == mod.ID {
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %q\n", m.FileName, m.DisplayName)
		}
	}
	return nil
}

func runModDelete(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	mod, err := service.FindMod(args[0])
	if err != nil {
		return err
	}

	if backup, ok := service.AppliedBackup(mod); ok {
		fmt.Fprintln(cmd.OutOrStdout(), colorYellow(fmt.Sprintf(
			"Warning: %s is still applied; the original stays at %s. Run 'bmm mod disable %s' and 'bmm uninstall' first to restore it.",
			mod.FileName, backup, mod.FileName)))
	}

	if !confirm(cmd, fmt.Sprintf("Delete %s from the library?", mod.FileName)) {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
		return ErrCancelled
	}

	if _, err := service.DeleteMod(mod.ID); err != nil {
		return fmt.Errorf("deleting mod: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", mod.FileName)
	return nil
}
