package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Restore the original files of all disabled mods",
	Long: `For each disabled mod, find its file in the game's data folder and put the
original back from <name>.bak. A file without a backup is left as it is.

Examples:
  bmm mod disable hero_skin.bundle
  bmm uninstall`,
	Args: cobra.NoArgs,
	RunE: runUninstall,
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	n, err := countMods(service.ListMods, false)
	if err != nil {
		return err
	}
	if n > 0 && !confirm(cmd, fmt.Sprintf("Uninstall %d disabled mod(s) and restore originals?", n)) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
		return ErrCancelled
	}

	res := service.UninstallDisabledMods(statusPrinter(cmd.ErrOrStderr()))
	return printBatchResult(cmd.OutOrStdout(), res)
}
