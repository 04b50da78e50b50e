package main

import (
	"fmt"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"

	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply all enabled mods to the game",
	Long: `Replace the game file matching each enabled mod with the mod's library copy.
The first time a file is replaced its original is kept next to it as <name>.bak.

Mods whose file cannot be found in the game's data folder are skipped. The first
filesystem error stops the run; mods already applied stay applied.

Examples:
  bmm apply
  bmm apply --yes --json`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	n, err := countMods(service.ListMods, true)
	if err != nil {
		return err
	}
	if n > 0 && !confirm(cmd, fmt.Sprintf("Apply %d enabled mod(s) to the game?", n)) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
		return ErrCancelled
	}

	res := service.ApplyEnabledMods(statusPrinter(cmd.ErrOrStderr()))
	return printBatchResult(cmd.OutOrStdout(), res)
}

// countMods counts registered mods with the given enabled flag
func countMods(list func() ([]domain.ModEntry, error), enabled bool) (int, error) {
	mods, err := list()
	if err != nil {
		return 0, fmt.Errorf("listing mods: %w", err)
	}
	n := 0
	for _, m := range mods {
		if m.Enabled == enabled {
			n++
		}
	}
	return n, nil
}
