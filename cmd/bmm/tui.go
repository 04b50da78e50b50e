package main

import (
	"fmt"

	"github.com/DonovanMods/bundle-mod-manager/internal/tui"

	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive interface",
	Long: `Open a full-screen interface to browse, toggle, rename and import mods,
set the game path, and run apply or uninstall with live progress.

Key bindings follow the keybindings setting in config.yaml (vim or standard).`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	return tui.Run(service, service.Config().Keybindings)
}
