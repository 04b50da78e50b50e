package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/DonovanMods/bundle-mod-manager/internal/discovery"

	"github.com/spf13/cobra"
)

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Game installation commands",
	Long:  `Commands for locating and launching the game mods are applied to.`,
}

var gameShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configured game",
	Args:  cobra.NoArgs,
	RunE:  runGameShow,
}

var gameSetPathCmd = &cobra.Command{
	Use:   "set-path <executable>",
	Short: "Set the game executable",
	Long: `Set the game executable. Mods are applied inside the data folder next to it,
named after the executable: /games/Heroes/Heroes.exe uses /games/Heroes/Heroes_Data.

Example:
  bmm game set-path ~/.steam/steam/steamapps/common/Heroes/Heroes.exe`,
	Args: cobra.ExactArgs(1),
	RunE: runGameSetPath,
}

var gameDetectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Find the game in Steam libraries and scan roots",
	Long: `Look for the executable named by game.executable in config.yaml. Steam libraries
are checked first when game.steam_app_id is set, then scan_roots are searched.

Prompts for which candidate to use (e.g. 1 or none); --yes picks the first.`,
	Args: cobra.NoArgs,
	RunE: runGameDetect,
}

var gameClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the configured game",
	Long: `Forget the configured game executable and data folder. Game files, including
any applied mods and their .bak originals, are left as they are.`,
	Args: cobra.NoArgs,
	RunE: runGameClear,
}

var gameLaunchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Start the game",
	Args:  cobra.NoArgs,
	RunE:  runGameLaunch,
}

func init() {
	gameCmd.AddCommand(gameShowCmd)
	gameCmd.AddCommand(gameSetPathCmd)
	gameCmd.AddCommand(gameDetectCmd)
	gameCmd.AddCommand(gameClearCmd)
	gameCmd.AddCommand(gameLaunchCmd)
	rootCmd.AddCommand(gameCmd)
}

func runGameShow(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	inst, err := service.ResolveInstallation()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, inst)
	}
	if inst == nil {
		fmt.Fprintln(out, "No game configured.")
		return nil
	}
	fmt.Fprintf(out, "Executable: %s\n", inst.ExecutablePath)
	fmt.Fprintf(out, "Data:       %s\n", inst.DataRoot)
	return nil
}

func runGameSetPath(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	inst, err := service.SetGamePath(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, inst)
	}
	fmt.Fprintf(out, "✓ Game set to %s\n", inst.ExecutablePath)
	fmt.Fprintf(out, "  Mods apply under %s\n", inst.DataRoot)
	return nil
}

func runGameDetect(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	candidates, err := service.DetectGame(context.Background())
	if err != nil {
		return fmt.Errorf("detecting game: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if candidates == nil {
			candidates = []discovery.Candidate{}
		}
		return printJSON(out, candidates)
	}

	if len(candidates) == 0 {
		fmt.Fprintln(out, "Game not found.")
		fmt.Fprintln(out, "\nUse 'bmm game set-path <exe>' to set it by hand.")
		return nil
	}

	fmt.Fprintf(out, "Found %d candidate(s):\n", len(candidates))
	for i, c := range candidates {
		fmt.Fprintf(out, "  %d. %s (%s)\n", i+1, c.ExecutablePath, c.Source)
	}

	choice := 1
	if !assumeYes {
		choice, err = promptChoice(cmd, len(candidates))
		if err != nil {
			return err
		}
		if choice == 0 {
			fmt.Fprintln(out, "No game set.")
			return nil
		}
	}

	inst, err := service.SetGamePath(candidates[choice-1].ExecutablePath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Game set to %s\n", inst.ExecutablePath)
	return nil
}

// promptChoice reads a 1-based selection; 0 means none
func promptChoice(cmd *cobra.Command, n int) (int, error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Use which? [1-%d/none]: ", n)

	var line string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &line); err != nil && line == "" {
		return 0, nil
	}
	line = strings.TrimSpace(strings.ToLower(line))
	if line == "" || line == "n" || line == "none" {
		return 0, nil
	}
	choice, err := strconv.Atoi(line)
	if err != nil || choice < 1 || choice > n {
		return 0, fmt.Errorf("invalid selection: %q (use a number 1-%d or none)", line, n)
	}
	return choice, nil
}

func runGameClear(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	if err := service.ClearGamePath(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Game path cleared.")
	return nil
}

func runGameLaunch(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	if err := service.LaunchGame(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Game launched.")
	return nil
}
