package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where each mod applies and the state of its game file",
	Long: `Show the configured game and, for every mod, the game file it matches and
whether an original is backed up. Nothing on disk is changed.

States:
  backed-up   the original is saved as <file>.bak
  no-backup   the game file exists but has not been replaced yet
  missing     neither the file nor a backup exists

Examples:
  bmm status
  bmm status --json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	out := cmd.OutOrStdout()
	statuses, err := service.ModStatus()
	if errors.Is(err, domain.ErrNoInstallation) {
		if jsonOutput {
			return err
		}
		fmt.Fprintln(out, "No game configured.")
		fmt.Fprintln(out, "\nUse 'bmm game set-path <exe>' or 'bmm game detect' to set one.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading status: %w", err)
	}

	if jsonOutput {
		return printJSON(out, statuses)
	}

	inst, err := service.ResolveInstallation()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Game: %s\n", inst.ExecutablePath)
	fmt.Fprintf(out, "  Data: %s\n\n", inst.DataRoot)

	if len(statuses) == 0 {
		fmt.Fprintln(out, "No mods in library.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tENABLED\tSTATE\tTARGET")
	fmt.Fprintln(w, "----\t-------\t-----\t------")

	for _, st := range statuses {
		enabled := "yes"
		if !st.Mod.Enabled {
			enabled = "no"
		}
		state := st.State.String()
		target := st.Target
		if !st.Found {
			state = colorYellow("not found")
			target = "-"
		} else if st.State == domain.StateBackedUp {
			state = colorGreen(state)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", truncate(st.Mod.FileName, 40), enabled, state, target)
	}
	w.Flush()

	return nil
}
