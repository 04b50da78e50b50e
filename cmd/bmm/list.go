package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/DonovanMods/bundle-mod-manager/internal/core"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List mods in the library",
	Long: `List all registered mods in the order they are applied.

Examples:
  bmm list
  bmm list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	mods, err := service.ListMods()
	if err != nil {
		return fmt.Errorf("listing mods: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, mods)
	}

	lib := service.Library()
	if verbose {
		fmt.Fprintf(out, "Library: %s\n\n", lib.Dir())
	}

	if len(mods) == 0 {
		fmt.Fprintln(out, "No mods in library.")
		fmt.Fprintln(out, "\nUse 'bmm import <file>' to add one.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tFILE\tENABLED\tPAYLOAD")
	fmt.Fprintln(w, "--\t----\t----\t-------\t-------")

	missing := 0
	for _, mod := range mods {
		enabled := "yes"
		if !mod.Enabled {
			enabled = "no"
		}
		payload := "ok"
		if !lib.Exists(mod.FileName) {
			payload = colorRed("missing")
			missing++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			mod.ID[:min(8, len(mod.ID))],
			truncate(mod.DisplayName, 40),
			truncate(mod.FileName, 40),
			enabled,
			payload,
		)
	}
	w.Flush()

	if missing > 0 {
		fmt.Fprintf(out, "\n%s\n", colorYellow(fmt.Sprintf("%d mod(s) have no library copy; re-import them before applying.", missing)))
	}

	if verbose {
		size, err := lib.Size()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nTotal: %d mod(s), %s\n", len(mods), formatSize(size))

		files, err := lib.List()
		if err != nil {
			return err
		}
		for _, f := range files {
			if core.FindByFileName(mods, f) < 0 {
				fmt.Fprintf(out, "Untracked: %s\n", f)
			}
		}
	}

	return nil
}
