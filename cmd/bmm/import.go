package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import mod files into the library",
	Long: `Copy one or more replacement files into the mod library and register them
as enabled mods. A file whose name is already registered is skipped.

Examples:
  bmm import ~/Downloads/hero_skin.bundle
  bmm import *.bundle`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	paths := make([]string, 0, len(args))
	for _, a := range args {
		abs, err := filepath.Abs(a)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", a, err)
		}
		paths = append(paths, abs)
	}

	res, err := service.ImportMods(paths)
	if err != nil {
		return fmt.Errorf("importing: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, res)
	}

	for _, m := range res.Added {
		fmt.Fprintf(out, "  %s %s (%s)\n", colorGreen("+"), m.FileName, m.ID)
	}
	for _, e := range res.Errors {
		fmt.Fprintf(out, "  %s %s: %s\n", colorRed("✗"), e.Path, e.Error)
	}

	skipped := len(paths) - len(res.Added) - len(res.Errors)
	fmt.Fprintf(out, "\nImported %d file(s)", len(res.Added))
	if skipped > 0 {
		fmt.Fprintf(out, ", %d already in library", skipped)
	}
	if len(res.Errors) > 0 {
		fmt.Fprintf(out, ", %d failed", len(res.Errors))
	}
	fmt.Fprintln(out)

	if len(res.Added) == 0 && len(res.Errors) > 0 {
		return fmt.Errorf("no files imported")
	}
	return nil
}
