package main

import (
	"fmt"
	"io"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"
)

// truncate shortens s to maxLen runes, marking the cut with "..."
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// formatSize renders a byte count with a binary unit
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// statusPrinter streams batch progress to w when verbose output is on
func statusPrinter(w io.Writer) domain.StatusFunc {
	if !verbose || jsonOutput {
		return nil
	}
	return func(ev domain.StatusEvent) {
		fmt.Fprintln(w, ev.String())
	}
}

// printBatchResult renders a batch result and returns errBatchFailed when it did not succeed
func printBatchResult(w io.Writer, res *domain.BatchResult) error {
	if jsonOutput {
		if err := printJSON(w, res); err != nil {
			return err
		}
	} else {
		for _, e := range res.Log {
			var mark string
			switch e.Outcome {
			case domain.OutcomeApplied, domain.OutcomeReverted:
				mark = colorGreen("✓")
			case domain.OutcomeNotFound, domain.OutcomeNoBackup:
				mark = colorYellow("-")
			default:
				mark = colorRed("✗")
			}
			fmt.Fprintf(w, "  %s %s\n", mark, e.String())
		}
		if len(res.Log) > 0 {
			fmt.Fprintln(w)
		}

		if res.Success {
			fmt.Fprintln(w, res.Message)
		} else {
			fmt.Fprintln(w, colorRed("Error: "+res.Message))
		}
	}

	if !res.Success {
		return errBatchFailed
	}
	return nil
}
