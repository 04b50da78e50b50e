package domain

import "fmt"

// Outcome classifies what happened to one mod during a batch
type Outcome string

const (
	OutcomeApplied  Outcome = "applied"
	OutcomeReverted Outcome = "reverted"
	OutcomeNoBackup Outcome = "no_backup" // Target found but no backup to restore; left untouched
	OutcomeNotFound Outcome = "not_found"
	OutcomeFailed   Outcome = "failed"
)

// LogEntry is one line of a batch log
type LogEntry struct {
	ModID       string  `json:"modId"`
	FileName    string  `json:"fileName"`
	DisplayName string  `json:"displayName"`
	Outcome     Outcome `json:"outcome"`
	Target      string  `json:"target,omitempty"`
	Error       string  `json:"error,omitempty"`
}

func (e LogEntry) String() string {
	switch e.Outcome {
	case OutcomeApplied:
		return fmt.Sprintf("%s: applied to %s", e.FileName, e.Target)
	case OutcomeReverted:
		return fmt.Sprintf("%s: restored original at %s", e.FileName, e.Target)
	case OutcomeNoBackup:
		return fmt.Sprintf("%s: no backup at %s, left untouched", e.FileName, e.Target)
	case OutcomeNotFound:
		return fmt.Sprintf("%s: target not found, skipped", e.FileName)
	case OutcomeFailed:
		if e.Target != "" {
			return fmt.Sprintf("%s: failed at %s: %s", e.FileName, e.Target, e.Error)
		}
		return fmt.Sprintf("%s: failed: %s", e.FileName, e.Error)
	default:
		return fmt.Sprintf("%s: %s", e.FileName, e.Outcome)
	}
}

// Result codes identify the batch summary independently of its English message.
const (
	CodeApplied        = "apply.ok"
	CodeApplyFailed    = "apply.failed"
	CodeUninstalled    = "uninstall.ok"
	CodeUninstallFail  = "uninstall.failed"
	CodeNothingToDo    = "nothing_to_do"
	CodeNoInstallation = "no_installation"
	CodeBusy           = "busy"
	CodeRegistryError  = "registry_error"
)

// BatchResult is the outcome of an apply or uninstall batch. It never carries
// raw errors so callers can render or serialise it directly.
type BatchResult struct {
	Success bool       `json:"success"`
	Code    string     `json:"code"`
	Message string     `json:"message"`
	Log     []LogEntry `json:"log"`
}

// Lines returns the log as display strings in processing order
func (r *BatchResult) Lines() []string {
	lines := make([]string, 0, len(r.Log))
	for _, e := range r.Log {
		lines = append(lines, e.String())
	}
	return lines
}

// Count returns how many log entries have the given outcome
func (r *BatchResult) Count(o Outcome) int {
	n := 0
	for _, e := range r.Log {
		if e.Outcome == o {
			n++
		}
	}
	return n
}

// Status keys emitted while a batch runs. Presentation layers map them to text.
const (
	StatusStart     = "status.start"
	StatusResolving = "status.resolving"
	StatusApplying  = "status.applying"
	StatusReverting = "status.reverting"
	StatusNotFound  = "status.not_found"
	StatusFailed    = "status.failed"
	StatusDone      = "status.done"
)

// StatusEvent is a progress notification for a running batch
type StatusEvent struct {
	Key   string // One of the Status* keys
	Mod   string // File name of the mod being processed; empty for start/done
	Index int    // 1-based position in the batch
	Total int
}

// StatusFunc receives status events. A nil StatusFunc is allowed.
type StatusFunc func(StatusEvent)

// Emit calls f when it is non-nil
func (f StatusFunc) Emit(ev StatusEvent) {
	if f != nil {
		f(ev)
	}
}

// String renders the event in English
func (e StatusEvent) String() string {
	switch e.Key {
	case StatusStart:
		return fmt.Sprintf("Processing %d mod(s)...", e.Total)
	case StatusResolving:
		return fmt.Sprintf("[%d/%d] Locating %s", e.Index, e.Total, e.Mod)
	case StatusApplying:
		return fmt.Sprintf("[%d/%d] Applying %s", e.Index, e.Total, e.Mod)
	case StatusReverting:
		return fmt.Sprintf("[%d/%d] Restoring original for %s", e.Index, e.Total, e.Mod)
	case StatusNotFound:
		return fmt.Sprintf("[%d/%d] %s not found in game files, skipped", e.Index, e.Total, e.Mod)
	case StatusFailed:
		return fmt.Sprintf("[%d/%d] %s failed", e.Index, e.Total, e.Mod)
	case StatusDone:
		return "Done"
	default:
		return e.Key
	}
}
