package views

import (
	"strings"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BatchStatusMsg reports progress of a running batch
type BatchStatusMsg struct {
	Event domain.StatusEvent
}

// BatchDoneMsg carries the result of a finished batch
type BatchDoneMsg struct {
	Result *domain.BatchResult
}

// Log shows the progress and per-mod log of the last batch
type Log struct {
	progress []string
	result   *domain.BatchResult
	running  bool
}

// NewLog creates an empty log view
func NewLog() Log {
	return Log{}
}

// Running reports whether a batch is in progress
func (l Log) Running() bool {
	return l.running
}

// Result returns the last batch result, or nil
func (l Log) Result() *domain.BatchResult {
	return l.result
}

// Init implements tea.Model
func (l Log) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (l Log) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case BatchStatusMsg:
		if msg.Event.Key == domain.StatusStart {
			l.progress = nil
			l.result = nil
			l.running = true
		}
		l.progress = append(l.progress, msg.Event.String())
	case BatchDoneMsg:
		l.result = msg.Result
		l.running = false
	}
	return l, nil
}

// View implements tea.Model
func (l Log) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(titleColor)).
		MarginBottom(1)

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(dimColor))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Log") + "\n")

	if l.result == nil && len(l.progress) == 0 {
		b.WriteString(dim.Render("Nothing has run yet. Apply or uninstall from the Mods tab.") + "\n")
		return b.String()
	}

	if l.result == nil {
		for _, line := range l.progress {
			b.WriteString(dim.Render(line) + "\n")
		}
		return b.String()
	}

	summary := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(successColor))
	if !l.result.Success {
		summary = summary.Foreground(lipgloss.Color(errorColor))
	}
	b.WriteString(summary.Render(l.result.Message) + "\n\n")

	for _, e := range l.result.Log {
		b.WriteString(outcomeStyle(e.Outcome).Render(e.String()) + "\n")
	}
	return b.String()
}

func outcomeStyle(o domain.Outcome) lipgloss.Style {
	s := lipgloss.NewStyle().PaddingLeft(2)
	switch o {
	case domain.OutcomeApplied, domain.OutcomeReverted:
		return s.Foreground(lipgloss.Color(successColor))
	case domain.OutcomeNotFound, domain.OutcomeNoBackup:
		return s.Foreground(lipgloss.Color(warningColor))
	case domain.OutcomeFailed:
		return s.Foreground(lipgloss.Color(errorColor))
	}
	return s
}
