package views

import (
	"strings"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// GameLoadedMsg carries the configured installation, nil when unset
type GameLoadedMsg struct {
	Installation *domain.Installation
}

// SetGamePathMsg is sent to configure the game executable
type SetGamePathMsg struct {
	Path string
}

// LaunchGameMsg is sent to start the game
type LaunchGameMsg struct{}

// Game shows the configured installation and lets the user change it
type Game struct {
	keys    Keys
	install *domain.Installation
	editing bool
	input   textinput.Model
}

// NewGame creates a new game view
func NewGame(keys Keys, install *domain.Installation) Game {
	ti := textinput.New()
	ti.Placeholder = "/path/to/Game.exe"
	ti.CharLimit = 1024
	ti.Width = 60

	return Game{
		keys:    keys,
		install: install,
		input:   ti,
	}
}

// Installation returns the installation shown by the view
func (g Game) Installation() *domain.Installation {
	return g.install
}

// Capturing reports whether the view is reading text input
func (g Game) Capturing() bool {
	return g.editing
}

// Init implements tea.Model
func (g Game) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (g Game) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case GameLoadedMsg:
		g.install = msg.Installation
		return g, nil

	case tea.KeyMsg:
		if g.editing {
			return g.handleInput(msg)
		}
		switch msg.String() {
		case "e":
			g.editing = true
			if g.install != nil {
				g.input.SetValue(g.install.ExecutablePath)
				g.input.CursorEnd()
			}
			return g, g.input.Focus()
		case "L":
			if g.install == nil {
				return g, nil
			}
			return g, func() tea.Msg { return LaunchGameMsg{} }
		}
		return g, nil
	}

	if g.editing {
		var cmd tea.Cmd
		g.input, cmd = g.input.Update(msg)
		return g, cmd
	}
	return g, nil
}

func (g Game) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case g.keys.IsCancel(msg):
		g.editing = false
		g.input.Blur()
		return g, nil
	case g.keys.IsConfirm(msg):
		g.editing = false
		g.input.Blur()
		path := strings.TrimSpace(g.input.Value())
		if path == "" {
			return g, nil
		}
		return g, func() tea.Msg { return SetGamePathMsg{Path: path} }
	}

	var cmd tea.Cmd
	g.input, cmd = g.input.Update(msg)
	return g, cmd
}

// View implements tea.Model
func (g Game) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(titleColor)).
		MarginBottom(1)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(dimColor)).
		Width(14)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(accentColor))

	output := titleStyle.Render("Game") + "\n"

	if g.install == nil {
		output += "No game configured.\n\n"
		output += lipgloss.NewStyle().Foreground(lipgloss.Color(dimColor)).
			Render("Press e to set the game executable, or run 'bmm game set-path <exe>'") + "\n"
	} else {
		output += labelStyle.Render("Executable") + valueStyle.Render(g.install.ExecutablePath) + "\n"
		output += labelStyle.Render("Data folder") + valueStyle.Render(g.install.DataRoot) + "\n"
	}

	if g.editing {
		promptStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor)).
			Bold(true)
		output += "\n" + promptStyle.Render("Executable:") + " " + g.input.View() + "\n"
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(dimColor)).
		MarginTop(1)
	output += helpStyle.Render("e: set executable  L: launch")

	return output
}
