package views

import (
	"fmt"
	"strings"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ModsLoadedMsg carries a fresh copy of the registry
type ModsLoadedMsg struct {
	Mods []domain.ModEntry
}

// ToggleModMsg is sent to enable or disable a mod
type ToggleModMsg struct {
	ID      string
	Enabled bool
}

// RenameModMsg is sent to change a mod's display name
type RenameModMsg struct {
	ID   string
	Name string
}

// DeleteModMsg is sent to remove a mod from the registry and library
type DeleteModMsg struct {
	ID string
}

// ImportModsMsg is sent to import files into the library
type ImportModsMsg struct {
	Paths []string
}

// ApplyModsMsg is sent once the user confirmed applying enabled mods
type ApplyModsMsg struct{}

// UninstallModsMsg is sent once the user confirmed uninstalling disabled mods
type UninstallModsMsg struct{}

type modsMode int

const (
	modeBrowse modsMode = iota
	modeRename
	modeImport
	modeConfirm
)

// Mods is the mod list view
type Mods struct {
	keys     Keys
	mods     []domain.ModEntry
	selected int
	mode     modsMode
	input    textinput.Model
	prompt   string
	pending  tea.Msg // sent when the prompt is confirmed
	width    int
	height   int
}

// NewMods creates a new mod list view
func NewMods(keys Keys, mods []domain.ModEntry) Mods {
	ti := textinput.New()
	ti.CharLimit = 255
	ti.Width = 50

	return Mods{
		keys:   keys,
		mods:   mods,
		input:  ti,
		width:  80,
		height: 24,
	}
}

// Selected returns the currently selected index
func (m Mods) Selected() int {
	return m.selected
}

// ModCount returns the number of mods
func (m Mods) ModCount() int {
	return len(m.mods)
}

// SelectedMod returns the currently selected mod
func (m Mods) SelectedMod() *domain.ModEntry {
	if len(m.mods) == 0 || m.selected >= len(m.mods) {
		return nil
	}
	return &m.mods[m.selected]
}

// Capturing reports whether the view is reading text or a confirmation,
// in which case global keys must not be handled by the parent
func (m Mods) Capturing() bool {
	return m.mode != modeBrowse
}

// Init implements tea.Model
func (m Mods) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Mods) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeRename, modeImport:
			return m.handleInput(msg)
		case modeConfirm:
			return m.handleConfirm(msg)
		}
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ModsLoadedMsg:
		m.mods = msg.Mods
		if m.selected >= len(m.mods) {
			m.selected = max(len(m.mods)-1, 0)
		}
		return m, nil
	}

	if m.mode == modeRename || m.mode == modeImport {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Mods) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.keys.IsUp(msg):
		if len(m.mods) > 0 {
			m.selected--
			if m.selected < 0 {
				m.selected = len(m.mods) - 1
			}
		}
		return m, nil
	case m.keys.IsDown(msg):
		if len(m.mods) > 0 {
			m.selected++
			if m.selected >= len(m.mods) {
				m.selected = 0
			}
		}
		return m, nil
	case m.keys.IsHome(msg):
		m.selected = 0
		return m, nil
	case m.keys.IsEnd(msg):
		m.selected = max(len(m.mods)-1, 0)
		return m, nil
	}

	switch msg.String() {
	case " ":
		if mod := m.SelectedMod(); mod != nil {
			toggle := ToggleModMsg{ID: mod.ID, Enabled: !mod.Enabled}
			return m, func() tea.Msg { return toggle }
		}

	case "r":
		if mod := m.SelectedMod(); mod != nil {
			m.mode = modeRename
			m.input.Placeholder = "Display name"
			m.input.SetValue(mod.DisplayName)
			m.input.CursorEnd()
			return m, m.input.Focus()
		}

	case "i":
		m.mode = modeImport
		m.input.Placeholder = "Path to mod file (separate several with ;)"
		m.input.SetValue("")
		return m, m.input.Focus()

	case "d", "delete":
		if mod := m.SelectedMod(); mod != nil {
			return m.confirm(fmt.Sprintf("Delete %s from the library?", mod.FileName), DeleteModMsg{ID: mod.ID}), nil
		}

	case "a":
		n := m.count(true)
		if n == 0 {
			return m, nil
		}
		return m.confirm(fmt.Sprintf("Apply %d enabled mod(s) to the game?", n), ApplyModsMsg{}), nil

	case "u":
		n := m.count(false)
		if n == 0 {
			return m, nil
		}
		return m.confirm(fmt.Sprintf("Uninstall %d disabled mod(s) and restore originals?", n), UninstallModsMsg{}), nil
	}

	return m, nil
}

func (m Mods) confirm(prompt string, pending tea.Msg) Mods {
	m.mode = modeConfirm
	m.prompt = prompt
	m.pending = pending
	return m
}

func (m Mods) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		pending := m.pending
		m.mode = modeBrowse
		m.pending = nil
		return m, func() tea.Msg { return pending }
	case "n", "esc":
		m.mode = modeBrowse
		m.pending = nil
	}
	return m, nil
}

func (m Mods) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.keys.IsCancel(msg):
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil

	case m.keys.IsConfirm(msg):
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = modeBrowse
		m.input.Blur()
		if value == "" {
			return m, nil
		}

		if mode == modeImport {
			var paths []string
			for _, p := range strings.Split(value, ";") {
				if p = strings.TrimSpace(p); p != "" {
					paths = append(paths, p)
				}
			}
			return m, func() tea.Msg { return ImportModsMsg{Paths: paths} }
		}

		if mod := m.SelectedMod(); mod != nil {
			rename := RenameModMsg{ID: mod.ID, Name: value}
			return m, func() tea.Msg { return rename }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Mods) count(enabled bool) int {
	n := 0
	for _, mod := range m.mods {
		if mod.Enabled == enabled {
			n++
		}
	}
	return n
}

// View implements tea.Model
func (m Mods) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(titleColor)).
		MarginBottom(1)

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(dimColor))

	itemStyle := lipgloss.NewStyle().
		PaddingLeft(2)

	selectedStyle := lipgloss.NewStyle().
		PaddingLeft(2).
		Foreground(lipgloss.Color(accentColor)).
		Bold(true)

	disabledStyle := lipgloss.NewStyle().
		PaddingLeft(2).
		Foreground(lipgloss.Color(dimColor))

	detailStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(dimColor)).
		PaddingLeft(4)

	promptStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(warningColor)).
		Bold(true)

	output := titleStyle.Render("Mods") + "\n"

	if len(m.mods) == 0 {
		output += itemStyle.Render("The library is empty.") + "\n\n"
		output += infoStyle.Render("Press i to import a mod file, or run 'bmm import <file>'") + "\n"
	} else {
		output += infoStyle.Render(fmt.Sprintf("%d mods, %d enabled", len(m.mods), m.count(true))) + "\n\n"

		for i, mod := range m.mods {
			cursor := "  "
			style := itemStyle
			if i == m.selected {
				cursor = "▸ "
				style = selectedStyle
			} else if !mod.Enabled {
				style = disabledStyle
			}

			status := "[✓]"
			if !mod.Enabled {
				status = "[ ]"
			}

			line := fmt.Sprintf("%s%s %s", cursor, status, mod.DisplayName)
			if mod.DisplayName != mod.FileName {
				line += fmt.Sprintf(" (%s)", mod.FileName)
			}
			output += style.Render(line) + "\n"

			if i == m.selected {
				output += detailStyle.Render(fmt.Sprintf("ID: %s", mod.ID)) + "\n"
				if mod.TargetPath != "" {
					output += detailStyle.Render(fmt.Sprintf("Target: %s", mod.TargetPath)) + "\n"
				}
				if !mod.ImportedAt.IsZero() {
					output += detailStyle.Render(fmt.Sprintf("Imported: %s", mod.ImportedAt.Local().Format("2006-01-02"))) + "\n"
				}
			}
		}
	}

	switch m.mode {
	case modeRename:
		output += "\n" + promptStyle.Render("Rename:") + " " + m.input.View() + "\n"
	case modeImport:
		output += "\n" + promptStyle.Render("Import:") + " " + m.input.View() + "\n"
	case modeConfirm:
		output += "\n" + promptStyle.Render(m.prompt+" (y/n)") + "\n"
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(dimColor)).
		MarginTop(1)
	output += helpStyle.Render("space: toggle  r: rename  d: delete  i: import  a: apply  u: uninstall")

	return output
}
