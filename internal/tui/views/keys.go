package views

import tea "github.com/charmbracelet/bubbletea"

// Keys maps key presses to navigation actions
type Keys interface {
	IsUp(msg tea.KeyMsg) bool
	IsDown(msg tea.KeyMsg) bool
	IsHome(msg tea.KeyMsg) bool
	IsEnd(msg tea.KeyMsg) bool
	IsConfirm(msg tea.KeyMsg) bool
	IsCancel(msg tea.KeyMsg) bool
}

// Colors shared by the views
const (
	titleColor   = "69"
	accentColor  = "205"
	dimColor     = "241"
	errorColor   = "196"
	successColor = "42"
	warningColor = "214"
)
