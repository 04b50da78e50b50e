package views_test

import tea "github.com/charmbracelet/bubbletea"

// testKeys mirrors the vim keymap without importing the tui package
type testKeys struct{}

func (testKeys) IsUp(msg tea.KeyMsg) bool   { return msg.Type == tea.KeyUp || msg.String() == "k" }
func (testKeys) IsDown(msg tea.KeyMsg) bool { return msg.Type == tea.KeyDown || msg.String() == "j" }
func (testKeys) IsHome(msg tea.KeyMsg) bool { return msg.Type == tea.KeyHome || msg.String() == "g" }
func (testKeys) IsEnd(msg tea.KeyMsg) bool  { return msg.Type == tea.KeyEnd || msg.String() == "G" }
func (testKeys) IsConfirm(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyEnter
}
func (testKeys) IsCancel(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyEsc
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}
