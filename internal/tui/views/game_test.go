package views_test

import (
	"testing"

	"github.com/DonovanMods/bundle-mod-manager/internal/domain"
	"github.com/DonovanMods/bundle-mod-manager/internal/tui/views"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGame_NotConfigured(t *testing.T) {
	model := views.NewGame(testKeys{}, nil)

	assert.Contains(t, model.View(), "No game configured")

	// Nothing to launch
	_, cmd := model.Update(key("L"))
	assert.Nil(t, cmd)
}

func TestGame_ShowsInstallation(t *testing.T) {
	model := views.NewGame(testKeys{}, domain.NewInstallation("/games/Heroes/Heroes.exe"))

	view := model.View()
	assert.Contains(t, view, "/games/Heroes/Heroes.exe")
	assert.Contains(t, view, "Heroes_Data")
}

func TestGame_SetPath(t *testing.T) {
	model := views.NewGame(testKeys{}, nil)

	newModel, _ := model.Update(key("e"))
	require.True(t, newModel.(views.Game).Capturing())

	newModel = typeText(newModel, "/games/Heroes/Heroes.exe")
	newModel, cmd := newModel.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, newModel.(views.Game).Capturing())
	require.NotNil(t, cmd)

	set, ok := cmd().(views.SetGamePathMsg)
	require.True(t, ok)
	assert.Equal(t, "/games/Heroes/Heroes.exe", set.Path)
}

func TestGame_Launch(t *testing.T) {
	model := views.NewGame(testKeys{}, nil)
	newModel, _ := model.Update(views.GameLoadedMsg{Installation: domain.NewInstallation("/g/Game.exe")})
	require.NotNil(t, newModel.(views.Game).Installation())

	_, cmd := newModel.Update(key("L"))
	require.NotNil(t, cmd)
	assert.IsType(t, views.LaunchGameMsg{}, cmd())
}
