package tui

import (
	"fmt"

	"github.com/DonovanMods/bundle-mod-manager/internal/core"
	"github.com/DonovanMods/bundle-mod-manager/internal/domain"
	"github.com/DonovanMods/bundle-mod-manager/internal/tui/views"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Backend is the subset of the service the TUI drives
type Backend interface {
	ListMods() ([]domain.ModEntry, error)
	UpdateMod(id string, upd domain.ModUpdate) ([]domain.ModEntry, error)
	DeleteMod(id string) ([]domain.ModEntry, error)
	ImportMods(paths []string) (*core.ImportResult, error)
	ApplyEnabledMods(status domain.StatusFunc) *domain.BatchResult
	UninstallDisabledMods(status domain.StatusFunc) *domain.BatchResult
	ResolveInstallation() (*domain.Installation, error)
	SetGamePath(executablePath string) (*domain.Installation, error)
	LaunchGame() error
}

// ViewType represents different screens in the TUI
type ViewType int

const (
	ViewMods ViewType = iota
	ViewGame
	ViewLog
)

// NavigateMsg is sent to change views
type NavigateMsg struct {
	View ViewType
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Err error
}

// NoticeMsg is a one-line status shown in the footer
type NoticeMsg struct {
	Text string
}

type importDoneMsg struct {
	mods   []domain.ModEntry
	notice string
}

// batchMsg carries one event of a running batch, or its result once finished
type batchMsg struct {
	event  *domain.StatusEvent
	result *domain.BatchResult
	ch     <-chan batchMsg
}

// App is the main TUI application model
type App struct {
	backend     Backend
	keys        *KeyMap
	currentView ViewType
	width       int
	height      int
	err         error
	notice      string
	busy        bool
	showHelp    bool

	mods views.Mods
	game views.Game
	log  views.Log
}

// NewApp creates a new TUI application
func NewApp(backend Backend, keys *KeyMap) App {
	if keys == nil {
		keys = NewKeyMap("vim")
	}
	return App{
		backend:     backend,
		keys:        keys,
		currentView: ViewMods,
		width:       80,
		height:      24,
		mods:        views.NewMods(keys, nil),
		game:        views.NewGame(keys, nil),
		log:         views.NewLog(),
	}
}

// CurrentView returns the current view type
func (a App) CurrentView() ViewType {
	return a.currentView
}

// Busy reports whether a batch is running
func (a App) Busy() bool {
	return a.busy
}

// Mods returns the mod list view
func (a App) Mods() views.Mods {
	return a.mods
}

// Err returns the last error shown to the user
func (a App) Err() error {
	return a.err
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	if a.backend == nil {
		return nil
	}
	return tea.Batch(a.loadMods(), a.loadGame())
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		var cmd tea.Cmd
		a.mods, cmd = updateView(a.mods, msg)
		return a, cmd

	case NavigateMsg:
		a.currentView = msg.View
		return a, nil

	case ErrorMsg:
		a.err = msg.Err
		return a, nil

	case NoticeMsg:
		a.notice = msg.Text
		return a, nil

	case views.ModsLoadedMsg:
		a.mods, _ = updateView(a.mods, msg)
		return a, nil

	case views.GameLoadedMsg:
		a.game, _ = updateView(a.game, msg)
		return a, nil

	case views.ToggleModMsg:
		if a.blocked() {
			return a, nil
		}
		enabled := msg.Enabled
		return a, a.updateMod(msg.ID, domain.ModUpdate{Enabled: &enabled})

	case views.RenameModMsg:
		if a.blocked() {
			return a, nil
		}
		name := msg.Name
		return a, a.updateMod(msg.ID, domain.ModUpdate{DisplayName: &name})

	case views.DeleteModMsg:
		if a.blocked() {
			return a, nil
		}
		return a, a.deleteMod(msg.ID)

	case views.ImportModsMsg:
		if a.blocked() {
			return a, nil
		}
		return a, a.importMods(msg.Paths)

	case importDoneMsg:
		a.mods, _ = updateView(a.mods, views.ModsLoadedMsg{Mods: msg.mods})
		a.notice = msg.notice
		return a, nil

	case views.ApplyModsMsg:
		return a.startBatch(true)

	case views.UninstallModsMsg:
		return a.startBatch(false)

	case batchMsg:
		if msg.event != nil {
			a.log, _ = updateView(a.log, views.BatchStatusMsg{Event: *msg.event})
			return a, waitForBatch(msg.ch)
		}
		a.busy = false
		a.log, _ = updateView(a.log, views.BatchDoneMsg{Result: msg.result})
		a.notice = msg.result.Message
		// Targets are recorded during apply
		return a, a.loadMods()

	case views.SetGamePathMsg:
		if a.blocked() {
			return a, nil
		}
		return a, a.setGamePath(msg.Path)

	case views.LaunchGameMsg:
		if a.blocked() {
			return a, nil
		}
		return a, a.launchGame()
	}

	// Delegate to current view's model
	return a.updateCurrentView(msg)
}

// blocked refuses registry and game changes while a batch runs
func (a *App) blocked() bool {
	if a.busy {
		a.notice = "a batch is running, wait for it to finish"
		return true
	}
	return false
}

func (a App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	// Text inputs and confirmations get every key
	if a.capturing() {
		return a.updateCurrentView(msg)
	}

	a.err = nil

	switch {
	case a.keys.IsQuit(msg):
		return a, tea.Quit
	case a.keys.IsHelp(msg):
		a.showHelp = !a.showHelp
		return a, nil
	}

	switch msg.String() {
	case "1":
		a.currentView = ViewMods
		return a, nil
	case "2":
		a.currentView = ViewGame
		return a, nil
	case "3":
		a.currentView = ViewLog
		return a, nil
	}

	if a.busy && a.currentView == ViewMods {
		// Navigation only while a batch runs
		if !a.keys.IsUp(msg) && !a.keys.IsDown(msg) && !a.keys.IsHome(msg) && !a.keys.IsEnd(msg) {
			a.notice = "a batch is running, wait for it to finish"
			return a, nil
		}
	}

	return a.updateCurrentView(msg)
}

func (a App) capturing() bool {
	switch a.currentView {
	case ViewMods:
		return a.mods.Capturing()
	case ViewGame:
		return a.game.Capturing()
	}
	return false
}

func (a App) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case ViewMods:
		a.mods, cmd = updateView(a.mods, msg)
	case ViewGame:
		a.game, cmd = updateView(a.game, msg)
	case ViewLog:
		a.log, cmd = updateView(a.log, msg)
	}

	return a, cmd
}

// updateView forwards msg to a view and keeps its concrete type
func updateView[M tea.Model](m M, msg tea.Msg) (M, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(M), cmd
}

func (a App) loadMods() tea.Cmd {
	backend := a.backend
	if backend == nil {
		return nil
	}
	return func() tea.Msg {
		mods, err := backend.ListMods()
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return views.ModsLoadedMsg{Mods: mods}
	}
}

func (a App) loadGame() tea.Cmd {
	backend := a.backend
	if backend == nil {
		return nil
	}
	return func() tea.Msg {
		inst, err := backend.ResolveInstallation()
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return views.GameLoadedMsg{Installation: inst}
	}
}

func (a App) updateMod(id string, upd domain.ModUpdate) tea.Cmd {
	backend := a.backend
	if backend == nil {
		return nil
	}
	return func() tea.Msg {
		mods, err := backend.UpdateMod(id, upd)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return views.ModsLoadedMsg{Mods: mods}
	}
}

func (a App) deleteMod(id string) tea.Cmd {
	backend := a.backend
	if backend == nil {
		return nil
	}
	return func() tea.Msg {
		mods, err := backend.DeleteMod(id)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return views.ModsLoadedMsg{Mods: mods}
	}
}

func (a App) importMods(paths []string) tea.Cmd {
	backend := a.backend
	if backend == nil {
		return nil
	}
	return func() tea.Msg {
		res, err := backend.ImportMods(paths)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		notice := fmt.Sprintf("imported %d of %d file(s)", len(res.Added), len(paths))
		if len(res.Errors) > 0 {
			notice += fmt.Sprintf(", %s: %s", res.Errors[0].Path, res.Errors[0].Error)
		}
		return importDoneMsg{mods: res.Mods, notice: notice}
	}
}

func (a App) setGamePath(path string) tea.Cmd {
	backend := a.backend
	if backend == nil {
		return nil
	}
	return func() tea.Msg {
		inst, err := backend.SetGamePath(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return views.GameLoadedMsg{Installation: inst}
	}
}

func (a App) launchGame() tea.Cmd {
	backend := a.backend
	if backend == nil {
		return nil
	}
	return func() tea.Msg {
		if err := backend.LaunchGame(); err != nil {
			return ErrorMsg{Err: err}
		}
		return NoticeMsg{Text: "game launched"}
	}
}

// startBatch runs the batch in the background and streams its status events
func (a App) startBatch(apply bool) (tea.Model, tea.Cmd) {
	if a.backend == nil || a.blocked() {
		return a, nil
	}
	a.busy = true
	a.notice = ""
	a.currentView = ViewLog

	backend := a.backend
	ch := make(chan batchMsg, 16)
	go func() {
		defer close(ch)
		status := func(ev domain.StatusEvent) {
			ch <- batchMsg{event: &ev, ch: ch}
		}
		var res *domain.BatchResult
		if apply {
			res = backend.ApplyEnabledMods(status)
		} else {
			res = backend.UninstallDisabledMods(status)
		}
		ch <- batchMsg{result: res}
	}()

	return a, waitForBatch(ch)
}

func waitForBatch(ch <-chan batchMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// View implements tea.Model
func (a App) View() string {
	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	activeTabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	// Header
	header := titleStyle.Render("bmm - Bundle Mod Manager")

	// Tab bar
	tabs := []string{"[1]Mods", "[2]Game", "[3]Log"}
	tabBar := ""
	for i, tab := range tabs {
		if ViewType(i) == a.currentView {
			tabBar += activeTabStyle.Render(tab) + "  "
		} else {
			tabBar += tabStyle.Render(tab) + "  "
		}
	}
	if a.busy {
		tabBar += lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("working...")
	}

	// Content
	var content string
	if a.showHelp {
		content = a.keys.FullHelp()
	} else {
		content = a.renderCurrentView()
	}

	// Footer
	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		MarginTop(1)
	footer := footerStyle.Render(a.keys.NavigationHelp() + "  q: quit  ?: help")

	if a.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		footer = errStyle.Render(fmt.Sprintf("Error: %v", a.err)) + "\n" + footer
	} else if a.notice != "" {
		footer = tabStyle.Render(a.notice) + "\n" + footer
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", header, tabBar, content, footer)
}

func (a App) renderCurrentView() string {
	switch a.currentView {
	case ViewMods:
		return a.mods.View()
	case ViewGame:
		return a.game.View()
	case ViewLog:
		return a.log.View()
	default:
		return "Unknown view"
	}
}

// Run starts the TUI application
func Run(backend Backend, keymode string) error {
	app := NewApp(backend, NewKeyMap(keymode))
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
