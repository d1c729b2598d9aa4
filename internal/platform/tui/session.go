package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-slots/internal/core"
	"github.com/vovakirdan/tui-slots/internal/registry"
	"github.com/vovakirdan/tui-slots/internal/sprite"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenSymbols
)

// SessionModel manages the full flow: menu -> machine or symbol list -> menu.
// It is the top-level model for SSH sessions and `slots menu`.
type SessionModel struct {
	config   core.RuntimeConfig
	catalog  *sprite.Catalog
	screen   sessionScreen
	menu     MenuModel
	game     Model
	symbols  SymbolsModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg core.RuntimeConfig, catalog *sprite.Catalog) SessionModel {
	if catalog == nil {
		catalog = sprite.Builtin()
	}
	return SessionModel{
		config:  cfg,
		catalog: catalog,
		menu:    NewMenuModel(cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenSymbols:
		return m.updateSymbols(msg)
	}
	return m.updateMenu(msg)
}

// Child models signal exit with tea.Quit; the session swallows it and
// switches screens instead.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsSymbols():
		m.symbols = NewSymbolsModel(m.catalog, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenSymbols
		return m, m.symbols.Init()

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.menu.Selected().ID)
		if err != nil {
			m.menu = NewMenuModel(m.config)
			return m, nil
		}
		// a zero seed gives every machine opened here its own reels
		cfg := m.config
		if cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		m.game = NewModel(game, cfg)
		m.game.embedded = true
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(Model); ok {
		m.game = gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateSymbols(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.symbols.Update(msg)
	if sm, ok := next.(SymbolsModel); ok {
		m.symbols = sm
	}

	if m.symbols.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.symbols.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.config)
	return m, m.menu.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenSymbols:
		return m.symbols.View()
	}
	return m.menu.View()
}

// RunSession runs the menu flow in the local terminal.
func RunSession(cfg core.RuntimeConfig, catalog *sprite.Catalog) error {
	p := tea.NewProgram(
		NewSessionModel(cfg, catalog),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
