package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-slots/internal/core"
	"github.com/vovakirdan/tui-slots/internal/sprite"
)

// Symbol list layout constants
const (
	minWidthForPreview = 60 // Minimum width to show the sprite preview
	previewW           = 20
	previewH           = 8
)

// SymbolsKeyMap defines the key bindings for the symbol list.
type SymbolsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SymbolsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k SymbolsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultSymbolsKeyMap returns default key bindings.
func DefaultSymbolsKeyMap() SymbolsKeyMap {
	return SymbolsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "prev symbol"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next symbol"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SymbolsModel lists the symbol catalog with its grid indices and previews
// the selected sprite.
type SymbolsModel struct {
	catalog     *sprite.Catalog
	table       table.Model
	help        help.Model
	keys        SymbolsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showPreview bool
}

// NewSymbolsModel creates the symbol list for catalog.
func NewSymbolsModel(catalog *sprite.Catalog, width, height int) SymbolsModel {
	h := help.New()
	h.Width = width

	m := SymbolsModel{
		catalog:     catalog,
		keys:        DefaultSymbolsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showPreview: width >= minWidthForPreview,
	}
	m.table = m.createTable()
	return m
}

func (m *SymbolsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Index", Width: 6},
		{Title: "", Width: 2},
		{Title: "Name", Width: 12},
		{Title: "Wild", Width: 5},
	}

	rows := make([]table.Row, m.catalog.Len())
	for i := range rows {
		s := m.catalog.Lookup(i).Symbol
		wild := ""
		if s.IsWild() {
			wild = "yes"
		}
		rows[i] = table.Row{strconv.Itoa(i), string(s.Glyph()), s.String(), wild}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, max(m.height-8, 3))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the symbol list.
func (m SymbolsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the symbol list.
func (m SymbolsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		cursor := m.table.Cursor()
		m.width = msg.Width
		m.height = msg.Height
		m.showPreview = m.width >= minWidthForPreview
		m.table = m.createTable()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the highlighted symbol.
func (m SymbolsModel) Selected() sprite.Symbol {
	return sprite.Symbol(m.table.Cursor()).Clamp()
}

// View renders the symbol list.
func (m SymbolsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("SYMBOLS", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := boxStyle.Render(m.table.View())

	if m.showPreview {
		preview := boxStyle.Render(m.renderPreview())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableRendered, "  ", preview))
	} else {
		b.WriteString(tableRendered)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderPreview draws the selected sprite fitted to the preview box.
func (m SymbolsModel) renderPreview() string {
	sym := m.Selected()
	r := m.catalog.Lookup(int(sym)).Fit(core.Size{W: previewW, H: previewH})

	scr := core.NewScreen(previewW, previewH+1)
	for y := range r.H {
		for x := range r.W {
			if c := r.At(x, y); c != core.ColorDefault {
				scr.SetColored(x, y, '█', c)
			}
		}
	}
	name := sym.String()
	scr.DrawTextColored((previewW-len(name))/2, previewH, name, sym.Color())
	return RenderScreen(scr)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m SymbolsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m SymbolsModel) IsQuitting() bool {
	return m.quitting
}
