package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/theme"
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID  string
	Title   string
	TwoKeys bool // Two players share the keyboard
}

// MenuModel is the launcher's game picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	opts           Options
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists every registered game.
func NewMenuModel(opts Options, width, height int) MenuModel {
	opts = opts.withDefaults()
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if game, err := registry.Create(g.ID); err == nil {
			item.TwoKeys = registry.WantsSplitKeys(game)
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		width:     width,
		height:    height,
		opts:      opts,
		keyMapper: NewKeyMapper(false),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionScoreboard:
		m.openScoreboard = true

	case MenuActionTheme:
		m.cycleTheme()
	}

	return m, nil
}

// cycleTheme switches to the next theme and records it in the settings.
func (m *MenuModel) cycleTheme() {
	m.opts.Theme = m.opts.Themes.Next(m.opts.Theme.Name)
	if m.opts.Settings == nil {
		return
	}
	if err := m.opts.Settings.SaveTheme(m.opts.Theme.Name); err != nil {
		m.opts.Logger.Warn("cannot save theme", "theme", m.opts.Theme.Name, "err", err)
	}
}

// View renders the menu in the current theme.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	th := m.opts.Theme
	r := m.opts.Renderer
	title := r.Style(th.Color(theme.RoleAccent1), "").Bold(true)
	text := r.Style(th.Color(theme.RoleText), "")
	current := r.Style(th.Color(theme.RoleAccent2), "").Bold(true)
	dim := r.Style(th.Color(theme.RoleObstacle), "")

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(title.Render(centerText("R E T R O   A R C A D E", m.width)))
	b.WriteString("\n\n")
	b.WriteString(text.Render(centerText("Select a game", m.width)))
	b.WriteString("\n\n")

	nameWidth := 0
	for _, item := range m.items {
		nameWidth = max(nameWidth, lipgloss.Width(item.label()))
	}
	for i, item := range m.items {
		cursor, style := "  ", text
		if i == m.cursor {
			cursor, style = "> ", current
		}
		line := fmt.Sprintf("%s%-*s  %6s", cursor, nameWidth, item.label(), m.best(item.Title))
		b.WriteString(style.Render(centerText(line, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render(centerText(fmt.Sprintf("Theme: %s", th.Name), m.width)))
	b.WriteString("\n")
	controls := "Up/Down: Navigate | Enter: Play | Tab: Scores | T: Theme | Q: Quit"
	b.WriteString(dim.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

func (item MenuItem) label() string {
	if item.TwoKeys {
		return item.Title + " (2P)"
	}
	return item.Title
}

// best formats the stored high score for a title.
func (m MenuModel) best(title string) string {
	if m.opts.Store == nil {
		return ""
	}
	if hs := m.opts.Store.HighScore(title); hs > 0 {
		return fmt.Sprintf("%d", hs)
	}
	return "-"
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// ClearSelection returns the menu to browsing after a game or scoreboard.
func (m *MenuModel) ClearSelection() {
	m.selected = nil
	m.openScoreboard = false
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Theme returns the theme currently picked in the menu.
func (m MenuModel) Theme() theme.Theme {
	return m.opts.Theme
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
