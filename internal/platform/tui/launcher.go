package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
)

// Launcher runs the full arcade flow in one program:
// menu -> game -> menu, and menu -> scoreboard -> menu.
type Launcher struct {
	opts     Options
	config   core.RuntimeConfig
	screen   screenKind
	menu     MenuModel
	game     Model
	scores   ScoreboardModel
	quitting bool
}

// NewLauncher creates a launcher showing the game menu.
func NewLauncher(cfg core.RuntimeConfig, opts Options) Launcher {
	opts = opts.withDefaults()
	return Launcher{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(opts, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the launcher.
func (l Launcher) Init() tea.Cmd {
	return l.menu.Init()
}

// Update routes messages to the active screen and switches screens.
func (l Launcher) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		l.config.ScreenW = wsm.Width
		l.config.ScreenH = wsm.Height
		l.menu.width, l.menu.height = wsm.Width, wsm.Height
	}

	switch l.screen {
	case screenGame:
		return l.updateGame(msg)
	case screenScores:
		return l.updateScores(msg)
	default:
		return l.updateMenu(msg)
	}
}

func (l Launcher) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := l.menu.Update(msg)
	l.menu = next.(MenuModel)
	l.opts.Theme = l.menu.Theme()

	switch {
	case l.menu.IsQuitting():
		l.quitting = true
		return l, tea.Quit

	case l.menu.WantsScoreboard():
		l.menu.ClearSelection()
		l.scores = NewScoreboardModel(l.opts, l.config.ScreenW, l.config.ScreenH)
		l.screen = screenScores
		return l, l.scores.Init()

	case l.menu.Selected() != nil:
		id := l.menu.Selected().GameID
		l.menu.ClearSelection()
		game, err := registry.Create(id)
		if err != nil {
			l.opts.Logger.Error("cannot start game", "game", id, "err", err)
			return l, nil
		}
		l.opts.Logger.Info("game selected", "game", id)
		l.game = NewModel(game, l.config, l.opts)
		l.screen = screenGame
		return l, l.game.Init()
	}
	return l, cmd
}

func (l Launcher) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := l.game.Update(msg)
	l.game = next.(Model)

	switch {
	case l.game.IsQuitting():
		l.quitting = true
		return l, tea.Quit
	case l.game.Done():
		l.screen = screenMenu
		return l, nil
	}
	return l, cmd
}

func (l Launcher) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := l.scores.Update(msg)
	l.scores = next.(ScoreboardModel)

	switch {
	case l.scores.IsQuitting():
		l.quitting = true
		return l, tea.Quit
	case l.scores.IsGoingBack():
		l.screen = screenMenu
		return l, nil
	}
	return l, cmd
}

// View renders the active screen.
func (l Launcher) View() string {
	if l.quitting {
		return ""
	}
	switch l.screen {
	case screenGame:
		return l.game.View()
	case screenScores:
		return l.scores.View()
	default:
		return l.menu.View()
	}
}

// RunLauncher runs the launcher on the local terminal.
func RunLauncher(cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(NewLauncher(cfg, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
