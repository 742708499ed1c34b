package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/session"
	"github.com/vovakirdan/retro-arcade/internal/storage"
	"github.com/vovakirdan/retro-arcade/internal/theme"
)

// Options are the collaborators shared by the models of one program.
type Options struct {
	Store    *storage.Leaderboard // May be nil
	Themes   *theme.Set
	Theme    theme.Theme
	Settings *config.Settings // Nil leaves theme changes unsaved
	Logger   *log.Logger
	Renderer *Renderer
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Themes == nil {
		o.Themes = theme.NewSet()
	}
	if o.Theme.Name == "" {
		o.Theme = o.Themes.Resolve("")
	}
	if o.Renderer == nil {
		o.Renderer = NewRenderer(nil)
	}
	return o
}

// sessionOptions builds the collaborators handed to a game session.
func (o Options) sessionOptions() session.Options {
	so := session.Options{Theme: o.Theme, Logger: o.Logger}
	if o.Store != nil {
		so.Store = o.Store
	}
	return so
}

// Model is the Bubble Tea model for one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	keys       *KeyMapper
	input      *Input
	standalone bool // Quit the program when the player leaves the game
	quitting   bool
	done       bool
}

// NewModel creates a model for the given game and hands it the shared
// store, theme and logger.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	opts = opts.withDefaults()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if s, ok := game.(interface{ SetOptions(session.Options) }); ok {
		s.SetOptions(opts.sessionOptions())
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		opts:   opts,
		keys:   NewKeyMapper(registry.WantsSplitKeys(game)),
		input:  NewInput(),
	}
}

// Init resets the game to its start menu and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	actions, quit := m.keys.MapKey(msg)
	if quit {
		m.quitting = true
		return m, tea.Quit
	}
	for _, a := range actions {
		m.input.Press(a)
	}
	return m, nil
}

// handleResize resizes the screen. The playfield of a running game keeps
// its size and is drawn scaled; a game still in its menu picks up the new
// size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if m.game.State().Phase == core.PhaseMenu {
		m.game.Reset(m.config)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}

	prev := m.game.State().Phase
	st := m.game.Step(m.input.Next()).State
	if st.Phase != prev && st.Phase == core.PhaseOver {
		m.opts.Logger.Info("game over", "game", m.game.ID(), "score", st.Score, "ticks", st.Ticks)
	}

	if ex, ok := m.game.(interface{ Exited() bool }); ok && ex.Exited() {
		m.done = true
		m.input.Reset()
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current screen as plain text under
// ~/.arcade/screenshots.
func (m Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.done {
		return ""
	}
	m.game.Render(m.screen)
	return m.opts.Renderer.RenderScreen(m.screen)
}

// Done reports whether the player left the game for the launcher.
func (m Model) Done() bool {
	return m.done
}

// IsQuitting reports whether the player asked to exit the program.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run plays a single game until the player quits or leaves it.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
