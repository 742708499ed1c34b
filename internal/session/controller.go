// Package session drives one mini-game through its lifecycle:
// Menu -> Active <-> Paused -> Over -> (Menu | Restart -> Active).
// Game-specific behavior lives in a Rules value; the controller owns the
// session state and is the only caller of Rules.Tick.
package session

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/sim"
	"github.com/vovakirdan/retro-arcade/internal/theme"
)

// Profile is what a fresh setup reports about the session.
type Profile struct {
	Lives int // Starting lives; 0 for games without lives
	Level int // Starting level; values below 1 mean 1
}

// Outcome is what one rules tick changed.
type Outcome struct {
	ScoreDelta  int
	LivesLost   int
	LivesGained int
	LevelUp     int
	Over        bool
}

// Rules is one game's strategy over the shared simulation.
type Rules interface {
	Title() string
	Setup(cfg core.RuntimeConfig) Profile
	Tick(st core.GameState, in core.InputFrame) Outcome
	World() *sim.World
}

// Captioner is implemented by rules that add a line to the HUD.
type Captioner interface {
	Caption() string
}

// Glypher is implemented by rules that pick their own glyph for an entity.
type Glypher interface {
	Glyph(e *sim.Entity) (rune, bool)
}

// Configurer is implemented by rules that load tuning from a config file
// and a difficulty preset. An empty path uses the default search order.
type Configurer interface {
	Configure(path string, preset config.DifficultyPreset) error
}

// ScoreStore is the leaderboard seen by a session. Implementations absorb
// their own persistence errors.
type ScoreStore interface {
	HighScore(title string) int
	AddScore(title string, score int) []int
}

// Options are the per-session collaborators.
type Options struct {
	Store  ScoreStore // May be nil
	Theme  theme.Theme
	Logger *log.Logger
}

// Controller implements registry.Game on top of a Rules value.
type Controller struct {
	id     string
	rules  Rules
	opts   Options
	cfg    core.RuntimeConfig
	state  core.GameState
	runs   int
	exited bool
	record bool // Last game over set a new high score
}

// New creates a controller in the menu state.
func New(id string, rules Rules, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	c := &Controller{id: id, rules: rules, opts: opts, cfg: core.DefaultConfig()}
	c.state.Phase = core.PhaseMenu
	return c
}

// ID returns the registry id.
func (c *Controller) ID() string { return c.id }

// Title returns the leaderboard title.
func (c *Controller) Title() string { return c.rules.Title() }

// Rules returns the underlying game rules.
func (c *Controller) Rules() Rules { return c.rules }

// SetOptions replaces the session collaborators.
func (c *Controller) SetOptions(opts Options) {
	if opts.Logger == nil {
		opts.Logger = c.opts.Logger
	}
	c.opts = opts
}

// Configure forwards to the rules when they accept tuning. It must be
// called before the first game starts.
func (c *Controller) Configure(path string, preset config.DifficultyPreset) error {
	cf, ok := c.rules.(Configurer)
	if !ok {
		return nil
	}
	if err := cf.Configure(path, preset); err != nil {
		return fmt.Errorf("session: configure %s: %w", c.id, err)
	}
	c.opts.Logger.Debug("session configured", "game", c.id, "config", path, "difficulty", preset)
	return nil
}

// Reset stores the runtime config and returns to the menu state.
func (c *Controller) Reset(cfg core.RuntimeConfig) {
	c.cfg = cfg
	c.runs = 0
	c.exited = false
	c.toMenu()
}

// State returns the current session state.
func (c *Controller) State() core.GameState {
	return c.state
}

// Exited reports whether the player asked to leave this game.
func (c *Controller) Exited() bool {
	return c.exited
}

// SplitKeys reports whether the rules want the two-player key layout.
func (c *Controller) SplitKeys() bool {
	s, ok := c.rules.(interface{ SplitKeys() bool })
	return ok && s.SplitKeys()
}

// NewRecord reports whether the last game over set a new high score.
func (c *Controller) NewRecord() bool {
	return c.record
}

// Step applies one input frame. Signals that do not apply to the current
// phase are ignored.
func (c *Controller) Step(in core.InputFrame) core.StepResult {
	switch c.state.Phase {
	case core.PhaseMenu:
		switch {
		case in.Has(core.ActionConfirm), in.Has(core.ActionLaunch):
			c.start()
		case in.Has(core.ActionBack):
			c.exited = true
		}

	case core.PhaseActive:
		if in.Has(core.ActionPause) {
			c.setPhase(core.PhasePaused)
			break
		}
		c.tick(in)

	case core.PhasePaused:
		switch {
		case in.Has(core.ActionPause):
			c.setPhase(core.PhaseActive)
		case in.Has(core.ActionBack):
			c.leave()
		}

	case core.PhaseOver:
		switch {
		case in.Has(core.ActionRestart):
			c.start()
		case in.Has(core.ActionBack):
			c.leave()
		}
	}
	return core.StepResult{State: c.state}
}

func (c *Controller) start() {
	cfg := c.cfg
	cfg.Seed += int64(c.runs)
	c.runs++

	p := c.rules.Setup(cfg)
	c.state = core.GameState{
		Lives:    p.Lives,
		HasLives: p.Lives > 0,
		Level:    max(p.Level, 1),
	}
	if c.opts.Store != nil {
		c.state.HighScore = c.opts.Store.HighScore(c.rules.Title())
	}
	c.record = false
	c.setPhase(core.PhaseActive)
}

func (c *Controller) tick(in core.InputFrame) {
	out := c.rules.Tick(c.state, in)
	c.state.Ticks++

	c.state.Score = max(c.state.Score+out.ScoreDelta, 0)
	c.state.Level += out.LevelUp

	over := out.Over
	if c.state.HasLives {
		c.state.Lives += out.LivesGained - out.LivesLost
		if c.state.Lives <= 0 {
			c.state.Lives = 0
			over = true
		}
	}
	if over {
		c.setPhase(core.PhaseOver)
		c.recordScore()
	}
}

// recordScore writes the final score when it beats the stored best.
func (c *Controller) recordScore() {
	title := c.rules.Title()
	score := c.state.Score
	if c.opts.Store == nil || score <= 0 {
		return
	}
	if best := c.opts.Store.HighScore(title); score <= best {
		return
	}
	c.opts.Store.AddScore(title, score)
	c.state.HighScore = score
	c.record = true
	c.opts.Logger.Info("new high score", "game", c.id, "score", score)
}

func (c *Controller) leave() {
	c.exited = true
	c.toMenu()
}

func (c *Controller) toMenu() {
	if w := c.rules.World(); w != nil {
		w.Clear()
	}
	hs := 0
	if c.opts.Store != nil {
		hs = c.opts.Store.HighScore(c.rules.Title())
	}
	c.state = core.GameState{HighScore: hs}
	c.setPhase(core.PhaseMenu)
}

func (c *Controller) setPhase(p core.Phase) {
	if c.state.Phase != p {
		c.opts.Logger.Debug("session phase", "game", c.id, "from", c.state.Phase, "to", p)
	}
	c.state.Phase = p
	c.state.Paused = p == core.PhasePaused
	c.state.GameOver = p == core.PhaseOver
}
