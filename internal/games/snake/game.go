// Package snake is the classic grid snake on a wrapping board.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/session"
	"github.com/vovakirdan/retro-arcade/internal/sim"
)

// Title is the display name and leaderboard key.
const Title = "Snake"

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

var steps = [...]sim.Cell{
	DirRight: {X: 1},
	DirDown:  {Y: 1},
	DirLeft:  {X: -1},
	DirUp:    {Y: -1},
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Rules implements session.Rules for Snake.
type Rules struct {
	cfg   config.SnakeConfig
	world *sim.World
	rng   *rand.Rand

	trail      *sim.Trail
	direction  Direction
	nextDir    Direction // Buffered until the next move
	food       sim.Cell
	cols, rows int
	moveTicker int
	tick       uint64
}

// NewRules creates snake rules with the given tuning.
func NewRules(cfg config.SnakeConfig) *Rules {
	return &Rules{cfg: cfg}
}

// New creates a snake session using the default config search order.
func New() *session.Controller {
	cfg, _ := config.LoadSnake("")
	return session.New("snake", NewRules(cfg), session.Options{})
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// Title returns the leaderboard title.
func (r *Rules) Title() string { return Title }

// World returns the entity world, nil before the first setup.
func (r *Rules) World() *sim.World { return r.world }

// Configure loads tuning from path and applies the preset.
func (r *Rules) Configure(path string, preset config.DifficultyPreset) error {
	cfg, err := config.LoadSnake(path)
	if err != nil {
		return err
	}
	config.ApplySnakePreset(&cfg, preset)
	r.cfg = cfg
	return nil
}

// Setup places a fresh snake in the middle of the board.
func (r *Rules) Setup(cfg core.RuntimeConfig) session.Profile {
	field := session.Field(cfg)
	cell := max(r.cfg.Board.Cell, 1)

	r.world = sim.NewWorld(field, nil)
	r.rng = rand.New(rand.NewSource(cfg.Seed))
	r.cols = max(int(field.W)/cell, 1)
	r.rows = max(int(field.H)/cell, 1)
	r.moveTicker = 0
	r.tick = 0

	r.direction = Direction(r.rng.Intn(4))
	r.nextDir = r.direction
	r.trail = sim.NewTrail(sim.Cell{X: r.cols / 2, Y: r.rows / 2}, max(r.cfg.Gameplay.GrowTo, 1))
	r.spawnFood()
	r.sync()
	return session.Profile{}
}

// Tick steers, and moves the snake every move_every ticks.
func (r *Rules) Tick(_ core.GameState, in core.InputFrame) session.Outcome {
	r.tick++
	r.steer(in)

	r.moveTicker++
	if r.moveTicker < max(r.cfg.Board.MoveEvery, 1) {
		return session.Outcome{}
	}
	r.moveTicker = 0
	r.direction = r.nextDir

	next := sim.WrapCell(r.trail.Head().Add(steps[r.direction]), r.cols, r.rows)
	if r.trail.Advance(next) {
		return session.Outcome{Over: true}
	}

	var out session.Outcome
	if next == r.food {
		r.trail.Grow(1)
		out.ScoreDelta = r.cfg.Gameplay.FoodPoints
		r.spawnFood()
	}
	r.sync()
	return out
}

// steer buffers a turn. Reversing onto the neck is ignored.
func (r *Rules) steer(in core.InputFrame) {
	want := r.nextDir
	switch {
	case in.Has(core.ActionUp):
		want = DirUp
	case in.Has(core.ActionDown):
		want = DirDown
	case in.Has(core.ActionLeft):
		want = DirLeft
	case in.Has(core.ActionRight):
		want = DirRight
	}
	if want != r.direction.Opposite() {
		r.nextDir = want
	}
}

// spawnFood picks a random free cell. A full board scans for any gap and
// otherwise leaves the food where it is.
func (r *Rules) spawnFood() {
	total := r.cols * r.rows
	for range total * 4 {
		c := sim.Cell{X: r.rng.Intn(r.cols), Y: r.rng.Intn(r.rows)}
		if !r.trail.Contains(c) {
			r.food = c
			return
		}
	}
	for i := range total {
		c := sim.Cell{X: i % r.cols, Y: i / r.cols}
		if !r.trail.Contains(c) {
			r.food = c
			return
		}
	}
}

// sync rebuilds the entity view of the board.
func (r *Rules) sync() {
	size := float64(max(r.cfg.Board.Cell, 1))
	r.world.Clear()
	for i, c := range r.trail.Cells {
		seg := sim.NewEntity(sim.KindSegment, float64(c.X)*size, float64(c.Y)*size, size, size)
		if i == 0 {
			seg.Variant = 1
		}
		r.world.Spawn(seg)
	}
	r.world.Spawn(sim.NewEntity(sim.KindFood, float64(r.food.X)*size, float64(r.food.Y)*size, size, size))
}

// Glyph draws the head apart from the body.
func (r *Rules) Glyph(e *sim.Entity) (rune, bool) {
	if e.Kind == sim.KindSegment && e.Variant == 1 {
		return '@', true
	}
	return 0, false
}

// Caption shows the snake length.
func (r *Rules) Caption() string {
	if r.trail == nil {
		return ""
	}
	return fmt.Sprintf("Length %d", r.trail.Len())
}
