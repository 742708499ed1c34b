// Package flappy implements a Flappy Bird style game: flap through gaps in
// pipe pairs scrolling in from the right.
package flappy

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
const Title = "Flappy Bird"

// Rules implements session.Rules for Flappy Bird.
type Rules struct {
	cfg  config.FlappyConfig
	rng  *rand.Rand
	tick uint64

	world      *sim.World
	resolver   *sim.Resolver
	bird       *sim.Entity
	difficulty *config.DifficultyManager
	sinceSpawn int
	level      float64 // Last difficulty level, for the HUD
}

// NewRules creates flappy rules with the given tuning.
func NewRules(cfg config.FlappyConfig) *Rules {
	return &Rules{cfg: cfg}
}

// New creates a flappy session using the default config search order.
func New() *session.Controller {
	cfg, _ := config.LoadFlappy("")
	return session.New("flappy", NewRules(cfg), session.Options{})
}

func init() {
	registry.Register("flappy", func() registry.Game {
		return New()
	})
}

// Title returns the leaderboard title.
func (r *Rules) Title() string { return Title }

// World returns the entity world, nil before the first setup.
func (r *Rules) World() *sim.World { return r.world }

// Configure loads tuning from path and applies the preset.
func (r *Rules) Configure(path string, preset config.DifficultyPreset) error {
	cfg, err := config.LoadFlappy(path)
	if err != nil {
		return err
	}
	config.ApplyFlappyPreset(&cfg, preset)
	r.cfg = cfg
	return nil
}

// Setup puts the bird mid-field with no pipes yet; the first pair arrives
// on the first tick.
func (r *Rules) Setup(cfg core.RuntimeConfig) session.Profile {
	field := session.Field(cfg)
	ph, pl := r.cfg.Physics, r.cfg.Player

	r.rng = rand.New(rand.NewSource(cfg.Seed))
	r.tick = 0
	r.difficulty = config.NewDifficultyManager(r.cfg.Difficulty)
	r.level = r.difficulty.Level(0, 0)

	r.world = sim.NewWorld(field, map[sim.Kind]sim.Motion{
		sim.KindBird: {Gravity: ph.Gravity, Edges: sim.Edges{Top: sim.PolicyClip, Bottom: sim.PolicyDie}},
		sim.KindPipe: {Edges: sim.Edges{Left: sim.PolicyExit}},
	})
	r.resolver = sim.NewResolver(sim.Rule{Mover: sim.KindBird, Target: sim.KindPipe, Fatal: true})

	y := (field.H - float64(pl.Height)) / 2
	r.bird = r.world.Spawn(sim.NewEntity(sim.KindBird, float64(pl.X), y, float64(pl.Width), float64(pl.Height)))
	r.bird.MaxSpeed = ph.MaxFallSpeed

	r.sinceSpawn = r.cfg.Obstacles.PipeEvery
	return session.Profile{}
}

// Tick flaps, scrolls the pipes and checks for a crash.
func (r *Rules) Tick(st core.GameState, in core.InputFrame) session.Outcome {
	r.tick++
	ticks := st.Ticks

	if in.Has(core.ActionFlap) {
		r.bird.Vel.Y = r.cfg.Physics.FlapStrength
	}

	speed := r.difficulty.Speed(r.cfg.Physics.PipeSpeed, st.Score, ticks)
	r.level = r.difficulty.Level(st.Score, ticks)
	for _, p := range r.world.Of(sim.KindPipe) {
		p.Vel.X = -speed
	}

	r.sinceSpawn++
	if r.sinceSpawn >= r.difficulty.Interval(r.cfg.Obstacles.PipeEvery, st.Score, ticks) {
		r.sinceSpawn = 0
		r.spawnPair(r.difficulty.GapSize(r.cfg.Obstacles.GapSize, st.Score, ticks), speed)
	}

	var out session.Outcome
	for _, c := range sim.Step(r.world) {
		if c.Entity == r.bird && c.Policy == sim.PolicyDie {
			out.Over = true
		}
	}
	if res := r.resolver.Resolve(r.world); len(res.Fatal) > 0 {
		out.Over = true
	}
	if !out.Over {
		out.ScoreDelta = r.passed()
	}
	r.world.Sweep()
	return out
}

// Caption shows how far the difficulty has ramped.
func (r *Rules) Caption() string {
	if !r.cfg.Difficulty.Enabled {
		return ""
	}
	return fmt.Sprintf("Pace %d%%", int(r.level*100+0.5))
}
