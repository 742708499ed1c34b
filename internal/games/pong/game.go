// Package pong implements a classic Pong game.
// Player 1 controls the left paddle; the right paddle is the CPU in "pong"
// and a second player in "pong_duo".
package pong

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/session"
	"github.com/vovakirdan/retro-arcade/internal/sim"
)

// Title is shared by both modes.
const Title = "Pong"

// Rules implements session.Rules for Pong.
type Rules struct {
	cfg  config.PongConfig
	duo  bool
	rng  *rand.Rand
	tick uint64

	world    *sim.World
	resolver *sim.Resolver
	left     *sim.Entity
	right    *sim.Entity
	ball     *sim.Entity

	score1     int
	score2     int
	serveTimer int // Ticks until the waiting ball is served
}

// NewRules creates pong rules. duo hands the right paddle to a second player.
func NewRules(cfg config.PongConfig, duo bool) *Rules {
	return &Rules{cfg: cfg, duo: duo}
}

// New creates a pong session against the CPU.
func New() *session.Controller {
	cfg, _ := config.LoadPong("")
	return session.New("pong", NewRules(cfg, false), session.Options{})
}

// NewDuo creates a two-player pong session.
func NewDuo() *session.Controller {
	cfg, _ := config.LoadPong("")
	return session.New("pong_duo", NewRules(cfg, true), session.Options{})
}

func init() {
	registry.Register("pong", func() registry.Game {
		return New()
	})
	registry.Register("pong_duo", func() registry.Game {
		return NewDuo()
	})
}

// Title returns the leaderboard title.
func (r *Rules) Title() string { return Title }

// World returns the entity world, nil before the first setup.
func (r *Rules) World() *sim.World { return r.world }

// SplitKeys reports whether both paddles are human.
func (r *Rules) SplitKeys() bool { return r.duo }

// Configure loads tuning from path and applies the preset.
func (r *Rules) Configure(path string, preset config.DifficultyPreset) error {
	cfg, err := config.LoadPong(path)
	if err != nil {
		return err
	}
	config.ApplyPongPreset(&cfg, preset)
	r.cfg = cfg
	return nil
}

// Setup places both paddles and serves the first ball.
func (r *Rules) Setup(cfg core.RuntimeConfig) session.Profile {
	field := session.Field(cfg)
	p, b := r.cfg.Paddles, r.cfg.Ball

	r.rng = rand.New(rand.NewSource(cfg.Seed))
	r.tick = 0
	r.score1, r.score2 = 0, 0
	r.serveTimer = 0

	r.world = sim.NewWorld(field, map[sim.Kind]sim.Motion{
		sim.KindPaddle: {Edges: sim.Edges{Top: sim.PolicyClip, Bottom: sim.PolicyClip}},
		sim.KindBall: {Edges: sim.Edges{
			Left: sim.PolicyDie, Right: sim.PolicyDie,
			Top: sim.PolicyReflect, Bottom: sim.PolicyReflect,
		}},
	})

	top := (field.H - p.Height) / 2
	r.left = r.world.Spawn(sim.NewEntity(sim.KindPaddle, p.Offset, top, p.Width, p.Height))
	r.right = r.world.Spawn(sim.NewEntity(sim.KindPaddle, field.W-p.Offset-p.Width, top, p.Width, p.Height))
	r.right.Owner = sim.OwnerOpponent

	r.resolver = sim.NewResolver(sim.Rule{
		Mover:    sim.KindBall,
		Target:   sim.KindPaddle,
		Response: sim.ResponsePaddle,
		Paddle: sim.Paddle{
			Orientation: sim.Vertical,
			MaxBias:     b.SpeedY,
			MinAway:     b.SpeedX,
			Boost:       b.Boost,
			BoostBelow:  b.BoostBelow,
		},
		Approach: true,
	})

	r.spawnBall()
	r.serve()
	return session.Profile{}
}

func (r *Rules) spawnBall() {
	b := r.cfg.Ball
	r.ball = r.world.Spawn(sim.NewEntity(sim.KindBall, 0, 0, b.Size, b.Size))
	r.ball.MaxSpeed = b.MaxSpeed
	r.ball.SetCenter(core.Vec{X: r.world.Field.W / 2, Y: r.world.Field.H / 2})
	r.ball.Prev = r.ball.Pos
	r.ball.Attached = true
}

// serve launches the waiting ball in a random diagonal.
func (r *Rules) serve() {
	b := r.cfg.Ball
	r.ball.Attached = false
	r.ball.Vel = core.Vec{X: b.SpeedX * r.randSign(), Y: b.SpeedY * r.randSign()}
}

func (r *Rules) randSign() float64 {
	if r.rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

// Tick moves the paddles and the ball and scores points.
func (r *Rules) Tick(_ core.GameState, in core.InputFrame) session.Outcome {
	r.tick++
	speed := r.cfg.Paddles.Speed

	r.left.Vel.Y = in.Axis(core.ActionUp, core.ActionDown) * speed
	if r.duo {
		r.right.Vel.Y = in.Axis(core.ActionP2Up, core.ActionP2Down) * speed
	} else {
		r.right.Vel.Y = r.cpuVelocity()
	}

	if r.serveTimer > 0 {
		r.serveTimer--
		if r.serveTimer == 0 {
			r.serve()
		}
	}

	var out session.Outcome
	for _, c := range sim.Step(r.world) {
		if c.Entity != r.ball || c.Policy != sim.PolicyDie {
			continue
		}
		if c.Edge == sim.EdgeLeft {
			r.score2++
		} else {
			r.score1++
			out.ScoreDelta++
		}
		r.world.Sweep()
		r.spawnBall()
		r.serveTimer = max(r.cfg.Gameplay.ServeDelay, 1)
	}
	r.resolver.Resolve(r.world)

	if r.score1 >= r.cfg.Gameplay.WinScore || r.score2 >= r.cfg.Gameplay.WinScore {
		out.Over = true
	}
	return out
}

// cpuVelocity chases the ball center with a random aim error each tick.
func (r *Rules) cpuVelocity() float64 {
	skill := r.cfg.CPU.Skill()
	jitter := skill.Jitter * r.world.Field.H
	target := r.ball.Center().Y + (r.rng.Float64()*2-1)*jitter

	diff := target - r.right.Center().Y
	step := r.cfg.Paddles.Speed * skill.Reaction
	return core.ClampF(diff, -step, step)
}

// Winner returns 1 or 2 once a side has reached the win score, 0 before.
func (r *Rules) Winner() int {
	switch win := r.cfg.Gameplay.WinScore; {
	case r.score1 >= win:
		return 1
	case r.score2 >= win:
		return 2
	}
	return 0
}

// Caption shows the match score.
func (r *Rules) Caption() string {
	return fmt.Sprintf("%d : %d", r.score1, r.score2)
}
