// Package breakout implements a Breakout/Arkanoid-style brick breaker game.
package breakout

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/session"
	"github.com/vovakirdan/retro-arcade/internal/sim"
)

// Title is the display name and leaderboard key.
const Title = "Breakout"

// Collision table rows.
const (
	ruleBallPaddle = iota
	ruleBallBrick
	rulePickup
)

// Rules implements session.Rules for Breakout.
type Rules struct {
	cfg  config.BreakoutConfig
	rng  *rand.Rand
	tick uint64

	world    *sim.World
	resolver *sim.Resolver
	paddle   *sim.Entity
	grid     *Level
	layout   *Level

	level    int
	maxSpeed float64
}

// NewRules creates breakout rules with the given tuning.
func NewRules(cfg config.BreakoutConfig) *Rules {
	return &Rules{cfg: cfg}
}

// New creates a breakout session using the default config search order.
func New() *session.Controller {
	cfg, _ := config.LoadBreakout("")
	return session.New("breakout", NewRules(cfg), session.Options{})
}

func init() {
	registry.Register("breakout", func() registry.Game {
		return New()
	})
}

// Title returns the leaderboard title.
func (r *Rules) Title() string { return Title }

// World returns the entity world, nil before the first setup.
func (r *Rules) World() *sim.World { return r.world }

// Configure loads tuning from path and applies the preset.
func (r *Rules) Configure(path string, preset config.DifficultyPreset) error {
	cfg, err := config.LoadBreakout(path)
	if err != nil {
		return err
	}
	config.ApplyBreakoutPreset(&cfg, preset)
	r.cfg = cfg
	return nil
}

// Setup builds the first wall with the ball resting on the paddle.
func (r *Rules) Setup(cfg core.RuntimeConfig) session.Profile {
	field := session.Field(cfg)
	b := r.cfg.Ball

	r.rng = rand.New(rand.NewSource(cfg.Seed))
	r.tick = 0
	r.level = 1
	r.maxSpeed = b.MaxSpeed

	r.world = sim.NewWorld(field, map[sim.Kind]sim.Motion{
		sim.KindPaddle: {Edges: sim.Edges{Left: sim.PolicyClip, Right: sim.PolicyClip}},
		sim.KindBall: {
			Growth: b.Growth,
			Edges: sim.Edges{
				Left: sim.PolicyReflect, Right: sim.PolicyReflect,
				Top: sim.PolicyReflect, Bottom: sim.PolicyDie,
			},
		},
		sim.KindPowerUp: {Edges: sim.Edges{Bottom: sim.PolicyExit}},
	})

	r.resolver = sim.NewResolver(
		sim.Rule{
			Mover:    sim.KindBall,
			Target:   sim.KindPaddle,
			Response: sim.ResponsePaddle,
			Paddle: sim.Paddle{
				Orientation: sim.Horizontal,
				MaxBias:     b.MaxBias,
				MinAway:     b.MinAway,
			},
			Approach: true,
		},
		sim.Rule{Mover: sim.KindBall, Target: sim.KindBrick, Response: sim.ResponseBounce, Damage: 1},
		sim.Rule{Mover: sim.KindPowerUp, Target: sim.KindPaddle, ConsumeMover: true},
	)

	p := r.cfg.Paddle
	r.paddle = r.world.Spawn(sim.NewEntity(sim.KindPaddle, (field.W-p.Width)/2, field.H-p.Bottom-1, p.Width, 1))

	br := r.cfg.Bricks
	r.grid = GridLevel(br.Rows, br.Cols, br.HardRows)
	r.build(LevelFor(r.level, r.grid))
	r.spawnBall()

	return session.Profile{Lives: r.cfg.Gameplay.Lives, Level: r.level}
}

// build spawns the bricks of a layout, spread over the field width.
func (r *Rules) build(l *Level) {
	r.layout = l
	if l.Width == 0 {
		return
	}
	br := r.cfg.Bricks
	cellW := r.world.Field.W / float64(l.Width)
	for row, bricks := range l.Bricks {
		for col, b := range bricks {
			if b.Type == BrickEmpty {
				continue
			}
			x := float64(col)*cellW + br.Gap/2
			y := br.Top + float64(row)*br.Height
			e := r.world.Spawn(sim.NewEntity(sim.KindBrick, x, y, cellW-br.Gap, br.Height))
			e.HP = b.HP
			e.Points = b.Points
			e.Variant = int(b.Type)
			e.Solid = b.Type == BrickSolid
		}
	}
}

// spawnBall puts a new ball on the paddle, waiting for launch.
func (r *Rules) spawnBall() *sim.Entity {
	size := r.cfg.Ball.Size
	ball := r.world.Spawn(sim.NewEntity(sim.KindBall, 0, 0, size, size))
	ball.MaxSpeed = r.maxSpeed
	ball.Attached = true
	r.carryAttached()
	return ball
}

// carryAttached keeps waiting balls centered on top of the paddle.
func (r *Rules) carryAttached() {
	pc := r.paddle.Center()
	for _, ball := range r.world.Of(sim.KindBall) {
		if !ball.Attached {
			continue
		}
		ball.Pos = core.Vec{X: pc.X - ball.Size.X/2, Y: r.paddle.Pos.Y - ball.Size.Y}
		ball.Prev = ball.Pos
	}
}

// launch releases every waiting ball upward at a random horizontal side.
func (r *Rules) launch() {
	b := r.cfg.Ball
	for _, ball := range r.world.Of(sim.KindBall) {
		if !ball.Attached {
			continue
		}
		dx := b.SpeedX
		if r.rng.Intn(2) == 0 {
			dx = -dx
		}
		ball.Attached = false
		ball.Vel = core.Vec{X: dx, Y: -b.SpeedY}
	}
}

// Tick moves the paddle and balls, breaks bricks and applies pickups.
func (r *Rules) Tick(_ core.GameState, in core.InputFrame) session.Outcome {
	r.tick++
	var out session.Outcome

	r.paddle.Vel.X = in.Axis(core.ActionLeft, core.ActionRight) * r.cfg.Paddle.Speed
	if in.Has(core.ActionLaunch) {
		r.launch()
	}

	for _, c := range sim.Step(r.world) {
		if c.Entity.Kind == sim.KindBall && c.Policy == sim.PolicyReflect {
			r.jitter(c)
		}
	}
	r.carryAttached()

	res := r.resolver.Resolve(r.world)
	out.ScoreDelta += res.ScoreDelta
	for _, ev := range res.Contacts {
		switch ev.Rule {
		case ruleBallBrick:
			if ev.Broken {
				r.maybeDrop(ev.Target)
			}
		case rulePickup:
			r.apply(PickupType(ev.Mover.Variant), &out)
		}
	}
	r.world.Sweep()

	if r.world.Count(sim.KindBall) == 0 {
		out.LivesLost++
		r.spawnBall()
	}
	if r.breakable() == 0 {
		r.nextLevel(&out)
	}
	return out
}

// jitter nudges a wall bounce on the other axis so rallies do not repeat.
// The ball never leaves a wall flatter than half the paddle's minimum
// vertical speed.
func (r *Rules) jitter(c sim.Crossing) {
	ball := c.Entity
	j := (r.rng.Float64()*2 - 1) * r.cfg.Ball.Jitter
	if c.Edge == sim.EdgeTop {
		ball.Vel.X += j
	} else {
		ball.Vel.Y += j
	}
	if floor := r.cfg.Ball.MinAway / 2; math.Abs(ball.Vel.Y) < floor {
		ball.Vel.Y = math.Copysign(floor, ball.Vel.Y)
	}
	ball.ClampSpeed()
}

// maybeDrop rolls for a power-up at a broken brick.
func (r *Rules) maybeDrop(brick *sim.Entity) {
	pu := r.cfg.PowerUps
	if r.rng.Float64() >= pu.Chance {
		return
	}
	kind := PickupType(r.rng.Intn(int(PickupCount)))
	e := sim.NewEntity(sim.KindPowerUp, 0, 0, pu.Width, 1)
	e.SetCenter(brick.Center())
	e.Prev = e.Pos
	e.Vel.Y = pu.Speed
	e.Variant = int(kind)
	r.world.Spawn(e)
}

func (r *Rules) apply(kind PickupType, out *session.Outcome) {
	p := r.cfg.Paddle
	switch kind {
	case PickupExpand:
		r.resizePaddle(min(r.paddle.Size.X+p.Resize, p.MaxWidth))
	case PickupShrink:
		r.resizePaddle(max(r.paddle.Size.X-p.Resize, p.MinWidth))
	case PickupExtraLife:
		out.LivesGained++
	case PickupMultiball:
		r.multiball()
	}
}

func (r *Rules) resizePaddle(w float64) {
	r.paddle.Resize(w)
	r.paddle.Pos.X = core.ClampF(r.paddle.Pos.X, 0, max(r.world.Field.W-w, 0))
	r.carryAttached()
}

// multiball splits extra balls off the first moving ball, each turned a
// further step away from its heading. A waiting ball splits as if launched
// straight up the right side.
func (r *Rules) multiball() {
	balls := r.world.Of(sim.KindBall)
	if len(balls) == 0 {
		return
	}
	src := balls[0]
	for _, b := range balls {
		if !b.Attached {
			src = b
			break
		}
	}
	vel := src.Vel
	if src.Attached {
		vel = core.Vec{X: r.cfg.Ball.SpeedX, Y: -r.cfg.Ball.SpeedY}
	}

	for i := range r.cfg.Ball.Multiball {
		angle := r.cfg.Ball.MultiSpread * float64(i/2+1)
		if i%2 == 1 {
			angle = -angle
		}
		e := sim.NewEntity(sim.KindBall, src.Pos.X, src.Pos.Y, src.Size.X, src.Size.Y)
		e.MaxSpeed = r.maxSpeed
		e.Vel = rotate(vel, angle)
		r.world.Spawn(e)
	}
}

func rotate(v core.Vec, angle float64) core.Vec {
	sin, cos := math.Sincos(angle)
	return core.Vec{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

func (r *Rules) breakable() int {
	n := 0
	for _, b := range r.world.Of(sim.KindBrick) {
		if BrickType(b.Variant).Breakable() {
			n++
		}
	}
	return n
}

// nextLevel clears the board and builds the next wall. The ball gets
// faster, the paddle returns to its base width and the level bonus is paid.
func (r *Rules) nextLevel(out *session.Outcome) {
	r.level++
	r.maxSpeed += r.cfg.Ball.LevelSpeed
	out.LevelUp++
	out.ScoreDelta += r.level * r.cfg.Gameplay.LevelBonus

	for _, e := range r.world.Entities {
		if e.Kind != sim.KindPaddle {
			e.Kill()
		}
	}
	r.world.Sweep()

	r.resizePaddle(r.cfg.Paddle.Width)
	r.build(LevelFor(r.level, r.grid))
	r.spawnBall()
}

// Glyph shows pickup letters and marks solid bricks.
func (r *Rules) Glyph(e *sim.Entity) (rune, bool) {
	switch {
	case e.Kind == sim.KindPowerUp:
		return PickupType(e.Variant).Glyph(), true
	case e.Kind == sim.KindBrick && BrickType(e.Variant) == BrickSolid:
		return '▒', true
	}
	return 0, false
}

// Caption names the current wall.
func (r *Rules) Caption() string {
	if r.layout == nil {
		return ""
	}
	return r.layout.Name
}
