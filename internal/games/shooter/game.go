// Package shooter implements a vertical space shooter: hold the bottom row
// against waves of descending enemies.
package shooter

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
const Title = "Space Shooter"

// EnemyType is stored in the entity Variant.
type EnemyType int

const (
	EnemyBasic EnemyType = iota
	EnemyZigzag
	EnemyFast
	enemyTypes
)

var enemyPoints = [enemyTypes]int{10, 15, 20}

// String returns the enemy type name.
func (t EnemyType) String() string {
	switch t {
	case EnemyBasic:
		return "basic"
	case EnemyZigzag:
		return "zigzag"
	case EnemyFast:
		return "fast"
	default:
		return "unknown"
	}
}

// Rules implements session.Rules for the shooter.
type Rules struct {
	cfg  config.ShooterConfig
	rng  *rand.Rand
	tick uint64

	world    *sim.World
	resolver *sim.Resolver
	ship     *sim.Entity

	wave       int
	maxEnemies int
	sinceSpawn int
	sinceWave  int
	waveTicks  int
	graceTicks int
}

// NewRules creates shooter rules with the given tuning.
func NewRules(cfg config.ShooterConfig) *Rules {
	return &Rules{cfg: cfg}
}

// New creates a shooter session using the default config search order.
func New() *session.Controller {
	cfg, _ := config.LoadShooter("")
	return session.New("shooter", NewRules(cfg), session.Options{})
}

func init() {
	registry.Register("shooter", func() registry.Game {
		return New()
	})
}

// Title returns the leaderboard title.
func (r *Rules) Title() string { return Title }

// World returns the entity world, nil before the first setup.
func (r *Rules) World() *sim.World { return r.world }

// Configure loads tuning from path and applies the preset.
func (r *Rules) Configure(path string, preset config.DifficultyPreset) error {
	cfg, err := config.LoadShooter(path)
	if err != nil {
		return err
	}
	config.ApplyShooterPreset(&cfg, preset)
	r.cfg = cfg
	return nil
}

// Setup places the ship on the bottom row with an empty sky.
func (r *Rules) Setup(cfg core.RuntimeConfig) session.Profile {
	field := session.Field(cfg)
	ship := r.cfg.Ship

	r.rng = rand.New(rand.NewSource(cfg.Seed))
	r.tick = 0
	r.wave = 1
	r.maxEnemies = r.cfg.Enemies.Count
	r.sinceSpawn = 0
	r.sinceWave = 0
	r.waveTicks = cfg.Ticks(r.cfg.Waves.Seconds)
	r.graceTicks = cfg.Ticks(ship.Grace)

	r.world = sim.NewWorld(field, map[sim.Kind]sim.Motion{
		sim.KindShip:   {Edges: sim.Edges{Left: sim.PolicyClip, Right: sim.PolicyClip}},
		sim.KindBullet: {Edges: sim.Edges{Top: sim.PolicyExit}},
		sim.KindEnemy:  {Edges: sim.Edges{Left: sim.PolicyReflect, Right: sim.PolicyReflect, Bottom: sim.PolicyExit}},
	})
	r.resolver = sim.NewResolver(
		sim.Rule{Mover: sim.KindBullet, Target: sim.KindEnemy, Damage: 1, ConsumeMover: true},
		sim.Rule{Mover: sim.KindEnemy, Target: sim.KindShip, Fatal: true},
	)

	x := (field.W - ship.Width) / 2
	y := field.H - ship.Height - 1
	r.ship = r.world.Spawn(sim.NewEntity(sim.KindShip, x, y, ship.Width, ship.Height))

	return session.Profile{Lives: ship.Lives, Level: 1}
}

// Tick moves the ship, fires, advances enemies and settles hits.
func (r *Rules) Tick(st core.GameState, in core.InputFrame) session.Outcome {
	r.tick++
	var out session.Outcome

	r.ship.Vel.X = in.Axis(core.ActionLeft, core.ActionRight) * r.cfg.Ship.Speed
	if in.Has(core.ActionShoot) && r.ship.Cooldown == 0 {
		r.fire()
	}

	r.sinceSpawn++
	if r.sinceSpawn >= r.cfg.Enemies.SpawnEvery && r.world.Count(sim.KindEnemy) < r.maxEnemies {
		r.sinceSpawn = 0
		r.spawnEnemy()
	}
	r.zigzag()

	for _, c := range sim.Step(r.world) {
		if c.Entity.Kind == sim.KindEnemy && c.Policy == sim.PolicyExit {
			out.ScoreDelta -= r.cfg.Enemies.MissPenalty
		}
	}

	res := r.resolver.Resolve(r.world)
	out.ScoreDelta += res.ScoreDelta
	for _, ev := range res.Fatal {
		if r.ship.Grace > 0 {
			continue
		}
		out.LivesLost++
		r.ship.Grace = r.graceTicks
		ev.Mover.Kill()
	}
	r.world.Sweep()

	r.sinceWave++
	if r.sinceWave >= r.waveTicks {
		r.sinceWave = 0
		r.wave++
		r.maxEnemies += r.cfg.Waves.Growth
		out.LevelUp++
		out.ScoreDelta += r.wave * r.cfg.Waves.Bonus
	}
	return out
}

// fire spawns a bullet from the ship's nose and starts the cooldown.
func (r *Rules) fire() {
	b := r.cfg.Bullets
	c := r.ship.Center()
	bullet := r.world.Spawn(sim.NewEntity(sim.KindBullet, c.X-b.Width/2, r.ship.Pos.Y-b.Height, b.Width, b.Height))
	bullet.Vel.Y = -b.Speed
	r.ship.Cooldown = r.cfg.Ship.Cooldown
}

// spawnEnemy drops a random enemy type at a random column of the top row.
func (r *Rules) spawnEnemy() {
	ec := r.cfg.Enemies
	kind := EnemyType(r.rng.Intn(int(enemyTypes)))
	w, h := ec.Width, ec.Height
	speed := ec.Speed + r.rng.Float64()*ec.Speed/2
	if kind == EnemyFast {
		speed *= 1.5
		w, h = w*0.8, h*0.8
	}

	x := r.rng.Float64() * max(r.world.Field.W-w, 0)
	e := r.world.Spawn(sim.NewEntity(sim.KindEnemy, x, 0, w, h))
	e.Variant = int(kind)
	e.Points = enemyPoints[kind]
	e.Vel.Y = speed
	if kind == EnemyZigzag {
		e.Vel.X = ec.ZigzagSpeed
		if r.rng.Intn(2) == 0 {
			e.Vel.X = -e.Vel.X
		}
	}
}

// zigzag turns zigzag enemies around on their flip period. Side walls also
// turn them, through the reflect policy.
func (r *Rules) zigzag() {
	flip := r.cfg.Enemies.ZigzagFlip
	if flip <= 0 {
		return
	}
	for _, e := range r.world.Of(sim.KindEnemy) {
		if EnemyType(e.Variant) == EnemyZigzag && e.Age > 0 && e.Age%flip == 0 {
			e.Vel.X = -e.Vel.X
		}
	}
}

// Wave returns the current wave number.
func (r *Rules) Wave() int { return r.wave }

// Glyph draws each enemy type differently.
func (r *Rules) Glyph(e *sim.Entity) (rune, bool) {
	if e.Kind != sim.KindEnemy {
		return 0, false
	}
	switch EnemyType(e.Variant) {
	case EnemyZigzag:
		return '◆', true
	case EnemyFast:
		return 'V', true
	default:
		return 'W', true
	}
}

// Caption shows the number of enemies on screen.
func (r *Rules) Caption() string {
	if r.world == nil {
		return ""
	}
	return fmt.Sprintf("Enemies %d/%d", r.world.Count(sim.KindEnemy), r.maxEnemies)
}
