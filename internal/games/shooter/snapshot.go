package shooter

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/sim"
)

// Snapshot captures the game state for determinism testing. Positions are
// scaled by 1000 and rounded.
type Snapshot struct {
	Tick       uint64
	Wave       int
	MaxEnemies int
	Enemies    int
	Bullets    int
	ShipX      int
	Grace      int
	Cooldown   int
	EnemyX     int // Oldest live enemy
	EnemyY     int
	EnemyType  int
}

// Snapshot returns the current game snapshot.
func (r *Rules) Snapshot() Snapshot {
	s := Snapshot{Tick: r.tick, Wave: r.wave, MaxEnemies: r.maxEnemies}
	if r.world == nil {
		return s
	}
	s.Enemies = r.world.Count(sim.KindEnemy)
	s.Bullets = r.world.Count(sim.KindBullet)
	s.ShipX = scaled(r.ship.Pos.X)
	s.Grace = r.ship.Grace
	s.Cooldown = r.ship.Cooldown
	if e := r.world.First(sim.KindEnemy); e != nil {
		s.EnemyX = scaled(e.Pos.X)
		s.EnemyY = scaled(e.Pos.Y)
		s.EnemyType = e.Variant
	}
	return s
}

func scaled(v float64) int {
	return int(math.Round(v * 1000))
}
