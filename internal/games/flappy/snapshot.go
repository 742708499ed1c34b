package flappy

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/sim"
)

// Snapshot captures the game state for determinism testing.
// Positions and speeds are scaled by 1000 and rounded.
type Snapshot struct {
	Tick   uint64
	BirdY  int
	BirdVY int
	Pipes  int // Live pipe halves
	FirstX int // Left edge of the oldest pipe
	Alive  bool
}

// Snapshot returns the current game snapshot.
func (r *Rules) Snapshot() Snapshot {
	s := Snapshot{Tick: r.tick}
	if r.world == nil {
		return s
	}
	s.BirdY = scaled(r.bird.Pos.Y)
	s.BirdVY = scaled(r.bird.Vel.Y)
	s.Alive = !r.bird.Dead
	s.Pipes = r.world.Count(sim.KindPipe)
	if p := r.world.First(sim.KindPipe); p != nil {
		s.FirstX = scaled(p.Pos.X)
	}
	return s
}

func scaled(v float64) int {
	return int(math.Round(v * 1000))
}
