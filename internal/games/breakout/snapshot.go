package breakout

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/sim"
)

// Snapshot captures the complete board state for determinism testing.
// Positions and speeds are scaled by 1000 and rounded.
type Snapshot struct {
	Tick     uint64
	Level    int
	Bricks   int // Breakable bricks left
	Balls    int
	PowerUps int
	PaddleX  int
	PaddleW  int
	BallX    int // First ball
	BallY    int
	BallVX   int
	BallVY   int
	MaxSpeed int
}

// Snapshot returns the current board snapshot.
func (r *Rules) Snapshot() Snapshot {
	s := Snapshot{Tick: r.tick, Level: r.level, MaxSpeed: scaled(r.maxSpeed)}
	if r.world == nil {
		return s
	}
	s.Bricks = r.breakable()
	s.Balls = r.world.Count(sim.KindBall)
	s.PowerUps = r.world.Count(sim.KindPowerUp)
	s.PaddleX = scaled(r.paddle.Pos.X)
	s.PaddleW = scaled(r.paddle.Size.X)
	if ball := r.world.First(sim.KindBall); ball != nil {
		s.BallX = scaled(ball.Pos.X)
		s.BallY = scaled(ball.Pos.Y)
		s.BallVX = scaled(ball.Vel.X)
		s.BallVY = scaled(ball.Vel.Y)
	}
	return s
}

func scaled(v float64) int {
	return int(math.Round(v * 1000))
}
