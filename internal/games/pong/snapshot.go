package pong

import "math"

// Snapshot contains the complete state of a Pong match.
// Uses primitive types only so snapshots compare with ==.
type Snapshot struct {
	Tick     uint64
	BallX    int
	BallY    int
	BallVX   int // Velocity scaled by 1000 (for precision)
	BallVY   int // Velocity scaled by 1000
	Speed    int // Scaled by 1000
	Paddle1Y int
	Paddle2Y int
	Score1   int
	Score2   int
	Winner   int // 0=none, 1=Player1, 2=Player2
	Serving  bool
}

// Snapshot returns the current match snapshot.
func (r *Rules) Snapshot() Snapshot {
	s := Snapshot{
		Tick:    r.tick,
		Score1:  r.score1,
		Score2:  r.score2,
		Winner:  r.Winner(),
		Serving: r.serveTimer > 0,
	}
	if r.ball != nil {
		s.BallX = int(math.Round(r.ball.Pos.X))
		s.BallY = int(math.Round(r.ball.Pos.Y))
		s.BallVX = scaled(r.ball.Vel.X)
		s.BallVY = scaled(r.ball.Vel.Y)
		s.Speed = scaled(r.ball.Speed())
	}
	if r.left != nil {
		s.Paddle1Y = int(math.Round(r.left.Pos.Y))
		s.Paddle2Y = int(math.Round(r.right.Pos.Y))
	}
	return s
}

func scaled(v float64) int {
	return int(math.Round(v * 1000))
}
