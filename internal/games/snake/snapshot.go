package snake

// Snapshot captures the board for determinism testing.
type Snapshot struct {
	Tick     uint64
	SnakeLen int
	GrowTo   int
	HeadX    int
	HeadY    int
	Dir      Direction
	FoodX    int
	FoodY    int
}

// Snapshot returns the current board snapshot.
func (r *Rules) Snapshot() Snapshot {
	s := Snapshot{Tick: r.tick, Dir: r.direction, FoodX: r.food.X, FoodY: r.food.Y}
	if r.trail != nil {
		s.SnakeLen = r.trail.Len()
		s.GrowTo = r.trail.GrowTo
		s.HeadX = r.trail.Head().X
		s.HeadY = r.trail.Head().Y
	}
	return s
}
