package flappy

import (
	"github.com/vovakirdan/retro-arcade/internal/sim"
)

// Pipe halves, stored in the entity Variant.
const (
	pipeTop = iota
	pipeBottom
)

// gapRange returns the allowed gap centers for a field of height h: at
// least one gap from either edge, and never leaving a pipe shorter than
// margin.
func gapRange(h float64, gap, margin int) (lo, hi float64) {
	g := float64(gap)
	lo = max(g, g/2+float64(margin))
	hi = min(h-g, h-g/2-float64(margin))
	if lo > hi {
		lo, hi = h/2, h/2
	}
	return lo, hi
}

// spawnPair adds a top and a bottom pipe at the right edge of the field,
// leaving a gap of the given height centered on a random row.
func (r *Rules) spawnPair(gap int, speed float64) {
	f := r.world.Field
	width := float64(r.cfg.Obstacles.PipeWidth)
	lo, hi := gapRange(f.H, gap, r.cfg.Obstacles.Margin)
	center := lo + r.rng.Float64()*(hi-lo)

	top := center - float64(gap)/2
	bottom := center + float64(gap)/2

	t := r.world.Spawn(sim.NewEntity(sim.KindPipe, f.W, 0, width, top))
	t.Variant = pipeTop
	t.Vel.X = -speed

	b := r.world.Spawn(sim.NewEntity(sim.KindPipe, f.W, bottom, width, f.H-bottom))
	b.Variant = pipeBottom
	b.Vel.X = -speed
}

// passed scores every top pipe whose right edge has cleared the bird's left
// edge. Each pair scores once.
func (r *Rules) passed() int {
	n := 0
	left := r.bird.Box().Left()
	for _, p := range r.world.Of(sim.KindPipe) {
		if p.Variant != pipeTop || p.Marked {
			continue
		}
		if p.Box().Right() < left {
			p.Marked = true
			n++
		}
	}
	return n
}
