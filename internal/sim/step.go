package sim

import (
	"math"
)

// Edge names one side of the playfield.
type Edge uint8

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Crossing reports that an entity touched a reflect, die or exit edge
// during a step.
type Crossing struct {
	Entity *Entity
	Edge   Edge
	Policy Policy
}

// Step advances every live entity by one tick: timers count down, forces
// apply, position integrates and boundary policies run. Inter-entity
// collisions are left to the Resolver.
func Step(w *World) []Crossing {
	var crossings []Crossing
	for _, e := range w.Entities {
		if e.Dead {
			continue
		}
		e.Age++
		if e.Cooldown > 0 {
			e.Cooldown--
		}
		if e.Grace > 0 {
			e.Grace--
		}
		if e.Attached {
			e.Prev = e.Pos
			continue
		}

		m := w.Motion[e.Kind]
		e.Prev = e.Pos
		e.Vel.Y += m.Gravity
		if m.Growth != 0 {
			e.Vel = e.Vel.Scale(1 + m.Growth)
		}
		e.ClampSpeed()
		e.Pos = e.Pos.Add(e.Vel)

		crossings = applyEdges(w.Field, m.Edges, e, crossings)
	}
	return crossings
}

func applyEdges(f Field, edges Edges, e *Entity, out []Crossing) []Crossing {
	if edges.Left == PolicyWrap || edges.Right == PolicyWrap {
		e.Pos.X = wrap(e.Pos.X, f.W)
	}
	if edges.Top == PolicyWrap || edges.Bottom == PolicyWrap {
		e.Pos.Y = wrap(e.Pos.Y, f.H)
	}

	if e.Pos.X < 0 {
		out = applyLow(edges.Left, EdgeLeft, e, &e.Pos.X, &e.Vel.X, e.Pos.X+e.Size.X <= 0, out)
	}
	if !e.Dead && e.Pos.X+e.Size.X > f.W {
		out = applyHigh(edges.Right, EdgeRight, e, &e.Pos.X, &e.Vel.X, f.W-e.Size.X, e.Pos.X >= f.W, out)
	}
	if !e.Dead && e.Pos.Y < 0 {
		out = applyLow(edges.Top, EdgeTop, e, &e.Pos.Y, &e.Vel.Y, e.Pos.Y+e.Size.Y <= 0, out)
	}
	if !e.Dead && e.Pos.Y+e.Size.Y > f.H {
		out = applyHigh(edges.Bottom, EdgeBottom, e, &e.Pos.Y, &e.Vel.Y, f.H-e.Size.Y, e.Pos.Y >= f.H, out)
	}
	return out
}

// applyLow handles an entity past the 0 edge of one axis.
func applyLow(p Policy, edge Edge, e *Entity, pos, vel *float64, fullyOut bool, out []Crossing) []Crossing {
	switch p {
	case PolicyClip:
		*pos = 0
		if *vel < 0 {
			*vel = 0
		}
	case PolicyReflect:
		*pos = 0
		*vel = math.Abs(*vel)
		out = append(out, Crossing{Entity: e, Edge: edge, Policy: p})
	case PolicyDie:
		e.Kill()
		out = append(out, Crossing{Entity: e, Edge: edge, Policy: p})
	case PolicyExit:
		if fullyOut {
			e.Kill()
			out = append(out, Crossing{Entity: e, Edge: edge, Policy: p})
		}
	}
	return out
}

// applyHigh handles an entity past the far edge of one axis; limit is the
// largest in-bounds position.
func applyHigh(p Policy, edge Edge, e *Entity, pos, vel *float64, limit float64, fullyOut bool, out []Crossing) []Crossing {
	switch p {
	case PolicyClip:
		*pos = max(limit, 0)
		if *vel > 0 {
			*vel = 0
		}
	case PolicyReflect:
		*pos = max(limit, 0)
		*vel = -math.Abs(*vel)
		out = append(out, Crossing{Entity: e, Edge: edge, Policy: p})
	case PolicyDie:
		e.Kill()
		out = append(out, Crossing{Entity: e, Edge: edge, Policy: p})
	case PolicyExit:
		if fullyOut {
			e.Kill()
			out = append(out, Crossing{Entity: e, Edge: edge, Policy: p})
		}
	}
	return out
}

func wrap(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	return v
}
