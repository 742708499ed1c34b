package sim

// Field is the playfield size. Coordinates run from (0, 0) at the top-left.
type Field struct {
	W, H float64
}

// Policy is what happens when an entity reaches a playfield edge.
type Policy uint8

const (
	PolicyNone    Policy = iota // Entity may leave freely
	PolicyClip                  // Clamp inside and stop on that axis
	PolicyReflect               // Clamp inside and bounce back
	PolicyDie                   // Dead as soon as any part crosses
	PolicyExit                  // Dead once fully outside
	PolicyWrap                  // Reappear on the opposite edge
)

// Edges holds a policy per playfield edge.
type Edges struct {
	Left, Right, Top, Bottom Policy
}

// AllEdges applies one policy to every edge.
func AllEdges(p Policy) Edges {
	return Edges{Left: p, Right: p, Top: p, Bottom: p}
}

// Motion is the per-kind integration profile.
type Motion struct {
	Gravity float64 // Added to Vel.Y every tick
	Growth  float64 // Fractional speed-up per tick
	Edges   Edges
}

// World owns every entity of one session.
type World struct {
	Field    Field
	Motion   map[Kind]Motion
	Entities []*Entity
}

// NewWorld creates an empty world.
func NewWorld(field Field, motion map[Kind]Motion) *World {
	if motion == nil {
		motion = make(map[Kind]Motion)
	}
	return &World{Field: field, Motion: motion}
}

// Spawn adds an entity and returns it.
func (w *World) Spawn(e *Entity) *Entity {
	w.Entities = append(w.Entities, e)
	return e
}

// Of returns the live entities of a kind in spawn order.
func (w *World) Of(kind Kind) []*Entity {
	var out []*Entity
	for _, e := range w.Entities {
		if e.Kind == kind && !e.Dead {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first live entity of a kind, or nil.
func (w *World) First(kind Kind) *Entity {
	for _, e := range w.Entities {
		if e.Kind == kind && !e.Dead {
			return e
		}
	}
	return nil
}

// Count returns the number of live entities of a kind.
func (w *World) Count(kind Kind) int {
	n := 0
	for _, e := range w.Entities {
		if e.Kind == kind && !e.Dead {
			n++
		}
	}
	return n
}

// Sweep drops dead entities and returns them.
func (w *World) Sweep() []*Entity {
	var dead []*Entity
	live := w.Entities[:0]
	for _, e := range w.Entities {
		if e.Dead {
			dead = append(dead, e)
			continue
		}
		live = append(live, e)
	}
	for i := len(live); i < len(w.Entities); i++ {
		w.Entities[i] = nil
	}
	w.Entities = live
	return dead
}

// Clear removes every entity.
func (w *World) Clear() {
	w.Entities = nil
}
