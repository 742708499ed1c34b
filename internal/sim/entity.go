// Package sim is the fixed-tick entity simulation shared by every game:
// tagged entities, one-tick motion integration with per-kind boundary
// policies, and a table-driven collision resolver.
package sim

import (
	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Kind tags what an entity is. Games attach behavior through rule tables
// keyed by kind rather than through per-type methods.
type Kind uint8

const (
	KindBall Kind = iota
	KindPaddle
	KindPipe
	KindBrick
	KindBullet
	KindEnemy
	KindSegment
	KindPowerUp
	KindBird
	KindShip
	KindFood
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBall:
		return "ball"
	case KindPaddle:
		return "paddle"
	case KindPipe:
		return "pipe"
	case KindBrick:
		return "brick"
	case KindBullet:
		return "bullet"
	case KindEnemy:
		return "enemy"
	case KindSegment:
		return "segment"
	case KindPowerUp:
		return "power-up"
	case KindBird:
		return "bird"
	case KindShip:
		return "ship"
	case KindFood:
		return "food"
	default:
		return "unknown"
	}
}

// Owner sides.
const (
	OwnerPlayer   = 0
	OwnerOpponent = 1
)

// Entity is a positioned, sized actor. Pos is the top-left corner.
type Entity struct {
	Kind Kind
	Pos  core.Vec
	Size core.Vec
	Vel  core.Vec
	Prev core.Vec // Pos before the most recent Step

	MaxSpeed float64 // 0 means unbounded

	HP     int  // Hit points; Hit breaks the entity at zero
	Points int  // Score awarded when broken
	Solid  bool // Hit never damages it

	Cooldown int // Ticks until the entity may act again
	Grace    int // Ticks of invulnerability left

	Attached bool // Step leaves attached entities where they are
	Owner    int  // OwnerPlayer or OwnerOpponent
	Variant  int  // Game-specific subtype
	Marked   bool // Game-specific one-shot flag
	Age      int  // Ticks since spawn
	Dead     bool
}

// NewEntity creates an entity with a non-negative size and one hit point.
func NewEntity(kind Kind, x, y, w, h float64) *Entity {
	return &Entity{
		Kind: kind,
		Pos:  core.Vec{X: x, Y: y},
		Prev: core.Vec{X: x, Y: y},
		Size: core.Vec{X: max(w, 0), Y: max(h, 0)},
		HP:   1,
	}
}

// Box returns the entity's bounding box.
func (e *Entity) Box() core.Box {
	return core.Box{X: e.Pos.X, Y: e.Pos.Y, W: e.Size.X, H: e.Size.Y}
}

// PrevBox returns the bounding box at the pre-step position.
func (e *Entity) PrevBox() core.Box {
	return core.Box{X: e.Prev.X, Y: e.Prev.Y, W: e.Size.X, H: e.Size.Y}
}

// Center returns the center point of the entity.
func (e *Entity) Center() core.Vec {
	return e.Box().Center()
}

// SetCenter moves the entity so its center lies at c.
func (e *Entity) SetCenter(c core.Vec) {
	e.Pos = core.Vec{X: c.X - e.Size.X/2, Y: c.Y - e.Size.Y/2}
}

// Resize changes the width keeping the horizontal center fixed.
func (e *Entity) Resize(w float64) {
	c := e.Center()
	e.Size.X = max(w, 0)
	e.Pos.X = c.X - e.Size.X/2
}

// Speed returns the magnitude of the velocity.
func (e *Entity) Speed() float64 {
	return e.Vel.Len()
}

// ClampSpeed scales the velocity down to MaxSpeed, keeping its direction.
func (e *Entity) ClampSpeed() {
	if e.MaxSpeed <= 0 {
		return
	}
	if s := e.Speed(); s > e.MaxSpeed {
		e.Vel = e.Vel.Scale(e.MaxSpeed / s)
	}
}

// Hit removes damage hit points. It reports broken with the entity's point
// value once HP reaches zero, and (false, 0) while HP remains. Solid
// entities take no damage.
func (e *Entity) Hit(damage int) (broken bool, points int) {
	if e.Solid {
		return false, 0
	}
	e.HP -= damage
	if e.HP <= 0 {
		return true, e.Points
	}
	return false, 0
}

// Kill marks the entity for removal at the next Sweep.
func (e *Entity) Kill() {
	e.Dead = true
}
