package breakout

// PickupType represents different types of power-up pickups. It is stored in
// the power-up entity's Variant.
type PickupType int

const (
	PickupExpand    PickupType = iota // Widen paddle
	PickupShrink                      // Narrow paddle
	PickupExtraLife                   // One more life
	PickupMultiball                   // Spawn extra balls
	PickupCount                       // Sentinel for counting types
)

// Glyph returns the display character for a pickup type.
func (p PickupType) Glyph() rune {
	switch p {
	case PickupExpand:
		return 'W'
	case PickupShrink:
		return 'S'
	case PickupExtraLife:
		return '♥'
	case PickupMultiball:
		return 'M'
	default:
		return '?'
	}
}

// String returns the name of the pickup type.
func (p PickupType) String() string {
	switch p {
	case PickupExpand:
		return "expand"
	case PickupShrink:
		return "shrink"
	case PickupExtraLife:
		return "extra_life"
	case PickupMultiball:
		return "multi_ball"
	default:
		return "?"
	}
}
