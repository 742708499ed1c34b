package sim

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Side is the face of the target that the mover struck.
type Side uint8

const (
	SideNone Side = iota
	SideLeft
	SideRight
	SideTop
	SideBottom
)

// Horizontal reports whether the side is the left or right face.
func (s Side) Horizontal() bool {
	return s == SideLeft || s == SideRight
}

// Event describes one resolved overlap. It lives for a single tick.
type Event struct {
	Mover  *Entity
	Target *Entity
	Side   Side
	DepthX float64
	DepthY float64
	Rule   int  // Index of the rule that matched
	Broken bool // Target was broken by damage
}

// Overlaps reports whether two entities' boxes intersect.
func Overlaps(a, b *Entity) bool {
	return a.Box().Intersects(b.Box())
}

// Detect builds the event for mover overlapping target. The struck side comes
// from the entry distance on each axis measured from the mover's pre-step
// position: the axis with the smaller entry distance is the one the mover
// came through.
func Detect(mover, target *Entity) (Event, bool) {
	if !Overlaps(mover, target) {
		return Event{}, false
	}
	dx, dy := mover.Box().Penetration(target.Box())
	ev := Event{Mover: mover, Target: target, DepthX: dx, DepthY: dy}

	ex, ey := entryDistances(mover, target)
	horizontal := math.Abs(ex) < math.Abs(ey)
	switch {
	case mover.Vel.X == 0 && mover.Vel.Y != 0:
		horizontal = false
	case mover.Vel.Y == 0 && mover.Vel.X != 0:
		horizontal = true
	}

	if horizontal {
		ev.Side = SideRight
		if mover.Vel.X > 0 {
			ev.Side = SideLeft
		}
	} else {
		ev.Side = SideBottom
		if mover.Vel.Y > 0 {
			ev.Side = SideTop
		}
	}
	return ev, true
}

func entryDistances(mover, target *Entity) (dx, dy float64) {
	prev := mover.PrevBox()
	tb := target.Box()
	if mover.Vel.X > 0 {
		dx = tb.Left() - prev.Right()
	} else {
		dx = prev.Left() - tb.Right()
	}
	if mover.Vel.Y > 0 {
		dy = tb.Top() - prev.Bottom()
	} else {
		dy = prev.Top() - tb.Bottom()
	}
	return dx, dy
}

// FirstHit returns the event for the first live target, in slice order,
// that the mover overlaps.
func FirstHit(mover *Entity, targets []*Entity) (Event, bool) {
	for _, t := range targets {
		if t == mover || t.Dead {
			continue
		}
		if ev, ok := Detect(mover, t); ok {
			return ev, true
		}
	}
	return Event{}, false
}

// Reflect flips the mover's velocity on the struck axis and puts it back at
// its pre-step coordinate on that axis.
func Reflect(ev Event) {
	m := ev.Mover
	if ev.Side.Horizontal() {
		m.Vel.X = -m.Vel.X
		m.Pos.X = m.Prev.X
		return
	}
	m.Vel.Y = -m.Vel.Y
	m.Pos.Y = m.Prev.Y
}

// Orientation is the long axis of a paddle.
type Orientation uint8

const (
	Horizontal Orientation = iota // Paddle spans X, ball leaves along Y
	Vertical                      // Paddle spans Y, ball leaves along X
)

// Paddle configures the biased paddle bounce.
type Paddle struct {
	Orientation Orientation
	MaxBias     float64 // Long-axis speed when struck at the paddle's end
	MinAway     float64 // Floor for the speed leaving the paddle
	Boost       float64 // Multiplier for the leaving speed while below BoostBelow
	BoostBelow  float64
}

// PaddleBounce sends the ball away from the paddle. The long-axis velocity is
// proportional to the strike offset from the paddle center; the leaving
// velocity always points away from the paddle and is at least MinAway.
func PaddleBounce(ball, paddle *Entity, p Paddle) Event {
	bc, pc := ball.Center(), paddle.Center()
	ev := Event{Mover: ball, Target: paddle}

	if p.Orientation == Horizontal {
		rel := offsetRatio(bc.X-pc.X, paddle.Size.X/2)
		ball.Vel.X = capAxis(rel*p.MaxBias, ball.MaxSpeed)
		up := bc.Y < pc.Y
		ball.Vel.Y = awaySpeed(ball.Vel.Y, ball.Vel.X, ball.MaxSpeed, p, up)
		if up {
			ball.Pos.Y = paddle.Pos.Y - ball.Size.Y
			ev.Side = SideTop
		} else {
			ball.Pos.Y = paddle.Pos.Y + paddle.Size.Y
			ev.Side = SideBottom
		}
	} else {
		rel := offsetRatio(bc.Y-pc.Y, paddle.Size.Y/2)
		ball.Vel.Y = capAxis(rel*p.MaxBias, ball.MaxSpeed)
		left := bc.X < pc.X
		ball.Vel.X = awaySpeed(ball.Vel.X, ball.Vel.Y, ball.MaxSpeed, p, left)
		if left {
			ball.Pos.X = paddle.Pos.X - ball.Size.X
			ev.Side = SideLeft
		} else {
			ball.Pos.X = paddle.Pos.X + paddle.Size.X
			ev.Side = SideRight
		}
	}
	return ev
}

func offsetRatio(offset, half float64) float64 {
	if half <= 0 {
		return 0
	}
	return core.ClampF(offset/half, -1, 1)
}

// capAxis limits one velocity component to ±limit. A limit of 0 means none.
func capAxis(v, limit float64) float64 {
	if limit <= 0 {
		return v
	}
	return core.ClampF(v, -limit, limit)
}

// awaySpeed is the speed leaving the paddle. With a speed cap it is trimmed
// so that together with the long-axis component it stays within the cap;
// the MinAway floor still wins so the ball never stalls on the paddle.
func awaySpeed(v, long, limit float64, p Paddle, negative bool) float64 {
	s := math.Max(math.Abs(v), p.MinAway)
	if p.Boost > 0 && s < p.BoostBelow {
		s *= p.Boost
	}
	if limit > 0 {
		room := math.Sqrt(math.Max(limit*limit-long*long, 0))
		s = math.Max(math.Min(s, room), p.MinAway)
	}
	if negative {
		return -s
	}
	return s
}

// Response is how a rule changes the mover's velocity.
type Response uint8

const (
	ResponseNone   Response = iota
	ResponseBounce          // Reflect on the struck axis
	ResponsePaddle          // Biased paddle bounce
)

// Rule is one row of a game's collision table.
type Rule struct {
	Mover  Kind
	Target Kind

	Response Response
	Paddle   Paddle

	Damage        int  // Hit points taken from the target per contact
	ConsumeMover  bool // Remove the mover on contact
	ConsumeTarget bool // Remove the target on contact regardless of HP
	Fatal         bool // Report the contact in Result.Fatal
	Approach      bool // Only resolve while the mover heads toward the target
}

// Result is what one resolver pass produced.
type Result struct {
	ScoreDelta int
	Removed    []*Entity
	Contacts   []Event
	Fatal      []Event
}

// Resolver applies a collision table to a world. Rules are scanned in
// order; each mover resolves at most one contact per pass, against the first
// target it overlaps.
type Resolver struct {
	Rules []Rule
}

// NewResolver creates a resolver from a rule table.
func NewResolver(rules ...Rule) *Resolver {
	return &Resolver{Rules: rules}
}

// Resolve runs one pass over the world.
func (r *Resolver) Resolve(w *World) Result {
	var res Result
	resolved := make(map[*Entity]bool)

	for i, rule := range r.Rules {
		targets := w.Of(rule.Target)
		for _, m := range w.Of(rule.Mover) {
			if m.Dead || resolved[m] {
				continue
			}
			ev, ok := r.firstHit(rule, m, targets)
			if !ok {
				continue
			}
			resolved[m] = true
			ev.Rule = i
			apply(rule, &ev, &res)
		}
	}
	return res
}

func (r *Resolver) firstHit(rule Rule, m *Entity, targets []*Entity) (Event, bool) {
	if !rule.Approach {
		return FirstHit(m, targets)
	}
	for _, t := range targets {
		if t == m || t.Dead || !approaching(rule, m, t) {
			continue
		}
		if ev, ok := Detect(m, t); ok {
			return ev, true
		}
	}
	return Event{}, false
}

func approaching(rule Rule, m, t *Entity) bool {
	mc, tc := m.Center(), t.Center()
	if rule.Response == ResponsePaddle {
		if rule.Paddle.Orientation == Horizontal {
			return (tc.Y-mc.Y)*m.Vel.Y > 0
		}
		return (tc.X-mc.X)*m.Vel.X > 0
	}
	return (tc.X-mc.X)*m.Vel.X+(tc.Y-mc.Y)*m.Vel.Y > 0
}

func apply(rule Rule, ev *Event, res *Result) {
	m, t := ev.Mover, ev.Target

	switch rule.Response {
	case ResponseBounce:
		Reflect(*ev)
	case ResponsePaddle:
		pe := PaddleBounce(m, t, rule.Paddle)
		ev.Side = pe.Side
	}

	if rule.Damage > 0 {
		broken, pts := t.Hit(rule.Damage)
		if broken {
			ev.Broken = true
			t.Kill()
			res.Removed = append(res.Removed, t)
			res.ScoreDelta += pts
		}
	}
	if rule.ConsumeTarget && !t.Dead {
		t.Kill()
		res.Removed = append(res.Removed, t)
	}
	if rule.ConsumeMover && !m.Dead {
		m.Kill()
		res.Removed = append(res.Removed, m)
	}
	if rule.Fatal {
		res.Fatal = append(res.Fatal, *ev)
	}
	res.Contacts = append(res.Contacts, *ev)
}
