package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// moved places an entity at pos having come from prev.
func moved(e *Entity, prev, pos, vel core.Vec) *Entity {
	e.Prev = prev
	e.Pos = pos
	e.Vel = vel
	return e
}

func TestDetectEntrySide(t *testing.T) {
	brick := NewEntity(KindBrick, 50, 50, 20, 10)

	tests := []struct {
		name      string
		prev, pos core.Vec
		vel       core.Vec
		side      Side
		wantVel   core.Vec
		wantPos   core.Vec
	}{
		{
			name:    "from below",
			prev:    core.Vec{X: 55, Y: 61},
			pos:     core.Vec{X: 57, Y: 59},
			vel:     core.Vec{X: 2, Y: -2},
			side:    SideBottom,
			wantVel: core.Vec{X: 2, Y: 2},
			wantPos: core.Vec{X: 57, Y: 61},
		},
		{
			name:    "from the left",
			prev:    core.Vec{X: 47, Y: 54},
			pos:     core.Vec{X: 49, Y: 53},
			vel:     core.Vec{X: 2, Y: -1},
			side:    SideLeft,
			wantVel: core.Vec{X: -2, Y: -1},
			wantPos: core.Vec{X: 47, Y: 53},
		},
		{
			name:    "straight down",
			prev:    core.Vec{X: 68, Y: 46},
			pos:     core.Vec{X: 68, Y: 49},
			vel:     core.Vec{Y: 3},
			side:    SideTop,
			wantVel: core.Vec{Y: -3},
			wantPos: core.Vec{X: 68, Y: 46},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ball := moved(NewEntity(KindBall, 0, 0, 2, 2), tc.prev, tc.pos, tc.vel)

			ev, ok := Detect(ball, brick)
			require.True(t, ok)
			assert.Equal(t, tc.side, ev.Side)

			Reflect(ev)
			assert.Equal(t, tc.wantVel, ball.Vel)
			assert.Equal(t, tc.wantPos, ball.Pos)
		})
	}
}

func TestDetectNoOverlap(t *testing.T) {
	a := NewEntity(KindBall, 0, 0, 2, 2)
	b := NewEntity(KindBrick, 2, 0, 2, 2)
	_, ok := Detect(a, b)
	assert.False(t, ok, "touching edges are not a collision")
}

func TestResolverOneContactPerMover(t *testing.T) {
	w := testWorld(nil)
	left := w.Spawn(NewEntity(KindBrick, 0, 0, 10, 5))
	left.Points = 30
	right := w.Spawn(NewEntity(KindBrick, 10, 0, 10, 5))
	right.Points = 30

	// Ball sits exactly on the junction of both bricks.
	ball := w.Spawn(moved(NewEntity(KindBall, 0, 0, 2, 2),
		core.Vec{X: 9, Y: 7}, core.Vec{X: 9, Y: 4}, core.Vec{Y: -3}))

	r := NewResolver(Rule{Mover: KindBall, Target: KindBrick, Response: ResponseBounce, Damage: 1})
	res := r.Resolve(w)

	require.Len(t, res.Removed, 1)
	assert.Same(t, left, res.Removed[0], "first brick in spawn order wins")
	assert.False(t, right.Dead)
	assert.Equal(t, 30, res.ScoreDelta)
	assert.Len(t, res.Contacts, 1)
	assert.Equal(t, 3.0, ball.Vel.Y)
}

func TestResolverMultiHitBrick(t *testing.T) {
	w := testWorld(nil)
	brick := w.Spawn(NewEntity(KindBrick, 0, 0, 10, 5))
	brick.HP = 2
	brick.Points = 50

	r := NewResolver(Rule{Mover: KindBall, Target: KindBrick, Response: ResponseBounce, Damage: 1})
	strike := func() Result {
		w.Spawn(moved(NewEntity(KindBall, 0, 0, 2, 2),
			core.Vec{X: 4, Y: 7}, core.Vec{X: 4, Y: 4}, core.Vec{Y: -3}))
		res := r.Resolve(w)
		w.Sweep()
		for _, b := range w.Of(KindBall) {
			b.Kill()
		}
		w.Sweep()
		return res
	}

	first := strike()
	assert.Equal(t, 0, first.ScoreDelta)
	assert.Empty(t, first.Removed)
	assert.False(t, first.Contacts[0].Broken)
	assert.Equal(t, 1, w.Count(KindBrick), "brick survives the first hit")

	second := strike()
	assert.Equal(t, 50, second.ScoreDelta)
	assert.True(t, second.Contacts[0].Broken)
	assert.Equal(t, 0, w.Count(KindBrick))
}

func TestHit(t *testing.T) {
	e := NewEntity(KindBrick, 0, 0, 1, 1)
	e.HP = 2
	e.Points = 20

	broken, pts := e.Hit(1)
	assert.False(t, broken)
	assert.Equal(t, 0, pts)

	broken, pts = e.Hit(1)
	assert.True(t, broken)
	assert.Equal(t, 20, pts)
}

func TestHitSolid(t *testing.T) {
	e := NewEntity(KindBrick, 0, 0, 1, 1)
	e.Solid = true
	e.Points = 50

	for range 10 {
		broken, pts := e.Hit(1)
		assert.False(t, broken)
		assert.Equal(t, 0, pts)
	}
	assert.Equal(t, 1, e.HP, "solid entities keep their hit points")
}

func TestPaddleBounceOffset(t *testing.T) {
	params := Paddle{Orientation: Horizontal, MaxBias: 7, MinAway: 3}

	// Paddle center x=100, width 40; ball center at x=110.
	paddle := NewEntity(KindPaddle, 80, 200, 40, 5)
	ball := moved(NewEntity(KindBall, 0, 0, 4, 4),
		core.Vec{X: 108, Y: 193}, core.Vec{X: 108, Y: 198}, core.Vec{X: -1, Y: 5})

	w := testWorld(nil)
	w.Spawn(paddle)
	w.Spawn(ball)
	res := NewResolver(Rule{Mover: KindBall, Target: KindPaddle, Response: ResponsePaddle, Paddle: params, Approach: true}).Resolve(w)

	require.Len(t, res.Contacts, 1)
	assert.Equal(t, SideTop, res.Contacts[0].Side)
	assert.InDelta(t, 0.5*params.MaxBias, ball.Vel.X, 1e-9)
	assert.Less(t, ball.Vel.Y, 0.0, "ball leaves upward")
	assert.GreaterOrEqual(t, -ball.Vel.Y, params.MinAway)
	assert.Equal(t, paddle.Pos.Y-ball.Size.Y, ball.Pos.Y, "ball rests on the paddle face")
}

func TestPaddleBounceMinimumAway(t *testing.T) {
	params := Paddle{Orientation: Horizontal, MaxBias: 7, MinAway: 3}
	paddle := NewEntity(KindPaddle, 80, 200, 40, 5)
	ball := moved(NewEntity(KindBall, 0, 0, 4, 4),
		core.Vec{X: 78, Y: 196}, core.Vec{X: 78, Y: 197}, core.Vec{Y: 1})

	PaddleBounce(ball, paddle, params)

	assert.Equal(t, -3.0, ball.Vel.Y)
	assert.Equal(t, -7.0, ball.Vel.X, "edge strike saturates at max bias")
}

func TestPaddleBounceFastBallKeepsBias(t *testing.T) {
	params := Paddle{Orientation: Horizontal, MaxBias: 7, MinAway: 3}
	paddle := NewEntity(KindPaddle, 80, 200, 40, 5)
	ball := moved(NewEntity(KindBall, 0, 0, 4, 4),
		core.Vec{X: 108, Y: 188.5}, core.Vec{X: 108, Y: 198}, core.Vec{Y: 9.5})
	ball.MaxSpeed = 10

	PaddleBounce(ball, paddle, params)

	assert.InDelta(t, 0.5*params.MaxBias, ball.Vel.X, 1e-9, "offset bias survives the speed cap")
	assert.Less(t, ball.Vel.Y, 0.0)
	assert.LessOrEqual(t, ball.Speed(), ball.MaxSpeed+1e-9)
	assert.GreaterOrEqual(t, -ball.Vel.Y, params.MinAway)
}

func TestPaddleBounceBiasCappedByMaxSpeed(t *testing.T) {
	params := Paddle{Orientation: Horizontal, MaxBias: 7, MinAway: 1}
	paddle := NewEntity(KindPaddle, 80, 200, 40, 5)
	ball := moved(NewEntity(KindBall, 0, 0, 4, 4),
		core.Vec{X: 118, Y: 194}, core.Vec{X: 118, Y: 198}, core.Vec{Y: 4})
	ball.MaxSpeed = 5

	PaddleBounce(ball, paddle, params)

	assert.Equal(t, 5.0, ball.Vel.X, "long axis alone is capped at MaxSpeed")
	assert.Equal(t, -1.0, ball.Vel.Y, "away speed keeps its floor")
}

func TestPaddleBounceVertical(t *testing.T) {
	params := Paddle{Orientation: Vertical, MaxBias: 4, MinAway: 2, Boost: 1.1, BoostBelow: 15}
	paddle := NewEntity(KindPaddle, 2, 10, 1, 8)
	ball := moved(NewEntity(KindBall, 0, 0, 1, 1),
		core.Vec{X: 4, Y: 11.5}, core.Vec{X: 2.5, Y: 11.5}, core.Vec{X: -1.5})

	ev := PaddleBounce(ball, paddle, params)

	assert.Equal(t, SideRight, ev.Side)
	assert.InDelta(t, 2.2, ball.Vel.X, 1e-9, "leaving speed is floored then boosted")
	assert.InDelta(t, -2.0, ball.Vel.Y, 1e-9, "upper half deflects upward")
	assert.Equal(t, 3.0, ball.Pos.X)
}

func TestResolverApproachOnly(t *testing.T) {
	w := testWorld(nil)
	w.Spawn(NewEntity(KindPaddle, 80, 200, 40, 5))
	ball := w.Spawn(moved(NewEntity(KindBall, 0, 0, 4, 4),
		core.Vec{X: 98, Y: 203}, core.Vec{X: 98, Y: 198}, core.Vec{Y: -5}))

	rule := Rule{Mover: KindBall, Target: KindPaddle, Response: ResponsePaddle,
		Paddle: Paddle{MaxBias: 7, MinAway: 3}, Approach: true}
	res := NewResolver(rule).Resolve(w)

	assert.Empty(t, res.Contacts, "ball already leaving is ignored")
	assert.Equal(t, -5.0, ball.Vel.Y)
}

func TestResolverConsumeAndFatal(t *testing.T) {
	w := testWorld(nil)
	enemy := w.Spawn(NewEntity(KindEnemy, 10, 10, 4, 4))
	enemy.Points = 15
	bullet := w.Spawn(NewEntity(KindBullet, 11, 12, 1, 2))
	bullet.Vel = core.Vec{Y: -3}
	ship := w.Spawn(NewEntity(KindShip, 30, 30, 4, 2))
	rammer := w.Spawn(NewEntity(KindEnemy, 31, 29, 4, 4))

	r := NewResolver(
		Rule{Mover: KindBullet, Target: KindEnemy, Damage: 1, ConsumeMover: true},
		Rule{Mover: KindEnemy, Target: KindShip, ConsumeMover: true, Fatal: true},
	)
	res := r.Resolve(w)

	assert.True(t, enemy.Dead)
	assert.True(t, bullet.Dead)
	assert.True(t, rammer.Dead)
	assert.False(t, ship.Dead)
	assert.Equal(t, 15, res.ScoreDelta)
	assert.Len(t, res.Removed, 3)
	require.Len(t, res.Fatal, 1)
	assert.Same(t, ship, res.Fatal[0].Target)
	assert.Equal(t, 1, res.Fatal[0].Rule)
}

func TestTrailSelfCollision(t *testing.T) {
	trail := &Trail{Cells: []Cell{{0, 0}, {1, 0}, {2, 0}}, GrowTo: 3}

	assert.True(t, trail.Advance(Cell{1, 0}), "landing on the body is fatal")
	assert.Equal(t, []Cell{{0, 0}, {1, 0}, {2, 0}}, trail.Cells)

	assert.True(t, trail.Advance(Cell{2, 0}), "landing on the tail is fatal")

	assert.False(t, trail.Advance(Cell{0, 1}))
	assert.Equal(t, []Cell{{0, 1}, {0, 0}, {1, 0}}, trail.Cells)

	trail.Grow(1)
	assert.False(t, trail.Advance(Cell{0, 2}))
	assert.Equal(t, 4, trail.Len())
	assert.Equal(t, Cell{0, 2}, trail.Head())
}

func TestWrapCell(t *testing.T) {
	assert.Equal(t, Cell{9, 0}, WrapCell(Cell{-1, 5}, 10, 5))
	assert.Equal(t, Cell{0, 4}, WrapCell(Cell{10, -1}, 10, 5))
	assert.Equal(t, Cell{3, 2}, WrapCell(Cell{3, 2}, 10, 5))
}
