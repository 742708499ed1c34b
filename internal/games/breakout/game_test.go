package breakout

import (
	"math"
	"testing"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/session"
	"github.com/vovakirdan/retro-arcade/internal/sim"
)

func newBoard(t *testing.T, seed int64) (*session.Controller, *Rules) {
	t.Helper()
	r := NewRules(config.DefaultBreakoutConfig())
	c := session.New("breakout", r, session.Options{})
	c.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	c.Step(core.FrameOf(core.ActionConfirm))
	return c, r
}

// clearBricks removes the wall and leaves one brick far from the test area
// so the level does not end.
func clearBricks(r *Rules) {
	for _, b := range r.world.Of(sim.KindBrick) {
		b.Kill()
	}
	r.world.Sweep()
	keep := r.world.Spawn(sim.NewEntity(sim.KindBrick, 70, 0, 5, 1))
	keep.Variant = int(BrickNormal)
}

// countBreakable counts the layout cells that must go to clear it.
func countBreakable(l *Level) int {
	n := 0
	for _, row := range l.Bricks {
		for _, b := range row {
			if b.Type.Breakable() {
				n++
			}
		}
	}
	return n
}

func setBall(ball *sim.Entity, pos, vel core.Vec) {
	ball.Attached = false
	ball.Pos, ball.Prev, ball.Vel = pos, pos, vel
}

func TestGameDeterminism(t *testing.T) {
	inputSequence := make([]core.InputFrame, 600)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		if i == 10 {
			inputSequence[i].Set(core.ActionLaunch)
		} else if i > 10 && i%5 < 3 {
			inputSequence[i].Set(core.ActionRight)
		} else if i > 10 {
			inputSequence[i].Set(core.ActionLeft)
		}
	}

	c1, r1 := newBoard(t, 12345)
	c2, r2 := newBoard(t, 12345)
	for _, in := range inputSequence {
		c1.Step(in)
		c2.Step(in)
	}

	if r1.Snapshot() != r2.Snapshot() {
		t.Errorf("Determinism failed:\n%+v\n%+v", r1.Snapshot(), r2.Snapshot())
	}
	if c1.State() != c2.State() {
		t.Errorf("State mismatch:\n%+v\n%+v", c1.State(), c2.State())
	}
}

func TestGameReset(t *testing.T) {
	c, r := newBoard(t, 1)

	st := c.State()
	if st.Lives != 3 || st.Level != 1 || st.Score != 0 {
		t.Errorf("unexpected start state %+v", st)
	}
	if got := r.Snapshot().Bricks; got != 50 {
		t.Errorf("opening wall has %d bricks, expected 50", got)
	}
	ball := r.world.First(sim.KindBall)
	if ball == nil || !ball.Attached {
		t.Fatal("ball should start on the paddle")
	}
	if ball.Center().X != r.paddle.Center().X || ball.Pos.Y+ball.Size.Y != r.paddle.Pos.Y {
		t.Errorf("ball should rest centered on the paddle, ball=%+v paddle=%+v", ball.Pos, r.paddle.Pos)
	}
}

func TestOpeningWallRows(t *testing.T) {
	_, r := newBoard(t, 1)

	tests := []struct {
		y      float64
		points int
		hp     int
	}{
		{2, 50, 2},
		{3, 40, 2},
		{4, 30, 1},
		{5, 20, 1},
		{6, 10, 1},
	}
	for _, tc := range tests {
		for _, b := range r.world.Of(sim.KindBrick) {
			if b.Pos.Y != tc.y {
				continue
			}
			if b.Points != tc.points || b.HP != tc.hp {
				t.Errorf("row at y=%v: points=%d hp=%d, expected %d and %d", tc.y, b.Points, b.HP, tc.points, tc.hp)
			}
		}
	}
}

func TestBallFollowsPaddleUntilLaunch(t *testing.T) {
	c, r := newBoard(t, 2)

	c.Step(core.FrameOf(core.ActionRight))
	ball := r.world.First(sim.KindBall)
	if ball.Center().X != r.paddle.Center().X {
		t.Errorf("waiting ball should move with the paddle")
	}

	c.Step(core.FrameOf(core.ActionLaunch))
	if ball.Attached {
		t.Fatal("launch should release the ball")
	}
	if ball.Vel.Y >= 0 {
		t.Errorf("ball should launch upward, vy = %v", ball.Vel.Y)
	}
	if math.Abs(math.Abs(ball.Vel.X)-0.5) > 0.01 {
		t.Errorf("ball should launch at the configured horizontal speed, vx = %v", ball.Vel.X)
	}
}

func TestWallBounceJitter(t *testing.T) {
	c, r := newBoard(t, 3)
	ball := r.world.First(sim.KindBall)
	setBall(ball, core.Vec{X: 0.2, Y: 15}, core.Vec{X: -0.5, Y: -0.4})

	c.Step(core.NewInputFrame())

	if ball.Vel.X <= 0 {
		t.Errorf("ball should reflect off the left wall, vx = %v", ball.Vel.X)
	}
	if d := math.Abs(ball.Vel.Y + 0.4); d > r.cfg.Ball.Jitter+0.001 {
		t.Errorf("jitter should stay within %v, vy = %v", r.cfg.Ball.Jitter, ball.Vel.Y)
	}
}

func TestPaddleBounceShaping(t *testing.T) {
	tests := []struct {
		name    string
		offset  float64
		wantDir float64
	}{
		{"left end", -4.5, -1},
		{"center", 0, 0},
		{"right end", 4.5, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, r := newBoard(t, 4)
			ball := r.world.First(sim.KindBall)
			pc := r.paddle.Center()
			setBall(ball, core.Vec{X: pc.X + tc.offset - 0.5, Y: r.paddle.Pos.Y - 1.2}, core.Vec{Y: 0.4})

			c.Step(core.NewInputFrame())

			if ball.Vel.Y >= 0 {
				t.Fatalf("ball should leave the paddle upward, vy = %v", ball.Vel.Y)
			}
			if math.Abs(ball.Vel.Y) < r.cfg.Ball.MinAway {
				t.Errorf("vertical speed %v below the minimum %v", ball.Vel.Y, r.cfg.Ball.MinAway)
			}
			if core.Sign(ball.Vel.X) != tc.wantDir {
				t.Errorf("vx = %v, expected sign %v", ball.Vel.X, tc.wantDir)
			}
		})
	}
}

func TestBrickMultiHit(t *testing.T) {
	c, r := newBoard(t, 5)
	clearBricks(r)
	brick := r.world.Spawn(sim.NewEntity(sim.KindBrick, 30, 10, 7, 1))
	brick.HP, brick.Points, brick.Variant = 2, 40, int(BrickHard)
	ball := r.world.First(sim.KindBall)

	setBall(ball, core.Vec{X: 33, Y: 11.2}, core.Vec{Y: -0.4})
	c.Step(core.NewInputFrame())

	if brick.Dead || brick.HP != 1 {
		t.Fatalf("first hit should leave the brick with 1 HP, dead=%v hp=%d", brick.Dead, brick.HP)
	}
	if c.State().Score != 0 {
		t.Errorf("first hit should not score, got %d", c.State().Score)
	}
	if ball.Vel.Y <= 0 {
		t.Errorf("ball should bounce down off the brick, vy = %v", ball.Vel.Y)
	}

	setBall(ball, core.Vec{X: 33, Y: 11.2}, core.Vec{Y: -0.4})
	c.Step(core.NewInputFrame())

	if !brick.Dead {
		t.Error("second hit should break the brick")
	}
	if c.State().Score != 40 {
		t.Errorf("score = %d, expected 40", c.State().Score)
	}
}

func TestJunctionRemovesOneBrick(t *testing.T) {
	c, r := newBoard(t, 6)
	clearBricks(r)
	a := r.world.Spawn(sim.NewEntity(sim.KindBrick, 30, 10, 4, 1))
	b := r.world.Spawn(sim.NewEntity(sim.KindBrick, 34, 10, 4, 1))
	ball := r.world.First(sim.KindBall)

	setBall(ball, core.Vec{X: 33.5, Y: 11.2}, core.Vec{Y: -0.4})
	c.Step(core.NewInputFrame())

	if a.Dead == b.Dead {
		t.Errorf("exactly one brick should break, a=%v b=%v", a.Dead, b.Dead)
	}
}

func TestLifeLostOnlyWhenNoBallRemains(t *testing.T) {
	c, r := newBoard(t, 7)
	clearBricks(r)
	first := r.world.First(sim.KindBall)
	second := r.world.Spawn(sim.NewEntity(sim.KindBall, 0, 0, 1, 1))

	setBall(first, core.Vec{X: 5, Y: 22.2}, core.Vec{Y: 0.5})
	setBall(second, core.Vec{X: 60, Y: 15}, core.Vec{Y: -0.1})
	c.Step(core.NewInputFrame())

	if c.State().Lives != 3 {
		t.Fatalf("a ball left in play should keep the life, lives = %d", c.State().Lives)
	}

	setBall(second, core.Vec{X: 5, Y: 22.2}, core.Vec{Y: 0.5})
	c.Step(core.NewInputFrame())

	if c.State().Lives != 2 {
		t.Errorf("losing the last ball should cost a life, lives = %d", c.State().Lives)
	}
	balls := r.world.Of(sim.KindBall)
	if len(balls) != 1 || !balls[0].Attached {
		t.Errorf("a fresh ball should wait on the paddle, balls=%d", len(balls))
	}
}

func TestGameOver(t *testing.T) {
	c, r := newBoard(t, 8)
	for i := 0; i < 3; i++ {
		setBall(r.world.First(sim.KindBall), core.Vec{X: 5, Y: 22.2}, core.Vec{Y: 0.5})
		c.Step(core.NewInputFrame())
	}

	st := c.State()
	if !st.GameOver || st.Lives != 0 {
		t.Errorf("three lost balls should end the game, state %+v", st)
	}
}

func TestPowerUps(t *testing.T) {
	tests := []struct {
		kind   PickupType
		check  func(c *session.Controller, r *Rules) bool
		expect string
	}{
		{PickupExpand, func(_ *session.Controller, r *Rules) bool { return r.paddle.Size.X == 12 }, "paddle width 12"},
		{PickupShrink, func(_ *session.Controller, r *Rules) bool { return r.paddle.Size.X == 8 }, "paddle width 8"},
		{PickupExtraLife, func(c *session.Controller, _ *Rules) bool { return c.State().Lives == 4 }, "4 lives"},
		{PickupMultiball, func(_ *session.Controller, r *Rules) bool { return r.world.Count(sim.KindBall) == 3 }, "3 balls"},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			c, r := newBoard(t, 9)
			pc := r.paddle.Center()
			pu := r.world.Spawn(sim.NewEntity(sim.KindPowerUp, pc.X-1.5, r.paddle.Pos.Y-0.2, 3, 1))
			pu.Prev = pu.Pos
			pu.Vel.Y = 0.3
			pu.Variant = int(tc.kind)

			c.Step(core.NewInputFrame())

			if !pu.Dead {
				t.Error("caught power-up should be consumed")
			}
			if !tc.check(c, r) {
				t.Errorf("expected %s after %s", tc.expect, tc.kind)
			}
		})
	}
}

func TestPaddleWidthLimits(t *testing.T) {
	_, r := newBoard(t, 10)
	var out session.Outcome
	for i := 0; i < 20; i++ {
		r.apply(PickupExpand, &out)
	}
	if r.paddle.Size.X != r.cfg.Paddle.MaxWidth {
		t.Errorf("width = %v, expected the cap %v", r.paddle.Size.X, r.cfg.Paddle.MaxWidth)
	}
	for i := 0; i < 20; i++ {
		r.apply(PickupShrink, &out)
	}
	if r.paddle.Size.X != r.cfg.Paddle.MinWidth {
		t.Errorf("width = %v, expected the floor %v", r.paddle.Size.X, r.cfg.Paddle.MinWidth)
	}
}

func TestLevelClear(t *testing.T) {
	c, r := newBoard(t, 11)
	r.resizePaddle(6)
	for _, b := range r.world.Of(sim.KindBrick) {
		b.Kill()
	}

	c.Step(core.NewInputFrame())

	st := c.State()
	if st.Level != 2 {
		t.Errorf("level = %d, expected 2", st.Level)
	}
	if st.Score != 2*r.cfg.Gameplay.LevelBonus {
		t.Errorf("score = %d, expected the level bonus %d", st.Score, 2*r.cfg.Gameplay.LevelBonus)
	}
	if r.paddle.Size.X != r.cfg.Paddle.Width {
		t.Errorf("paddle width = %v, expected reset to %v", r.paddle.Size.X, r.cfg.Paddle.Width)
	}
	if got, want := r.maxSpeed, r.cfg.Ball.MaxSpeed+r.cfg.Ball.LevelSpeed; math.Abs(got-want) > 1e-9 {
		t.Errorf("max speed = %v, expected %v", got, want)
	}
	balls := r.world.Of(sim.KindBall)
	if len(balls) != 1 || !balls[0].Attached {
		t.Error("the ball should be back on the paddle")
	}
	if r.Caption() != "Steps" || r.Snapshot().Bricks != 21 {
		t.Errorf("level 2 should be Steps with 21 bricks, got %s with %d", r.Caption(), r.Snapshot().Bricks)
	}
}

func TestSolidBricksDoNotBlockClear(t *testing.T) {
	c, r := newBoard(t, 12)
	for _, b := range r.world.Of(sim.KindBrick) {
		b.Kill()
	}
	solid := r.world.Spawn(sim.NewEntity(sim.KindBrick, 10, 10, 5, 1))
	solid.Variant = int(BrickSolid)

	c.Step(core.NewInputFrame())

	if c.State().Level != 2 {
		t.Error("a wall of solid bricks should count as cleared")
	}
}

func TestSolidBrickTakesNoDamage(t *testing.T) {
	c, r := newBoard(t, 14)
	clearBricks(r)
	r.build(ParseLevel("Wall", []string{"X"}))
	var solid *sim.Entity
	for _, b := range r.world.Of(sim.KindBrick) {
		if BrickType(b.Variant) == BrickSolid {
			solid = b
		}
	}
	if solid == nil || !solid.Solid {
		t.Fatal("layout 'X' should spawn a solid brick")
	}
	hp := solid.HP
	ball := r.world.First(sim.KindBall)

	for i := 0; i < 5; i++ {
		bc := solid.Center()
		setBall(ball, core.Vec{X: bc.X, Y: solid.Pos.Y + solid.Size.Y + 0.2}, core.Vec{Y: -0.4})
		c.Step(core.NewInputFrame())

		if solid.Dead || solid.HP != hp {
			t.Fatalf("hit %d: solid brick changed, dead=%v hp=%d", i, solid.Dead, solid.HP)
		}
		if ball.Vel.Y <= 0 {
			t.Fatalf("hit %d: ball should bounce off the solid brick, vy = %v", i, ball.Vel.Y)
		}
	}
	if c.State().Score != 0 {
		t.Errorf("solid bricks are worth nothing, score = %d", c.State().Score)
	}
}

func TestBrickTypeBreakable(t *testing.T) {
	tests := []struct {
		kind BrickType
		want bool
	}{
		{BrickEmpty, false},
		{BrickNormal, true},
		{BrickHard, true},
		{BrickSolid, false},
	}
	for _, tc := range tests {
		if got := tc.kind.Breakable(); got != tc.want {
			t.Errorf("%d.Breakable() = %v, expected %v", tc.kind, got, tc.want)
		}
	}
}

func TestLevelParsing(t *testing.T) {
	level := ParseLevel("Test", []string{
		"#.1H",
		"X9",
	})

	if level.Width != 4 || level.Height != 2 {
		t.Fatalf("size = %dx%d, expected 4x2", level.Width, level.Height)
	}
	if got := countBreakable(level); got != 4 {
		t.Errorf("breakable = %d, expected 4", got)
	}

	tests := []struct {
		row, col int
		want     Brick
	}{
		{0, 0, Brick{Type: BrickNormal, Points: 10, HP: 1}},
		{0, 1, Brick{}},
		{0, 2, Brick{Type: BrickNormal, Points: 10, HP: 1}},
		{0, 3, Brick{Type: BrickHard, Points: 20, HP: 2}},
		{1, 0, Brick{Type: BrickSolid}},
		{1, 1, Brick{Type: BrickNormal, Points: 90, HP: 1}},
		{1, 3, Brick{}},
	}
	for _, tc := range tests {
		if got := level.Bricks[tc.row][tc.col]; got != tc.want {
			t.Errorf("brick[%d][%d] = %+v, expected %+v", tc.row, tc.col, got, tc.want)
		}
	}
}

func TestLevelsCycle(t *testing.T) {
	grid := GridLevel(5, 10, 2)
	if LevelFor(1, grid) != grid {
		t.Error("level 1 should be the grid")
	}
	if LevelFor(2, grid).Name != LevelFor(2+len(layouts), grid).Name {
		t.Error("layouts should cycle")
	}
	for _, l := range layouts {
		if countBreakable(ParseLevel(l.name, l.lines)) == 0 {
			t.Errorf("layout %s has nothing to break", l.name)
		}
	}
}

func TestGameRender(t *testing.T) {
	c, r := newBoard(t, 13)
	pu := r.world.Spawn(sim.NewEntity(sim.KindPowerUp, 40, 12, 1, 1))
	pu.Variant = int(PickupMultiball)

	screen := core.NewScreen(80, 24)
	c.Render(screen)

	if got := screen.Get(40, 12+session.HUDRows); got != 'M' {
		t.Errorf("power-up glyph = %q, expected 'M'", got)
	}
	if got := screen.Get(1, 2+session.HUDRows); got != '▓' {
		t.Errorf("hard brick glyph = %q, expected '▓'", got)
	}
}
