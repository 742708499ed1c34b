package flappy

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/session"
	"github.com/vovakirdan/retro-arcade/internal/sim"
)

func newFlight(t *testing.T, seed int64) (*session.Controller, *Rules) {
	t.Helper()
	r := NewRules(config.DefaultFlappyConfig())
	c := session.New("flappy", r, session.Options{})
	c.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	c.Step(core.FrameOf(core.ActionConfirm))
	return c, r
}

func pipes(r *Rules) (top, bottom []*sim.Entity) {
	for _, p := range r.world.Of(sim.KindPipe) {
		if p.Variant == pipeTop {
			top = append(top, p)
		} else {
			bottom = append(bottom, p)
		}
	}
	return top, bottom
}

func TestGameDeterminism(t *testing.T) {
	c1, r1 := newFlight(t, 12345)
	c2, r2 := newFlight(t, 12345)

	input := core.NewInputFrame()
	for i := 0; i < 400; i++ {
		input.Clear()
		if i%18 == 0 {
			input.Set(core.ActionFlap)
		}
		c1.Step(input)
		c2.Step(input)
	}

	if r1.Snapshot() != r2.Snapshot() {
		t.Errorf("Snapshot mismatch:\n%+v\n%+v", r1.Snapshot(), r2.Snapshot())
	}
	if c1.State() != c2.State() {
		t.Errorf("State mismatch:\n%+v\n%+v", c1.State(), c2.State())
	}
}

func TestGameReset(t *testing.T) {
	c, r := newFlight(t, 1)

	if c.State().HasLives {
		t.Error("flappy has no lives")
	}
	if r.bird.Pos.X != 10 || r.bird.Vel.Y != 0 {
		t.Errorf("bird should start at x=10 at rest, got %+v %+v", r.bird.Pos, r.bird.Vel)
	}
	if r.world.Count(sim.KindPipe) != 0 {
		t.Error("no pipes before the first tick")
	}
}

func TestGameJumpPhysics(t *testing.T) {
	c, r := newFlight(t, 2)
	startY := r.bird.Pos.Y

	c.Step(core.FrameOf(core.ActionFlap))

	want := r.cfg.Physics.FlapStrength + r.cfg.Physics.Gravity
	if r.bird.Vel.Y != want {
		t.Errorf("vy after flap = %v, expected %v", r.bird.Vel.Y, want)
	}
	if r.bird.Pos.Y >= startY {
		t.Errorf("bird should rise after a flap: %v -> %v", startY, r.bird.Pos.Y)
	}
}

func TestGameGravity(t *testing.T) {
	c, r := newFlight(t, 3)
	startY := r.bird.Pos.Y

	for i := 0; i < 10; i++ {
		c.Step(core.NewInputFrame())
	}

	if math.Abs(r.bird.Vel.Y-10*r.cfg.Physics.Gravity) > 1e-9 {
		t.Errorf("vy after 10 ticks = %v, expected %v", r.bird.Vel.Y, 10*r.cfg.Physics.Gravity)
	}
	if r.bird.Pos.Y <= startY {
		t.Error("bird should fall under gravity")
	}
}

func TestMaxFallSpeed(t *testing.T) {
	c, r := newFlight(t, 4)
	r.bird.Pos.Y = 2
	r.bird.Vel.Y = 5

	c.Step(core.NewInputFrame())

	if math.Abs(r.bird.Vel.Y-r.cfg.Physics.MaxFallSpeed) > 1e-9 {
		t.Errorf("fall speed = %v, expected the cap %v", r.bird.Vel.Y, r.cfg.Physics.MaxFallSpeed)
	}
}

func TestEdges(t *testing.T) {
	tests := []struct {
		name     string
		y, vy    float64
		wantOver bool
	}{
		{"ceiling clips", 0.1, -0.4, false},
		{"ground is fatal", 21.9, 0.3, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, r := newFlight(t, 5)
			r.bird.Pos.Y, r.bird.Vel.Y = tc.y, tc.vy

			c.Step(core.NewInputFrame())

			if c.State().GameOver != tc.wantOver {
				t.Errorf("game over = %v, expected %v", c.State().GameOver, tc.wantOver)
			}
			if !tc.wantOver && (r.bird.Pos.Y != 0 || r.bird.Vel.Y < 0) {
				t.Errorf("bird should stop at the ceiling, y=%v vy=%v", r.bird.Pos.Y, r.bird.Vel.Y)
			}
		})
	}
}

func TestPipePairs(t *testing.T) {
	c, r := newFlight(t, 6)
	c.Step(core.NewInputFrame())

	top, bottom := pipes(r)
	if len(top) != 1 || len(bottom) != 1 {
		t.Fatalf("first tick should spawn one pair, got %d top %d bottom", len(top), len(bottom))
	}
	gap := bottom[0].Pos.Y - top[0].Box().Bottom()
	if math.Abs(gap-float64(r.cfg.Obstacles.GapSize)) > 1e-9 {
		t.Errorf("gap = %v, expected %d", gap, r.cfg.Obstacles.GapSize)
	}
	if math.Abs(bottom[0].Box().Bottom()-r.world.Field.H) > 1e-9 {
		t.Error("bottom pipe should reach the ground")
	}

	for i := 0; i < 200; i++ {
		r.spawnPair(8, 0.3)
	}
	lo, hi := gapRange(r.world.Field.H, 8, r.cfg.Obstacles.Margin)
	top, _ = pipes(r)
	for _, p := range top {
		center := p.Size.Y + 4
		if center < lo-1e-9 || center > hi+1e-9 {
			t.Errorf("gap center %v outside [%v, %v]", center, lo, hi)
		}
	}
}

func TestGapRange(t *testing.T) {
	lo, hi := gapRange(23, 8, 2)
	if lo != 8 || hi != 15 {
		t.Errorf("gapRange(23, 8, 2) = [%v, %v], expected [8, 15]", lo, hi)
	}
	lo, hi = gapRange(10, 8, 2)
	if lo != 5 || hi != 5 {
		t.Errorf("a field too short for the gap should center it, got [%v, %v]", lo, hi)
	}
}

func TestPassingScoresOnce(t *testing.T) {
	c, r := newFlight(t, 7)
	top := r.world.Spawn(sim.NewEntity(sim.KindPipe, 5.1, 0, 5, 2))
	top.Variant = pipeTop
	bottom := r.world.Spawn(sim.NewEntity(sim.KindPipe, 5.1, 20, 5, 3))
	bottom.Variant = pipeBottom

	c.Step(core.NewInputFrame())
	if c.State().Score != 1 {
		t.Fatalf("score = %d, expected 1 after passing a pair", c.State().Score)
	}

	for i := 0; i < 5; i++ {
		c.Step(core.NewInputFrame())
	}
	if c.State().Score != 1 {
		t.Errorf("a pair should score once, score = %d", c.State().Score)
	}
}

func TestPipeCollision(t *testing.T) {
	c, r := newFlight(t, 8)
	p := r.world.Spawn(sim.NewEntity(sim.KindPipe, 9, 0, 5, 15))
	p.Variant = pipeTop

	c.Step(core.NewInputFrame())

	if !c.State().GameOver {
		t.Error("hitting a pipe should end the game")
	}
}

func TestDifficultyScalesPipes(t *testing.T) {
	_, r := newFlight(t, 9)

	r.Tick(core.GameState{Score: 50}, core.NewInputFrame())

	top, bottom := pipes(r)
	if len(top) != 1 {
		t.Fatalf("expected one pair, got %d", len(top))
	}
	if want := -r.cfg.Physics.PipeSpeed * 2; top[0].Vel.X != want {
		t.Errorf("pipe speed at max difficulty = %v, expected %v", top[0].Vel.X, want)
	}
	gap := bottom[0].Pos.Y - top[0].Box().Bottom()
	if math.Abs(gap-5) > 1e-9 {
		t.Errorf("gap at max difficulty = %v, expected 5", gap)
	}
	if r.Caption() != "Pace 100%" {
		t.Errorf("Caption() = %q", r.Caption())
	}
}

func TestGameRender(t *testing.T) {
	c, r := newFlight(t, 10)
	c.Step(core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	c.Render(screen)

	if !strings.Contains(screen.String(), "FLAPPY BIRD") {
		t.Error("HUD should contain the title")
	}
	cell := r.bird.Box().Cells(1, 1)
	if got := screen.Get(cell.X, cell.Y+session.HUDRows); got != '>' {
		t.Errorf("bird glyph = %q, expected '>'", got)
	}
}
