package session

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/sim"
	"github.com/vovakirdan/retro-arcade/internal/theme"
)

// HUDRows is the number of screen rows above the playfield.
const HUDRows = 1

// Field returns the playfield size, in cells, for a runtime config.
func Field(cfg core.RuntimeConfig) sim.Field {
	return sim.Field{W: float64(max(cfg.ScreenW, 1)), H: float64(max(cfg.ScreenH-HUDRows, 1))}
}

// Render draws the session into dst: the HUD row, the playfield entities and
// the overlay for the current phase.
func (c *Controller) Render(dst *core.Screen) {
	th := c.opts.Theme
	dst.SetBackground(th.Color(theme.RoleBackground))
	dst.Clear()

	if w := c.rules.World(); w != nil && c.state.Phase != core.PhaseMenu {
		c.drawWorld(dst, w)
	}
	c.drawHUD(dst)

	switch c.state.Phase {
	case core.PhaseMenu:
		c.drawMenu(dst)
	case core.PhasePaused:
		c.drawBanner(dst, []string{"PAUSED", "P to resume, B for menu"})
	case core.PhaseOver:
		lines := []string{"GAME OVER", fmt.Sprintf("Score: %d", c.state.Score)}
		if c.record {
			lines = append(lines, "NEW HIGH SCORE!")
		}
		lines = append(lines, "R to restart, B for menu")
		c.drawBanner(dst, lines)
	}
}

func (c *Controller) drawWorld(dst *core.Screen, w *sim.World) {
	rows := dst.Height() - HUDRows
	if rows <= 0 || w.Field.W <= 0 || w.Field.H <= 0 {
		return
	}
	sx := float64(dst.Width()) / w.Field.W
	sy := float64(rows) / w.Field.H

	glypher, _ := c.rules.(Glypher)
	for _, e := range w.Entities {
		if e.Dead {
			continue
		}
		// Blink while invulnerable.
		if e.Grace > 0 && (e.Grace/4)%2 == 1 {
			continue
		}
		r := e.Box().Cells(sx, sy)
		r.Y += HUDRows
		r.H = min(r.H, dst.Height()-r.Y)

		g := DefaultGlyph(e)
		if glypher != nil {
			if custom, ok := glypher.Glyph(e); ok {
				g = custom
			}
		}
		dst.DrawRect(r, g, c.opts.Theme.Color(RoleOf(e)))
	}
}

func (c *Controller) drawHUD(dst *core.Screen) {
	th := c.opts.Theme
	st := c.state

	parts := []string{
		strings.ToUpper(c.rules.Title()),
		fmt.Sprintf("Score: %d", st.Score),
		fmt.Sprintf("High: %d", max(st.HighScore, st.Score)),
	}
	if st.HasLives {
		parts = append(parts, fmt.Sprintf("Lives: %d", st.Lives))
	}
	if st.Level > 0 {
		parts = append(parts, fmt.Sprintf("Level: %d", st.Level))
	}
	if cp, ok := c.rules.(Captioner); ok && st.Phase != core.PhaseMenu {
		if caption := cp.Caption(); caption != "" {
			parts = append(parts, caption)
		}
	}

	dst.DrawRect(core.NewRect(0, 0, dst.Width(), HUDRows), ' ', th.Color(theme.RoleText))
	dst.DrawText(1, 0, strings.Join(parts, "  "), th.Color(theme.RoleText))
}

func (c *Controller) drawMenu(dst *core.Screen) {
	th := c.opts.Theme
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-2, strings.ToUpper(c.rules.Title()), th.Color(theme.RoleAccent1))
	dst.DrawTextCentered(mid, "Press ENTER to start", th.Color(theme.RoleText))
	dst.DrawTextCentered(mid+1, fmt.Sprintf("High score: %d", c.state.HighScore), th.Color(theme.RoleAccent2))
	dst.DrawTextCentered(mid+3, "B for menu, Q to quit", th.Color(theme.RoleText))
}

func (c *Controller) drawBanner(dst *core.Screen, lines []string) {
	th := c.opts.Theme
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	width += 4
	height := len(lines) + 2

	box := core.NewRect((dst.Width()-width)/2, (dst.Height()-height)/2, width, height)
	dst.DrawRect(box, ' ', th.Color(theme.RoleText))
	dst.DrawBox(box, th.Color(theme.RoleAccent1))
	for i, l := range lines {
		fg := th.Color(theme.RoleText)
		if i == 0 {
			fg = th.Color(theme.RoleAccent2)
		}
		dst.DrawTextCentered(box.Y+1+i, l, fg)
	}
}

// RoleOf maps an entity to the theme role it is drawn with.
func RoleOf(e *sim.Entity) theme.Role {
	if e.Owner == sim.OwnerOpponent {
		return theme.RoleOpponent
	}
	switch e.Kind {
	case sim.KindPaddle, sim.KindBird, sim.KindShip, sim.KindSegment:
		return theme.RolePlayer
	case sim.KindBrick, sim.KindPipe, sim.KindEnemy:
		return theme.RoleObstacle
	case sim.KindBall, sim.KindBullet:
		return theme.RoleProjectile
	case sim.KindFood:
		return theme.RoleAccent1
	case sim.KindPowerUp:
		return theme.RoleAccent2
	default:
		return theme.RoleText
	}
}

// DefaultGlyph is the rune an entity is drawn with unless its rules say
// otherwise.
func DefaultGlyph(e *sim.Entity) rune {
	switch e.Kind {
	case sim.KindBall:
		return '●'
	case sim.KindBrick:
		if e.HP > 1 {
			return '▓'
		}
		return '█'
	case sim.KindPaddle, sim.KindPipe:
		return '█'
	case sim.KindBullet:
		return '|'
	case sim.KindEnemy:
		return 'W'
	case sim.KindSegment:
		return '■'
	case sim.KindPowerUp:
		return '?'
	case sim.KindBird:
		return '>'
	case sim.KindShip:
		return '^'
	case sim.KindFood:
		return '*'
	default:
		return '#'
	}
}
