package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

type colorPair struct {
	fg, bg core.Color
}

// Renderer turns Screen buffers into styled strings. Each program owns one,
// bound to the lipgloss renderer of its output so that SSH sessions get
// their own color profile.
type Renderer struct {
	lg     *lipgloss.Renderer
	styles map[colorPair]lipgloss.Style
}

// NewRenderer creates a renderer. A nil lipgloss renderer means stdout.
func NewRenderer(lg *lipgloss.Renderer) *Renderer {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	return &Renderer{lg: lg, styles: make(map[colorPair]lipgloss.Style)}
}

// NewStyle starts a style on the underlying lipgloss renderer.
func (r *Renderer) NewStyle() lipgloss.Style {
	return r.lg.NewStyle()
}

// Style returns the cached style for a foreground and background pair.
func (r *Renderer) Style(fg, bg core.Color) lipgloss.Style {
	key := colorPair{fg, bg}
	if s, ok := r.styles[key]; ok {
		return s
	}
	s := r.lg.NewStyle()
	if fg != core.ColorDefault {
		s = s.Foreground(lipgloss.Color(fg))
	}
	if bg != core.ColorDefault {
		s = s.Background(lipgloss.Color(bg))
	}
	r.styles[key] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same colors are grouped into one styled run.
func (r *Renderer) RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != start.Fg || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(r.Style(start.Fg, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}
