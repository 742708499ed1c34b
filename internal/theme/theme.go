// Package theme maps semantic rendering roles to colors. A theme is picked
// once per session and never influences simulation outcomes.
package theme

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// ErrUnknownTheme is returned when a theme name is not registered.
var ErrUnknownTheme = errors.New("theme: unknown theme")

// Role is a semantic color slot.
type Role int

const (
	RoleBackground Role = iota
	RoleText
	RoleAccent1
	RoleAccent2
	RolePlayer
	RoleOpponent
	RoleObstacle
	RoleProjectile
)

// Theme is a named set of role colors.
type Theme struct {
	Name       string     `yaml:"name"`
	Background core.Color `yaml:"background"`
	Text       core.Color `yaml:"text"`
	Accent1    core.Color `yaml:"accent1"`
	Accent2    core.Color `yaml:"accent2"`
	Player     core.Color `yaml:"player"`
	Opponent   core.Color `yaml:"opponent"`
	Obstacle   core.Color `yaml:"obstacle"`
	Projectile core.Color `yaml:"projectile"`
}

// Color returns the color for a role.
func (t Theme) Color(r Role) core.Color {
	switch r {
	case RoleBackground:
		return t.Background
	case RoleText:
		return t.Text
	case RoleAccent1:
		return t.Accent1
	case RoleAccent2:
		return t.Accent2
	case RolePlayer:
		return t.Player
	case RoleOpponent:
		return t.Opponent
	case RoleObstacle:
		return t.Obstacle
	case RoleProjectile:
		return t.Projectile
	default:
		return core.ColorDefault
	}
}

// validate reports the first missing role.
func (t Theme) validate() error {
	fields := []struct {
		name string
		c    core.Color
	}{
		{"background", t.Background},
		{"text", t.Text},
		{"accent1", t.Accent1},
		{"accent2", t.Accent2},
		{"player", t.Player},
		{"opponent", t.Opponent},
		{"obstacle", t.Obstacle},
		{"projectile", t.Projectile},
	}
	if t.Name == "" {
		return errors.New("missing name")
	}
	for _, f := range fields {
		if f.c == "" {
			return fmt.Errorf("missing %s", f.name)
		}
	}
	return nil
}

// Builtin returns the built-in themes in display order.
func Builtin() []Theme {
	return []Theme{
		{
			Name:       "Classic",
			Background: core.Hex(0, 0, 0),
			Text:       core.Hex(255, 255, 255),
			Accent1:    core.Hex(0, 100, 255),
			Accent2:    core.Hex(0, 180, 0),
			Player:     core.Hex(255, 255, 255),
			Opponent:   core.Hex(200, 200, 200),
			Obstacle:   core.Hex(255, 50, 50),
			Projectile: core.Hex(255, 255, 0),
		},
		{
			Name:       "Neon",
			Background: core.Hex(10, 10, 30),
			Text:       core.Hex(0, 255, 255),
			Accent1:    core.Hex(255, 0, 255),
			Accent2:    core.Hex(0, 255, 0),
			Player:     core.Hex(0, 255, 255),
			Opponent:   core.Hex(255, 0, 255),
			Obstacle:   core.Hex(255, 255, 0),
			Projectile: core.Hex(0, 255, 0),
		},
		{
			Name:       "Pastel",
			Background: core.Hex(240, 240, 255),
			Text:       core.Hex(100, 100, 120),
			Accent1:    core.Hex(200, 180, 255),
			Accent2:    core.Hex(180, 230, 210),
			Player:     core.Hex(180, 210, 230),
			Opponent:   core.Hex(230, 180, 210),
			Obstacle:   core.Hex(255, 200, 200),
			Projectile: core.Hex(230, 230, 180),
		},
		{
			Name:       "Retro",
			Background: core.Hex(20, 20, 20),
			Text:       core.Hex(200, 200, 200),
			Accent1:    core.Hex(0, 180, 0),
			Accent2:    core.Hex(180, 50, 0),
			Player:     core.Hex(0, 220, 0),
			Opponent:   core.Hex(220, 180, 0),
			Obstacle:   core.Hex(220, 0, 0),
			Projectile: core.Hex(220, 220, 0),
		},
		{
			Name:       "Ocean",
			Background: core.Hex(0, 30, 60),
			Text:       core.Hex(200, 230, 255),
			Accent1:    core.Hex(0, 150, 200),
			Accent2:    core.Hex(0, 200, 150),
			Player:     core.Hex(100, 200, 255),
			Opponent:   core.Hex(50, 150, 200),
			Obstacle:   core.Hex(200, 50, 50),
			Projectile: core.Hex(200, 200, 50),
		},
	}
}

// Set is an ordered collection of themes addressed by name.
type Set struct {
	order  []string
	themes map[string]Theme
}

// NewSet builds a set from the built-in themes.
func NewSet() *Set {
	s := &Set{themes: make(map[string]Theme)}
	for _, t := range Builtin() {
		s.Add(t)
	}
	return s
}

// Add inserts or replaces a theme. New names go to the end of the order.
func (s *Set) Add(t Theme) {
	key := strings.ToLower(t.Name)
	if _, ok := s.themes[key]; !ok {
		s.order = append(s.order, key)
	}
	s.themes[key] = t
}

// Get looks a theme up by case-insensitive name.
func (s *Set) Get(name string) (Theme, error) {
	t, ok := s.themes[strings.ToLower(name)]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return t, nil
}

// Resolve returns the named theme, or the first theme when the name is unknown.
func (s *Set) Resolve(name string) Theme {
	if t, err := s.Get(name); err == nil {
		return t
	}
	return s.themes[s.order[0]]
}

// Names returns theme names in display order.
func (s *Set) Names() []string {
	names := make([]string, len(s.order))
	for i, key := range s.order {
		names[i] = s.themes[key].Name
	}
	return names
}

// Next returns the theme after the named one, wrapping around.
func (s *Set) Next(name string) Theme {
	key := strings.ToLower(name)
	for i, k := range s.order {
		if k == key {
			return s.themes[s.order[(i+1)%len(s.order)]]
		}
	}
	return s.themes[s.order[0]]
}

// LoadFile merges custom themes from a yaml file holding a list of themes.
// A missing file is not an error. Entries lacking a role are skipped and
// reported in the returned slice.
func (s *Set) LoadFile(path string) (skipped []string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("theme: read %s: %w", path, err)
	}

	var custom []Theme
	if err := yaml.Unmarshal(data, &custom); err != nil {
		return nil, fmt.Errorf("theme: parse %s: %w", path, err)
	}

	for i, t := range custom {
		if verr := t.validate(); verr != nil {
			skipped = append(skipped, fmt.Sprintf("entry %d: %v", i, verr))
			continue
		}
		s.Add(t)
	}
	sort.Strings(skipped)
	return skipped, nil
}
