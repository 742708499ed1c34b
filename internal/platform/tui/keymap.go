package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// holdTicks is how long a movement key stays pressed after its last key
// event. Terminals report repeats, never releases.
const holdTicks = 8

// KeyMapper translates Bubble Tea key messages to game actions.
// With split keys W/S drive the first player and the arrows the second.
type KeyMapper struct {
	split bool
}

// NewKeyMapper creates a key mapper. split selects the two-player layout.
func NewKeyMapper(split bool) *KeyMapper {
	return &KeyMapper{split: split}
}

// MapKey translates a key message to the actions it triggers.
// Space means flap, shoot and launch at once; each game reads the one it
// knows.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (actions []core.Action, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return []core.Action{core.ActionQuit}, true
	}

	if km.split {
		switch key {
		case "w":
			return []core.Action{core.ActionUp}, false
		case "s":
			return []core.Action{core.ActionDown}, false
		case "up":
			return []core.Action{core.ActionP2Up}, false
		case "down":
			return []core.Action{core.ActionP2Down}, false
		}
	}

	switch key {
	case "w", "up":
		return []core.Action{core.ActionUp}, false
	case "s", "down":
		return []core.Action{core.ActionDown}, false
	case "a", "left":
		return []core.Action{core.ActionLeft}, false
	case "d", "right":
		return []core.Action{core.ActionRight}, false
	case " ":
		return []core.Action{core.ActionFlap, core.ActionShoot, core.ActionLaunch}, false
	case "enter":
		return []core.Action{core.ActionConfirm}, false
	case "b", "esc":
		return []core.Action{core.ActionBack}, false
	case "p":
		return []core.Action{core.ActionPause}, false
	case "r":
		return []core.Action{core.ActionRestart}, false
	}

	return nil, false
}

// Held reports whether an action is a movement that persists between key
// repeats.
func Held(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight,
		core.ActionP2Up, core.ActionP2Down:
		return true
	}
	return false
}

// stick groups the movements one player steers with. A press replaces
// every held movement of the same group, so the newest direction wins.
func stick(a core.Action) int {
	switch a {
	case core.ActionP2Up, core.ActionP2Down:
		return 2
	}
	return 1
}

// Input accumulates key events between ticks. One-shot actions last a
// single frame; movements are held for holdTicks.
type Input struct {
	frame core.InputFrame
	held  map[core.Action]int
}

// NewInput creates an empty input accumulator.
func NewInput() *Input {
	return &Input{frame: core.NewInputFrame(), held: make(map[core.Action]int)}
}

// Press records an action.
func (in *Input) Press(a core.Action) {
	if !Held(a) {
		in.frame.Set(a)
		return
	}
	for h := range in.held {
		if stick(h) == stick(a) {
			delete(in.held, h)
		}
	}
	in.held[a] = holdTicks
}

// Next returns the frame for the coming tick and ages held movements.
func (in *Input) Next() core.InputFrame {
	for a, n := range in.held {
		in.frame.Set(a)
		if n <= 1 {
			delete(in.held, a)
		} else {
			in.held[a] = n - 1
		}
	}
	f := in.frame.Clone()
	in.frame.Clear()
	return f
}

// Reset drops every pending action.
func (in *Input) Reset() {
	in.frame.Clear()
	clear(in.held)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionTheme
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "t":
		return MenuActionTheme
	}
	return MenuActionNone
}
