package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to size the playfield and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Ticks converts a duration in seconds to a tick count at the configured rate.
// The result is never below one.
func (c RuntimeConfig) Ticks(seconds float64) int {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	n := int(seconds * float64(rate))
	if n < 1 {
		return 1
	}
	return n
}

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseMenu Phase = iota
	PhaseActive
	PhasePaused
	PhaseOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseActive:
		return "active"
	case PhasePaused:
		return "paused"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// GameState is the session state exposed to the presentation layer.
type GameState struct {
	Phase     Phase
	Score     int  // Never negative
	HighScore int  // Stored best at session start
	Lives     int  // Remaining lives, meaningful only when HasLives
	HasLives  bool // Whether the game counts lives at all
	Level     int  // Level or wave counter, starting at 1
	Ticks     int  // Active ticks elapsed in this session
	GameOver  bool // Phase == PhaseOver
	Paused    bool // Phase == PhasePaused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
