// Package config provides YAML-based game configuration loading,
// difficulty presets and progression, and the launcher settings file.
//
// All distances are in playfield cells and all speeds in cells per tick at
// the default tick rate of 60.
package config

import "fmt"

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Board    SnakeBoard    `yaml:"board"`
	Gameplay SnakeGameplay `yaml:"gameplay"`
}

// SnakeBoard defines the grid the snake moves on.
type SnakeBoard struct {
	Cell      int `yaml:"cell"`       // Grid cell size in playfield cells
	MoveEvery int `yaml:"move_every"` // Ticks between moves
}

// SnakeGameplay defines scoring and growth.
type SnakeGameplay struct {
	GrowTo     int `yaml:"grow_to"`     // Starting target length
	FoodPoints int `yaml:"food_points"` // Score per food
}

// PongConfig contains all configuration for the Pong game.
type PongConfig struct {
	Paddles  PongPaddles  `yaml:"paddles"`
	Ball     PongBall     `yaml:"ball"`
	Gameplay PongGameplay `yaml:"gameplay"`
	CPU      PongCPU      `yaml:"cpu"`
}

// PongPaddles defines paddle dimensions and movement.
type PongPaddles struct {
	Height float64 `yaml:"height"`
	Width  float64 `yaml:"width"`
	Offset float64 `yaml:"offset"` // Distance from the side wall
	Speed  float64 `yaml:"speed"`
}

// PongBall defines ball physics.
type PongBall struct {
	Size       float64 `yaml:"size"`
	SpeedX     float64 `yaml:"speed_x"`
	SpeedY     float64 `yaml:"speed_y"` // Serve speed and paddle deflection at the edge
	MaxSpeed   float64 `yaml:"max_speed"`
	Boost      float64 `yaml:"boost"`       // Speed-up per paddle hit
	BoostBelow float64 `yaml:"boost_below"` // Horizontal speed above which hits stop boosting
}

// PongGameplay defines match rules.
type PongGameplay struct {
	WinScore   int `yaml:"win_score"`
	ServeDelay int `yaml:"serve_delay"` // Ticks before a serve after a point
}

// PongCPU defines the computer opponent.
type PongCPU struct {
	Level  string               `yaml:"level"` // easy, normal or hard
	Levels map[string]PongSkill `yaml:"levels"`
}

// PongSkill is one computer opponent level.
type PongSkill struct {
	Jitter   float64 `yaml:"jitter"`   // Aim error as a fraction of field height
	Reaction float64 `yaml:"reaction"` // Fraction of paddle speed used to chase
}

// Skill returns the active CPU level, falling back to normal.
func (c PongCPU) Skill() PongSkill {
	if s, ok := c.Levels[c.Level]; ok {
		return s
	}
	if s, ok := c.Levels[string(DifficultyNormal)]; ok {
		return s
	}
	return PongSkill{Jitter: 0.03, Reaction: 0.6}
}

// BreakoutConfig contains all configuration for the Breakout game.
type BreakoutConfig struct {
	Bricks   BreakoutBricks   `yaml:"bricks"`
	Paddle   BreakoutPaddle   `yaml:"paddle"`
	Ball     BreakoutBall     `yaml:"ball"`
	PowerUps BreakoutPowerUps `yaml:"powerups"`
	Gameplay BreakoutGameplay `yaml:"gameplay"`
}

// BreakoutBricks defines the first-level brick grid.
type BreakoutBricks struct {
	Rows     int     `yaml:"rows"`
	Cols     int     `yaml:"cols"`
	Height   float64 `yaml:"height"`
	Gap      float64 `yaml:"gap"`
	Top      float64 `yaml:"top"`       // Rows above the first brick row
	HardRows int     `yaml:"hard_rows"` // Top rows needing two hits
}

// BreakoutPaddle defines the paddle.
type BreakoutPaddle struct {
	Width    float64 `yaml:"width"`
	MinWidth float64 `yaml:"min_width"`
	MaxWidth float64 `yaml:"max_width"`
	Resize   float64 `yaml:"resize"` // Width change per expand/shrink
	Speed    float64 `yaml:"speed"`
	Bottom   float64 `yaml:"bottom"` // Rows between the paddle and the floor
}

// BreakoutBall defines ball physics.
type BreakoutBall struct {
	Size        float64 `yaml:"size"`
	SpeedX      float64 `yaml:"speed_x"`
	SpeedY      float64 `yaml:"speed_y"`
	MaxSpeed    float64 `yaml:"max_speed"`
	LevelSpeed  float64 `yaml:"level_speed"` // Max speed added per level
	Jitter      float64 `yaml:"jitter"`      // Random nudge on wall bounces
	MaxBias     float64 `yaml:"max_bias"`
	MinAway     float64 `yaml:"min_away"`
	Growth      float64 `yaml:"growth"`
	Multiball   int     `yaml:"multiball"`    // Extra balls per multi-ball pickup
	MultiSpread float64 `yaml:"multi_spread"` // Rotation between extra balls, radians
}

// BreakoutPowerUps defines power-up drops.
type BreakoutPowerUps struct {
	Chance float64 `yaml:"chance"`
	Speed  float64 `yaml:"speed"`
	Width  float64 `yaml:"width"`
}

// BreakoutGameplay defines lives and bonuses.
type BreakoutGameplay struct {
	Lives      int `yaml:"lives"`
	LevelBonus int `yaml:"level_bonus"` // Multiplied by the new level number
}

// FlappyConfig contains all configuration for the Flappy Bird game.
type FlappyConfig struct {
	Physics    FlappyPhysics    `yaml:"physics"`
	Obstacles  FlappyObstacles  `yaml:"obstacles"`
	Player     FlappyPlayer     `yaml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FlappyPhysics defines physics parameters for Flappy Bird.
type FlappyPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	FlapStrength float64 `yaml:"flap_strength"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	PipeSpeed    float64 `yaml:"pipe_speed"`
}

// FlappyObstacles defines obstacle parameters for Flappy Bird.
type FlappyObstacles struct {
	PipeWidth int `yaml:"pipe_width"`
	PipeEvery int `yaml:"pipe_every"` // Ticks between pipe pairs
	GapSize   int `yaml:"gap_size"`
	Margin    int `yaml:"margin"` // Minimum pipe length above and below the gap
}

// FlappyPlayer defines player parameters for Flappy Bird.
type FlappyPlayer struct {
	X      int `yaml:"x"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ShooterConfig contains all configuration for the Space Shooter game.
type ShooterConfig struct {
	Ship    ShooterShip    `yaml:"ship"`
	Bullets ShooterBullets `yaml:"bullets"`
	Enemies ShooterEnemies `yaml:"enemies"`
	Waves   ShooterWaves   `yaml:"waves"`
}

// ShooterShip defines the player ship.
type ShooterShip struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Speed    float64 `yaml:"speed"`
	Lives    int     `yaml:"lives"`
	Cooldown int     `yaml:"cooldown"` // Ticks between shots
	Grace    float64 `yaml:"grace"`    // Seconds of invulnerability after a hit
}

// ShooterBullets defines player bullets.
type ShooterBullets struct {
	Speed  float64 `yaml:"speed"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ShooterEnemies defines enemy spawning and movement.
type ShooterEnemies struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Speed       float64 `yaml:"speed"`       // Slowest descent; spawns pick up to 1.5x
	SpawnEvery  int     `yaml:"spawn_every"` // Ticks between spawns
	Count       int     `yaml:"count"`       // Live enemy cap in the first wave
	ZigzagSpeed float64 `yaml:"zigzag_speed"`
	ZigzagFlip  int     `yaml:"zigzag_flip"` // Ticks between zigzag turns
	MissPenalty int     `yaml:"miss_penalty"`
}

// ShooterWaves defines wave pacing.
type ShooterWaves struct {
	Seconds float64 `yaml:"seconds"`
	Bonus   int     `yaml:"bonus"`  // Multiplied by the new wave number
	Growth  int     `yaml:"growth"` // Enemy cap added per wave
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Multiplier added to speed at max difficulty
	GapReduction     int     `yaml:"gap_reduction"`     // Gap size reduction at max difficulty
	SpacingReduction int     `yaml:"spacing_reduction"` // Spacing reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
