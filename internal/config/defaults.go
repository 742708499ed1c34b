package config

import (
	"embed"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// DefaultYAML returns the embedded default YAML for a game, or nil.
func DefaultYAML(name string) []byte {
	data, err := defaultsFS.ReadFile("defaults/" + name + ".yaml")
	if err != nil {
		return nil
	}
	return data
}

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board:    SnakeBoard{Cell: 1, MoveEvery: 6},
		Gameplay: SnakeGameplay{GrowTo: 3, FoodPoints: 10},
	}
}

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Paddles: PongPaddles{Height: 5, Width: 1, Offset: 2, Speed: 0.5},
		Ball: PongBall{
			Size:       1,
			SpeedX:     0.5,
			SpeedY:     0.3,
			MaxSpeed:   1.6,
			Boost:      1.1,
			BoostBelow: 1.0,
		},
		Gameplay: PongGameplay{WinScore: 5, ServeDelay: 60},
		CPU: PongCPU{
			Level: string(DifficultyNormal),
			Levels: map[string]PongSkill{
				string(DifficultyEasy):   {Jitter: 0.083, Reaction: 0.3},
				string(DifficultyNormal): {Jitter: 0.033, Reaction: 0.6},
				string(DifficultyHard):   {Jitter: 0.008, Reaction: 0.9},
			},
		},
	}
}

// DefaultBreakoutConfig returns the default Breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Bricks: BreakoutBricks{Rows: 5, Cols: 10, Height: 1, Gap: 1, Top: 2, HardRows: 2},
		Paddle: BreakoutPaddle{
			Width:    10,
			MinWidth: 4,
			MaxWidth: 20,
			Resize:   2,
			Speed:    1.2,
			Bottom:   1,
		},
		Ball: BreakoutBall{
			Size:        1,
			SpeedX:      0.5,
			SpeedY:      0.4,
			MaxSpeed:    1.0,
			LevelSpeed:  0.1,
			Jitter:      0.03,
			MaxBias:     0.7,
			MinAway:     0.3,
			Growth:      0.0005,
			Multiball:   2,
			MultiSpread: 0.5,
		},
		PowerUps: BreakoutPowerUps{Chance: 0.15, Speed: 0.3, Width: 3},
		Gameplay: BreakoutGameplay{Lives: 3, LevelBonus: 100},
	}
}

// DefaultFlappyConfig returns the default Flappy Bird configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:      0.02,
			FlapStrength: -0.4,
			MaxFallSpeed: 0.6,
			PipeSpeed:    0.3,
		},
		Obstacles: FlappyObstacles{
			PipeWidth: 5,
			PipeEvery: 100,
			GapSize:   8,
			Margin:    2,
		},
		Player: FlappyPlayer{
			X:      10,
			Width:  2,
			Height: 1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  1.0,
				GapReduction:     3,
				SpacingReduction: 40,
			},
		},
	}
}

// DefaultShooterConfig returns the default Space Shooter configuration.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		Ship:    ShooterShip{Width: 3, Height: 1, Speed: 0.8, Lives: 3, Cooldown: 15, Grace: 2},
		Bullets: ShooterBullets{Speed: 0.6, Width: 1, Height: 1},
		Enemies: ShooterEnemies{
			Width:       3,
			Height:      1,
			Speed:       0.08,
			SpawnEvery:  60,
			Count:       5,
			ZigzagSpeed: 0.2,
			ZigzagFlip:  20,
			MissPenalty: 1,
		},
		Waves: ShooterWaves{Seconds: 20, Bonus: 50, Growth: 2},
	}
}
