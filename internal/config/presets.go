package config

// ApplySnakePreset changes the move rate: easy is slower, hard faster.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Board.MoveEvery = cfg.Board.MoveEvery * 3 / 2
	case DifficultyHard:
		cfg.Board.MoveEvery = max(cfg.Board.MoveEvery*2/3, 1)
	}
}

// ApplyPongPreset picks the CPU level matching the preset.
func ApplyPongPreset(cfg *PongConfig, preset DifficultyPreset) {
	cfg.CPU.Level = string(preset)
}

// ApplyBreakoutPreset modifies lives and paddle size.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Paddle.Width += 4
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Paddle.Width = max(cfg.Paddle.Width-4, cfg.Paddle.MinWidth)
		cfg.Ball.MaxSpeed *= 1.2
	}
}

// ApplyFlappyPreset sets the starting point of the difficulty progression
// and the gap size.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	switch preset {
	case DifficultyEasy:
		cfg.Obstacles.GapSize += 2
	case DifficultyHard:
		cfg.Obstacles.GapSize = max(cfg.Obstacles.GapSize-1, 4)
	}
}

// ApplyShooterPreset changes spawn pacing and lives.
func ApplyShooterPreset(cfg *ShooterConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Ship.Lives = 5
		cfg.Enemies.SpawnEvery = cfg.Enemies.SpawnEvery * 3 / 2
	case DifficultyHard:
		cfg.Ship.Lives = 2
		cfg.Enemies.SpawnEvery = max(cfg.Enemies.SpawnEvery*2/3, 1)
		cfg.Enemies.Count += 2
	}
}
