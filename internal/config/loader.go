package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads the configuration for a game into a value seeded with fallback.
// Search order: customPath -> ~/.arcade/configs/<name>.yaml ->
// ./configs/<name>.yaml -> embedded default -> fallback.
//
// Only a custom path is allowed to fail; unreadable files further down the
// chain are skipped. Keys missing from a file keep their fallback values.
func Load[T any](name, customPath string, fallback T) (T, error) {
	if customPath != "" {
		cfg := fallback
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fallback, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fallback, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	file := name + ".yaml"
	for _, path := range []string{userConfigPath(file), filepath.Join("configs", file)} {
		if path == "" {
			continue
		}
		if cfg, ok := tryFile(path, fallback); ok {
			return cfg, nil
		}
	}

	if data := DefaultYAML(name); data != nil {
		cfg := fallback
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}
	return fallback, nil
}

func tryFile[T any](path string, fallback T) (T, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fallback, false
	}
	cfg := fallback
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fallback, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// LoadSnake loads Snake configuration.
func LoadSnake(customPath string) (SnakeConfig, error) {
	return Load("snake", customPath, DefaultSnakeConfig())
}

// LoadPong loads Pong configuration.
func LoadPong(customPath string) (PongConfig, error) {
	return Load("pong", customPath, DefaultPongConfig())
}

// LoadBreakout loads Breakout configuration.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	return Load("breakout", customPath, DefaultBreakoutConfig())
}

// LoadFlappy loads Flappy Bird configuration.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	return Load("flappy", customPath, DefaultFlappyConfig())
}

// LoadShooter loads Space Shooter configuration.
func LoadShooter(customPath string) (ShooterConfig, error) {
	return Load("shooter", customPath, DefaultShooterConfig())
}
