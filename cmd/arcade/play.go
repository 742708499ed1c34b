package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/platform/tui"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD - Move
  Space       - Flap, shoot or launch
  Enter       - Start
  P           - Pause
  R           - Restart
  B/Esc       - Leave (from pause or game over)
  Ctrl+S      - Screenshot
  Q/Ctrl+C    - Quit

In two-player games the left paddle uses W/S and the right one the arrows.

Difficulty options:
  easy   - Gentler settings and a low starting pace
  normal - Default settings
  hard   - Faster settings and a high starting pace

Examples:
  arcade play flappy
  arcade play snake --difficulty easy
  arcade play shooter --difficulty hard
  arcade play breakout --config ./my-breakout.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

// configurer is implemented by games that accept a tuning file.
type configurer interface {
	Configure(path string, preset config.DifficultyPreset) error
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	if c, ok := game.(configurer); ok {
		if err := c.Configure(flagConfig, preset); err != nil {
			return err
		}
	}

	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	a.logger.Info("starting game", "game", gameID, "difficulty", preset)
	if err := tui.Run(game, a.runtimeConfig(width, height), a.options()); err != nil {
		return fmt.Errorf("run %s: %w", gameID, err)
	}
	return nil
}
