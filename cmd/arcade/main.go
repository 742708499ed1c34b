// arcade is a terminal arcade of retro mini-games on a shared fixed-tick
// simulation.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start the launcher menu
//	arcade scores [game]     - Show high scores
//	arcade themes            - List color themes
//	arcade serve             - Host the launcher over SSH
//
// Global flags:
//
//	--fps <rate>        - Tick rate (default: 60)
//	--seed <value>      - RNG seed for reproducible gameplay
//	--store file|sqlite - Score store backend
//	--scores <path>     - Score file (default: ~/.arcade/scores.yaml)
//	--db <path>         - Score database (default: ~/.arcade/arcade.db)
//	--theme <name>      - Color theme
//	--log-level <level> - debug, info, warn or error
//
// Flags override ARCADE_* environment variables, which override
// ~/.arcade/settings.yaml.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/retro-arcade/internal/games/breakout"
	_ "github.com/vovakirdan/retro-arcade/internal/games/flappy"
	_ "github.com/vovakirdan/retro-arcade/internal/games/pong"
	_ "github.com/vovakirdan/retro-arcade/internal/games/shooter"
	_ "github.com/vovakirdan/retro-arcade/internal/games/snake"
)

var (
	flagSeed     int64
	flagSettings string

	settings *config.Settings
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Retro Arcade - classic mini-games in your terminal",
	Long: `Retro Arcade hosts Snake, Pong, Breakout, Flappy Bird and Space Shooter
behind one menu, theme and leaderboard.

Examples:
  arcade menu
  arcade play snake
  arcade play pong_duo
  arcade play breakout --difficulty hard
  arcade scores "Space Shooter"
  arcade serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Int("fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.String("store", config.StoreFile, "Score store backend: file or sqlite")
	pf.String("scores", "~/.arcade/scores.yaml", "Path to the score file")
	pf.String("db", "~/.arcade/arcade.db", "Path to the score database")
	pf.String("theme", "Classic", "Color theme")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagSettings, "settings", config.DefaultSettingsPath(), "Path to the settings file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(serveCmd)
}

// flagKeys maps persistent flags to their settings keys.
var flagKeys = map[string]string{
	"fps":       config.KeyFPS,
	"store":     config.KeyStore,
	"scores":    config.KeyScores,
	"db":        config.KeyDB,
	"theme":     config.KeyTheme,
	"log-level": config.KeyLogLevel,
}

// loadSettings reads the settings file and binds the persistent flags over
// it. A flag only wins when it was set on the command line.
func loadSettings(cmd *cobra.Command, _ []string) error {
	s, err := config.LoadSettings(flagSettings)
	if err != nil {
		return err
	}
	for name, key := range flagKeys {
		if err := s.Viper().BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	if err := s.Validate(); err != nil {
		return err
	}
	settings = s
	return nil
}
