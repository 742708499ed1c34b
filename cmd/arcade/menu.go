package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/retro-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the game launcher",
	Long: `Open the launcher menu listing every game with its best score.

Menu keys:
  Up/Down   - Choose a game
  Enter     - Play
  Tab       - High scores
  T         - Next color theme (saved to settings)
  Q         - Quit`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	return tui.RunLauncher(a.runtimeConfig(width, height), a.options())
}
