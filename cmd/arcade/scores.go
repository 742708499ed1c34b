package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

var flagReset bool

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top scores for one game, or for every game.

A game is named by its id or its title. Games sharing a title, such as
pong and pong_duo, share one list.

Examples:
  arcade scores
  arcade scores snake
  arcade scores "Space Shooter"
  arcade scores breakout --reset`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Clear the scores instead of showing them")
}

// resolveTitle accepts a game id or a title, case-insensitively.
func resolveTitle(name string) (string, error) {
	if registry.Exists(name) {
		return registry.TitleOf(name), nil
	}
	for _, t := range registry.Titles() {
		if strings.EqualFold(t, name) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown game %q, run 'arcade list' to see available games", name)
}

func runScores(cmd *cobra.Command, args []string) error {
	titles := registry.Titles()
	if len(args) == 1 {
		title, err := resolveTitle(args[0])
		if err != nil {
			return err
		}
		titles = []string{title}
	}

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	if flagReset {
		if len(args) == 1 {
			a.board.Reset(titles...)
		} else {
			a.board.Reset()
		}
		fmt.Fprintf(out, "Cleared scores for %s.\n", strings.Join(titles, ", "))
		return nil
	}

	for i, title := range titles {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printScores(out, title, a.board.Entries(title))
	}
	return nil
}

func printScores(out io.Writer, title string, entries []storage.ScoreEntry) {
	fmt.Fprintf(out, "High Scores - %s\n", title)
	fmt.Fprintln(out)

	if len(entries) == 0 {
		fmt.Fprintln(out, "  No scores recorded yet.")
		return
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, e := range entries {
		date := "-"
		if !e.CreatedAt.IsZero() {
			date = e.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(out, "  %-4d  %-10d  %s\n", i+1, e.Score, date)
	}
}
