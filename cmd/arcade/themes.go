package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/storage"
	"github.com/vovakirdan/retro-arcade/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List color themes",
	Long: `List the built-in themes and any loaded from the themes file
(default ~/.arcade/themes.yaml). The current theme is marked with *.

Set one with --theme, ARCADE_THEME, or by pressing T in the menu.`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

func runThemes(cmd *cobra.Command, args []string) error {
	set := theme.NewSet()
	out := cmd.OutOrStdout()

	if path, err := storage.ExpandHome(settings.ThemesFile()); err == nil && path != "" {
		skipped, err := set.LoadFile(path)
		if err != nil {
			return fmt.Errorf("load themes: %w", err)
		}
		for _, reason := range skipped {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: skipped invalid theme (%s)\n", reason)
		}
	}

	current := set.Resolve(settings.Theme()).Name
	for _, name := range set.Names() {
		mark := " "
		if name == current {
			mark = "*"
		}
		fmt.Fprintf(out, "%s %s\n", mark, name)
	}
	return nil
}
