package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/platform/tui"
	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
	"github.com/vovakirdan/retro-arcade/internal/theme"
)

// app bundles what every command shares: the logger, the leaderboard and
// the theme set.
type app struct {
	logger  *log.Logger
	board   *storage.Leaderboard
	themes  *theme.Set
	closers []io.Closer
}

// newLogger writes to w at the configured level. Interactive commands log to
// a file since the terminal belongs to the game.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(settings.LogLevel())
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "arcade",
	}), nil
}

// logFile opens ~/.arcade/arcade.log for appending.
func logFile() (*os.File, error) {
	path, err := storage.ExpandHome("~/.arcade/arcade.log")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// newApp sets up logging, scores and themes. With interactive set the log
// goes to a file, otherwise to stderr.
func newApp(interactive bool) (*app, error) {
	a := &app{}

	var out io.Writer = os.Stderr
	if interactive {
		f, err := logFile()
		if err != nil {
			out = io.Discard
		} else {
			out = f
			a.closers = append(a.closers, f)
		}
	}
	logger, err := newLogger(out)
	if err != nil {
		return nil, err
	}
	a.logger = logger

	board, err := openStore(logger)
	if err != nil {
		a.close()
		return nil, err
	}
	a.board = board

	a.themes = theme.NewSet()
	if path := settings.ThemesFile(); path != "" {
		expanded, err := storage.ExpandHome(path)
		if err == nil {
			skipped, err := a.themes.LoadFile(expanded)
			if err != nil {
				logger.Warn("cannot load themes", "path", expanded, "err", err)
			}
			for _, reason := range skipped {
				logger.Warn("invalid theme skipped", "reason", reason)
			}
		}
	}
	return a, nil
}

// openStore opens the configured score backend.
func openStore(logger *log.Logger) (*storage.Leaderboard, error) {
	var backend storage.Backend
	switch settings.Store() {
	case config.StoreSQLite:
		b, err := storage.OpenSQLite(settings.DBPath())
		if err != nil {
			return nil, fmt.Errorf("open score database: %w", err)
		}
		backend = b
	default:
		b, err := storage.NewFileBackend(settings.ScoresPath())
		if err != nil {
			return nil, fmt.Errorf("open score file: %w", err)
		}
		backend = b
	}
	logger.Debug("score store opened", "backend", settings.Store())
	return storage.NewLeaderboard(backend, registry.Titles(), logger), nil
}

func (a *app) options() tui.Options {
	return tui.Options{
		Store:    a.board,
		Themes:   a.themes,
		Theme:    a.themes.Resolve(settings.Theme()),
		Settings: settings,
		Logger:   a.logger,
	}
}

func (a *app) runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: settings.FPS(),
		Seed:     flagSeed,
	}
}

func (a *app) close() {
	if a.board != nil {
		if err := a.board.Close(); err != nil {
			a.logger.Warn("cannot close score store", "err", err)
		}
	}
	for _, c := range a.closers {
		_ = c.Close()
	}
}
