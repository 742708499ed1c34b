package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Settings keys.
const (
	KeyTheme      = "theme"
	KeyStore      = "store"
	KeyScores     = "scores"
	KeyDB         = "db"
	KeyFPS        = "fps"
	KeyLogLevel   = "log_level"
	KeyThemesFile = "themes_file"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Settings are the launcher preferences: a yaml file overridden by ARCADE_*
// environment variables and by bound command-line flags.
type Settings struct {
	v    *viper.Viper
	path string
}

// DefaultSettingsPath returns ~/.arcade/settings.yaml, or a relative path
// when the home directory is unknown.
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".arcade", "settings.yaml")
	}
	return filepath.Join(home, ".arcade", "settings.yaml")
}

// LoadSettings reads the settings file at path. A missing file leaves the
// defaults in place.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetDefault(KeyTheme, "Classic")
	v.SetDefault(KeyStore, StoreFile)
	v.SetDefault(KeyScores, "~/.arcade/scores.yaml")
	v.SetDefault(KeyDB, "~/.arcade/arcade.db")
	v.SetDefault(KeyFPS, 60)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyThemesFile, "~/.arcade/themes.yaml")

	v.SetEnvPrefix("ARCADE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("config: read settings %s: %w", path, err)
	}
	return &Settings{v: v, path: path}, nil
}

func isNotExist(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.Is(err, fs.ErrNotExist) || errors.As(err, &nf)
}

// Viper exposes the underlying instance for flag binding.
func (s *Settings) Viper() *viper.Viper { return s.v }

// Path returns the settings file path.
func (s *Settings) Path() string { return s.path }

func (s *Settings) Theme() string      { return s.v.GetString(KeyTheme) }
func (s *Settings) Store() string      { return strings.ToLower(s.v.GetString(KeyStore)) }
func (s *Settings) ScoresPath() string { return s.v.GetString(KeyScores) }
func (s *Settings) DBPath() string     { return s.v.GetString(KeyDB) }
func (s *Settings) LogLevel() string   { return s.v.GetString(KeyLogLevel) }
func (s *Settings) ThemesFile() string { return s.v.GetString(KeyThemesFile) }

// FPS returns the tick rate, never below 1.
func (s *Settings) FPS() int {
	return max(s.v.GetInt(KeyFPS), 1)
}

// Validate checks values that have a fixed set of choices.
func (s *Settings) Validate() error {
	switch s.Store() {
	case StoreFile, StoreSQLite:
		return nil
	default:
		return fmt.Errorf("config: unknown store %q (file, sqlite)", s.Store())
	}
}

// SaveTheme records the chosen theme in the settings file. Only the theme
// key changes; other keys already in the file are kept and flag or
// environment overrides are not written.
func (s *Settings) SaveTheme(name string) error {
	s.v.Set(KeyTheme, name)

	fv := viper.New()
	fv.SetConfigFile(s.path)
	fv.SetConfigType("yaml")
	if err := fv.ReadInConfig(); err != nil && !isNotExist(err) {
		return fmt.Errorf("config: read settings %s: %w", s.path, err)
	}
	fv.Set(KeyTheme, name)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("config: cannot create directory: %w", err)
	}
	if err := fv.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("config: write settings %s: %w", s.path, err)
	}
	return nil
}
