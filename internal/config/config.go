// Package config loads and saves allowance's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/theirongolddev/allowance/internal/model"
)

// Environment variables that override the config file.
const (
	EnvDataDir  = "ALLOWANCE_DATA_DIR"
	EnvLogLevel = "ALLOWANCE_LOG_LEVEL"
	EnvTheme    = "ALLOWANCE_THEME"
)

// Config holds all allowance configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Users      UsersConfig      `toml:"users"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir     string `toml:"data_dir,omitempty"`
	DefaultUser string `toml:"default_user,omitempty"`
	AssumeYes   bool   `toml:"assume_yes"`
}

// UsersConfig holds display labels for the two users.
type UsersConfig struct {
	User1 string `toml:"user1,omitempty"`
	User2 string `toml:"user2,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Users: UsersConfig{
			User1: model.DefaultLabels[model.User1],
			User2: model.DefaultLabels[model.User2],
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "allowance")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "allowance")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads .env from the working directory, then the config file, then
// applies environment overrides. A missing file yields defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.General.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Appearance.Theme = v
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// UserLabel returns the display label for id.
func (c Config) UserLabel(id model.UserID) string {
	var label string
	switch id {
	case model.User1:
		label = c.Users.User1
	case model.User2:
		label = c.Users.User2
	}
	if label = strings.TrimSpace(label); label != "" {
		return label
	}
	if l, ok := model.DefaultLabels[id]; ok {
		return l
	}
	return string(id)
}

// StartUser returns the configured default user, or "" when unset or not
// one of the known users.
func (c Config) StartUser() model.UserID {
	id := model.UserID(c.General.DefaultUser)
	if !id.Valid() {
		return ""
	}
	return id
}
