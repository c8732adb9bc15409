package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// DefaultCheckoutURL is the offer page visitors are sent to on acceptance.
const DefaultCheckoutURL = "https://pay.cakto.com.br/ryddo72_692021"

// Config holds runtime settings read from the environment.
type Config struct {
	// DBPath is the funnel event log. Empty means the XDG default.
	DBPath string `env:"FUNNEL_DB"`

	// CheckoutURL is opened when the visitor accepts the offer.
	CheckoutURL string `env:"FUNNEL_CHECKOUT_URL" envDefault:"https://pay.cakto.com.br/ryddo72_692021"`

	// ContentPath overrides the embedded question catalog.
	ContentPath string `env:"FUNNEL_CONTENT"`

	// LogPath is where the TUI writes its log. Empty means the XDG default.
	LogPath string `env:"FUNNEL_LOG"`

	// Player is the external audio player used for media cues, e.g. "mpv --no-video".
	Player string `env:"FUNNEL_PLAYER"`

	// MediaDir resolves relative cue sources. Empty means the directory
	// next to the database.
	MediaDir string `env:"FUNNEL_MEDIA"`

	// Mute disables every media cue, including the terminal bell.
	Mute bool `env:"FUNNEL_MUTE" envDefault:"false"`

	// LegacyRejection routes failures to the old rejection screen.
	LegacyRejection bool `env:"FUNNEL_LEGACY_REJECTION" envDefault:"false"`

	// Verbose enables debug logging.
	Verbose bool `env:"FUNNEL_VERBOSE" envDefault:"false"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.CheckoutURL == "" {
		cfg.CheckoutURL = DefaultCheckoutURL
	}
	return cfg, nil
}

// ResolveDBPath returns DBPath if set, otherwise
// $XDG_DATA_HOME/funnel/funnel.db (or ~/.local/share/funnel/funnel.db).
// The parent directory is created.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, EnsureDir(c.DBPath)
	}
	return xdgPath("XDG_DATA_HOME", filepath.Join(".local", "share"), "funnel.db")
}

// ResolveMediaDir returns MediaDir if set, otherwise a "media" directory
// beside dbPath.
func (c Config) ResolveMediaDir(dbPath string) string {
	if c.MediaDir != "" {
		return c.MediaDir
	}
	return filepath.Join(filepath.Dir(dbPath), "media")
}

// ResolveLogPath returns LogPath if set, otherwise
// $XDG_STATE_HOME/funnel/funnel.log (or ~/.local/state/funnel/funnel.log).
func (c Config) ResolveLogPath() (string, error) {
	if c.LogPath != "" {
		return c.LogPath, EnsureDir(c.LogPath)
	}
	return xdgPath("XDG_STATE_HOME", filepath.Join(".local", "state"), "funnel.log")
}

func xdgPath(envVar, fallback, name string) (string, error) {
	base := os.Getenv(envVar)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, fallback)
	}
	p := filepath.Join(base, "funnel", name)
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
