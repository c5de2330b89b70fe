package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

const appName = "classbell"

// Defaults, in seconds unless noted.
const (
	DefaultClassTime = 5400
	DefaultRestTime  = 1200
)

type Config struct {
	ClassTime uint64 `koanf:"class_time"`
	RestTime  uint64 `koanf:"rest_time"`
	AssetsDir string `koanf:"assets_dir"` // cue files are resolved against it, default "."

	Cues   CuesConfig   `koanf:"cues"`
	Alert  WindowConfig `koanf:"alert"`  // random wait before the alert cue
	Resume WindowConfig `koanf:"resume"` // random wait between alert and resume cues

	Volume        *float64 `koanf:"volume"`        // 0.0-1.0 (default: 1.0)
	Notifications *bool    `koanf:"notifications"` // desktop notification per phase (default: true)
	MPRIS         *bool    `koanf:"mpris"`         // media key control over D-Bus (default: true)
	LogLevel      string   `koanf:"log_level"`     // zerolog level name (default: "info")
}

// CuesConfig names the audio file of each cue.
type CuesConfig struct {
	ClassStart string `koanf:"class_start"`
	Alert      string `koanf:"alert"`
	Resume     string `koanf:"resume"`
	Rest       string `koanf:"rest"`
}

// WindowConfig is an inclusive range of seconds.
type WindowConfig struct {
	Min uint64 `koanf:"min"`
	Max uint64 `koanf:"max"`
}

func Load() (*Config, error) {
	return LoadFiles(getConfigPaths()...)
}

// LoadFiles merges the given TOML files, later files overriding earlier ones.
// Missing files are skipped.
func LoadFiles(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		AssetsDir: ".",
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.AssetsDir = expandPath(cfg.AssetsDir)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/classbell/config.toml
	paths = append(paths, filepath.Join(xdg.ConfigHome, appName, "config.toml"))

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetClassTime returns the class phase length with the default applied.
func (c *Config) GetClassTime() uint64 {
	if c.ClassTime == 0 {
		return DefaultClassTime
	}
	return c.ClassTime
}

// GetRestTime returns the rest phase length with the default applied.
func (c *Config) GetRestTime() uint64 {
	if c.RestTime == 0 {
		return DefaultRestTime
	}
	return c.RestTime
}

// GetCues returns cue file names with defaults applied. Relative names are
// left relative to AssetsDir.
func (c *Config) GetCues() CuesConfig {
	cues := c.Cues
	if cues.ClassStart == "" {
		cues.ClassStart = "class_work.mp3"
	}
	if cues.Alert == "" {
		cues.Alert = "alert.mp3"
	}
	if cues.Resume == "" {
		cues.Resume = "tick_study.mp3"
	}
	if cues.Rest == "" {
		cues.Rest = "rest.mp3"
	}
	cues.ClassStart = expandPath(cues.ClassStart)
	cues.Alert = expandPath(cues.Alert)
	cues.Resume = expandPath(cues.Resume)
	cues.Rest = expandPath(cues.Rest)
	return cues
}

// GetAlertWindow returns the alert wait range. An unset or inverted range
// falls back to 180-300 seconds.
func (c *Config) GetAlertWindow() WindowConfig {
	return c.Alert.withDefault(WindowConfig{Min: 180, Max: 300})
}

// GetResumeWindow returns the resume wait range, 10-15 seconds by default.
func (c *Config) GetResumeWindow() WindowConfig {
	return c.Resume.withDefault(WindowConfig{Min: 10, Max: 15})
}

// withDefault replaces an unset or inverted range with def.
func (w WindowConfig) withDefault(def WindowConfig) WindowConfig {
	if w.Max == 0 || w.Max <= w.Min {
		return def
	}
	return w
}

// GetVolume returns the cue volume clamped to 0.0-1.0.
func (c *Config) GetVolume() float64 {
	if c.Volume == nil {
		return 1
	}
	return min(max(*c.Volume, 0), 1)
}

// NotificationsEnabled reports whether phase changes raise desktop
// notifications.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// MPRISEnabled reports whether the session is exposed over MPRIS.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}

// GetLogLevel returns the configured zerolog level, info when unset or unknown.
func (c *Config) GetLogLevel() zerolog.Level {
	if c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
