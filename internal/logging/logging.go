// Package logging sets up the application's zerolog logger. The terminal
// belongs to the TUI, so records go to a file only.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

const logFile = "classbell/classbell.log"

// Config holds logger configuration.
type Config struct {
	Path  string        // log file, default $XDG_STATE_HOME/classbell/classbell.log
	Level zerolog.Level // minimum level
}

// DefaultPath returns the XDG log file location, creating its directory.
func DefaultPath() (string, error) {
	return xdg.StateFile(logFile)
}

// New opens the log file for appending and returns a logger writing to it.
// The returned closer closes the file.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	path := cfg.Path
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("resolve log path: %w", err)
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	log := zerolog.New(f).
		Level(cfg.Level).
		With().
		Timestamp().
		Str("app", "classbell").
		Logger()

	log.Debug().Str("path", path).Msg("logger initialized")
	return log, f, nil
}
