//go:build windows

// Package stderr forwards fd 2 output to the log. The Windows audio
// backend writes nothing there, so capture is a no-op.
package stderr

import "github.com/rs/zerolog"

func Start(zerolog.Logger) error { return nil }

func Stop() {}
