// internal/player/interface.go
package player

// Interface defines the cue player contract for dependency injection and testing.
type Interface interface {
	Play(path string) error
	Pause() error
	Resume() error
	Stop() error
	State() State
	SetVolume(level float64)
	Volume() float64
	Close()
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
