package ticker

import "time"

// PhaseChange is emitted when the session loop moves to another phase.
type PhaseChange struct {
	Previous Phase
	Current  Phase
	At       time.Time
}

// CueEvent is emitted after a cue started sounding.
type CueEvent struct {
	Cue  Cue
	Path string
}

// ErrorEvent is emitted when a cue could not be played. The session keeps
// running; only that cue is silent.
type ErrorEvent struct {
	Cue  Cue
	Path string
	Err  error
}
