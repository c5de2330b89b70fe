// internal/player/state.go
package player

// State is the playback state of the current cue worker.
//
//	┌──────────┐      play       ┌──────────┐
//	│  Stopped │ ───────────────▶│  Playing │
//	└──────────┘                 └──────────┘
//	     ▲                          │  ▲   │
//	     │ stop / finished    pause │  │   │ stop / finished
//	     │                          ▼  │   │
//	     │                       ┌──────────┐
//	     └───────────────────────│  Paused  │
//	                             └──────────┘
//
// Only the most recent worker reports state. A worker that was replaced by a
// newer Play call no longer affects State().
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a cue is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// Command is a control request delivered to a playback worker.
type Command int

const (
	CmdPause Command = iota
	CmdResume
	CmdStop
)

func (c Command) String() string {
	switch c {
	case CmdPause:
		return "pause"
	case CmdResume:
		return "resume"
	case CmdStop:
		return "stop"
	default:
		return "unknown"
	}
}
