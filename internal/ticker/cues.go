package ticker

import "path/filepath"

// Cue identifies one of the session's audio cues.
type Cue int

const (
	// CueClassStart sounds when a class phase begins.
	CueClassStart Cue = iota
	// CueAlert sounds at a random point during class.
	CueAlert
	// CueResume sounds a few seconds after the alert.
	CueResume
	// CueRest sounds when the rest phase begins.
	CueRest
)

func (c Cue) String() string {
	switch c {
	case CueClassStart:
		return "class start"
	case CueAlert:
		return "alert"
	case CueResume:
		return "resume study"
	case CueRest:
		return "rest"
	default:
		return "unknown"
	}
}

// Cues maps each cue to an audio file.
type Cues struct {
	ClassStart string
	Alert      string
	Resume     string
	Rest       string
}

// DefaultCues returns the stock cue file names, relative to the working directory.
func DefaultCues() Cues {
	return Cues{
		ClassStart: "class_work.mp3",
		Alert:      "alert.mp3",
		Resume:     "tick_study.mp3",
		Rest:       "rest.mp3",
	}
}

// Path returns the file for c.
func (cs Cues) Path(c Cue) string {
	switch c {
	case CueClassStart:
		return cs.ClassStart
	case CueAlert:
		return cs.Alert
	case CueResume:
		return cs.Resume
	case CueRest:
		return cs.Rest
	default:
		return ""
	}
}

// In resolves relative cue paths against dir.
func (cs Cues) In(dir string) Cues {
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) || dir == "" {
			return p
		}
		return filepath.Join(dir, p)
	}
	return Cues{
		ClassStart: join(cs.ClassStart),
		Alert:      join(cs.Alert),
		Resume:     join(cs.Resume),
		Rest:       join(cs.Rest),
	}
}
