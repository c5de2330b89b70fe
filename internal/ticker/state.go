package ticker

import (
	"math/rand/v2"
	"time"
)

// Status is the lifecycle of the session loop.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusRunning:
		return "Running"
	case StatusStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Phase is where the session loop is within a class/rest cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	// PhaseClass is study time between cues.
	PhaseClass
	// PhaseBreak is the short pause between the alert cue and the resume cue.
	PhaseBreak
	// PhaseRest follows the class phase.
	PhaseRest
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseClass:
		return "Class"
	case PhaseBreak:
		return "Break"
	case PhaseRest:
		return "Rest"
	default:
		return "Unknown"
	}
}

// Window is an inclusive range of seconds a randomized wait is drawn from.
type Window struct {
	Min uint64
	Max uint64
}

// Pick draws a uniformly distributed value in [Min, Max]. A window with
// Max <= Min yields 0: no wait.
func (w Window) Pick(r *rand.Rand) uint64 {
	if w.Max <= w.Min {
		return 0
	}
	return w.Min + r.Uint64N(w.Max-w.Min+1)
}

// Snapshot is a consistent view of the session, taken under one lock.
type Snapshot struct {
	Status    Status
	Phase     Phase
	ClassTime uint64 // seconds
	RestTime  uint64 // seconds
	Elapsed   uint64 // seconds since the current class phase began
	EndTime   time.Time
	NextClass time.Time
}

// Remaining returns the seconds left in the class phase, 0 once it is over.
func (s Snapshot) Remaining() uint64 {
	if s.Elapsed >= s.ClassTime {
		return 0
	}
	return s.ClassTime - s.Elapsed
}

// Progress returns the class phase completion ratio in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.ClassTime == 0 {
		return 1
	}
	return min(float64(s.Elapsed)/float64(s.ClassTime), 1)
}

// session is the mutable timing state. All fields are guarded by Ticker.mu.
type session struct {
	status    Status
	phase     Phase
	classTime uint64
	restTime  uint64
	elapsed   uint64
	start     time.Time // monotonic marker of the current class phase
	end       time.Time // wall clock, display only
}

func seconds(n uint64) time.Duration {
	return time.Duration(n) * time.Second //nolint:gosec // configured durations are far below overflow
}

// rewind moves the start marker so that elapsed derives from it again.
func (s *session) rewind(now time.Time) {
	s.start = now.Add(-seconds(s.elapsed))
	s.refreshEnd(now)
}

// derive recomputes elapsed from the start marker.
func (s *session) derive(now time.Time) {
	s.elapsed = uint64(max(now.Sub(s.start), 0) / time.Second)
}

func (s *session) refreshEnd(now time.Time) {
	var remaining uint64
	if s.elapsed < s.classTime {
		remaining = s.classTime - s.elapsed
	}
	s.end = now.Add(seconds(remaining))
}

// overrun reports the guard against totals shorter than the time already
// spent, which ends any wait early.
func (s *session) overrun() bool {
	return s.elapsed > s.classTime+s.restTime
}

func (s *session) snapshot() Snapshot {
	return Snapshot{
		Status:    s.status,
		Phase:     s.phase,
		ClassTime: s.classTime,
		RestTime:  s.restTime,
		Elapsed:   s.elapsed,
		EndTime:   s.end,
		NextClass: s.end.Add(seconds(s.restTime)),
	}
}
