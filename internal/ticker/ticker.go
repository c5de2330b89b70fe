// Package ticker runs a classroom session: class phases with randomized
// attention cues, followed by rest phases, repeated until stopped.
//
// The session state lives in one struct behind one mutex, so Snapshot always
// returns a consistent view. The session loop runs on the goroutine that calls
// Start or Resume and is cancelled through a per-loop stop channel or the
// caller's context; every wait re-derives elapsed time on a short poll.
package ticker

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrClosed is returned by Start and Resume after Close.
var ErrClosed = errors.New("ticker closed")

// CueStopError is returned by Stop when the session stopped but the player
// could not silence the sounding cue.
type CueStopError struct {
	Err error
}

func (e *CueStopError) Error() string { return "stop cue: " + e.Err.Error() }

func (e *CueStopError) Unwrap() error { return e.Err }

const (
	DefaultClassTime = 5400
	DefaultRestTime  = 1200

	defaultPoll = 100 * time.Millisecond
)

var (
	DefaultAlertWindow  = Window{Min: 180, Max: 300}
	DefaultResumeWindow = Window{Min: 10, Max: 15}
)

// CuePlayer plays the session's cues. Play must not block for the length of
// the cue.
type CuePlayer interface {
	Play(path string) error
	Stop() error
}

// Options configures a Ticker. Zero values select defaults.
type Options struct {
	ClassTime uint64 // seconds
	RestTime  uint64 // seconds
	Alert     Window // wait before the alert cue
	Resume    Window // wait between the alert and resume cues
	Cues      Cues
	Poll      time.Duration // how often waits re-derive elapsed time
	Rand      *rand.Rand
	Logger    zerolog.Logger
}

// Ticker is the session state machine. Its zero value is not usable; call New.
type Ticker struct {
	player CuePlayer
	cues   Cues
	alert  Window
	resume Window
	poll   time.Duration
	log    zerolog.Logger

	runMu sync.Mutex // serializes loop hand-over in Start/Resume

	mu      sync.Mutex
	s       session
	rng     *rand.Rand
	stop    chan struct{} // closed to cancel the running loop
	done    chan struct{} // closed when the running loop returned
	handoff bool          // a Start or Resume is waiting for the previous loop
	stops   uint64        // Stop calls so far
	subs    []*Subscription
	closed  bool
}

// New creates an idle Ticker that plays cues through p.
func New(p CuePlayer, opts Options) *Ticker {
	t := &Ticker{
		player: p,
		cues:   opts.Cues,
		alert:  opts.Alert,
		resume: opts.Resume,
		poll:   opts.Poll,
		rng:    opts.Rand,
		log:    opts.Logger.With().Str("component", "ticker").Logger(),
		s: session{
			status:    StatusIdle,
			phase:     PhaseIdle,
			classTime: opts.ClassTime,
			restTime:  opts.RestTime,
		},
	}
	if t.s.classTime == 0 {
		t.s.classTime = DefaultClassTime
	}
	if t.s.restTime == 0 {
		t.s.restTime = DefaultRestTime
	}
	if t.alert == (Window{}) {
		t.alert = DefaultAlertWindow
	}
	if t.resume == (Window{}) {
		t.resume = DefaultResumeWindow
	}
	if t.cues == (Cues{}) {
		t.cues = DefaultCues()
	}
	if t.poll <= 0 {
		t.poll = defaultPoll
	}
	if t.rng == nil {
		t.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // cue timing, not security
	}

	now := time.Now()
	t.s.start = now
	t.s.refreshEnd(now)
	return t
}

// Start resets elapsed time to zero and runs the session loop until Stop is
// called or ctx is done. It blocks, so callers run it on its own goroutine.
// A loop that is already running is stopped and awaited first. While that
// handoff is pending, further Start and Resume calls return nil at once, and
// a Stop cancels the pending start.
func (t *Ticker) Start(ctx context.Context) error {
	return t.run(ctx, true)
}

// Resume runs the session loop from the current elapsed time and phase
// state. Like Start, it blocks and supersedes a running loop.
func (t *Ticker) Resume(ctx context.Context) error {
	return t.run(ctx, false)
}

func (t *Ticker) run(ctx context.Context, reset bool) error {
	t.mu.Lock()
	if t.handoff {
		t.mu.Unlock()
		t.log.Debug().Bool("reset", reset).Msg("start coalesced with pending start")
		return nil
	}
	t.handoff = true
	stops := t.stops
	t.mu.Unlock()

	t.runMu.Lock()
	t.cancelLoop()

	t.mu.Lock()
	t.handoff = false
	if t.closed {
		t.mu.Unlock()
		t.runMu.Unlock()
		return ErrClosed
	}
	if t.stops != stops {
		t.mu.Unlock()
		t.runMu.Unlock()
		t.log.Debug().Msg("pending start cancelled by stop")
		return nil
	}
	now := time.Now()
	if reset {
		t.s.elapsed = 0
		t.s.start = now
		t.s.refreshEnd(now)
	} else {
		// Time spent stopped does not count towards the class phase.
		t.s.rewind(now)
	}
	t.s.status = StatusRunning
	stop := make(chan struct{})
	done := make(chan struct{})
	t.stop, t.done = stop, done
	t.mu.Unlock()
	t.runMu.Unlock()

	defer close(done)

	if reset {
		t.log.Info().Msg("session started")
	} else {
		t.log.Info().Uint64("elapsed", t.Elapsed()).Msg("session resumed")
	}

	t.loop(ctx, stop)

	t.mu.Lock()
	if t.stop == stop {
		// Ended by ctx rather than Stop.
		t.stop = nil
		t.s.status = StatusStopped
	}
	t.mu.Unlock()

	t.log.Info().Msg("session loop ended")
	return ctx.Err()
}

// cancelLoop stops the running loop, if any, and waits for it to return.
func (t *Ticker) cancelLoop() {
	t.mu.Lock()
	stop, done := t.stop, t.done
	t.stop = nil
	t.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	if done != nil {
		<-done
	}
}

// Stop requests the session loop to end and stops the sounding cue. It does
// not wait for the loop and keeps elapsed time, so Resume continues from here.
func (t *Ticker) Stop() error {
	t.mu.Lock()
	t.stops++
	stop := t.stop
	t.stop = nil
	if t.s.status == StatusRunning {
		t.s.status = StatusStopped
	}
	t.mu.Unlock()

	if stop != nil {
		close(stop)
		t.log.Info().Msg("session stop requested")
	}
	if err := t.player.Stop(); err != nil {
		t.log.Warn().Err(err).Msg("cue not stopped")
		return &CueStopError{Err: err}
	}
	return nil
}

// Wait blocks until the most recently started loop has returned.
func (t *Ticker) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Close stops the session, waits for the loop and ends all subscriptions.
func (t *Ticker) Close() error {
	err := t.Stop()
	t.runMu.Lock()
	t.cancelLoop()
	t.Wait()

	t.mu.Lock()
	t.closed = true
	subs := t.subs
	t.subs = nil
	t.mu.Unlock()
	t.runMu.Unlock()

	for _, sub := range subs {
		sub.close()
	}
	return err
}

// Subscribe creates a new event subscription.
func (t *Ticker) Subscribe() *Subscription {
	t.mu.Lock()
	defer t.mu.Unlock()
	sub := newSubscription()
	if t.closed {
		sub.close()
		return sub
	}
	t.subs = append(t.subs, sub)
	return sub
}

// SetElapsed overrides the elapsed time and rewinds the start marker so that
// elapsed keeps deriving from it. It does not change whether the loop runs.
func (t *Ticker) SetElapsed(sec uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.s.elapsed = sec
	t.s.rewind(time.Now())
}

// SetClassTime changes the class phase length. The loop picks it up at its
// next check.
func (t *Ticker) SetClassTime(sec uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.s.classTime = sec
	t.s.refreshEnd(time.Now())
}

// SetRestTime changes the rest phase length.
func (t *Ticker) SetRestTime(sec uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.s.restTime = sec
}

func (t *Ticker) ClassTime() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.s.classTime
}

func (t *Ticker) RestTime() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.s.restTime
}

func (t *Ticker) Elapsed() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.s.elapsed
}

// EndTime is the wall-clock time the class phase is expected to end.
func (t *Ticker) EndTime() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.s.end
}

// Running reports whether the session loop is active.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.s.status == StatusRunning
}

// Snapshot returns all observable fields at once.
func (t *Ticker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.s.snapshot()
}
