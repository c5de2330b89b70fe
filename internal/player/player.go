// Package player plays short audio cues. Each Play call runs the cue on its
// own worker goroutine which is controlled through a command channel.
package player

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/rs/zerolog"
)

var (
	// ErrNoPlayback is returned when no cue was ever started.
	ErrNoPlayback = errors.New("no cue playback")
	// ErrWorkerExited is returned when the cue already finished or stopped.
	ErrWorkerExited = errors.New("cue playback already ended")
	// ErrCommandDropped is returned when the worker's command queue is full.
	ErrCommandDropped = errors.New("cue command queue full")
	// ErrStopped is returned by Play when Stop was called while the previous
	// cue was being handed over.
	ErrStopped = errors.New("cue stopped before it started")
)

const (
	defaultHandoff = 500 * time.Millisecond
	commandBuffer  = 8
	resampleQual   = 4
)

// Options configures a Player. Zero values select defaults.
type Options struct {
	Device  Device        // defaults to Speaker()
	Decode  DecodeFunc    // defaults to Decode
	Handoff time.Duration // how long Play waits for the previous cue to stop
	Logger  zerolog.Logger
}

// worker is one playback. Its command channel is the only way to reach it.
type worker struct {
	path string
	cmds chan Command
	done chan struct{}
}

// Player owns a single playback slot. Starting a cue stops the previous one
// first and waits for it, bounded by the handoff timeout; a worker that does
// not acknowledge in time is abandoned and finishes on its own.
type Player struct {
	dev     Device
	decode  DecodeFunc
	handoff time.Duration
	log     zerolog.Logger

	playMu sync.Mutex // serializes Play

	mu     sync.Mutex
	cur    *worker
	state  State
	volume float64
	vol    *effects.Volume // volume effect of cur
	stops  uint64          // Stop calls so far
}

// New creates a Player.
func New(opts Options) *Player {
	p := &Player{
		dev:     opts.Device,
		decode:  opts.Decode,
		handoff: opts.Handoff,
		log:     opts.Logger.With().Str("component", "player").Logger(),
		volume:  1,
	}
	if p.dev == nil {
		p.dev = Speaker()
	}
	if p.decode == nil {
		p.decode = Decode
	}
	if p.handoff <= 0 {
		p.handoff = defaultHandoff
	}
	return p
}

// Play starts the cue at path. It returns once the cue is sounding, or with
// the error that prevented it; a failure only affects this cue. A Stop that
// arrives while the previous cue is handed over cancels this one.
func (p *Player) Play(path string) error {
	p.playMu.Lock()
	defer p.playMu.Unlock()

	p.mu.Lock()
	stops := p.stops
	p.mu.Unlock()

	p.retire()

	w := &worker{
		path: path,
		cmds: make(chan Command, commandBuffer),
		done: make(chan struct{}),
	}
	p.mu.Lock()
	if p.stops != stops {
		p.mu.Unlock()
		p.log.Debug().Str("path", path).Msg("cue cancelled during handoff")
		return fmt.Errorf("play %s: %w", filepath.Base(path), ErrStopped)
	}
	p.cur = w
	p.state = Stopped
	p.vol = nil
	p.mu.Unlock()

	started := make(chan error, 1)
	go p.run(w, started)

	if err := <-started; err != nil {
		return fmt.Errorf("play %s: %w", filepath.Base(path), err)
	}
	return nil
}

// retire stops the current worker and waits for it to exit.
func (p *Player) retire() {
	p.mu.Lock()
	w := p.cur
	p.mu.Unlock()
	if w == nil {
		return
	}

	select {
	case <-w.done:
		return
	case w.cmds <- CmdStop:
	default:
	}

	timer := time.NewTimer(p.handoff)
	defer timer.Stop()
	select {
	case <-w.done:
	case <-timer.C:
		p.log.Warn().
			Str("path", w.path).
			Dur("handoff", p.handoff).
			Msg("previous cue did not stop in time, abandoning it")
	}
}

func (p *Player) run(w *worker, started chan<- error) {
	defer close(w.done)

	stream, format, err := p.decode(w.path)
	if err != nil {
		started <- err
		return
	}
	defer stream.Close()

	rate, err := p.dev.Init(format)
	if err != nil {
		started <- fmt.Errorf("open audio output: %w", err)
		return
	}

	var s beep.Streamer = stream
	if format.SampleRate != rate {
		s = beep.Resample(resampleQual, format.SampleRate, rate, stream)
	}
	ctrl := &beep.Ctrl{Streamer: s}

	p.mu.Lock()
	vol := &effects.Volume{
		Streamer: ctrl,
		Base:     2,
		Volume:   levelToVolume(p.volume),
		Silent:   p.volume == 0,
	}
	if p.cur == w {
		p.vol = vol
		p.state = Playing
	}
	p.mu.Unlock()

	finished := make(chan struct{})
	var once sync.Once
	p.dev.Play(beep.Seq(vol, beep.Callback(func() {
		once.Do(func() { close(finished) })
	})))
	started <- nil

	p.log.Debug().Str("path", w.path).Msg("cue started")

	for {
		select {
		case cmd := <-w.cmds:
			switch cmd {
			case CmdPause:
				p.dev.Lock()
				ctrl.Paused = true
				p.dev.Unlock()
				p.setState(w, Paused)
			case CmdResume:
				p.dev.Lock()
				ctrl.Paused = false
				p.dev.Unlock()
				p.setState(w, Playing)
			case CmdStop:
				// A nil streamer makes the mixer drop the cue on its next pass.
				p.dev.Lock()
				ctrl.Streamer = nil
				p.dev.Unlock()
				p.setState(w, Stopped)
				p.log.Debug().Str("path", w.path).Msg("cue stopped")
				return
			}
		case <-finished:
			p.setState(w, Stopped)
			p.log.Debug().Str("path", w.path).Msg("cue finished")
			return
		}
	}
}

func (p *Player) setState(w *worker, s State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur != w {
		return
	}
	p.state = s
	if s == Stopped {
		p.vol = nil
	}
}

// send delivers cmd to the current worker without blocking.
func (p *Player) send(cmd Command) error {
	p.mu.Lock()
	w := p.cur
	p.mu.Unlock()
	if w == nil {
		return ErrNoPlayback
	}

	select {
	case <-w.done:
		return ErrWorkerExited
	default:
	}
	select {
	case w.cmds <- cmd:
		return nil
	case <-w.done:
		return ErrWorkerExited
	default:
		return fmt.Errorf("%s: %w", cmd, ErrCommandDropped)
	}
}

// Pause suspends the current cue without discarding it.
func (p *Player) Pause() error { return p.send(CmdPause) }

// Resume continues a paused cue.
func (p *Player) Resume() error { return p.send(CmdResume) }

// Stop halts the current cue. Stopping when nothing sounds is not an error.
func (p *Player) Stop() error {
	p.mu.Lock()
	p.stops++
	p.mu.Unlock()

	err := p.send(CmdStop)
	if errors.Is(err, ErrNoPlayback) || errors.Is(err, ErrWorkerExited) {
		return nil
	}
	return err
}

// State returns the state of the most recent cue.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Done returns a channel closed when the most recent cue's worker exits.
// It is nil before the first Play.
func (p *Player) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur == nil {
		return nil
	}
	return p.cur.done
}

// Close stops the current cue and waits for its worker, bounded by the
// handoff timeout.
func (p *Player) Close() {
	p.playMu.Lock()
	defer p.playMu.Unlock()
	p.retire()
}
