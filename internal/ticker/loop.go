package ticker

import (
	"context"
	"time"
)

// loop runs class and rest phases until stop is closed or ctx is done.
// Configuration is re-read at every check, so changes made while it runs take
// effect at the next poll.
func (t *Ticker) loop(ctx context.Context, stop <-chan struct{}) {
	t.mu.Lock()
	t.s.derive(time.Now())
	t.s.refreshEnd(time.Now())
	t.mu.Unlock()

	for active(ctx, stop) {
		t.enterPhase(PhaseClass)
		t.playCue(ctx, stop, CueClassStart)

		for t.inClass() && active(ctx, stop) {
			if !t.wait(ctx, stop, t.pick(t.alert)) {
				continue
			}
			t.playCue(ctx, stop, CueAlert)
			t.enterPhase(PhaseBreak)

			done := t.wait(ctx, stop, t.pick(t.resume))
			if !active(ctx, stop) {
				break
			}
			t.enterPhase(PhaseClass)
			if done {
				t.playCue(ctx, stop, CueResume)
			}
		}
		if !active(ctx, stop) {
			return
		}

		t.enterPhase(PhaseRest)
		t.playCue(ctx, stop, CueRest)
		t.wait(ctx, stop, t.RestTime())

		if !active(ctx, stop) {
			// Stopped mid-rest: keep elapsed so Resume picks up from here.
			return
		}
		t.mu.Lock()
		if t.s.elapsed >= t.s.classTime {
			now := time.Now()
			t.s.elapsed = 0
			t.s.start = now
			t.s.refreshEnd(now)
			t.log.Debug().Msg("new class phase")
		}
		t.mu.Unlock()
	}
}

func active(ctx context.Context, stop <-chan struct{}) bool {
	select {
	case <-stop:
		return false
	case <-ctx.Done():
		return false
	default:
		return true
	}
}

// inClass re-derives elapsed time and reports whether the class phase is
// still under way.
func (t *Ticker) inClass() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.s.derive(time.Now())
	return t.s.elapsed < t.s.classTime
}

func (t *Ticker) pick(w Window) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return w.Pick(t.rng)
}

// wait sleeps for secs seconds. It returns false when the wait was cut short
// by stop, ctx or the elapsed time passing class plus rest time.
func (t *Ticker) wait(ctx context.Context, stop <-chan struct{}, secs uint64) bool {
	if t.tick() {
		return false
	}
	if secs == 0 {
		return active(ctx, stop)
	}

	deadline := time.NewTimer(seconds(secs))
	defer deadline.Stop()
	poll := time.NewTicker(t.poll)
	defer poll.Stop()

	for {
		select {
		case <-stop:
			return false
		case <-ctx.Done():
			return false
		case <-deadline.C:
			t.tick()
			return true
		case <-poll.C:
			if t.tick() {
				t.log.Debug().Uint64("seconds", secs).Msg("wait aborted, elapsed time past class and rest")
				return false
			}
		}
	}
}

// tick re-derives elapsed time and reports an overrun.
func (t *Ticker) tick() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.s.derive(time.Now())
	return t.s.overrun()
}

func (t *Ticker) enterPhase(p Phase) {
	t.mu.Lock()
	prev := t.s.phase
	t.s.phase = p
	subs := t.subs
	t.mu.Unlock()

	if prev == p {
		return
	}
	e := PhaseChange{Previous: prev, Current: p, At: time.Now()}
	for _, sub := range subs {
		sub.sendPhase(e)
	}
}

// playCue asks the player for c while the loop is still active. A failure
// silences only this cue.
func (t *Ticker) playCue(ctx context.Context, stop <-chan struct{}, c Cue) {
	if !active(ctx, stop) {
		return
	}
	path := t.cues.Path(c)
	err := t.player.Play(path)
	if !active(ctx, stop) {
		// Stopped while the player was starting the cue.
		if err == nil {
			if serr := t.player.Stop(); serr != nil {
				t.log.Warn().Err(serr).Str("cue", c.String()).Msg("late cue not stopped")
			}
		}
		t.log.Debug().Str("cue", c.String()).Msg("cue dropped, session stopped")
		return
	}

	t.mu.Lock()
	subs := t.subs
	t.mu.Unlock()

	if err != nil {
		t.log.Warn().Err(err).Str("cue", c.String()).Str("path", path).Msg("cue not played")
		e := ErrorEvent{Cue: c, Path: path, Err: err}
		for _, sub := range subs {
			sub.sendError(e)
		}
		return
	}
	t.log.Debug().Str("cue", c.String()).Msg("cue played")
	e := CueEvent{Cue: c, Path: path}
	for _, sub := range subs {
		sub.sendCue(e)
	}
}
