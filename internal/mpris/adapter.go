// Package mpris exposes the session over MPRIS so media keys and desktop
// widgets can start, stop and seek it.
package mpris

import (
	"context"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog"

	"github.com/llehouerou/classbell/internal/ticker"
)

// Session is the part of the ticker driven over MPRIS.
type Session interface {
	Start(ctx context.Context) error
	Resume(ctx context.Context) error
	Stop() error
	SetElapsed(sec uint64)
	Snapshot() ticker.Snapshot
}

// VolumeControl adjusts the cue volume.
type VolumeControl interface {
	SetVolume(level float64)
	Volume() float64
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // The TUI owns the lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Class Bell", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. The class
// phase is presented as the track: its length is the class time and the
// position is the elapsed time.
type playerAdapter struct {
	ctx     context.Context
	session Session
	volume  VolumeControl
	log     zerolog.Logger
}

// run starts a blocking session call in the background.
func (p *playerAdapter) run(name string, fn func(context.Context) error) {
	go func() {
		if err := fn(p.ctx); err != nil && p.ctx.Err() == nil {
			p.log.Warn().Err(err).Str("call", name).Msg("session ended with error")
		}
	}()
}

func (p *playerAdapter) running() bool {
	return p.session.Snapshot().Status == ticker.StatusRunning
}

// Next starts a fresh class phase.
func (p *playerAdapter) Next() error {
	p.run("start", p.session.Start)
	return nil
}

// Previous rewinds the current class phase to its beginning.
func (p *playerAdapter) Previous() error {
	p.session.SetElapsed(0)
	return nil
}

func (p *playerAdapter) Pause() error {
	return p.session.Stop()
}

func (p *playerAdapter) PlayPause() error {
	if p.running() {
		return p.session.Stop()
	}
	p.run("resume", p.session.Resume)
	return nil
}

func (p *playerAdapter) Stop() error {
	return p.session.Stop()
}

func (p *playerAdapter) Play() error {
	if !p.running() {
		p.run("resume", p.session.Resume)
	}
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	elapsed := int64(p.session.Snapshot().Elapsed) + int64(offset)/int64(time.Second/time.Microsecond)
	p.session.SetElapsed(uint64(max(elapsed, 0)))
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.session.SetElapsed(uint64(max(int64(position), 0) / int64(time.Second/time.Microsecond)))
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	snap := p.session.Snapshot()
	switch snap.Status {
	case ticker.StatusRunning:
		return types.PlaybackStatusPlaying, nil
	case ticker.StatusStopped:
		return types.PlaybackStatusPaused, nil
	case ticker.StatusIdle:
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap := p.session.Snapshot()
	return types.Metadata{
		TrackId: dbus.ObjectPath("/org/mpris/MediaPlayer2/Session/" + snap.Phase.String()),
		Length:  types.Microseconds((time.Duration(snap.ClassTime) * time.Second).Microseconds()),
		Title:   snap.Phase.String(),
		Artist:  []string{"Class Bell"},
		Album:   "Session",
	}, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.volume.Volume(), nil
}

func (p *playerAdapter) SetVolume(level float64) error {
	p.volume.SetVolume(level)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return (time.Duration(p.session.Snapshot().Elapsed) * time.Second).Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}
