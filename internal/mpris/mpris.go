//go:build linux

package mpris

import (
	"context"

	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/rs/zerolog"
)

// Adapter connects the session to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
	cancel context.CancelFunc
}

// New creates and starts a new MPRIS adapter. Sessions started through it
// end when the adapter is closed.
func New(session Session, volume VolumeControl, log zerolog.Logger) (*Adapter, error) {
	ctx, cancel := context.WithCancel(context.Background())
	log = log.With().Str("component", "mpris").Logger()

	pa := &playerAdapter{
		ctx:     ctx,
		session: session,
		volume:  volume,
		log:     log,
	}
	a := &Adapter{
		server: server.NewServer("classbell", &rootAdapter{}, pa),
		cancel: cancel,
	}

	// Start the server in background
	go func() {
		if err := a.server.Listen(); err != nil {
			log.Warn().Err(err).Msg("mpris server stopped")
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	a.cancel()
	return a.server.Stop()
}
