package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/classbell/internal/player"
	"github.com/llehouerou/classbell/internal/ticker"
)

type recordingNotifier struct {
	mu     sync.Mutex
	sent   []Notification
	closed []uint32
	err    error
	next   uint32
}

func (r *recordingNotifier) Notify(n Notification) (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	r.sent = append(r.sent, n)
	if n.ReplacesID != 0 {
		return n.ReplacesID, nil
	}
	r.next++
	return r.next, nil
}

func (r *recordingNotifier) Close(id uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = append(r.closed, id)
	return nil
}

func (r *recordingNotifier) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.sent))
	for i, n := range r.sent {
		out[i] = n.Title
	}
	return out
}

func TestForward_PhaseChanges(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		tk := ticker.New(player.NewMock(), ticker.Options{ClassTime: 2, RestTime: 1, Logger: zerolog.Nop()})
		sub := tk.Subscribe()
		rec := &recordingNotifier{}

		forwarded := make(chan struct{})
		go func() {
			Forward(context.Background(), sub, tk, rec, zerolog.Nop())
			close(forwarded)
		}()
		go func() { _ = tk.Start(context.Background()) }()

		time.Sleep(4*time.Second + 500*time.Millisecond)
		require.NoError(t, tk.Close())
		<-forwarded

		assert.Equal(t, []string{"Class started", "Rest time", "Class started"}, rec.titles())

		rec.mu.Lock()
		defer rec.mu.Unlock()
		assert.Equal(t, uint32(0), rec.sent[0].ReplacesID)
		assert.Equal(t, uint32(1), rec.sent[1].ReplacesID, "later notifications replace the first")
		assert.Equal(t, uint32(1), rec.sent[2].ReplacesID)
		assert.Equal(t, IconRest, rec.sent[1].Icon)
		assert.Equal(t, []uint32{1}, rec.closed, "the last notification is withdrawn on exit")
	})
}

func TestForward_CueErrors(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := player.NewMock()
		mock.SetPlayError(errors.New("no audio device"))
		tk := ticker.New(mock, ticker.Options{Logger: zerolog.Nop()})
		sub := tk.Subscribe()
		rec := &recordingNotifier{}

		ctx, cancel := context.WithCancel(context.Background())
		forwarded := make(chan struct{})
		go func() {
			Forward(ctx, sub, tk, rec, zerolog.Nop())
			close(forwarded)
		}()
		go func() { _ = tk.Start(context.Background()) }()
		synctest.Wait()

		cancel()
		<-forwarded
		require.NoError(t, tk.Close())

		rec.mu.Lock()
		defer rec.mu.Unlock()
		require.NotEmpty(t, rec.sent)
		var critical *Notification
		for i := range rec.sent {
			if rec.sent[i].Urgency == UrgencyCritical {
				critical = &rec.sent[i]
			}
		}
		require.NotNil(t, critical)
		assert.Equal(t, "Cue not played", critical.Title)
		assert.Equal(t, IconError, critical.Icon)
		assert.Contains(t, critical.Body, "class start: no audio device")
	})
}

func TestForward_NotifierErrorsAreLogged(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		tk := ticker.New(player.NewMock(), ticker.Options{Logger: zerolog.Nop()})
		sub := tk.Subscribe()
		rec := &recordingNotifier{err: errors.New("dbus: connection closed")}

		forwarded := make(chan struct{})
		go func() {
			Forward(context.Background(), sub, tk, rec, zerolog.Nop())
			close(forwarded)
		}()
		go func() { _ = tk.Start(context.Background()) }()
		synctest.Wait()

		require.NoError(t, tk.Close())
		<-forwarded
		assert.Empty(t, rec.titles())
		assert.Empty(t, rec.closed, "nothing was shown, nothing to withdraw")
	})
}

func TestPhaseNotification(t *testing.T) {
	end := time.Date(2026, 3, 2, 10, 30, 0, 0, time.Local)
	snap := ticker.Snapshot{EndTime: end, NextClass: end.Add(20 * time.Minute)}

	tests := []struct {
		name      string
		prev, cur ticker.Phase
		ok        bool
		title     string
		body      string
	}{
		{"class from idle", ticker.PhaseIdle, ticker.PhaseClass, true, "Class started", "Class ends at 10:30"},
		{"class after rest", ticker.PhaseRest, ticker.PhaseClass, true, "Class started", "Class ends at 10:30"},
		{"back from break", ticker.PhaseBreak, ticker.PhaseClass, false, "", ""},
		{"break", ticker.PhaseClass, ticker.PhaseBreak, false, "", ""},
		{"rest", ticker.PhaseClass, ticker.PhaseRest, true, "Rest time", "Next class at 10:50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := PhaseNotification(ticker.PhaseChange{Previous: tt.prev, Current: tt.cur}, snap)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.title, n.Title)
			assert.Equal(t, tt.body, n.Body)
		})
	}
}
