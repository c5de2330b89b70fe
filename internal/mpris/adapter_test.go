package mpris

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/classbell/internal/player"
	"github.com/llehouerou/classbell/internal/ticker"
)

func newTestAdapter(ctx context.Context) (*playerAdapter, *ticker.Ticker, *player.Mock) {
	mock := player.NewMock()
	tk := ticker.New(mock, ticker.Options{ClassTime: 600, Logger: zerolog.Nop()})
	return &playerAdapter{ctx: ctx, session: tk, volume: mock, log: zerolog.Nop()}, tk, mock
}

func TestPlayerAdapter_PlayPauseTogglesSession(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		pa, tk, _ := newTestAdapter(context.Background())

		status, err := pa.PlaybackStatus()
		require.NoError(t, err)
		assert.Equal(t, types.PlaybackStatusStopped, status)

		require.NoError(t, pa.PlayPause())
		synctest.Wait()
		assert.True(t, tk.Running())
		status, _ = pa.PlaybackStatus()
		assert.Equal(t, types.PlaybackStatusPlaying, status)

		time.Sleep(30*time.Second + 50*time.Millisecond)
		require.NoError(t, pa.PlayPause())
		tk.Wait()
		assert.False(t, tk.Running())
		status, _ = pa.PlaybackStatus()
		assert.Equal(t, types.PlaybackStatusPaused, status)
		assert.Equal(t, uint64(30), tk.Elapsed())

		// Play resumes without resetting elapsed time.
		require.NoError(t, pa.Play())
		synctest.Wait()
		assert.True(t, tk.Running())
		assert.Equal(t, uint64(30), tk.Elapsed())

		require.NoError(t, tk.Close())
	})
}

func TestPlayerAdapter_NextStartsFreshClass(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		pa, tk, mock := newTestAdapter(context.Background())
		tk.SetElapsed(200)

		require.NoError(t, pa.Next())
		synctest.Wait()

		assert.True(t, tk.Running())
		assert.Equal(t, uint64(0), tk.Elapsed())
		assert.Equal(t, []string{"class_work.mp3"}, mock.PlayCalls())

		require.NoError(t, pa.Stop())
		tk.Wait()
		assert.False(t, tk.Running())
		require.NoError(t, tk.Close())
	})
}

func TestPlayerAdapter_ContextEndsSessions(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		pa, tk, _ := newTestAdapter(ctx)

		require.NoError(t, pa.Play())
		synctest.Wait()
		require.True(t, tk.Running())

		cancel()
		tk.Wait()
		assert.False(t, tk.Running())
		require.NoError(t, tk.Close())
	})
}

func TestPlayerAdapter_SeekAndPosition(t *testing.T) {
	pa, tk, _ := newTestAdapter(context.Background())

	require.NoError(t, pa.SetPosition("", types.Microseconds(90*time.Second/time.Microsecond)))
	assert.Equal(t, uint64(90), tk.Elapsed())

	require.NoError(t, pa.Seek(types.Microseconds(15*time.Second/time.Microsecond)))
	assert.Equal(t, uint64(105), tk.Elapsed())

	require.NoError(t, pa.Seek(types.Microseconds(-300*time.Second/time.Microsecond)))
	assert.Equal(t, uint64(0), tk.Elapsed(), "seeking before the start clamps to zero")

	tk.SetElapsed(42)
	pos, err := pa.Position()
	require.NoError(t, err)
	assert.Equal(t, int64(42_000_000), pos)

	require.NoError(t, pa.Previous())
	assert.Equal(t, uint64(0), tk.Elapsed())
}

func TestPlayerAdapter_MetadataAndVolume(t *testing.T) {
	pa, _, mock := newTestAdapter(context.Background())

	meta, err := pa.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "Idle", meta.Title)
	assert.Equal(t, types.Microseconds(600_000_000), meta.Length)
	assert.Equal(t, []string{"Class Bell"}, meta.Artist)

	require.NoError(t, pa.SetVolume(0.25))
	assert.InDelta(t, 0.25, mock.Volume(), 1e-9)
	vol, err := pa.Volume()
	require.NoError(t, err)
	assert.InDelta(t, 0.25, vol, 1e-9)
}

func TestRootAdapter_Identity(t *testing.T) {
	r := &rootAdapter{}
	name, err := r.Identity()
	require.NoError(t, err)
	assert.Equal(t, "Class Bell", name)

	canQuit, _ := r.CanQuit()
	assert.False(t, canQuit)
}
