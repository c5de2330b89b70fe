package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/classbell/internal/errmsg"
	"github.com/llehouerou/classbell/internal/ticker"
)

const tickInterval = 100 * time.Millisecond

// TickCmd returns a command that sends TickMsg after 100ms.
func TickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// RunSessionCmd runs a blocking Start or Resume call and reports its result.
func RunSessionCmd(ctx context.Context, op errmsg.Op, run func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return SessionEndedMsg{Op: op, Err: run(ctx)}
	}
}

// WatchSessionEvents returns a command that waits for the next cue event.
// Phase changes are read from the snapshot on every tick instead.
func WatchSessionEvents(sub *ticker.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.CuePlayed:
			return CuePlayedMsg(e)
		case e := <-sub.Error:
			return CueErrorMsg(e)
		case <-sub.Done:
			return SessionClosedMsg{}
		}
	}
}
