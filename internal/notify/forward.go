package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/llehouerou/classbell/internal/ticker"
)

const phaseTimeout = 8000 // ms

// Source is the part of the session the forwarder reads. *ticker.Ticker
// satisfies it.
type Source interface {
	Snapshot() ticker.Snapshot
}

// Forward raises a desktop notification for each class or rest phase the
// session enters, and a critical one for cues that failed to play. Each new
// notification replaces the previous one. It returns when ctx is done or the
// subscription ends, withdrawing whatever notification is still shown.
func Forward(ctx context.Context, sub *ticker.Subscription, src Source, n Notifier, log zerolog.Logger) {
	log = log.With().Str("component", "notify").Logger()
	var lastID uint32
	defer func() {
		if lastID == 0 {
			return
		}
		if err := n.Close(lastID); err != nil {
			log.Debug().Err(err).Uint32("id", lastID).Msg("close notification")
		}
	}()

	send := func(notif Notification) {
		notif.ReplacesID = lastID
		id, err := n.Notify(notif)
		if err != nil {
			log.Warn().Err(err).Str("title", notif.Title).Msg("notification failed")
			return
		}
		if id != 0 {
			lastID = id
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case e := <-sub.PhaseChanged:
			notif, ok := PhaseNotification(e, src.Snapshot())
			if ok {
				send(notif)
			}
		case e := <-sub.Error:
			send(Notification{
				Title:   "Cue not played",
				Body:    fmt.Sprintf("%s: %v", e.Cue, e.Err),
				Icon:    IconError,
				Timeout: phaseTimeout,
				Urgency: UrgencyCritical,
			})
		}
	}
}

// PhaseNotification builds the notification for entering a phase. Breaks
// between the alert and resume cues are too short to announce, and returning
// to class from a break is not a new class.
func PhaseNotification(e ticker.PhaseChange, s ticker.Snapshot) (Notification, bool) {
	switch {
	case e.Current == ticker.PhaseClass && e.Previous != ticker.PhaseBreak:
		return Notification{
			Title:   "Class started",
			Body:    "Class ends at " + s.EndTime.Format("15:04"),
			Icon:    IconClass,
			Timeout: phaseTimeout,
			Urgency: UrgencyNormal,
		}, true
	case e.Current == ticker.PhaseRest:
		return Notification{
			Title:   "Rest time",
			Body:    "Next class at " + s.NextClass.Format("15:04"),
			Icon:    IconRest,
			Timeout: phaseTimeout,
			Urgency: UrgencyNormal,
		}, true
	default:
		return Notification{}, false
	}
}
