// Package app is the terminal user interface of the session timer.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/classbell/internal/errmsg"
	"github.com/llehouerou/classbell/internal/ticker"
)

// Message category interfaces for type-based routing in Update().

// SessionMessage is implemented by messages coming from the session loop.
type SessionMessage interface {
	tea.Msg
	sessionMessage()
}

// TickMsg is sent periodically to refresh the session snapshot.
type TickMsg time.Time

func (TickMsg) sessionMessage() {}

// CuePlayedMsg is sent when the session loop played a cue.
type CuePlayedMsg ticker.CueEvent

func (CuePlayedMsg) sessionMessage() {}

// CueErrorMsg is sent when a cue could not be played.
type CueErrorMsg ticker.ErrorEvent

func (CueErrorMsg) sessionMessage() {}

// SessionEndedMsg is sent when a Start or Resume call returned.
type SessionEndedMsg struct {
	Op  errmsg.Op
	Err error
}

func (SessionEndedMsg) sessionMessage() {}

// SessionClosedMsg is sent when the ticker ended the subscription.
type SessionClosedMsg struct{}

func (SessionClosedMsg) sessionMessage() {}
