package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/classbell/internal/errmsg"
	"github.com/llehouerou/classbell/internal/keymap"
	"github.com/llehouerou/classbell/internal/ticker"
)

// maxSeconds bounds typed durations to what the input field can hold.
const maxSeconds = 9_999_999

// ErrInvalidSeconds is reported for input that is not a whole number of
// seconds.
var ErrInvalidSeconds = errors.New("expected a whole number of seconds")

var fieldOps = [fieldCount]errmsg.Op{
	fieldClass:   errmsg.OpSetClassTime,
	fieldElapsed: errmsg.OpSetElapsed,
	fieldRest:    errmsg.OpSetRestTime,
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case SessionMessage:
		return m.handleSessionMsg(msg)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleSessionMsg(msg SessionMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.now = time.Time(msg)
		m.snap = m.session.Snapshot()
		if m.focus != fieldElapsed {
			m.inputs[fieldElapsed].SetValue(strconv.FormatUint(m.snap.Elapsed, 10))
		}
		return m, TickCmd()

	case CuePlayedMsg:
		m.lastCue = m.cueTitle(msg.Path)
		return m, WatchSessionEvents(m.sub)

	case CueErrorMsg:
		m.setError(errmsg.FormatWith(errmsg.OpCuePlay, msg.Cue.String(), msg.Err))
		return m, WatchSessionEvents(m.sub)

	case SessionEndedMsg:
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.log.Error().Err(msg.Err).Str("op", string(msg.Op)).Msg("session ended")
			m.setError(errmsg.Format(msg.Op, msg.Err))
		}
		m.snap = m.session.Snapshot()
		return m, nil

	case SessionClosedMsg:
		m.sub = nil
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		m.shutdown()
		return m, tea.Quit

	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
		return m, nil

	case keymap.ActionStart:
		m.setStatus("Session started")
		return m, RunSessionCmd(m.ctx, errmsg.OpSessionStart, m.session.Start)

	case keymap.ActionResume:
		m.setStatus("Session resumed")
		return m, RunSessionCmd(m.ctx, errmsg.OpSessionResume, m.session.Resume)

	case keymap.ActionStop:
		var cueErr *ticker.CueStopError
		switch err := m.session.Stop(); {
		case errors.As(err, &cueErr):
			m.setError("Session stopped. " + errmsg.Format(errmsg.OpCueStop, cueErr.Err))
		case err != nil:
			m.setError(errmsg.Format(errmsg.OpSessionStop, err))
		default:
			m.setStatus("Session stopped")
		}
		m.snap = m.session.Snapshot()
		return m, nil

	case keymap.ActionVolumeUp:
		m.changeVolume(volumeStep)
		return m, nil

	case keymap.ActionVolumeDown:
		m.changeVolume(-volumeStep)
		return m, nil

	case keymap.ActionApply:
		m.apply()
		return m, nil

	case keymap.ActionNextField:
		return m, m.setFocus((m.focus + 1) % fieldCount)

	case keymap.ActionPrevField:
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(f field) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = f
	return m.inputs[f].Focus()
}

// apply parses the focused field and hands the value to the session.
// Invalid input only produces a status message.
func (m *Model) apply() {
	raw := strings.TrimSpace(m.inputs[m.focus].Value())
	sec, err := parseSeconds(raw)
	if err != nil {
		m.setError(errmsg.FormatWith(fieldOps[m.focus], raw, err))
		return
	}

	switch m.focus {
	case fieldClass:
		m.session.SetClassTime(sec)
	case fieldElapsed:
		m.session.SetElapsed(sec)
	case fieldRest:
		m.session.SetRestTime(sec)
	}
	m.snap = m.session.Snapshot()
	m.inputs[m.focus].SetValue(strconv.FormatUint(sec, 10))

	if m.focus != fieldElapsed {
		m.store.ScheduleSave(m.settings())
	}
	label := strings.TrimSuffix(fieldLabels[m.focus], " (s)")
	m.setStatus(fmt.Sprintf("%s set to %s", label, time.Duration(sec)*time.Second))
}

func (m *Model) changeVolume(delta float64) {
	level := min(max(m.player.Volume()+delta, 0), 1)
	m.player.SetVolume(level)
	m.store.ScheduleSave(m.settings())
	m.setStatus(fmt.Sprintf("Volume %d%%", int(level*100+0.5)))
}

// shutdown stops the session and saves settings. The caller closes the
// ticker and the player once the program has exited.
func (m *Model) shutdown() {
	if err := m.session.Stop(); err != nil {
		m.log.Warn().Err(err).Msg("stop session on quit")
	}
	m.cancel()
	if err := m.store.SaveSettings(m.settings()); err != nil {
		m.log.Error().Err(err).Msg(errmsg.Format(errmsg.OpSettingsSave, err))
	}
}

func parseSeconds(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v > maxSeconds {
		return 0, ErrInvalidSeconds
	}
	return v, nil
}
