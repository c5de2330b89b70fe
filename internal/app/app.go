package app

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/classbell/internal/keymap"
	"github.com/llehouerou/classbell/internal/state"
	"github.com/llehouerou/classbell/internal/ticker"
)

const volumeStep = 0.05

// Session is the part of the ticker the UI drives.
type Session interface {
	Start(ctx context.Context) error
	Resume(ctx context.Context) error
	Stop() error
	SetElapsed(sec uint64)
	SetClassTime(sec uint64)
	SetRestTime(sec uint64)
	Snapshot() ticker.Snapshot
	Subscribe() *ticker.Subscription
}

var _ Session = (*ticker.Ticker)(nil)

// VolumeControl adjusts the cue volume.
type VolumeControl interface {
	SetVolume(level float64)
	Volume() float64
}

type field int

const (
	fieldClass field = iota
	fieldElapsed
	fieldRest
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldClass:   "Class time (s)",
	fieldElapsed: "Elapsed (s)",
	fieldRest:    "Rest time (s)",
}

// Options configures the Model.
type Options struct {
	Session Session
	Player  VolumeControl
	State   state.Interface
	Keys    *keymap.Resolver // defaults to keymap.Default()

	// CueTitle turns a cue path into a display title. Defaults to the path.
	CueTitle func(path string) string

	Logger zerolog.Logger
}

// Model is the bubbletea model of the application.
type Model struct {
	session  Session
	player   VolumeControl
	store    state.Interface
	keys     *keymap.Resolver
	cueTitle func(string) string
	log      zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	sub    *ticker.Subscription

	inputs [fieldCount]textinput.Model
	focus  field

	snap      ticker.Snapshot
	now       time.Time
	lastCue   string
	status    string
	statusErr bool
	showHelp  bool
	width     int
}

// New creates the model. The session subscription it opens ends when the
// ticker is closed.
func New(opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		session:  opts.Session,
		player:   opts.Player,
		store:    opts.State,
		keys:     opts.Keys,
		cueTitle: opts.CueTitle,
		log:      opts.Logger.With().Str("component", "app").Logger(),
		ctx:      ctx,
		cancel:   cancel,
		sub:      opts.Session.Subscribe(),
		snap:     opts.Session.Snapshot(),
		now:      time.Now(),
		width:    80,
	}
	if m.keys == nil {
		m.keys = keymap.Default()
	}
	if m.cueTitle == nil {
		m.cueTitle = func(path string) string { return path }
	}

	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 7
		in.Width = 8
		m.inputs[i] = in
	}
	m.inputs[fieldClass].SetValue(strconv.FormatUint(m.snap.ClassTime, 10))
	m.inputs[fieldElapsed].SetValue(strconv.FormatUint(m.snap.Elapsed, 10))
	m.inputs[fieldRest].SetValue(strconv.FormatUint(m.snap.RestTime, 10))
	m.inputs[fieldClass].Focus()

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, TickCmd(), WatchSessionEvents(m.sub))
}

// Snapshot returns the session state as last polled.
func (m Model) Snapshot() ticker.Snapshot {
	return m.snap
}

// Status returns the status line and whether it reports an error.
func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}

// settings collects the values persisted across launches.
func (m Model) settings() state.Settings {
	snap := m.session.Snapshot()
	return state.Settings{
		ClassTime: snap.ClassTime,
		RestTime:  snap.RestTime,
		Volume:    m.player.Volume(),
	}
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(msg string) {
	m.status = msg
	m.statusErr = true
}
