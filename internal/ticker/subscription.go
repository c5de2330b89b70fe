package ticker

const eventBufferSize = 16

// Subscription provides event channels for a subscriber. Events are dropped
// when a subscriber falls behind by more than the buffer size.
type Subscription struct {
	PhaseChanged <-chan PhaseChange
	CuePlayed    <-chan CueEvent
	Error        <-chan ErrorEvent
	Done         <-chan struct{}

	phaseCh chan PhaseChange
	cueCh   chan CueEvent
	errorCh chan ErrorEvent
	doneCh  chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		phaseCh: make(chan PhaseChange, eventBufferSize),
		cueCh:   make(chan CueEvent, eventBufferSize),
		errorCh: make(chan ErrorEvent, eventBufferSize),
		doneCh:  make(chan struct{}),
	}
	s.PhaseChanged = s.phaseCh
	s.CuePlayed = s.cueCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) close() {
	close(s.doneCh)
}

func (s *Subscription) sendPhase(e PhaseChange) {
	select {
	case s.phaseCh <- e:
	default:
	}
}

func (s *Subscription) sendCue(e CueEvent) {
	select {
	case s.cueCh <- e:
	default:
	}
}

func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
