package player

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Device is the audio output a worker plays into.
type Device interface {
	// Init prepares the output for the given format and returns the sample
	// rate the output actually runs at. Streams with a different rate are
	// resampled by the caller.
	Init(format beep.Format) (beep.SampleRate, error)
	// Play starts mixing s. The device drops s once it reports ok=false.
	Play(s beep.Streamer)
	// Lock and Unlock guard streamer fields read by the mixer.
	Lock()
	Unlock()
}

// speakerDevice plays through the system default output via beep's speaker.
// The speaker is process-global, so every Player shares one instance.
type speakerDevice struct {
	mu    sync.Mutex
	ready bool
	rate  beep.SampleRate
}

var defaultSpeaker = &speakerDevice{}

// Speaker returns the system default output device.
func Speaker() Device {
	return defaultSpeaker
}

func (d *speakerDevice) Init(format beep.Format) (beep.SampleRate, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ready {
		return d.rate, nil
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return 0, err
	}
	d.rate = format.SampleRate
	d.ready = true
	return d.rate, nil
}

func (d *speakerDevice) Play(s beep.Streamer) { speaker.Play(s) }

func (d *speakerDevice) Lock() { speaker.Lock() }

func (d *speakerDevice) Unlock() { speaker.Unlock() }
