package player

import "math"

// SetVolume sets the cue volume (0.0 to 1.0). It applies to the cue that is
// currently sounding and to every later one.
func (p *Player) SetVolume(level float64) {
	level = min(max(level, 0), 1)

	p.mu.Lock()
	p.volume = level
	vol := p.vol
	p.mu.Unlock()

	if vol != nil {
		p.dev.Lock()
		vol.Volume = levelToVolume(level)
		vol.Silent = level == 0
		p.dev.Unlock()
	}
}

// Volume returns the cue volume (0.0 to 1.0).
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// levelToVolume maps a 0..1 level to beep's base-2 volume:
// 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> -10.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
