package sound

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Gain scales a stream by a linear factor.
// It may be adjusted while the audio goroutine is streaming.
type Gain struct {
	mu     sync.Mutex
	volume *effects.Volume
	gain   float64
	muted  bool
}

// NewGain wraps s at unity gain
func NewGain(s beep.Streamer) *Gain {
	g := &Gain{
		volume: &effects.Volume{Streamer: s, Base: 2},
		gain:   1,
	}
	g.apply()
	return g
}

// Stream implements beep.Streamer
func (g *Gain) Stream(samples [][2]float64) (n int, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.volume.Stream(samples)
}

// Err implements beep.Streamer
func (g *Gain) Err() error {
	return g.volume.Err()
}

// Set changes the linear gain. Values at or below zero are silent.
func (g *Gain) Set(gain float64) {
	g.mu.Lock()
	g.gain = gain
	g.apply()
	g.mu.Unlock()
}

// Get returns the linear gain
func (g *Gain) Get() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gain
}

// SetMuted silences the stream without losing the gain
func (g *Gain) SetMuted(muted bool) {
	g.mu.Lock()
	g.muted = muted
	g.apply()
	g.mu.Unlock()
}

// apply maps the linear gain onto the base-2 volume. Caller holds mu.
func (g *Gain) apply() {
	if g.muted || g.gain <= 0 {
		g.volume.Silent = true
		return
	}
	g.volume.Silent = false
	g.volume.Volume = math.Log2(g.gain)
}
