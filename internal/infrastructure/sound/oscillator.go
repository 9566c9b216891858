// Package sound synthesizes key tones with beep and plays them through ebiten's audio context.
package sound

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
)

// Oscillator is an endless sine wave
type Oscillator struct {
	mu    sync.Mutex
	freq  float64
	phase float64
	rate  beep.SampleRate
}

// NewOscillator creates a sine oscillator at freq Hz
func NewOscillator(freq float64, rate beep.SampleRate) *Oscillator {
	return &Oscillator{freq: freq, rate: rate}
}

// Stream fills samples with the wave. It never runs out.
func (o *Oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	step := o.freq / float64(o.rate)
	for i := range samples {
		val := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += step
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
	}
	return len(samples), true
}

// Err implements beep.Streamer
func (o *Oscillator) Err() error { return nil }

// Reset restarts the wave at phase zero
func (o *Oscillator) Reset() {
	o.mu.Lock()
	o.phase = 0
	o.mu.Unlock()
}

// Frequency returns the pitch in Hz
func (o *Oscillator) Frequency() float64 {
	return o.freq
}
