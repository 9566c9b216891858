package system

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/younwookim/footfall/internal/domain/gesture"
)

// Voice is a sound source a tone can drive
type Voice interface {
	Play()
	Pause()
	SetGain(gain float64)
	Rewind()
	IsPlaying() bool
}

// Tone is a voice bound to a key code that sounds for a fixed number of ticks
type Tone struct {
	Code     gesture.KeyCode
	Duration int // Ticks

	voice     Voice
	remaining int
	active    bool
	release   *gween.Tween
}

// Active reports whether the tone is sounding
func (t *Tone) Active() bool {
	return t.active
}

// Remaining returns the ticks left before the tone stops
func (t *Tone) Remaining() int {
	return t.remaining
}

// ToneBank plays one tone per key code
type ToneBank struct {
	tones        map[gesture.KeyCode]*Tone
	releaseTicks int
}

// NewToneBank creates an empty bank. Stopped tones fade out over releaseTicks.
func NewToneBank(releaseTicks int) *ToneBank {
	return &ToneBank{
		tones:        make(map[gesture.KeyCode]*Tone),
		releaseTicks: max(releaseTicks, 0),
	}
}

// Add binds a voice to code
func (b *ToneBank) Add(code gesture.KeyCode, voice Voice, durationTicks int) error {
	if _, ok := b.tones[code]; ok {
		return fmt.Errorf("tone for %s already registered", code)
	}
	if durationTicks <= 0 {
		return fmt.Errorf("tone for %s: duration must be positive, got %d", code, durationTicks)
	}
	voice.SetGain(0)
	b.tones[code] = &Tone{Code: code, Duration: durationTicks, voice: voice}
	return nil
}

// Tone returns the tone bound to code
func (b *ToneBank) Tone(code gesture.KeyCode) (*Tone, bool) {
	t, ok := b.tones[code]
	return t, ok
}

// Start sounds the tone for code at full gain.
// A tone that is already sounding keeps its remaining duration.
func (b *ToneBank) Start(code gesture.KeyCode) {
	t, ok := b.tones[code]
	if !ok || t.active {
		return
	}

	t.active = true
	t.remaining = t.Duration
	t.release = nil
	t.voice.SetGain(1)
	if !t.voice.IsPlaying() {
		t.voice.Play()
	}
}

// Stop releases the tone for code
func (b *ToneBank) Stop(code gesture.KeyCode) {
	t, ok := b.tones[code]
	if !ok || !t.active {
		return
	}
	b.stop(t)
}

func (b *ToneBank) stop(t *Tone) {
	t.active = false
	if b.releaseTicks == 0 {
		b.silence(t)
		return
	}
	t.release = gween.New(1, 0, float32(b.releaseTicks), ease.Linear)
}

// silence pauses the voice and rewinds it for the next start
func (b *ToneBank) silence(t *Tone) {
	t.release = nil
	t.voice.SetGain(0)
	t.voice.Pause()
	t.voice.Rewind()
}

// Advance counts active tones down by one tick and steps any release ramps
func (b *ToneBank) Advance() {
	for _, t := range b.tones {
		if t.active {
			t.remaining--
			if t.remaining <= 0 {
				b.stop(t)
			}
			continue
		}

		if t.release == nil {
			continue
		}
		gain, finished := t.release.Update(1)
		if finished {
			b.silence(t)
			continue
		}
		t.voice.SetGain(float64(gain))
	}
}

// OnKeyActivated starts the tone for code
func (b *ToneBank) OnKeyActivated(code gesture.KeyCode) {
	b.Start(code)
}
