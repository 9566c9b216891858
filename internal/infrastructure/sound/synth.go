package sound

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// bufferSize keeps tone onsets within about a tick at 30 TPS
const bufferSize = 30 * time.Millisecond

// Only one audio context may exist per process
var (
	audioContext *audio.Context
	contextOnce  sync.Once
)

func sharedContext(sampleRate int) *audio.Context {
	contextOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(sampleRate)
		}
	})
	return audioContext
}

// Synth builds tone voices and owns the master volume
type Synth struct {
	mu     sync.Mutex
	ctx    *audio.Context
	rate   beep.SampleRate
	volume float64
	muted  bool
	voices []*Voice
}

// NewSynth creates a synth on the shared audio context
func NewSynth(sampleRate int, volume float64) (*Synth, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	ctx := sharedContext(sampleRate)
	return &Synth{
		ctx:    ctx,
		rate:   beep.SampleRate(ctx.SampleRate()),
		volume: volume,
	}, nil
}

// NewVoice creates a paused sine voice at freq Hz with zero gain
func (s *Synth) NewVoice(freq float64) (*Voice, error) {
	osc := NewOscillator(freq, s.rate)
	gain := NewGain(osc)
	gain.Set(0)
	master := NewGain(gain)

	s.mu.Lock()
	defer s.mu.Unlock()

	master.Set(s.volume)
	master.SetMuted(s.muted)

	player, err := s.ctx.NewPlayerF32(NewPCMReader(master))
	if err != nil {
		return nil, fmt.Errorf("failed to create voice at %.2f Hz: %w", freq, err)
	}
	player.SetBufferSize(bufferSize)

	v := &Voice{player: player, osc: osc, gain: gain, master: master}
	s.voices = append(s.voices, v)
	return v, nil
}

// Mute silences every voice
func (s *Synth) Mute(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.muted = muted
	for _, v := range s.voices {
		v.master.SetMuted(muted)
	}
}

// Muted reports whether the synth is muted
func (s *Synth) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// SetVolume changes the master volume of every voice
func (s *Synth) SetVolume(volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.volume = volume
	for _, v := range s.voices {
		v.master.Set(volume)
	}
}

// Volume returns the master volume
func (s *Synth) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// Close releases every voice
func (s *Synth) Close() error {
	s.mu.Lock()
	voices := s.voices
	s.voices = nil
	s.mu.Unlock()

	var errs []error
	for _, v := range voices {
		if err := v.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		log.Printf("Warning: failed to close %d voices", len(errs))
	}
	return errors.Join(errs...)
}

// Voice is one oscillator with its own gain, played through an audio player
type Voice struct {
	player *audio.Player
	osc    *Oscillator
	gain   *Gain
	master *Gain
}

// Play resumes output
func (v *Voice) Play() {
	v.player.Play()
}

// Pause stops output, keeping the wave position
func (v *Voice) Pause() {
	v.player.Pause()
}

// SetGain changes the voice gain (0 is silent, 1 is full)
func (v *Voice) SetGain(gain float64) {
	v.gain.Set(gain)
}

// Rewind restarts the wave from phase zero
func (v *Voice) Rewind() {
	v.osc.Reset()
}

// IsPlaying reports whether the player is running
func (v *Voice) IsPlaying() bool {
	return v.player.IsPlaying()
}

// Frequency returns the voice pitch in Hz
func (v *Voice) Frequency() float64 {
	return v.osc.Frequency()
}

// Close releases the player
func (v *Voice) Close() error {
	return v.player.Close()
}
