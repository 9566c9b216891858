package sound

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/gopxl/beep"
)

const (
	bytesPerSample = 4
	bytesPerFrame  = 2 * bytesPerSample // Stereo float32
	chunkFrames    = 512
)

// PCMReader renders a beep stream as interleaved stereo 32-bit float little-endian PCM,
// the format audio.Context.NewPlayerF32 reads
type PCMReader struct {
	streamer beep.Streamer
	samples  [][2]float64
	out      []byte
	pending  []byte
	done     bool
	err      error
}

// NewPCMReader creates a reader over s
func NewPCMReader(s beep.Streamer) *PCMReader {
	return &PCMReader{
		streamer: s,
		samples:  make([][2]float64, chunkFrames),
		out:      make([]byte, chunkFrames*bytesPerFrame),
	}
}

// Read implements io.Reader. It returns io.EOF once the stream is drained.
func (r *PCMReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(r.pending) == 0 {
			if r.done {
				break
			}
			r.fill((len(p) - n) / bytesPerFrame)
			continue
		}
		c := copy(p[n:], r.pending)
		r.pending = r.pending[c:]
		n += c
	}

	if n == 0 && r.done {
		if r.err != nil {
			return 0, r.err
		}
		return 0, io.EOF
	}
	return n, nil
}

// fill streams up to frames frames (at least one) into pending
func (r *PCMReader) fill(frames int) {
	frames = min(max(frames, 1), len(r.samples))

	got, ok := r.streamer.Stream(r.samples[:frames])
	if !ok || got == 0 {
		r.done = true
		if err := r.streamer.Err(); err != nil {
			r.err = fmt.Errorf("failed to stream audio: %w", err)
		}
	}

	for i := 0; i < got; i++ {
		off := i * bytesPerFrame
		binary.LittleEndian.PutUint32(r.out[off:], math.Float32bits(float32(r.samples[i][0])))
		binary.LittleEndian.PutUint32(r.out[off+bytesPerSample:], math.Float32bits(float32(r.samples[i][1])))
	}
	r.pending = r.out[:got*bytesPerFrame]
}
