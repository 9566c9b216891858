package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/footfall/internal/application/system"
	"github.com/younwookim/footfall/internal/domain/gesture"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// Next returns the key events of the current frame and advances.
// Presses come before releases, as they were recorded.
func (r *Replayer) Next() ([]system.KeyEvent, bool) {
	if r.frame >= len(r.data.Frames) {
		return nil, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++

	events := make([]system.KeyEvent, 0, len(fi.Down)+len(fi.Up))
	for _, code := range fi.Down {
		events = append(events, system.KeyEvent{Code: gesture.KeyCode(code), Down: true})
	}
	for _, code := range fi.Up {
		events = append(events, system.KeyEvent{Code: gesture.KeyCode(code), Down: false})
	}
	return events, true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Stage returns the stage the recording was made on
func (r *Replayer) Stage() string {
	return r.data.Stage
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// Run feeds every recorded frame through a fresh recognizer built from cfg,
// one Advance per frame, and returns the actions in the order they fired
func Run(data ReplayData, cfg gesture.Config) ([]RecognizedAction, error) {
	var actions []RecognizedAction
	frame := 0
	recognizer, err := gesture.NewRecognizer(cfg, gesture.ListenerFuncs{
		Action: func(a gesture.Action) {
			actions = append(actions, RecognizedAction{Frame: frame, Action: string(a)})
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create recognizer: %w", err)
	}

	input := system.NewInputSystem(nil, recognizer)
	replayer := NewReplayer(data)
	for {
		events, ok := replayer.Next()
		if !ok {
			break
		}
		frame = replayer.CurrentFrame() - 1
		if err := input.Apply(events); err != nil {
			return actions, fmt.Errorf("frame %d: %w", frame, err)
		}
		if err := input.Advance(); err != nil {
			return actions, fmt.Errorf("frame %d: %w", frame, err)
		}
	}
	return actions, nil
}
