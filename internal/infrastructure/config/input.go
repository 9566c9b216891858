package config

import (
	"fmt"
	"slices"

	"github.com/younwookim/footfall/internal/domain/gesture"
)

// InputConfig is the root config for input.json
type InputConfig struct {
	// Keymap translates host key names (ebiten.Key text) to key codes
	Keymap       map[string]int  `json:"keymap"`
	Gestures     []GestureConfig `json:"gestures"`
	HistoryLimit int             `json:"historyLimit"`
}

// GestureConfig is one row of the gesture table.
// Sequence lists frames in press order.
type GestureConfig struct {
	Action   string  `json:"action"`
	Sequence [][]int `json:"sequence"`
}

// RecognizerConfig converts the input config to a gesture recognizer config.
// The key set is every key code reachable through the keymap.
func (c *InputConfig) RecognizerConfig() (gesture.Config, error) {
	if len(c.Keymap) == 0 {
		return gesture.Config{}, fmt.Errorf("input config: empty keymap")
	}

	keys := make([]gesture.KeyCode, 0, len(c.Keymap))
	for _, code := range c.Keymap {
		k := gesture.KeyCode(code)
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	gestures := make([]gesture.Gesture, len(c.Gestures))
	for i, g := range c.Gestures {
		pattern := make([]gesture.Frame, len(g.Sequence))
		for j, frame := range g.Sequence {
			codes := make([]gesture.KeyCode, len(frame))
			for n, code := range frame {
				codes[n] = gesture.KeyCode(code)
			}
			pattern[j] = codes
		}
		gestures[i] = gesture.Gesture{Action: gesture.Action(g.Action), Pattern: pattern}
	}

	return gesture.Config{
		Keys:         keys,
		Gestures:     gestures,
		HistoryLimit: c.HistoryLimit,
	}, nil
}
