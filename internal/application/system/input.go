package system

import (
	"fmt"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/footfall/internal/domain/gesture"
)

// KeyEvent is a translated key transition
type KeyEvent struct {
	Code gesture.KeyCode
	Down bool
}

// Keymap translates host keys to key codes
type Keymap map[ebiten.Key]gesture.KeyCode

// ParseKeymap resolves key names ("L", "Space", ...) to host keys
func ParseKeymap(names map[string]int) (Keymap, error) {
	keymap := make(Keymap, len(names))
	for name, code := range names {
		var key ebiten.Key
		if err := key.UnmarshalText([]byte(name)); err != nil {
			return nil, fmt.Errorf("failed to parse keymap entry %q: %w", name, err)
		}
		keymap[key] = gesture.KeyCode(code)
	}
	return keymap, nil
}

// InputSystem feeds host key transitions into a gesture recognizer
type InputSystem struct {
	keymap     Keymap
	recognizer *gesture.Recognizer

	pressed  []ebiten.Key
	released []ebiten.Key
}

// NewInputSystem creates a new input system
func NewInputSystem(keymap Keymap, recognizer *gesture.Recognizer) *InputSystem {
	return &InputSystem{
		keymap:     keymap,
		recognizer: recognizer,
	}
}

// Poll reads this tick's key transitions from ebiten
func (s *InputSystem) Poll() []KeyEvent {
	s.pressed = inpututil.AppendJustPressedKeys(s.pressed[:0])
	s.released = inpututil.AppendJustReleasedKeys(s.released[:0])
	return s.Translate(s.pressed, s.released)
}

// Translate maps host transitions to key events, presses first.
// Unmapped keys are dropped. Keys are visited in ascending order.
func (s *InputSystem) Translate(pressed, released []ebiten.Key) []KeyEvent {
	var events []KeyEvent
	for _, key := range sortedKeys(pressed) {
		if code, ok := s.keymap[key]; ok {
			events = append(events, KeyEvent{Code: code, Down: true})
		}
	}
	for _, key := range sortedKeys(released) {
		if code, ok := s.keymap[key]; ok {
			events = append(events, KeyEvent{Code: code, Down: false})
		}
	}
	return events
}

func sortedKeys(keys []ebiten.Key) []ebiten.Key {
	if slices.IsSorted(keys) {
		return keys
	}
	out := slices.Clone(keys)
	slices.Sort(out)
	return out
}

// Apply delivers key events to the recognizer in order
func (s *InputSystem) Apply(events []KeyEvent) error {
	for _, ev := range events {
		var err error
		if ev.Down {
			err = s.recognizer.KeyDown(ev.Code)
		} else {
			err = s.recognizer.KeyUp(ev.Code)
		}
		if err != nil {
			return fmt.Errorf("failed to apply %s: %w", ev.Code, err)
		}
	}
	return nil
}

// Advance closes the recognizer's current frame
func (s *InputSystem) Advance() error {
	return s.recognizer.Advance()
}

// Update polls, applies and advances. It returns the events it applied.
func (s *InputSystem) Update() ([]KeyEvent, error) {
	events := s.Poll()
	if err := s.Apply(events); err != nil {
		return events, err
	}
	return events, s.Advance()
}

// Recognizer returns the underlying recognizer
func (s *InputSystem) Recognizer() *gesture.Recognizer {
	return s.recognizer
}
