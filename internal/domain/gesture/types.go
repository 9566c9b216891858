// Package gesture recognizes ordered key-press sequences played over discrete ticks.
//
// Key presses are collected into frames, one frame per tick. Closed frames form an
// input history whose tail is matched against a fixed table of gestures. The first
// gesture in table order that matches fires and consumes the whole history.
package gesture

import (
	"fmt"
	"slices"
)

// KeyCode identifies a recognized input trigger after host key translation
type KeyCode int

// Default key codes: three foot triggers and one stand trigger
const (
	Foot1 KeyCode = iota + 1
	Foot2
	Foot3
	Stand
)

// String returns the string representation of the key code
func (k KeyCode) String() string {
	switch k {
	case Foot1:
		return "FOOT1"
	case Foot2:
		return "FOOT2"
	case Foot3:
		return "FOOT3"
	case Stand:
		return "STAND"
	default:
		return fmt.Sprintf("KEY%d", int(k))
	}
}

// DefaultKeys returns the key set of the walking prototype
func DefaultKeys() []KeyCode {
	return []KeyCode{Foot1, Foot2, Foot3, Stand}
}

// Frame is the set of keys freshly pressed during one tick.
// Stored frames are sorted ascending and hold each key once.
type Frame []KeyCode

// NewFrame returns a sorted, de-duplicated frame built from codes
func NewFrame(codes ...KeyCode) Frame {
	f := make(Frame, len(codes))
	copy(f, codes)
	slices.Sort(f)
	return slices.Compact(f)
}

// Equal reports whether both frames hold the same keys.
// Both frames must already be sorted.
func (f Frame) Equal(other Frame) bool {
	return slices.Equal(f, other)
}

// Contains reports whether code is part of the frame
func (f Frame) Contains(code KeyCode) bool {
	return slices.Contains(f, code)
}

func (f Frame) clone() Frame {
	return slices.Clone(f)
}

// Action names a recognized gesture
type Action string

// Actions of the walking prototype
const (
	ActionForward  Action = "FORWARD"
	ActionBackward Action = "BACKWARD"
	ActionStand    Action = "STAND"
)

// Gesture pairs an action with the frames that trigger it.
// Pattern lists frames in press order: the last frame is compared with the newest
// history frame, the one before it with the previous history frame, and so on.
type Gesture struct {
	Action  Action
	Pattern []Frame
}

func (g Gesture) clone() Gesture {
	pattern := make([]Frame, len(g.Pattern))
	for i, f := range g.Pattern {
		pattern[i] = f.clone()
	}
	return Gesture{Action: g.Action, Pattern: pattern}
}

// DefaultGestures returns the gesture table of the walking prototype.
// Stepping 3,2,1 walks forward, 1,2,3 walks backward and the stand key stands.
func DefaultGestures() []Gesture {
	return []Gesture{
		{Action: ActionForward, Pattern: []Frame{{Foot3}, {Foot2}, {Foot1}}},
		{Action: ActionBackward, Pattern: []Frame{{Foot1}, {Foot2}, {Foot3}}},
		{Action: ActionStand, Pattern: []Frame{{Stand}}},
	}
}

// Listener receives recognizer notifications
type Listener interface {
	// OnAction is called with the action of a recognized gesture
	OnAction(action Action)
	// OnKeyActivated is called each time a key goes from released to held
	OnKeyActivated(code KeyCode)
}

// ListenerFuncs adapts plain functions to the Listener interface.
// Nil functions are skipped.
type ListenerFuncs struct {
	Action       func(Action)
	KeyActivated func(KeyCode)
}

// OnAction implements Listener
func (l ListenerFuncs) OnAction(action Action) {
	if l.Action != nil {
		l.Action(action)
	}
}

// OnKeyActivated implements Listener
func (l ListenerFuncs) OnKeyActivated(code KeyCode) {
	if l.KeyActivated != nil {
		l.KeyActivated(code)
	}
}
