package gesture

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNotInitialized is returned by a Recognizer that was not built with NewRecognizer
	ErrNotInitialized = errors.New("gesture: recognizer not initialized")
	// ErrNilListener is returned when no listener is supplied
	ErrNilListener = errors.New("gesture: nil listener")
	// ErrNoGestures is returned for an empty gesture table
	ErrNoGestures = errors.New("gesture: empty gesture table")
	// ErrEmptyAction is returned for a gesture without an action name
	ErrEmptyAction = errors.New("gesture: empty action")
	// ErrEmptyPattern is returned for a gesture without frames
	ErrEmptyPattern = errors.New("gesture: empty pattern")
	// ErrEmptyFrame is returned for a pattern frame without keys
	ErrEmptyFrame = errors.New("gesture: empty frame in pattern")
	// ErrUnknownKey is returned when a pattern uses a key outside the key set
	ErrUnknownKey = errors.New("gesture: pattern key not in key set")
)

// Config configures a Recognizer
type Config struct {
	// Keys is the accepted key set. Other codes are ignored. Empty means DefaultKeys.
	Keys []KeyCode
	// Gestures is matched in order; the first match wins.
	Gestures []Gesture
	// HistoryLimit caps retained frames. It is raised to the longest pattern.
	HistoryLimit int
}

// DefaultConfig returns the key set and gesture table of the walking prototype
func DefaultConfig() Config {
	return Config{
		Keys:     DefaultKeys(),
		Gestures: DefaultGestures(),
	}
}

// Recognizer buffers key presses into frames and matches gestures against them.
//
// Advance must be called once per tick. KeyDown and KeyUp may arrive from another
// goroutine; all state sits behind one mutex. Listener callbacks run after the lock
// is released, on the goroutine that triggered them.
//
// On a zero Recognizer, KeyDown, KeyUp, Advance and Reset return ErrNotInitialized. The query
// methods (History, Pending, IdleFrames, Held, Gestures, HistoryLimit) cannot
// fail and report empty state instead.
type Recognizer struct {
	mu       sync.Mutex
	listener Listener
	keys     map[KeyCode]struct{}
	gestures []Gesture
	limit    int

	held    map[KeyCode]bool
	pending Frame
	history []Frame
	idle    int
}

// NewRecognizer validates cfg and returns a recognizer with empty state
func NewRecognizer(cfg Config, l Listener) (*Recognizer, error) {
	if l == nil {
		return nil, ErrNilListener
	}

	keyList := cfg.Keys
	if len(keyList) == 0 {
		keyList = DefaultKeys()
	}
	keys := make(map[KeyCode]struct{}, len(keyList))
	for _, k := range keyList {
		keys[k] = struct{}{}
	}

	gestures, longest, err := compileGestures(cfg.Gestures, keys)
	if err != nil {
		return nil, err
	}

	limit := max(cfg.HistoryLimit, longest)

	r := &Recognizer{
		listener: l,
		keys:     keys,
		gestures: gestures,
		limit:    limit,
	}
	r.reset()
	return r, nil
}

// compileGestures validates the table and normalises every pattern frame.
// It returns the length of the longest pattern.
func compileGestures(table []Gesture, keys map[KeyCode]struct{}) ([]Gesture, int, error) {
	if len(table) == 0 {
		return nil, 0, ErrNoGestures
	}

	out := make([]Gesture, 0, len(table))
	longest := 0
	for i, g := range table {
		if g.Action == "" {
			return nil, 0, fmt.Errorf("gesture %d: %w", i, ErrEmptyAction)
		}
		if len(g.Pattern) == 0 {
			return nil, 0, fmt.Errorf("gesture %d (%s): %w", i, g.Action, ErrEmptyPattern)
		}

		pattern := make([]Frame, len(g.Pattern))
		for j, f := range g.Pattern {
			if len(f) == 0 {
				return nil, 0, fmt.Errorf("gesture %d (%s) frame %d: %w", i, g.Action, j, ErrEmptyFrame)
			}
			for _, k := range f {
				if _, ok := keys[k]; !ok {
					return nil, 0, fmt.Errorf("gesture %d (%s) key %s: %w", i, g.Action, k, ErrUnknownKey)
				}
			}
			pattern[j] = NewFrame(f...)
		}

		out = append(out, Gesture{Action: g.Action, Pattern: pattern})
		longest = max(longest, len(pattern))
	}
	return out, longest, nil
}

// Reset clears key state, the current frame, history and the idle counter
func (r *Recognizer) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listener == nil {
		return ErrNotInitialized
	}
	r.reset()
	return nil
}

func (r *Recognizer) reset() {
	r.held = make(map[KeyCode]bool, len(r.keys))
	r.pending = make(Frame, 0, len(r.keys))
	r.history = make([]Frame, 0, r.limit)
	r.idle = 0
}

// KeyDown records that code is held.
// A fresh press joins the current frame and notifies OnKeyActivated; a repeated
// press of a held key and codes outside the key set are ignored.
func (r *Recognizer) KeyDown(code KeyCode) error {
	r.mu.Lock()
	if r.listener == nil {
		r.mu.Unlock()
		return ErrNotInitialized
	}
	if _, ok := r.keys[code]; !ok || r.held[code] {
		r.mu.Unlock()
		return nil
	}

	r.held[code] = true
	if !r.pending.Contains(code) {
		r.pending = append(r.pending, code)
	}
	l := r.listener
	r.mu.Unlock()

	l.OnKeyActivated(code)
	return nil
}

// KeyUp records that code is released
func (r *Recognizer) KeyUp(code KeyCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listener == nil {
		return ErrNotInitialized
	}
	if _, ok := r.keys[code]; !ok {
		return nil
	}
	r.held[code] = false
	return nil
}

// Advance closes the current frame and scans the gesture table.
// At most one action fires per call.
func (r *Recognizer) Advance() error {
	r.mu.Lock()
	if r.listener == nil {
		r.mu.Unlock()
		return ErrNotInitialized
	}

	r.closeFrame()
	action, matched := r.scan()
	l := r.listener
	r.mu.Unlock()

	if matched {
		l.OnAction(action)
	}
	return nil
}

func (r *Recognizer) closeFrame() {
	if len(r.pending) == 0 {
		r.idle++
		return
	}

	r.history = append(r.history, NewFrame(r.pending...))
	r.pending = r.pending[:0]
	r.idle = 0

	// Only the newest r.limit frames can take part in a match
	if over := len(r.history) - r.limit; over > 0 {
		r.history = append(r.history[:0], r.history[over:]...)
	}
}

func (r *Recognizer) scan() (Action, bool) {
	for _, g := range r.gestures {
		if r.matches(g.Pattern) {
			r.history = r.history[:0]
			return g.Action, true
		}
	}
	return "", false
}

// matches aligns the last pattern frame with the newest history frame
func (r *Recognizer) matches(pattern []Frame) bool {
	offset := len(r.history) - len(pattern)
	if offset < 0 {
		return false
	}
	for i, want := range pattern {
		if !r.history[offset+i].Equal(want) {
			return false
		}
	}
	return true
}

// History returns a copy of the closed frames, oldest first
func (r *Recognizer) History() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Frame, len(r.history))
	for i, f := range r.history {
		out[i] = f.clone()
	}
	return out
}

// Pending returns a copy of the keys pressed since the last Advance, in press order
func (r *Recognizer) Pending() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending.clone()
}

// IdleFrames returns the number of consecutive ticks without a fresh press
func (r *Recognizer) IdleFrames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.idle
}

// Held reports whether code is currently held
func (r *Recognizer) Held(code KeyCode) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.held[code]
}

// Gestures returns a copy of the normalised gesture table
func (r *Recognizer) Gestures() []Gesture {
	out := make([]Gesture, len(r.gestures))
	for i, g := range r.gestures {
		out[i] = g.clone()
	}
	return out
}

// HistoryLimit returns the maximum number of retained frames
func (r *Recognizer) HistoryLimit() int {
	return r.limit
}
