package system

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/footfall/internal/domain/gesture"
)

type recordingWalker struct {
	calls []string
	err   error
}

func (w *recordingWalker) Forward() error {
	w.calls = append(w.calls, "forward")
	return w.err
}

func (w *recordingWalker) Backward() {
	w.calls = append(w.calls, "backward")
}

func (w *recordingWalker) Stand() error {
	w.calls = append(w.calls, "stand")
	return w.err
}

func TestActionDispatcher_OnAction(t *testing.T) {
	tests := []struct {
		action   gesture.Action
		expected string
	}{
		{gesture.ActionForward, "forward"},
		{gesture.ActionBackward, "backward"},
		{gesture.ActionStand, "stand"},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			walker := &recordingWalker{}
			d := NewActionDispatcher(walker)

			d.OnAction(tt.action)

			assert.Equal(t, []string{tt.expected}, walker.calls)
			assert.Equal(t, tt.action, d.Last())
			assert.Equal(t, 1, d.Count())
		})
	}
}

func TestActionDispatcher_Unhandled(t *testing.T) {
	walker := &recordingWalker{}
	d := NewActionDispatcher(walker)
	called := false
	d.OnDispatch = func(gesture.Action) { called = true }

	d.OnAction("JUMP")

	assert.Empty(t, walker.calls)
	assert.Equal(t, 0, d.Count())
	assert.False(t, called)
}

func TestActionDispatcher_WalkerError(t *testing.T) {
	walker := &recordingWalker{err: errors.New("missing animation")}
	d := NewActionDispatcher(walker)
	var dispatched []gesture.Action
	d.OnDispatch = func(a gesture.Action) { dispatched = append(dispatched, a) }

	d.OnAction(gesture.ActionStand)

	assert.Equal(t, []gesture.Action{gesture.ActionStand}, dispatched, "errors are logged, not fatal")
}
