package system

import (
	"log"

	"github.com/younwookim/footfall/internal/domain/gesture"
)

// Walker is the character recognized actions drive
type Walker interface {
	Forward() error
	Backward()
	Stand() error
}

// ActionDispatcher routes recognized actions to a walker
type ActionDispatcher struct {
	walker Walker
	last   gesture.Action
	count  int

	// OnDispatch is called after every handled action
	OnDispatch func(action gesture.Action)
}

// NewActionDispatcher creates a dispatcher for walker
func NewActionDispatcher(walker Walker) *ActionDispatcher {
	return &ActionDispatcher{walker: walker}
}

// OnAction implements the action half of gesture.Listener
func (d *ActionDispatcher) OnAction(action gesture.Action) {
	var err error
	switch action {
	case gesture.ActionForward:
		err = d.walker.Forward()
	case gesture.ActionBackward:
		d.walker.Backward()
	case gesture.ActionStand:
		err = d.walker.Stand()
	default:
		log.Printf("action unhandled: %s", action)
		return
	}
	if err != nil {
		log.Printf("action %s failed: %v", action, err)
	}

	d.last = action
	d.count++
	if d.OnDispatch != nil {
		d.OnDispatch(action)
	}
}

// Last returns the most recent handled action
func (d *ActionDispatcher) Last() gesture.Action {
	return d.last
}

// Count returns the number of handled actions
func (d *ActionDispatcher) Count() int {
	return d.count
}
