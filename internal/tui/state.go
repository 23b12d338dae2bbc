// Package tui is groundhog's interactive mode: a counter demo driven by a
// single-threaded draw, poll, apply loop.
package tui

import (
	"fmt"

	"groundhog/internal/terminal"

	"github.com/charmbracelet/bubbles/key"
)

const (
	initialMessage = "Hello, Groundhog! 🐹"
	resetMessage   = "Counter reset! 🐹"
)

// State is everything the view shows. It changes only through Apply.
type State struct {
	Message string
	Counter uint32
	Quit    bool
}

// NewState returns the state shown when the UI opens.
func NewState() State {
	return State{Message: initialMessage}
}

// Apply returns the state after ev. Events that are not bound keys leave
// the state unchanged. The counter wraps at its maximum.
func Apply(s State, ev terminal.Event, keys KeyMap) State {
	kp, ok := ev.(terminal.KeyPress)
	if !ok {
		return s
	}

	switch {
	case key.Matches(kp, keys.Quit):
		s.Quit = true
	case key.Matches(kp, keys.Increment):
		s.Counter++
		s.Message = fmt.Sprintf("Counter: %d (Press 'q' to quit, Space to increment)", s.Counter)
	case key.Matches(kp, keys.Reset):
		s.Counter = 0
		s.Message = resetMessage
	}
	return s
}
