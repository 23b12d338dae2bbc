package tui

import (
	"time"

	"groundhog/internal/log"
	"groundhog/internal/terminal"
)

// DefaultTickRate bounds each wait for input.
const DefaultTickRate = 100 * time.Millisecond

// Renderer draws states and tracks the terminal size.
type Renderer interface {
	Draw(State) error
	Resize(width, height int)
}

// eventObserver is implemented by renderers that want to see every event.
type eventObserver interface {
	Observe(terminal.Event)
}

// Loop is the render loop. It runs on the calling goroutine and blocks only
// inside Events.Next.
type Loop struct {
	Events   terminal.EventSource
	Renderer Renderer
	TickRate time.Duration
	Keys     KeyMap
}

// Run draws, waits for one event, applies it and repeats until the state
// asks to quit. Draw and event errors end the loop immediately and are
// returned along with the last state.
func (l *Loop) Run(initial State) (State, error) {
	rate := l.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	keys := l.Keys
	if keys.empty() {
		keys = DefaultKeyMap()
	}
	observer, _ := l.Renderer.(eventObserver)
	logger := log.Subsystem("tui")

	state := initial
	for {
		if err := l.Renderer.Draw(state); err != nil {
			logger.WithError(err).Debug("Draw failed")
			return state, err
		}

		ev, err := l.Events.Next(rate)
		if err != nil {
			logger.WithError(err).Debug("Event source failed")
			return state, err
		}

		if observer != nil {
			observer.Observe(ev)
		}
		if rs, ok := ev.(terminal.Resize); ok {
			l.Renderer.Resize(rs.Width, rs.Height)
		}

		state = Apply(state, ev, keys)
		if state.Quit {
			logger.With(log.F("counter", state.Counter)).Debug("Quit requested")
			return state, nil
		}
	}
}
