package terminal

import (
	"fmt"

	"groundhog/internal/errors"
	"groundhog/internal/log"
)

// State is the lifecycle position of a Session.
type State int

const (
	Inactive State = iota
	RawModeEntered
	AlternateScreenEntered
	Active
)

func (s State) String() string {
	switch s {
	case RawModeEntered:
		return "raw-mode"
	case AlternateScreenEntered:
		return "alternate-screen"
	case Active:
		return "active"
	default:
		return "inactive"
	}
}

type teardown struct {
	name string
	fn   func() error
}

// Session exclusively owns the terminal between Enter and Close. Every
// acquired step is undone on every exit path, in reverse order.
type Session struct {
	backend Backend
	screen  *Screen
	state   State
	undo    []teardown
	closed  bool
	logger  *log.Logger
}

// Enter acquires the terminal: raw mode, then the alternate screen with
// mouse capture and a hidden cursor, then the screen. If any step fails the
// steps already taken are undone before the error is returned.
func Enter(b Backend) (*Session, error) {
	s := &Session{backend: b, logger: log.Subsystem("terminal")}

	steps := []struct {
		name    string
		acquire func() error
		release teardown
		state   State
	}{
		{"enable raw mode", b.EnableRawMode, teardown{"disable raw mode", b.DisableRawMode}, RawModeEntered},
		{"enter alternate screen", b.EnterAlternateScreen, teardown{"leave alternate screen", b.LeaveAlternateScreen}, AlternateScreenEntered},
		{"enable mouse capture", b.EnableMouseCapture, teardown{"disable mouse capture", b.DisableMouseCapture}, AlternateScreenEntered},
		{"hide cursor", b.HideCursor, teardown{"show cursor", b.ShowCursor}, AlternateScreenEntered},
	}

	for _, step := range steps {
		if err := step.acquire(); err != nil {
			return nil, s.abort(step.name, err)
		}
		s.undo = append(s.undo, step.release)
		s.state = step.state
		s.logger.With(log.F("step", step.name)).Trace("Terminal step acquired")
	}

	screen, err := NewScreen(b)
	if err != nil {
		return nil, s.abort("query terminal size", err)
	}
	s.screen = screen
	s.state = Active

	s.logger.With(log.F("width", screen.width), log.F("height", screen.height)).Debug("Terminal session active")
	return s, nil
}

func (s *Session) abort(op string, cause error) error {
	if restoreErr := s.Close(); restoreErr != nil {
		cause = errors.Join(cause, restoreErr)
	}
	if errors.IsTUIError(cause) {
		return cause
	}
	return errors.NewTUIError(op, cause)
}

// Close releases the terminal. It is idempotent; only the first call does
// any work. Teardown continues past failing steps and their errors are
// joined into one.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	for i := len(s.undo) - 1; i >= 0; i-- {
		step := s.undo[i]
		if err := step.fn(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", step.name, err))
		}
	}
	s.undo = nil
	s.state = Inactive

	if len(errs) > 0 {
		return errors.NewTUIError("restore terminal", errors.Join(errs...))
	}
	s.logger.Debug("Terminal restored")
	return nil
}

// Screen returns the drawing surface. Nil before Enter succeeds.
func (s *Session) Screen() *Screen {
	return s.screen
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}
