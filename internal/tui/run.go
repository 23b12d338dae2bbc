package tui

import (
	"context"
	"time"

	"groundhog/internal/errors"
	"groundhog/internal/log"
	"groundhog/internal/terminal"
)

// Terminal is a backend that can both be driven and read from.
type Terminal interface {
	terminal.Backend
	terminal.InputBackend
}

// Options configures Run.
type Options struct {
	// TickRate bounds each wait for input. Zero means DefaultTickRate.
	TickRate time.Duration
	// Debug shows the draw count and last event under the controls.
	Debug bool
	// Terminal defaults to the process's stdin and stdout.
	Terminal Terminal
}

// Run takes over the terminal, runs the interactive loop until the user
// quits and restores the terminal. Console logging is muted while the
// terminal is taken over. The terminal is restored on every exit path.
func Run(ctx context.Context, opts Options) (final State, err error) {
	logger := log.Subsystem("tui").WithContext(ctx)
	if err := ctx.Err(); err != nil {
		return NewState(), errors.NewTUIError("start", err)
	}

	term := opts.Terminal
	if term == nil {
		term = terminal.NewStdioBackend()
	}

	resume := log.Default().SuspendConsole()
	defer resume()

	session, err := terminal.Enter(term)
	if err != nil {
		logger.WithError(err).Error("Failed to set up terminal")
		return NewState(), err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			logger.WithError(cerr).Error("Failed to restore terminal")
			if err == nil {
				err = cerr
			}
		}
	}()

	input := terminal.NewInputReader(term)
	defer input.Close()

	keys := DefaultKeyMap()
	loop := &Loop{
		Events:   input,
		Renderer: &ScreenRenderer{Screen: session.Screen(), View: NewView(keys, opts.Debug)},
		TickRate: opts.TickRate,
		Keys:     keys,
	}

	logger.Info("Interactive mode started")
	final, err = loop.Run(NewState())
	if err != nil {
		return final, err
	}
	logger.With(log.F("counter", final.Counter)).Info("Interactive mode finished")
	return final, nil
}
