// Package command holds the per-invocation bookkeeping shared by every
// subcommand.
package command

import (
	"time"

	"groundhog/internal/errors"
	"groundhog/internal/log"
)

// Context describes one command execution.
type Context struct {
	Name  string    `json:"command_name"`
	Input string    `json:"user_input,omitempty"`
	Start time.Time `json:"start_time"`

	// Outcome summarises a successful run for the completion log.
	Outcome string `json:"outcome,omitempty"`
}

// NewContext starts timing a command.
func NewContext(name string) *Context {
	return &Context{Name: name, Start: time.Now()}
}

// WithInput records the user input the command was given.
func (c *Context) WithInput(input string) *Context {
	c.Input = input
	return c
}

// WithOutcome records what a successful run did.
func (c *Context) WithOutcome(outcome string) *Context {
	c.Outcome = outcome
	return c
}

// Elapsed returns the time since the command started.
func (c *Context) Elapsed() time.Duration {
	return time.Since(c.Start)
}

// Logger returns a logger tagged with the command name. Each command logs
// under its own "command.<name>" subsystem.
func (c *Context) Logger() *log.Logger {
	return log.Subsystem("command."+c.Name).With(log.F("command", c.Name))
}

// Finish turns the command's outcome into a Result stamped with the
// elapsed time.
func (c *Context) Finish(err error) Result {
	var r Result
	switch {
	case err != nil:
		r = Failure(errors.UserMessage(err))
	case c.Outcome != "":
		r = SuccessWithMessage(c.Outcome)
	default:
		r = Success()
	}
	return r.WithDuration(c.Elapsed())
}
