package command

import "time"

// Result is the outcome of a command execution.
type Result struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// Success returns a successful result with no message.
func Success() Result {
	return Result{Success: true}
}

// SuccessWithMessage returns a successful result carrying msg.
func SuccessWithMessage(msg string) Result {
	return Result{Success: true, Message: msg}
}

// Failure returns a failed result carrying msg.
func Failure(msg string) Result {
	return Result{Message: msg}
}

// WithDuration returns r with its duration set, truncated to milliseconds.
func (r Result) WithDuration(d time.Duration) Result {
	r.DurationMS = d.Milliseconds()
	return r
}

// IsSuccess reports whether the command succeeded.
func (r Result) IsSuccess() bool { return r.Success }

// IsFailure reports whether the command failed.
func (r Result) IsFailure() bool { return !r.Success }
