// Package errors provides the error taxonomy for groundhog.
// Every failure that crosses a package boundary is one of the category types
// defined here, each built on ApplicationError and tagged with an ErrorKind.
// The top level renders them with UserMessage and maps them with ExitCode.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
	// Join returns an error that wraps the given errors
	Join = errors.Join
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// Category returns the category the error kind belongs to
func (e *ApplicationError) Category() Category {
	return e.kind.Category()
}

// Message returns the error message without the wrapped cause
func (e *ApplicationError) Message() string {
	return e.msg
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// CommandError represents dispatch-level failures
type CommandError struct {
	ApplicationError
	command string
	message string
}

// NewCommandNotFound reports a subcommand that does not exist
func NewCommandNotFound(command string) *CommandError {
	return &CommandError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("command '%s' not found", command),
			kind: CommandNotFound,
		},
		command: command,
	}
}

// NewInvalidArguments reports arguments a command could not accept
func NewInvalidArguments(command, message string) *CommandError {
	return &CommandError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("invalid arguments for command '%s': %s", command, message),
			kind: CommandInvalidArguments,
		},
		command: command,
		message: message,
	}
}

// NewExecutionFailed reports a command that started but could not finish
func NewExecutionFailed(command string, err error) *CommandError {
	return &CommandError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("command '%s' execution failed", command),
			err:  err,
			kind: CommandExecutionFailed,
		},
		command: command,
	}
}

// NewCommandPermissionDenied reports a command the caller may not run
func NewCommandPermissionDenied(command string) *CommandError {
	return &CommandError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("permission denied for command '%s'", command),
			kind: CommandPermissionDenied,
		},
		command: command,
	}
}

// Command returns the command name associated with the error
func (e *CommandError) Command() string {
	return e.command
}

// Detail returns the argument problem for invalid-arguments errors
func (e *CommandError) Detail() string {
	return e.message
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	path     string
	key      string
	value    string
	expected string
	line     int
}

// NewConfigNotFound reports a configuration file that could not be read.
// A read failure while loading configuration is reclassified into this kind.
func NewConfigNotFound(path string, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("configuration file not found at '%s'", path),
			err:  err,
			kind: ConfigNotFound,
		},
		path: path,
	}
}

// NewConfigInvalidFormat reports a configuration file that could not be decoded.
// line is zero when the decoder gave no position.
func NewConfigInvalidFormat(path string, line int, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  "configuration file has invalid format",
			err:  err,
			kind: ConfigInvalidFormat,
		},
		path: path,
		line: line,
	}
}

// NewMissingKey reports a required configuration key that is absent
func NewMissingKey(key string) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("missing required configuration key '%s'", key),
			kind: ConfigMissingKey,
		},
		key: key,
	}
}

// NewInvalidValue reports a configuration value outside its constraint
func NewInvalidValue(key, value, expected string) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("invalid value for configuration key '%s': %s (expected %s)", key, value, expected),
			kind: ConfigInvalidValue,
		},
		key:      key,
		value:    value,
		expected: expected,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.path != "" && e.kind == ConfigInvalidFormat {
		loc := e.path
		if e.line > 0 {
			loc = fmt.Sprintf("%s:%d", e.path, e.line)
		}
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, loc, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, loc)
	}
	return e.ApplicationError.Error()
}

// Path returns the configuration file path associated with the error
func (e *ConfigError) Path() string {
	return e.path
}

// Key returns the configuration key associated with the error
func (e *ConfigError) Key() string {
	return e.key
}

// Value returns the offending value for invalid-value errors
func (e *ConfigError) Value() string {
	return e.value
}

// Expected returns the constraint the value failed
func (e *ConfigError) Expected() string {
	return e.expected
}

// Line returns the line of a format error, or zero
func (e *ConfigError) Line() int {
	return e.line
}

// FileSystemError represents errors related to file operations
type FileSystemError struct {
	ApplicationError
	path     string
	expected string
}

// NewFileError creates a new file system error of the given kind
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileSystemError {
	return &FileSystemError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// NewFileInvalidFormat reports a file whose content is not the expected format
func NewFileInvalidFormat(path, expected string, err error) *FileSystemError {
	fe := NewFileError("invalid file format", path, FileInvalidFormat, err)
	fe.expected = expected
	return fe
}

// Error returns the file error message
func (e *FileSystemError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileSystemError) Path() string {
	return e.path
}

// Expected returns the expected format for invalid-format errors
func (e *FileSystemError) Expected() string {
	return e.expected
}

// NetworkError represents errors related to remote services
type NetworkError struct {
	ApplicationError
	url     string
	status  int
	timeout time.Duration
}

// NewConnectionFailed reports a connection that could not be established
func NewConnectionFailed(url string, err error) *NetworkError {
	return &NetworkError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("failed to connect to '%s'", url),
			err:  err,
			kind: NetworkConnectionFailed,
		},
		url: url,
	}
}

// NewNetworkTimeout reports a request that exceeded its deadline
func NewNetworkTimeout(timeout time.Duration) *NetworkError {
	return &NetworkError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("request timeout after %dms", timeout.Milliseconds()),
			kind: NetworkTimeout,
		},
		timeout: timeout,
	}
}

// NewHTTPError reports a non-success HTTP status
func NewHTTPError(status int, message string) *NetworkError {
	return &NetworkError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("HTTP error %d: %s", status, message),
			kind: NetworkHTTP,
		},
		status: status,
	}
}

// NewInvalidURL reports a URL that cannot be used
func NewInvalidURL(url string, err error) *NetworkError {
	return &NetworkError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("invalid URL: '%s'", url),
			err:  err,
			kind: NetworkInvalidURL,
		},
		url: url,
	}
}

// NewAuthenticationFailed reports rejected credentials
func NewAuthenticationFailed() *NetworkError {
	return &NetworkError{
		ApplicationError: ApplicationError{
			msg:  "authentication failed",
			kind: NetworkAuthenticationFailed,
		},
	}
}

// URL returns the URL associated with the error
func (e *NetworkError) URL() string {
	return e.url
}

// Status returns the HTTP status for HTTP errors
func (e *NetworkError) Status() int {
	return e.status
}

// Timeout returns the deadline that was exceeded
func (e *NetworkError) Timeout() time.Duration {
	return e.timeout
}

// ParseError represents structured-format decode failures
type ParseError struct {
	ApplicationError
	input  string
	line   int
	column int
}

// NewParseError creates a decode error for one of the Parse kinds.
// line and column are zero when the decoder gave no position.
func NewParseError(kind ErrorKind, input string, line, column int, err error) *ParseError {
	return &ParseError{
		ApplicationError: ApplicationError{
			msg:  kind.parseMessage(line, column),
			err:  err,
			kind: kind,
		},
		input:  input,
		line:   line,
		column: column,
	}
}

// Format returns the name of the format that failed to decode
func (e *ParseError) Format() string {
	switch e.kind {
	case ParseJSON:
		return "json"
	case ParseYAML:
		return "yaml"
	case ParseTOML:
		return "toml"
	default:
		return "syntax"
	}
}

// Input returns the input that failed to parse
func (e *ParseError) Input() string {
	return e.input
}

// Line returns the failing line, or zero
func (e *ParseError) Line() int {
	return e.line
}

// Column returns the failing column, or zero
func (e *ParseError) Column() int {
	return e.column
}

// InternalError represents failures that indicate a bug or exhausted resource
type InternalError struct {
	ApplicationError
	subject string
}

// NewUnexpectedState reports an impossible state transition
func NewUnexpectedState(message string) *InternalError {
	return &InternalError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("unexpected application state: %s", message),
			kind: InternalUnexpectedState,
		},
		subject: message,
	}
}

// NewResourceExhausted reports a resource that ran out
func NewResourceExhausted(resource string) *InternalError {
	return &InternalError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("resource exhausted: %s", resource),
			kind: InternalResourceExhausted,
		},
		subject: resource,
	}
}

// NewInitializationFailed reports a component that could not start
func NewInitializationFailed(component string, err error) *InternalError {
	return &InternalError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("initialization failed: %s", component),
			err:  err,
			kind: InternalInitializationFailed,
		},
		subject: component,
	}
}

// NewValidationFailed reports an internal consistency check that failed
func NewValidationFailed(message string) *InternalError {
	return &InternalError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("configuration validation failed: %s", message),
			kind: InternalValidationFailed,
		},
		subject: message,
	}
}

// Subject returns the component, resource or message the error is about
func (e *InternalError) Subject() string {
	return e.subject
}

// TUIError represents opaque terminal or backend failures
type TUIError struct {
	ApplicationError
}

// NewTUIError wraps a terminal failure. op names the step that failed.
func NewTUIError(op string, err error) *TUIError {
	return &TUIError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("TUI error: %s", op),
			err:  err,
			kind: TUIFailure,
		},
	}
}
