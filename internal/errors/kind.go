package errors

import "fmt"

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Command error kinds
	CommandNotFound
	CommandInvalidArguments
	CommandExecutionFailed
	CommandPermissionDenied
	// Config error kinds
	ConfigNotFound
	ConfigInvalidFormat
	ConfigMissingKey
	ConfigInvalidValue
	// File system error kinds
	FileNotFound
	FilePermissionDenied
	FileNotReadable
	FileNotWritable
	DirectoryNotAccessible
	FileInvalidFormat
	FileIO
	// Network error kinds
	NetworkConnectionFailed
	NetworkTimeout
	NetworkHTTP
	NetworkInvalidURL
	NetworkAuthenticationFailed
	// Parse error kinds
	ParseJSON
	ParseYAML
	ParseTOML
	ParseSyntax
	// Internal error kinds
	InternalUnexpectedState
	InternalResourceExhausted
	InternalInitializationFailed
	InternalValidationFailed
	// Terminal error kind
	TUIFailure
)

var kindNames = map[ErrorKind]string{
	Unknown:                      "unknown",
	CommandNotFound:              "command.not_found",
	CommandInvalidArguments:      "command.invalid_arguments",
	CommandExecutionFailed:       "command.execution_failed",
	CommandPermissionDenied:      "command.permission_denied",
	ConfigNotFound:               "config.not_found",
	ConfigInvalidFormat:          "config.invalid_format",
	ConfigMissingKey:             "config.missing_key",
	ConfigInvalidValue:           "config.invalid_value",
	FileNotFound:                 "fs.not_found",
	FilePermissionDenied:         "fs.permission_denied",
	FileNotReadable:              "fs.not_readable",
	FileNotWritable:              "fs.not_writable",
	DirectoryNotAccessible:       "fs.directory_not_accessible",
	FileInvalidFormat:            "fs.invalid_format",
	FileIO:                       "fs.io",
	NetworkConnectionFailed:      "network.connection_failed",
	NetworkTimeout:               "network.timeout",
	NetworkHTTP:                  "network.http",
	NetworkInvalidURL:            "network.invalid_url",
	NetworkAuthenticationFailed:  "network.auth_failed",
	ParseJSON:                    "parse.json",
	ParseYAML:                    "parse.yaml",
	ParseTOML:                    "parse.toml",
	ParseSyntax:                  "parse.syntax",
	InternalUnexpectedState:      "internal.unexpected_state",
	InternalResourceExhausted:    "internal.resource_exhausted",
	InternalInitializationFailed: "internal.initialization_failed",
	InternalValidationFailed:     "internal.validation_failed",
	TUIFailure:                   "tui",
}

// String returns the dotted name of the kind, e.g. "config.invalid_format"
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Category groups error kinds by the subsystem that failed
type Category int

const (
	CategoryUnknown Category = iota
	CategoryCommand
	CategoryConfig
	CategoryFileSystem
	CategoryNetwork
	CategoryParse
	CategoryInternal
	CategoryTUI
)

// String returns the category name
func (c Category) String() string {
	switch c {
	case CategoryCommand:
		return "command"
	case CategoryConfig:
		return "config"
	case CategoryFileSystem:
		return "filesystem"
	case CategoryNetwork:
		return "network"
	case CategoryParse:
		return "parse"
	case CategoryInternal:
		return "internal"
	case CategoryTUI:
		return "tui"
	default:
		return "unknown"
	}
}

// Category returns the category the kind belongs to
func (k ErrorKind) Category() Category {
	switch {
	case k >= CommandNotFound && k <= CommandPermissionDenied:
		return CategoryCommand
	case k >= ConfigNotFound && k <= ConfigInvalidValue:
		return CategoryConfig
	case k >= FileNotFound && k <= FileIO:
		return CategoryFileSystem
	case k >= NetworkConnectionFailed && k <= NetworkAuthenticationFailed:
		return CategoryNetwork
	case k >= ParseJSON && k <= ParseSyntax:
		return CategoryParse
	case k >= InternalUnexpectedState && k <= InternalValidationFailed:
		return CategoryInternal
	case k == TUIFailure:
		return CategoryTUI
	default:
		return CategoryUnknown
	}
}

func (k ErrorKind) parseMessage(line, column int) string {
	switch k {
	case ParseJSON:
		return "JSON parsing failed"
	case ParseYAML:
		return "YAML parsing failed"
	case ParseTOML:
		if line > 0 {
			return fmt.Sprintf("TOML parsing failed at line %d", line)
		}
		return "TOML parsing failed"
	default:
		return fmt.Sprintf("invalid syntax at line %d, column %d", line, column)
	}
}

// kinded is satisfied by every error type in this package
type kinded interface {
	error
	Kind() ErrorKind
}

// KindOf returns the kind of the outermost classified error in err's chain,
// or Unknown when the chain holds none. Plain Wrap layers are skipped.
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = Unwrap(err)
	}
	return Unknown
}

// IsKind reports whether the outermost classified error in err's chain has the given kind
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// IsCommandNotFound checks if the error is a command not found error
func IsCommandNotFound(err error) bool {
	return IsKind(err, CommandNotFound)
}

// IsConfigNotFound checks if the error is a configuration not found error
func IsConfigNotFound(err error) bool {
	return IsKind(err, ConfigNotFound)
}

// IsConfigInvalidFormat checks if the error is a configuration format error
func IsConfigInvalidFormat(err error) bool {
	return IsKind(err, ConfigInvalidFormat)
}

// IsConfigInvalidValue checks if the error is a configuration value error
func IsConfigInvalidValue(err error) bool {
	return IsKind(err, ConfigInvalidValue)
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	return IsKind(err, FileNotFound)
}

// IsFileAccessDenied checks if the error is a file permission error
func IsFileAccessDenied(err error) bool {
	return IsKind(err, FilePermissionDenied)
}

// IsTUIError checks if the error is a terminal error
func IsTUIError(err error) bool {
	return IsKind(err, TUIFailure)
}
