package errors

import (
	"fmt"
	"io/fs"
	"syscall"
)

// Process exit codes, following the sysexits(3) convention.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 64
	ExitDataErr     = 65
	ExitNoInput     = 66
	ExitUnavailable = 69
	ExitIOErr       = 74
	ExitNoPerm      = 77
)

// ExitCode maps an error to the process exit code. It is a pure function of
// the kind of the outermost classified error in err's chain.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	kind := KindOf(err)
	switch kind {
	case CommandNotFound, CommandInvalidArguments:
		return ExitUsage
	case ConfigInvalidFormat, FileInvalidFormat:
		return ExitDataErr
	case ConfigNotFound, FileNotFound:
		return ExitNoInput
	case FilePermissionDenied, CommandPermissionDenied:
		return ExitNoPerm
	case FileIO, FileNotReadable, FileNotWritable, DirectoryNotAccessible:
		return ExitIOErr
	}
	switch kind.Category() {
	case CategoryNetwork:
		return ExitUnavailable
	case CategoryParse:
		return ExitDataErr
	}
	return ExitFailure
}

// UserMessage renders an error for display. Kinds with a known remedy get a
// suggestion on a second line; everything else falls back to the technical
// message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	switch KindOf(err) {
	case CommandNotFound:
		var cmdErr *CommandError
		if As(err, &cmdErr) {
			return fmt.Sprintf("Command '%s' not found. Run 'groundhog --help' to see available commands.", cmdErr.Command())
		}
	case ConfigNotFound:
		var cfgErr *ConfigError
		if As(err, &cfgErr) {
			return fmt.Sprintf("Configuration file not found at '%s'.\nTry running 'groundhog config init' to create a default configuration.", cfgErr.Path())
		}
	case FileNotFound:
		var fsErr *FileSystemError
		if As(err, &fsErr) {
			return fmt.Sprintf("File not found: '%s'\nPlease check the path and try again.", fsErr.Path())
		}
	case FilePermissionDenied:
		var fsErr *FileSystemError
		if As(err, &fsErr) {
			return fmt.Sprintf("Permission denied accessing '%s'\nPlease check file permissions or run with appropriate privileges.", fsErr.Path())
		}
	}

	return err.Error()
}

// FromIOError reclassifies an I/O failure on path into the FileSystem category.
func FromIOError(path string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case Is(err, fs.ErrNotExist):
		return NewFileError("file not found", path, FileNotFound, err)
	case Is(err, fs.ErrPermission):
		return NewFileError("permission denied accessing", path, FilePermissionDenied, err)
	case Is(err, syscall.EISDIR):
		return NewFileError("file is not readable", path, FileNotReadable, err)
	case Is(err, syscall.EROFS):
		return NewFileError("file is not writable", path, FileNotWritable, err)
	case Is(err, syscall.ENOTDIR):
		return NewFileError("directory is not accessible", path, DirectoryNotAccessible, err)
	default:
		return NewFileError("I/O error", path, FileIO, err)
	}
}
