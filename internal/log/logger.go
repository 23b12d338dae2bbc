// Package log is groundhog's structured logger. It is a thin layer over
// logrus: entries are routed to one or more sinks (console, file), each with
// its own level and formatter.
package log

import (
	"context"
	"io"
	"os"

	"groundhog/internal/errors"

	"github.com/sirupsen/logrus"
)

var logger = NewLogger()

// Logger wraps a logrus entry together with the sinks it writes to.
type Logger struct {
	base    *logrus.Logger
	entry   *logrus.Entry
	console *sink
	file    *os.File
}

// Field is a single structured key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// F creates a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// NewLogger builds a logger. With no options it writes Pretty text at warn
// level to stderr.
func NewLogger(opts ...Option) *Logger {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	base := logrus.New()
	base.Out = io.Discard

	if o.threadIDs {
		base.AddHook(goroutineHook{})
	}

	l := &Logger{base: base}

	maxLevel := o.level
	l.console = newSink(o.out, o.formatter(o.out), o.level, o.filter)
	base.AddHook(l.console)
	if lvl := o.filter.maxLevel(); lvl > maxLevel {
		maxLevel = lvl
	}

	var openErr error
	if o.file != "" {
		f, err := os.OpenFile(o.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			openErr = err
		} else {
			l.file = f
			fileSink := newSink(f, o.fileFormatter(), o.fileLevel, o.filter)
			base.AddHook(fileSink)
			if o.fileLevel > maxLevel {
				maxLevel = o.fileLevel
			}
		}
	}

	base.SetLevel(maxLevel)
	l.entry = logrus.NewEntry(base)
	if openErr != nil {
		l.WithError(errors.FromIOError(o.file, openErr)).Warn("Log file unavailable, logging to console only")
	}
	return l
}

// Configure replaces the package logger.
func Configure(opts ...Option) {
	old := logger
	logger = NewLogger(opts...)
	if old != nil && old.file != nil {
		old.file.Close()
	}
}

// Default returns the package logger.
func Default() *Logger {
	return logger
}

// Close releases the file sink, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// With returns a logger that adds the given fields to every entry.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	clone := *l
	clone.entry = l.entry.WithFields(data)
	return &clone
}

// Subsystem tags entries with the dotted subsystem name used by the
// GROUNDHOG_LOG filter.
func (l *Logger) Subsystem(name string) *Logger {
	return l.With(F(SubsystemKey, name))
}

// WithContext attaches ctx to subsequent entries.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	clone := *l
	clone.entry = l.entry.WithContext(ctx)
	return &clone
}

// WithError adds the error and its classification to the entry.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l.With(F("error", "<nil>"))
	}

	fields := []Field{F("error", err.Error())}
	if kind := errors.KindOf(err); kind != errors.Unknown {
		fields = append(fields,
			F("error_kind", kind.String()),
			F("error_category", kind.Category().String()),
			F("exit_code", errors.ExitCode(err)))
	}

	var cfgErr *errors.ConfigError
	if errors.As(err, &cfgErr) {
		if cfgErr.Path() != "" {
			fields = append(fields, F("path", cfgErr.Path()))
		}
		if cfgErr.Key() != "" {
			fields = append(fields, F("key", cfgErr.Key()))
		}
	}
	var fsErr *errors.FileSystemError
	if errors.As(err, &fsErr) {
		fields = append(fields, F("path", fsErr.Path()))
	}
	var cmdErr *errors.CommandError
	if errors.As(err, &cmdErr) {
		fields = append(fields, F("command", cmdErr.Command()))
	}

	return l.With(fields...)
}

func (l *Logger) Trace(msg string)                          { l.entry.Trace(msg) }
func (l *Logger) Debug(msg string)                          { l.entry.Debug(msg) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *Logger) Info(msg string)                           { l.entry.Info(msg) }
func (l *Logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *Logger) Warn(msg string)                           { l.entry.Warn(msg) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *Logger) Error(msg string)                          { l.entry.Error(msg) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// SuspendConsole mutes the console sink until the returned func is called.
// The file sink keeps receiving entries.
func (l *Logger) SuspendConsole() (resume func()) {
	l.console.muted.Store(true)
	return func() { l.console.muted.Store(false) }
}

// LogWithFields returns the package logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package logger with the error's classification attached.
func LogWithError(err error) *Logger {
	return logger.WithError(err)
}

// LogError logs err at error level.
func LogError(err error, msg string) {
	logger.WithError(err).Error(msg)
}

// Subsystem returns the package logger tagged with a subsystem.
func Subsystem(name string) *Logger {
	return logger.Subsystem(name)
}

// Trace logs at trace level on the package logger.
func Trace(msg string) { logger.Trace(msg) }

// Debug logs at debug level on the package logger.
func Debug(msg string) { logger.Debug(msg) }

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }

// Info logs at info level on the package logger.
func Info(msg string) { logger.Info(msg) }

// Infof logs a formatted message at info level.
func Infof(format string, args ...interface{}) { logger.Infof(format, args...) }

// Warn logs at warn level on the package logger.
func Warn(msg string) { logger.Warn(msg) }

// Warnf logs a formatted message at warn level.
func Warnf(format string, args ...interface{}) { logger.Warnf(format, args...) }

// Error logs at error level on the package logger.
func Error(msg string) { logger.Error(msg) }

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }
