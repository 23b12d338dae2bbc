package log

import "github.com/sirupsen/logrus"

// VerbosityLevel maps the -v count and -q flag to a console level.
// Quiet takes precedence over any verbosity.
func VerbosityLevel(verbose int, quiet bool) logrus.Level {
	if quiet {
		return logrus.ErrorLevel
	}
	switch {
	case verbose <= 0:
		return logrus.WarnLevel
	case verbose == 1:
		return logrus.InfoLevel
	case verbose == 2:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}
