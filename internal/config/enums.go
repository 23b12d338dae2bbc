package config

import (
	"strings"

	"groundhog/internal/errors"
)

// LogLevel is the file sink level from [logging].
type LogLevel int

const (
	LevelTrace LogLevel = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

var logLevelNames = []string{"Trace", "Debug", "Info", "Warn", "Error"}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(logLevelNames) {
		return "Info"
	}
	return logLevelNames[l]
}

func (l LogLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *LogLevel) UnmarshalText(text []byte) error {
	i, err := parseName("logging.level", string(text), logLevelNames)
	if err != nil {
		return err
	}
	*l = LogLevel(i)
	return nil
}

// LogFormat is the entry format from [logging].
type LogFormat int

const (
	FormatPretty LogFormat = iota
	FormatJSON
	FormatCompact
)

var logFormatNames = []string{"Pretty", "Json", "Compact"}

func (f LogFormat) String() string {
	if f < 0 || int(f) >= len(logFormatNames) {
		return "Pretty"
	}
	return logFormatNames[f]
}

func (f LogFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *LogFormat) UnmarshalText(text []byte) error {
	i, err := parseName("logging.format", string(text), logFormatNames)
	if err != nil {
		return err
	}
	*f = LogFormat(i)
	return nil
}

// AIProvider names the explanation backend. The zero value means the
// [ai] section did not name one.
type AIProvider int

const (
	ProviderUnset AIProvider = iota
	ProviderOpenAI
	ProviderAnthropic
	ProviderLocal
)

var providerNames = []string{"OpenAI", "Anthropic", "Local"}

func (p AIProvider) String() string {
	if p <= ProviderUnset || int(p) > len(providerNames) {
		return ""
	}
	return providerNames[p-1]
}

func (p AIProvider) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *AIProvider) UnmarshalText(text []byte) error {
	i, err := parseName("ai.provider", string(text), providerNames)
	if err != nil {
		return err
	}
	*p = AIProvider(i + 1)
	return nil
}

func parseName(key, value string, names []string) (int, error) {
	for i, name := range names {
		if strings.EqualFold(name, value) {
			return i, nil
		}
	}
	return 0, errors.NewInvalidValue(key, value, "one of "+strings.Join(names, ", "))
}
