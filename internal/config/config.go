// Package config resolves groundhog's layered configuration: built-in
// defaults overlaid by at most one TOML file.
package config

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"groundhog/internal/errors"
	"groundhog/internal/log"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable that overrides the config file path.
const EnvConfigPath = "GROUNDHOG_CONFIG"

// Version is written into the header of generated config files.
const Version = "0.1.0"

const fileHeader = "# Groundhog Configuration File\n# Version: " + Version + "\n\n"

// Mockable for tests.
var (
	osUserHomeDir = os.UserHomeDir
	osGetenv      = os.Getenv
	osStat        = os.Stat
	osReadFile    = os.ReadFile
)

// Config is the application configuration. It is built once per process and
// not mutated after validation.
type Config struct {
	Logging     LoggingConfig     `toml:"logging" yaml:"logging"`
	Commands    CommandsConfig    `toml:"commands" yaml:"commands"`
	AI          *AIConfig         `toml:"ai,omitempty" yaml:"ai,omitempty"`
	Output      OutputConfig      `toml:"output" yaml:"output"`
	Performance PerformanceConfig `toml:"performance" yaml:"performance"`
}

// LoggingConfig controls the log sinks.
type LoggingConfig struct {
	Level      LogLevel  `toml:"level" yaml:"level"`
	Format     LogFormat `toml:"format" yaml:"format"`
	File       string    `toml:"file,omitempty" yaml:"file,omitempty"` // Optional log file sink
	Timestamps bool      `toml:"timestamps" yaml:"timestamps"`
	ThreadIDs  bool      `toml:"thread_ids" yaml:"thread_ids"`
}

// CommandsConfig holds per-command settings.
type CommandsConfig struct {
	Default string         `toml:"default,omitempty" yaml:"default,omitempty"` // Subcommand run when none is given
	Explain *ExplainConfig `toml:"explain,omitempty" yaml:"explain,omitempty"`
}

// ExplainConfig configures the explain command.
type ExplainConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Format  string `toml:"format,omitempty" yaml:"format,omitempty"`
}

// AIConfig configures the explanation backend. Only present when the
// [ai] section exists.
type AIConfig struct {
	Provider AIProvider `toml:"provider" yaml:"provider"`
	Model    string     `toml:"model" yaml:"model"`
	APIKey   string     `toml:"api_key,omitempty" yaml:"api_key,omitempty"`
	Endpoint string     `toml:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// OutputConfig controls command output.
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"`
	Color  bool   `toml:"color" yaml:"color"`
	Pager  string `toml:"pager" yaml:"pager"`
}

// PerformanceConfig holds resource limits. All three must be positive.
type PerformanceConfig struct {
	MaxFileSize int64 `toml:"max_file_size" yaml:"max_file_size"` // Megabytes
	Timeout     int64 `toml:"timeout" yaml:"timeout"`             // Seconds
	Threads     int   `toml:"threads" yaml:"threads"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      LevelInfo,
			Format:     FormatPretty,
			Timestamps: true,
			ThreadIDs:  false,
		},
		Commands: CommandsConfig{
			Explain: &ExplainConfig{Enabled: true},
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
			Pager:  "auto",
		},
		Performance: PerformanceConfig{
			MaxFileSize: 100,
			Timeout:     30,
			Threads:     4,
		},
	}
}

// SearchPaths returns the candidate config files in precedence order.
// explicit is skipped when empty.
func SearchPaths(explicit string) []string {
	var paths []string
	if explicit != "" {
		paths = append(paths, explicit)
	}
	if env := osGetenv(EnvConfigPath); env != "" {
		paths = append(paths, env)
	}
	paths = append(paths, filepath.Join(".", "groundhog.toml"))
	if home, err := osUserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".groundhog", "config.toml"))
	}
	paths = append(paths, filepath.Join("/etc", "groundhog", "config.toml"))
	return paths
}

// Locate returns the first candidate that exists.
func Locate(explicit string) (string, bool) {
	logger := log.Subsystem("config")
	for _, path := range SearchPaths(explicit) {
		logger.With(log.F("path", path)).Trace("Checking configuration path")
		if _, err := osStat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Resolve loads the first existing candidate, or returns defaults when none
// exists. A candidate that exists but fails to load is terminal; later
// candidates are not tried.
func Resolve(explicit string) (*Config, error) {
	path, ok := Locate(explicit)
	if !ok {
		log.Subsystem("config").Info("No configuration file found, using defaults")
		return New(), nil
	}
	log.Subsystem("config").With(log.F("path", path)).Info("Found configuration file")
	return LoadFile(path)
}

// LoadFile loads path over the defaults. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	logger := log.Subsystem("config").With(log.F("path", path))
	cfg := New()

	data, err := osReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Configuration file not found, using defaults")
			return cfg, nil
		}
		return nil, errors.NewConfigNotFound(path, err)
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, err
	}

	logger.Info("Configuration loaded successfully")
	return cfg, nil
}

// Parse decodes TOML data over the defaults. name labels errors.
func Parse(name string, data []byte) (*Config, error) {
	cfg := New()
	if err := decode(name, data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		line := 0
		var perr toml.ParseError
		if errors.As(err, &perr) {
			line = perr.Position.Line
		}
		return errors.NewConfigInvalidFormat(path, line,
			errors.NewParseError(errors.ParseTOML, path, line, 0, err))
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logger := log.Subsystem("config").With(log.F("path", path))
		for _, key := range undecoded {
			logger.With(log.F("key", key.String())).Warn("Unknown configuration key ignored")
		}
	}
	return nil
}

// Validate checks value constraints. It never mutates the receiver.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewValidationFailed("nil config")
	}

	positive := []struct {
		key   string
		value int64
	}{
		{"performance.max_file_size", c.Performance.MaxFileSize},
		{"performance.timeout", c.Performance.Timeout},
		{"performance.threads", int64(c.Performance.Threads)},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return errors.NewInvalidValue(p.key, strconv.FormatInt(p.value, 10), "positive integer")
		}
	}

	if c.AI != nil {
		if c.AI.Provider == ProviderUnset {
			return errors.NewMissingKey("ai.provider")
		}
		if c.AI.Model == "" {
			return errors.NewMissingKey("ai.model")
		}
	}

	log.Subsystem("config").Debug("Configuration validation passed")
	return nil
}

// Marshal renders cfg as "toml" or "yaml".
func Marshal(cfg *Config, format string) ([]byte, error) {
	switch format {
	case "", "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, errors.NewExecutionFailed("config show", err)
		}
		return buf.Bytes(), nil
	case "yaml", "yml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, errors.NewExecutionFailed("config show", err)
		}
		return data, nil
	default:
		return nil, errors.NewInvalidValue("output", format, "toml or yaml")
	}
}

// CreateDefaultFile writes the default configuration to path, creating
// parent directories. An existing file is only replaced when force is set.
func CreateDefaultFile(path string, force bool) error {
	logger := log.Subsystem("config").With(log.F("path", path))

	if !force {
		if _, err := osStat(path); err == nil {
			return errors.NewFileError("configuration file already exists (use --force to overwrite)", path, errors.FileNotWritable, fs.ErrExist)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.FromIOError(filepath.Dir(path), err)
	}

	body, err := Marshal(New(), "toml")
	if err != nil {
		return err
	}

	content := append([]byte(fileHeader), body...)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return errors.FromIOError(path, err)
	}

	logger.Info("Default configuration file created")
	return nil
}

// DefaultUserPath returns ~/.groundhog/config.toml.
func DefaultUserPath() (string, error) {
	home, err := osUserHomeDir()
	if err != nil {
		return "", errors.NewInitializationFailed("home directory", err)
	}
	return filepath.Join(home, ".groundhog", "config.toml"), nil
}
