package config

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"groundhog/internal/errors"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary TOML config file
func createTestTOML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "groundhog.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// isolate points the home directory and environment at nothing so that only
// explicitly created files are found.
func isolate(t *testing.T, env map[string]string) {
	t.Helper()
	home := t.TempDir()
	origHome, origGetenv, origStat := osUserHomeDir, osGetenv, osStat
	osUserHomeDir = func() (string, error) { return home, nil }
	osGetenv = func(key string) string { return env[key] }
	osStat = func(name string) (os.FileInfo, error) {
		// Shield the real cwd and /etc from the test
		if name == filepath.Join(".", "groundhog.toml") || strings.HasPrefix(name, "/etc/") {
			return nil, fs.ErrNotExist
		}
		return os.Stat(name)
	}
	t.Cleanup(func() {
		osUserHomeDir, osGetenv, osStat = origHome, origGetenv, origStat
	})
}

const (
	validTOML = `
[logging]
level = "Debug"
format = "Json"
file = "/tmp/groundhog.log"
timestamps = false
thread_ids = true

[commands]
default = "explain"

[commands.explain]
enabled = false

[ai]
provider = "Anthropic"
model = "claude"
endpoint = "https://api.example.com"

[output]
color = false

[performance]
threads = 8
`
	malformedTOML = "invalid toml content [[["
)

func TestDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, LevelInfo, cfg.Logging.Level)
	assert.Equal(t, FormatPretty, cfg.Logging.Format)
	assert.Empty(t, cfg.Logging.File)
	assert.True(t, cfg.Logging.Timestamps)
	assert.False(t, cfg.Logging.ThreadIDs)
	require.NotNil(t, cfg.Commands.Explain)
	assert.True(t, cfg.Commands.Explain.Enabled)
	assert.Nil(t, cfg.AI)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, "auto", cfg.Output.Pager)
	assert.Equal(t, int64(100), cfg.Performance.MaxFileSize)
	assert.Equal(t, int64(30), cfg.Performance.Timeout)
	assert.Equal(t, 4, cfg.Performance.Threads)

	assert.NoError(t, cfg.Validate())
}

func TestSearchPaths(t *testing.T) {
	isolate(t, map[string]string{EnvConfigPath: "/from/env.toml"})
	home, _ := osUserHomeDir()

	paths := SearchPaths("/explicit.toml")
	assert.Equal(t, []string{
		"/explicit.toml",
		"/from/env.toml",
		filepath.Join(".", "groundhog.toml"),
		filepath.Join(home, ".groundhog", "config.toml"),
		"/etc/groundhog/config.toml",
	}, paths)

	paths = SearchPaths("")
	assert.Equal(t, "/from/env.toml", paths[0])
}

func TestResolve(t *testing.T) {
	t.Run("no candidates exist", func(t *testing.T) {
		isolate(t, nil)
		cfg, err := Resolve(filepath.Join(t.TempDir(), "missing.toml"))
		require.NoError(t, err)
		assert.Equal(t, New(), cfg)
	})

	t.Run("explicit file", func(t *testing.T) {
		isolate(t, nil)
		cfg, err := Resolve(createTestTOML(t, validTOML))
		require.NoError(t, err)

		assert.Equal(t, LevelDebug, cfg.Logging.Level)
		assert.Equal(t, FormatJSON, cfg.Logging.Format)
		assert.Equal(t, "/tmp/groundhog.log", cfg.Logging.File)
		assert.False(t, cfg.Logging.Timestamps)
		assert.True(t, cfg.Logging.ThreadIDs)
		assert.Equal(t, "explain", cfg.Commands.Default)
		assert.False(t, cfg.Commands.Explain.Enabled)
		require.NotNil(t, cfg.AI)
		assert.Equal(t, ProviderAnthropic, cfg.AI.Provider)
		assert.Equal(t, "claude", cfg.AI.Model)
		assert.False(t, cfg.Output.Color)
		// Unset keys keep their defaults
		assert.Equal(t, "auto", cfg.Output.Pager)
		assert.Equal(t, int64(30), cfg.Performance.Timeout)
		assert.Equal(t, 8, cfg.Performance.Threads)
	})

	t.Run("environment override", func(t *testing.T) {
		path := createTestTOML(t, "[performance]\nthreads = 2\n")
		isolate(t, map[string]string{EnvConfigPath: path})

		cfg, err := Resolve("")
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Performance.Threads)
	})

	t.Run("home directory", func(t *testing.T) {
		isolate(t, nil)
		home, _ := osUserHomeDir()
		require.NoError(t, os.MkdirAll(filepath.Join(home, ".groundhog"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(home, ".groundhog", "config.toml"), []byte("[output]\npager = \"never\"\n"), 0644))

		cfg, err := Resolve("")
		require.NoError(t, err)
		assert.Equal(t, "never", cfg.Output.Pager)
	})

	t.Run("malformed explicit file", func(t *testing.T) {
		isolate(t, nil)
		cfg, err := Resolve(createTestTOML(t, malformedTOML))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.True(t, errors.IsConfigInvalidFormat(err))
		assert.Equal(t, 65, errors.ExitCode(err))

		var pe *errors.ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "toml", pe.Format())
	})

	t.Run("malformed file does not fall through", func(t *testing.T) {
		valid := createTestTOML(t, validTOML)
		isolate(t, map[string]string{EnvConfigPath: valid})

		_, err := Resolve(createTestTOML(t, malformedTOML))
		assert.True(t, errors.IsConfigInvalidFormat(err))
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := LoadFile(filepath.Join(t.TempDir(), "nonexistent.toml"))
		require.NoError(t, err)
		assert.Equal(t, New(), cfg)
	})

	t.Run("read failure is config not found", func(t *testing.T) {
		dir := t.TempDir()
		_, err := LoadFile(dir)
		require.Error(t, err)
		assert.True(t, errors.IsConfigNotFound(err))
		assert.Equal(t, 66, errors.ExitCode(err))
		assert.Contains(t, errors.UserMessage(err), "groundhog config init")
	})

	t.Run("line number reported", func(t *testing.T) {
		_, err := LoadFile(createTestTOML(t, "[logging]\nlevel = \"Info\"\nthis is not toml\n"))
		require.Error(t, err)

		var ce *errors.ConfigError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, 3, ce.Line())
	})

	t.Run("enum names are case-insensitive", func(t *testing.T) {
		cfg, err := LoadFile(createTestTOML(t, "[logging]\nlevel = \"warn\"\nformat = \"COMPACT\"\n"))
		require.NoError(t, err)
		assert.Equal(t, LevelWarn, cfg.Logging.Level)
		assert.Equal(t, FormatCompact, cfg.Logging.Format)
	})

	t.Run("unknown enum value", func(t *testing.T) {
		_, err := LoadFile(createTestTOML(t, "[logging]\nlevel = \"loud\"\n"))
		require.Error(t, err)
		assert.True(t, errors.IsConfigInvalidFormat(err))
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		cfg, err := LoadFile(createTestTOML(t, "[logging]\nverbosity = 3\n[extra]\nx = 1\n"))
		require.NoError(t, err)
		assert.Equal(t, New(), cfg)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		key    string
		value  string
	}{
		{"max_file_size zero", func(c *Config) { c.Performance.MaxFileSize = 0 }, "performance.max_file_size", "0"},
		{"timeout zero", func(c *Config) { c.Performance.Timeout = 0 }, "performance.timeout", "0"},
		{"threads zero", func(c *Config) { c.Performance.Threads = 0 }, "performance.threads", "0"},
		{"threads negative", func(c *Config) { c.Performance.Threads = -2 }, "performance.threads", "-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			before := *cfg

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsConfigInvalidValue(err))

			var ce *errors.ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.key, ce.Key())
			assert.Equal(t, tt.value, ce.Value())
			assert.Equal(t, "positive integer", ce.Expected())

			// Validation never mutates
			assert.Equal(t, before, *cfg)
		})
	}

	t.Run("ai section requires a model", func(t *testing.T) {
		cfg := New()
		cfg.AI = &AIConfig{Provider: ProviderLocal}
		err := cfg.Validate()
		assert.Equal(t, errors.ConfigMissingKey, errors.KindOf(err))
	})

	t.Run("ai section requires a provider", func(t *testing.T) {
		cfg, err := Parse("ai.toml", []byte("[ai]\nmodel = \"tiny\"\n"))
		require.NoError(t, err)
		require.NotNil(t, cfg.AI)
		assert.Equal(t, ProviderUnset, cfg.AI.Provider)

		err = cfg.Validate()
		var ce *errors.ConfigError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, errors.ConfigMissingKey, errors.KindOf(err))
		assert.Equal(t, "ai.provider", ce.Key())
	})

	t.Run("nil config", func(t *testing.T) {
		var cfg *Config
		assert.Error(t, cfg.Validate())
	})
}

func TestRoundTrip(t *testing.T) {
	original := New()

	data, err := Marshal(original, "toml")
	require.NoError(t, err)

	// Decode into a zero value so nothing is inherited from the defaults
	var parsed Config
	_, err = toml.Decode(string(data), &parsed)
	require.NoError(t, err)
	assert.Equal(t, *original, parsed)

	reparsed, err := Parse("roundtrip", data)
	require.NoError(t, err)
	assert.Equal(t, original, reparsed)
}

func TestMarshal(t *testing.T) {
	cfg := New()

	data, err := Marshal(cfg, "toml")
	require.NoError(t, err)
	assert.Contains(t, string(data), `level = "Info"`)
	assert.Contains(t, string(data), `format = "Pretty"`)
	assert.NotContains(t, string(data), "[ai]")

	data, err = Marshal(cfg, "yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "level: Info")
	assert.Contains(t, string(data), "max_file_size: 100")

	_, err = Marshal(cfg, "xml")
	assert.True(t, errors.IsConfigInvalidValue(err))
}

func TestCreateDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.toml")

	require.NoError(t, CreateDefaultFile(path, false))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "# Groundhog Configuration File\n# Version: 0.1.0\n\n"))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)

	// Refuses to overwrite without force
	err = CreateDefaultFile(path, false)
	require.Error(t, err)
	assert.Equal(t, errors.CategoryFileSystem, errors.KindOf(err).Category())

	require.NoError(t, os.WriteFile(path, []byte("junk"), 0644))
	require.NoError(t, CreateDefaultFile(path, true))
	cfg, err = LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestWatch(t *testing.T) {
	path := createTestTOML(t, "[performance]\nthreads = 2\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type result struct {
		cfg *Config
		err error
	}
	results := make(chan result, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg *Config, err error) {
			results <- result{cfg, err}
		})
	}()

	select {
	case r := <-results:
		require.NoError(t, r.err)
		assert.Equal(t, 2, r.cfg.Performance.Threads)
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for initial load")
	}

	// Allow a brief moment for fsnotify to initialize watches
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("[performance]\nthreads = 0\n"), 0644))

	select {
	case r := <-results:
		require.Error(t, r.err)
		assert.True(t, errors.IsConfigInvalidValue(r.err))
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for reload")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	called := false
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "groundhog.toml"), func(*Config, error) {
		called = true
	})
	require.Error(t, err)
	assert.Equal(t, errors.CategoryFileSystem, errors.KindOf(err).Category())
	assert.False(t, called)
}

func BenchmarkNew(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = New()
	}
}

func BenchmarkParse(b *testing.B) {
	data := []byte(validTOML)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Parse("bench.toml", data); err != nil {
			b.Fatalf("parse: %v", err)
		}
	}
}
