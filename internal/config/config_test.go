package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "\n", cfg.Command.Separator)
	assert.Equal(t, 1024, cfg.Command.MaxLineLength)
	assert.Equal(t, 64, cfg.Command.MaxTokens)
	assert.Equal(t, 8, cfg.Window.MaxWindows)
	assert.Equal(t, 4, cfg.Window.MaxGamepads)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	require.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "settings.toml", `
[command]
separator = ";"
max_tokens = 16
metrics = true

[window]
width = 640
height = 480

[log]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ";", cfg.Command.Separator)
	assert.Equal(t, 16, cfg.Command.MaxTokens)
	assert.True(t, cfg.Command.Metrics)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	// Unset keys keep their defaults.
	assert.Equal(t, 1024, cfg.Command.MaxLineLength)
	assert.Equal(t, 8, cfg.Window.MaxWindows)
}

func TestLoadBindings(t *testing.T) {
	path := writeFile(t, "settings.toml", `
[[bindings]]
keys = "ctrl+q"
command = "exit"

[[bindings]]
keys = "f1"
command = "help"
description = "list commands"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []BindingConfig{
		{Keys: "ctrl+q", Command: "exit"},
		{Keys: "f1", Command: "help", Description: "list commands"},
	}, cfg.Bindings)
}

func TestApplyEnvBindings(t *testing.T) {
	cfg := Default()
	err := ApplyEnvFrom(&cfg, map[string]string{
		"HARNESS_BINDINGS_0_KEYS":    "f5",
		"HARNESS_BINDINGS_0_COMMAND": "post size 800 600",
	})
	require.NoError(t, err)
	assert.Equal(t, []BindingConfig{{Keys: "f5", Command: "post size 800 600"}}, cfg.Bindings)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "settings.yml", `
command:
  max_line_length: 256
dropwatch:
  dir: /tmp/drop
script:
  path: init.lua
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 256, cfg.Command.MaxLineLength)
	assert.Equal(t, "/tmp/drop", cfg.DropWatch.Dir)
	assert.Equal(t, "init.lua", cfg.Script.Path)
	assert.Equal(t, "\n", cfg.Command.Separator)
}

func TestLoadEmptyYAML(t *testing.T) {
	path := writeFile(t, "settings.yaml", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load(writeFile(t, "settings.ini", "x=1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestLoadParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml syntax", "bad.toml", "[command\nmax_tokens = 1"},
		{"toml unknown key", "bad.toml", "[command]\nmax_tokenz = 1"},
		{"yaml syntax", "bad.yaml", "command: [unclosed"},
		{"yaml unknown key", "bad.yaml", "command:\n  max_tokenz: 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe), "error %v is not a ParseError", err)
			assert.Contains(t, pe.Path, tt.file)
		})
	}
}

func TestTOMLParseErrorPosition(t *testing.T) {
	cfg := Default()
	err := Decode(&cfg, "inline", []byte("[command]\nmax_tokens = ?"), FormatTOML)
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
	assert.Contains(t, pe.Error(), "inline at line 2")
}

func TestApplyEnvFrom(t *testing.T) {
	cfg := Default()
	err := ApplyEnvFrom(&cfg, map[string]string{
		"HARNESS_COMMAND_MAX_TOKENS": "8",
		"HARNESS_LOG_LEVEL":          "warn",
		"HARNESS_TERMINAL_MOUSE":     "false",
		"HARNESS_DROPWATCH_DIR":      "/srv/drop",
		"UNRELATED":                  "1",
	})
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Command.MaxTokens)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Terminal.Mouse)
	assert.Equal(t, "/srv/drop", cfg.DropWatch.Dir)

	// Untouched values survive.
	assert.Equal(t, 1024, cfg.Command.MaxLineLength)
	assert.True(t, cfg.Terminal.Enabled)
}

func TestApplyEnvFromBadValue(t *testing.T) {
	cfg := Default()
	err := ApplyEnvFrom(&cfg, map[string]string{"HARNESS_WINDOW_WIDTH": "wide"})
	require.Error(t, err)
}

func TestResolve(t *testing.T) {
	t.Setenv("HARNESS_WINDOW_HEIGHT", "600")
	path := writeFile(t, "settings.toml", "[window]\nheight = 900\nwidth = 800\n")

	cfg, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
}

func TestResolveInvalid(t *testing.T) {
	path := writeFile(t, "settings.toml", "[command]\nseparator = \"ab\"\n")

	_, err := Resolve(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty separator", func(c *Config) { c.Command.Separator = "" }},
		{"zero line length", func(c *Config) { c.Command.MaxLineLength = 0 }},
		{"negative tokens", func(c *Config) { c.Command.MaxTokens = -1 }},
		{"negative capacity", func(c *Config) { c.Queue.Capacity = -5 }},
		{"no windows", func(c *Config) { c.Window.MaxWindows = 0 }},
		{"too many gamepads", func(c *Config) { c.Window.MaxGamepads = 0xffff }},
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"binding without command", func(c *Config) { c.Bindings = []BindingConfig{{Keys: "f1"}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"a.toml":        FormatTOML,
		"dir/B.TOML":    FormatTOML,
		"settings.yaml": FormatYAML,
		"settings.yml":  FormatYAML,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
}
