package config

import (
	"strings"

	"github.com/pkg/errors"
)

// Config holds all harness settings.
type Config struct {
	Command   CommandConfig   `toml:"command" yaml:"command" envPrefix:"COMMAND_"`
	Queue     QueueConfig     `toml:"queue" yaml:"queue" envPrefix:"QUEUE_"`
	Window    WindowConfig    `toml:"window" yaml:"window" envPrefix:"WINDOW_"`
	Log       LogConfig       `toml:"log" yaml:"log" envPrefix:"LOG_"`
	Terminal  TerminalConfig  `toml:"terminal" yaml:"terminal" envPrefix:"TERMINAL_"`
	DropWatch DropWatchConfig `toml:"dropwatch" yaml:"dropwatch" envPrefix:"DROPWATCH_"`
	Script    ScriptConfig    `toml:"script" yaml:"script" envPrefix:"SCRIPT_"`
	Bindings  []BindingConfig `toml:"bindings" yaml:"bindings" envPrefix:"BINDINGS_"`
}

// CommandConfig configures the command dispatcher.
type CommandConfig struct {
	// Separator splits a command string into sub-commands. Must be one byte.
	Separator string `toml:"separator" yaml:"separator" env:"SEPARATOR"`

	// MaxLineLength is the longest sub-command, in bytes, before truncation.
	MaxLineLength int `toml:"max_line_length" yaml:"max_line_length" env:"MAX_LINE_LENGTH"`

	// MaxTokens is the most words kept per sub-command.
	MaxTokens int `toml:"max_tokens" yaml:"max_tokens" env:"MAX_TOKENS"`

	// Metrics enables per-command execution statistics.
	Metrics bool `toml:"metrics" yaml:"metrics" env:"METRICS"`
}

// QueueConfig configures the event queue.
type QueueConfig struct {
	// Capacity is the initial ring buffer size. The queue grows past it.
	Capacity int `toml:"capacity" yaml:"capacity" env:"CAPACITY"`
}

// WindowConfig holds window and gamepad limits.
type WindowConfig struct {
	MaxWindows  int `toml:"max_windows" yaml:"max_windows" env:"MAX_WINDOWS"`
	MaxGamepads int `toml:"max_gamepads" yaml:"max_gamepads" env:"MAX_GAMEPADS"`

	// Width and Height are the initial size reported for the main window.
	Width  int `toml:"width" yaml:"width" env:"WIDTH"`
	Height int `toml:"height" yaml:"height" env:"HEIGHT"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `toml:"level" yaml:"level" env:"LEVEL"`

	// Format is "text" or "json".
	Format string `toml:"format" yaml:"format" env:"FORMAT"`

	// File receives log output. Empty means stderr.
	File string `toml:"file" yaml:"file" env:"FILE"`
}

// TerminalConfig configures the terminal event source.
type TerminalConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled" env:"ENABLED"`
	Mouse   bool `toml:"mouse" yaml:"mouse" env:"MOUSE"`
}

// DropWatchConfig configures the drop-directory event source.
type DropWatchConfig struct {
	// Dir is watched for new files. Empty disables the watcher.
	Dir string `toml:"dir" yaml:"dir" env:"DIR"`
}

// ScriptConfig configures the Lua front end.
type ScriptConfig struct {
	// Path is a Lua file run at startup. Empty runs nothing.
	Path string `toml:"path" yaml:"path" env:"PATH"`
}

// BindingConfig maps a key combination to a command line.
type BindingConfig struct {
	Keys        string `toml:"keys" yaml:"keys" env:"KEYS"`
	Command     string `toml:"command" yaml:"command" env:"COMMAND"`
	Description string `toml:"description" yaml:"description" env:"DESCRIPTION"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Command: CommandConfig{
			Separator:     "\n",
			MaxLineLength: 1024,
			MaxTokens:     64,
		},
		Queue: QueueConfig{
			Capacity: 64,
		},
		Window: WindowConfig{
			MaxWindows:  8,
			MaxGamepads: 4,
			Width:       1280,
			Height:      720,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Terminal: TerminalConfig{
			Enabled: true,
			Mouse:   true,
		},
	}
}

// Validate checks every value against its allowed range.
func (c Config) Validate() error {
	switch {
	case len(c.Command.Separator) != 1:
		return errors.Wrapf(ErrInvalidConfig, "command.separator must be a single byte, got %q", c.Command.Separator)
	case c.Command.MaxLineLength <= 0:
		return errors.Wrapf(ErrInvalidConfig, "command.max_line_length must be positive, got %d", c.Command.MaxLineLength)
	case c.Command.MaxTokens <= 0:
		return errors.Wrapf(ErrInvalidConfig, "command.max_tokens must be positive, got %d", c.Command.MaxTokens)
	case c.Queue.Capacity < 0:
		return errors.Wrapf(ErrInvalidConfig, "queue.capacity must not be negative, got %d", c.Queue.Capacity)
	case c.Window.MaxWindows <= 0 || c.Window.MaxWindows >= 0xffff:
		return errors.Wrapf(ErrInvalidConfig, "window.max_windows out of range: %d", c.Window.MaxWindows)
	case c.Window.MaxGamepads <= 0 || c.Window.MaxGamepads >= 0xffff:
		return errors.Wrapf(ErrInvalidConfig, "window.max_gamepads out of range: %d", c.Window.MaxGamepads)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.Wrapf(ErrInvalidConfig, "log.format must be text or json, got %q", c.Log.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return errors.Wrapf(ErrInvalidConfig, "log.level %q is not recognized", c.Log.Level)
	}

	for i, b := range c.Bindings {
		if b.Keys == "" || b.Command == "" {
			return errors.Wrapf(ErrInvalidConfig, "bindings[%d] needs keys and command", i)
		}
	}

	return nil
}
