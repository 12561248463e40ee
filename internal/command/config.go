package command

import "github.com/sirupsen/logrus"

// Default limits applied to each sub-command.
const (
	DefaultSeparator     = '\n'
	DefaultMaxLineLength = 1024
	DefaultMaxTokens     = 64

	// MaxFormattedLength caps the output of Executef.
	MaxFormattedLength = 2048
)

// Config holds dispatcher options.
type Config struct {
	// Separator splits a command string into independent sub-commands.
	Separator byte

	// MaxLineLength is the longest sub-command, in bytes, that is tokenized.
	// Longer input is truncated.
	MaxLineLength int

	// MaxTokens is the largest argument count passed to a handler.
	// Extra tokens are dropped.
	MaxTokens int
}

// DefaultConfig returns the limits used when no options are given.
func DefaultConfig() Config {
	return Config{
		Separator:     DefaultSeparator,
		MaxLineLength: DefaultMaxLineLength,
		MaxTokens:     DefaultMaxTokens,
	}
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithConfig replaces the dispatcher limits. Non-positive limits keep their defaults.
func WithConfig(cfg Config) Option {
	return func(d *Dispatcher) {
		if cfg.Separator != 0 {
			d.config.Separator = cfg.Separator
		}
		if cfg.MaxLineLength > 0 {
			d.config.MaxLineLength = cfg.MaxLineLength
		}
		if cfg.MaxTokens > 0 {
			d.config.MaxTokens = cfg.MaxTokens
		}
	}
}

// WithSeparator sets the sub-command separator.
func WithSeparator(sep byte) Option {
	return WithConfig(Config{Separator: sep})
}

// WithMaxLineLength sets the per-sub-command byte limit.
func WithMaxLineLength(n int) Option {
	return WithConfig(Config{MaxLineLength: n})
}

// WithMaxTokens sets the per-sub-command token limit.
func WithMaxTokens(n int) Option {
	return WithConfig(Config{MaxTokens: n})
}

// WithLogger sets the diagnostic channel.
func WithLogger(l logrus.FieldLogger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMetrics enables execution statistics.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}
