package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CodePanicked is reported as the failure code of a handler that panicked.
const CodePanicked = -1

// Func handles one sub-command. args[0] is the command name and len(args) is
// the argument count. A zero return means success; any other value is a
// handler-specific failure code.
type Func func(d *Dispatcher, userData any, args []string) int

// Dispatcher executes command lines against a table of named handlers.
//
// Create one with New and release it with Close. Register and Execute must not
// be called after Close. Registration while Execute runs is unsupported.
type Dispatcher struct {
	registry *Registry
	config   Config
	logger   logrus.FieldLogger
	metrics  *Metrics
}

// New creates a dispatcher with an empty command table.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		config:   DefaultConfig(),
		logger:   logrus.StandardLogger().WithField("component", "command"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Close drops every registered command.
func (d *Dispatcher) Close() {
	d.registry.Clear()
}

// Config returns the dispatcher limits.
func (d *Dispatcher) Config() Config {
	return d.config
}

// Metrics returns the metrics collector, or nil if metrics are disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Register adds a command. It fails with ErrDuplicateCommand if name is
// already registered and ErrHashCollision if another name occupies its hash.
func (d *Dispatcher) Register(name string, fn Func, userData any) error {
	return d.registry.Add(name, fn, userData)
}

// MustRegister is like Register but panics on error.
func (d *Dispatcher) MustRegister(name string, fn Func, userData any) {
	if err := d.Register(name, fn, userData); err != nil {
		panic(err)
	}
}

// Has returns true if name is registered.
func (d *Dispatcher) Has(name string) bool {
	return d.registry.Has(name)
}

// Names returns the registered command names, sorted.
func (d *Dispatcher) Names() []string {
	return d.registry.Names()
}

// Len returns the number of registered commands.
func (d *Dispatcher) Len() int {
	return d.registry.Len()
}

// Execute runs every sub-command in commandLine in order. Unknown commands,
// malformed input and handler failures are reported on the logger and do not
// stop the remaining sub-commands.
func (d *Dispatcher) Execute(commandLine string) {
	for _, line := range strings.Split(commandLine, string([]byte{d.config.Separator})) {
		d.executeLine(line)
	}
}

// Executef formats a command string and executes it. The formatted text is
// capped at MaxFormattedLength bytes.
func (d *Dispatcher) Executef(format string, args ...any) {
	d.Execute(truncateUTF8(fmt.Sprintf(format, args...), MaxFormattedLength))
}

func (d *Dispatcher) executeLine(line string) {
	log := d.logger.WithField("line", line)

	toks, err := Tokenize(line, d.config.MaxLineLength, d.config.MaxTokens)
	if err != nil {
		log.WithError(err).Warn("command line rejected")
		if d.metrics != nil {
			d.metrics.RecordRejected()
		}
		return
	}

	if toks.LineTruncated || toks.Dropped > 0 {
		log.WithFields(logrus.Fields{
			"max_length": d.config.MaxLineLength,
			"max_tokens": d.config.MaxTokens,
			"dropped":    toks.Dropped,
		}).Warn("command line truncated")
		if d.metrics != nil {
			d.metrics.RecordTruncated()
		}
	}

	if len(toks.Args) == 0 {
		return
	}

	name := toks.Args[0]
	e, ok := d.registry.lookup(name)
	if !ok {
		if s := d.registry.Suggest(name); s != "" {
			log = log.WithField("suggestion", s)
		}
		log.Warnf("command %q does not exist", name)
		if d.metrics != nil {
			d.metrics.RecordUnknown()
		}
		return
	}

	start := time.Now()
	code := d.invoke(e, toks.Args)
	if d.metrics != nil {
		d.metrics.RecordExecution(name, time.Since(start), code)
	}

	if code != 0 {
		log.WithField("code", code).Warnf("command %q failed with code %d", name, code)
	}
}

// invoke calls the handler, converting a panic into CodePanicked.
func (d *Dispatcher) invoke(e entry, args []string) (code int) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.WithFields(logrus.Fields{
				"command": e.name,
				"panic":   r,
			}).Error("command handler panicked")
			if d.metrics != nil {
				d.metrics.RecordPanic()
			}
			code = CodePanicked
		}
	}()
	return e.fn(d, e.userData, args)
}
