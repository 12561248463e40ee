// Package app owns the command dispatcher and event queue for one harness
// instance and runs the main loop that drains the queue.
package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/dshills/harness/internal/command"
	"github.com/dshills/harness/internal/config"
	"github.com/dshills/harness/internal/event"
	"github.com/dshills/harness/internal/input/keymap"
)

// Source produces events from outside the process, such as a terminal or a
// watched directory. Start must not block.
type Source interface {
	Start(p event.Poster) error
	Close() error
}

// App is the central coordinator of a harness instance.
type App struct {
	mu sync.Mutex

	id     string
	cfg    config.Config
	logger *logrus.Logger
	log    logrus.FieldLogger

	commands *command.Dispatcher
	events   *event.SyncQueue
	producer *Producer
	keymap   *keymap.Keymap
	metrics  *Metrics

	sources   []namedSource
	logCloser io.Closer

	running   atomic.Bool
	closed    atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

type namedSource struct {
	name string
	src  Source
}

// Options configures the application.
type Options struct {
	// Logger overrides the logger built from the config.
	Logger *logrus.Logger

	// LogOutput receives log output when no Logger or log file is set.
	LogOutput io.Writer

	// NoBuiltins skips registering the built-in commands.
	NoBuiltins bool
}

// New creates an application from a validated configuration.
func New(cfg config.Config, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	a := &App{
		id:        uuid.NewString(),
		cfg:       cfg,
		done:      make(chan struct{}),
		logCloser: nopCloser{},
		metrics:   NewMetrics(),
	}

	if opts.Logger != nil {
		a.logger = opts.Logger
	} else {
		logger, closer, err := NewLogger(cfg.Log, opts.LogOutput)
		if err != nil {
			return nil, &InitError{Component: "logger", Err: err}
		}
		a.logger, a.logCloser = logger, closer
	}
	a.log = a.logger.WithField("instance", a.id)

	cmdOpts := []command.Option{
		command.WithConfig(command.Config{
			Separator:     cfg.Command.Separator[0],
			MaxLineLength: cfg.Command.MaxLineLength,
			MaxTokens:     cfg.Command.MaxTokens,
		}),
		command.WithLogger(WithComponent(a.log, "command")),
	}
	if cfg.Command.Metrics {
		cmdOpts = append(cmdOpts, command.WithMetrics(command.NewMetrics()))
	}
	a.commands = command.New(cmdOpts...)

	a.events = event.NewSyncQueue(event.WithCapacity(cfg.Queue.Capacity))
	a.producer = NewProducer(a.events, cfg.Window, WithComponent(a.log, "producer"))

	a.keymap = keymap.New()
	for _, b := range cfg.Bindings {
		err := a.keymap.Add(keymap.NewBinding(b.Keys, b.Command).WithDescription(b.Description))
		if err != nil {
			a.commands.Close()
			_ = a.logCloser.Close()
			return nil, &InitError{Component: "keymap", Err: err}
		}
	}

	if !opts.NoBuiltins {
		if err := a.registerBuiltins(); err != nil {
			a.commands.Close()
			_ = a.logCloser.Close()
			return nil, &InitError{Component: "builtin commands", Err: err}
		}
	}

	a.log.WithFields(logrus.Fields{
		"max_windows":  cfg.Window.MaxWindows,
		"max_gamepads": cfg.Window.MaxGamepads,
	}).Debug("application initialized")

	return a, nil
}

// AddSource attaches an event source. Sources are started by Run and closed
// when Run returns.
func (a *App) AddSource(name string, s Source) error {
	if a.closed.Load() {
		return ErrClosed
	}
	if a.running.Load() {
		return errors.Wrapf(ErrAlreadyRunning, "adding source %s", name)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.sources = append(a.sources, namedSource{name: name, src: s})
	return nil
}

// Shutdown stops a running main loop. It is safe to call more than once.
func (a *App) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()

	select {
	case <-a.done:
	default:
		close(a.done)
	}
}

// Close shuts the application down and releases the command table, the
// queued events and the log file.
func (a *App) Close() error {
	var err error
	a.closeOnce.Do(func() {
		a.closed.Store(true)
		a.Shutdown()
		a.commands.Close()
		a.keymap.Clear()
		a.events.Reset()
		a.log.Debug("application closed")
		err = a.logCloser.Close()
	})
	return err
}

// ID returns the instance identifier attached to every log entry.
func (a *App) ID() string {
	return a.id
}

// Config returns the configuration the app was built with.
func (a *App) Config() config.Config {
	return a.cfg
}

// Logger returns the instance logger.
func (a *App) Logger() logrus.FieldLogger {
	return a.log
}

// Commands returns the command dispatcher.
func (a *App) Commands() *command.Dispatcher {
	return a.commands
}

// Events returns the event queue for consumers.
func (a *App) Events() event.Poller {
	return a.events
}

// Producer returns the poster that event sources should use. It enforces
// the configured window and gamepad limits.
func (a *App) Producer() *Producer {
	return a.producer
}

// Keymap returns the key bindings applied by BindingHandler.
func (a *App) Keymap() *keymap.Keymap {
	return a.keymap
}

// Metrics returns the main loop metrics.
func (a *App) Metrics() *Metrics {
	return a.metrics
}

// Execute runs a command string through the dispatcher.
func (a *App) Execute(commandLine string) {
	a.commands.Execute(commandLine)
}

// Executef formats and runs a command string.
func (a *App) Executef(format string, args ...any) {
	a.commands.Executef(format, args...)
}

// IsRunning returns true while Run is active.
func (a *App) IsRunning() bool {
	return a.running.Load()
}

func (a *App) startSources() error {
	a.mu.Lock()
	sources := append([]namedSource(nil), a.sources...)
	a.mu.Unlock()

	for i, ns := range sources {
		if err := ns.src.Start(a.producer); err != nil {
			for _, started := range sources[:i] {
				_ = started.src.Close()
			}
			return &InitError{Component: fmt.Sprintf("source %s", ns.name), Err: err}
		}
		a.log.WithField("source", ns.name).Debug("event source started")
	}
	return nil
}

func (a *App) stopSources() {
	a.mu.Lock()
	sources := append([]namedSource(nil), a.sources...)
	a.mu.Unlock()

	for i := len(sources) - 1; i >= 0; i-- {
		if err := sources[i].src.Close(); err != nil {
			a.log.WithError(err).WithField("source", sources[i].name).Warn("closing event source")
		}
	}
}

// Run starts the event sources and drains the queue into h until an Exit
// event is handled, h returns ErrQuit, Shutdown is called or ctx is done.
// A nil h discards events.
func (a *App) Run(ctx context.Context, h Handler) error {
	return a.RunWindow(ctx, event.InvalidWindow, h)
}

// RunWindow is like Run but drains the queue with PumpWindow, so an event for
// another window at the front of the queue holds back everything behind it
// until ctx is done or Shutdown is called.
func (a *App) RunWindow(ctx context.Context, w event.WindowHandle, h Handler) error {
	if a.closed.Load() {
		return ErrClosed
	}
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if err := a.startSources(); err != nil {
		return err
	}
	defer a.stopSources()

	return a.eventLoop(ctx, w, h)
}
