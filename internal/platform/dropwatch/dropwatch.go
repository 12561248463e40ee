// Package dropwatch posts a DropFile event for every file that appears in a
// watched directory. It stands in for drag-and-drop on hosts without a
// windowing system.
package dropwatch

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/dshills/harness/internal/event"
)

// Errors returned by the watcher.
var (
	ErrNotDirectory   = errors.New("drop path is not a directory")
	ErrAlreadyStarted = errors.New("watcher already started")
)

// DefaultIgnore skips hidden files and common editor and download temporaries.
var DefaultIgnore = []string{".*", "*~", "*.tmp", "*.part", "*.crdownload"}

// Watcher is an event source backed by fsnotify.
type Watcher struct {
	mu sync.Mutex

	dir    string
	window event.WindowHandle
	ignore []string
	log    logrus.FieldLogger

	fsw     *fsnotify.Watcher
	poster  event.Poster
	started bool
	closeCh chan struct{}
	wg      sync.WaitGroup

	posted atomic.Int64
	errs   atomic.Int64
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithWindow sets the window handle attached to posted events.
func WithWindow(h event.WindowHandle) Option {
	return func(w *Watcher) {
		w.window = h
	}
}

// WithIgnore replaces the base-name patterns of files that are skipped.
// Patterns use filepath.Match syntax.
func WithIgnore(patterns ...string) Option {
	return func(w *Watcher) {
		w.ignore = patterns
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// New creates a watcher for dir. Nothing is watched until Start.
func New(dir string, opts ...Option) *Watcher {
	w := &Watcher{
		dir:    dir,
		ignore: DefaultIgnore,
		log:    logrus.StandardLogger().WithField("component", "dropwatch"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the absolute watched directory once started, or the
// configured path before.
func (w *Watcher) Dir() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

// Start begins watching and posts to p.
func (w *Watcher) Start(p event.Poster) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}

	abs, err := filepath.Abs(w.dir)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", w.dir)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return errors.Wrapf(err, "drop directory %s", abs)
	}
	if !info.IsDir() {
		return errors.Wrapf(ErrNotDirectory, "%s", abs)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating fsnotify watcher")
	}
	if err := fsw.Add(abs); err != nil {
		_ = fsw.Close()
		return errors.Wrapf(err, "watching %s", abs)
	}

	w.dir = abs
	w.fsw = fsw
	w.poster = p
	w.closeCh = make(chan struct{})
	w.started = true

	w.wg.Add(1)
	go w.processLoop()

	w.log.WithField("dir", abs).Debug("watching drop directory")
	return nil
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return nil
	}
	w.started = false
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	return w.fsw.Close()
}

// Posted returns the number of DropFile events posted.
func (w *Watcher) Posted() int64 {
	return w.posted.Load()
}

// Errors returns the number of fsnotify errors seen.
func (w *Watcher) Errors() int64 {
	return w.errs.Load()
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.errs.Add(1)
			w.log.WithError(err).Warn("drop directory watch error")
		}
	}
}

// handle posts a DropFile event for a newly created regular file.
func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Create) {
		return
	}
	if w.ignored(filepath.Base(ev.Name)) {
		return
	}

	info, err := os.Stat(ev.Name)
	if err != nil || info.IsDir() {
		return
	}

	w.poster.PostDropFileEvent(w.window, ev.Name)
	w.posted.Add(1)
	w.log.WithField("path", ev.Name).Debug("file dropped")
}

func (w *Watcher) ignored(base string) bool {
	for _, pattern := range w.ignore {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
