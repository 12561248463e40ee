// Package terminal turns tcell terminal input into harness events.
//
// A terminal has no key-release reports, so every key press is posted as a
// down event followed by an up event. Printable input also produces a Char
// event carrying the UTF-8 bytes.
//
// Starting the terminal posts a Window event carrying NativeHandle and
// closing it posts one carrying zero.
package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/dshills/harness/internal/event"
	"github.com/dshills/harness/internal/input/key"
	"github.com/dshills/harness/internal/input/mouse"
)

// NativeHandle is the Native value of the Window event posted while the
// terminal is attached.
const NativeHandle uintptr = 1

// Terminal is an event source reading from a tcell screen.
type Terminal struct {
	mu      sync.Mutex
	screen  tcell.Screen
	window  event.WindowHandle
	mouse   bool
	log     logrus.FieldLogger
	poster  event.Poster
	started bool
	wg      sync.WaitGroup

	// Mouse state for edge detection, owned by the read loop.
	buttons tcell.ButtonMask
	wheel   int32
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithScreen uses s instead of the process terminal.
func WithScreen(s tcell.Screen) Option {
	return func(t *Terminal) {
		t.screen = s
	}
}

// WithWindow sets the window handle attached to posted events.
func WithWindow(h event.WindowHandle) Option {
	return func(t *Terminal) {
		t.window = h
	}
}

// WithMouse enables mouse reporting.
func WithMouse(enabled bool) Option {
	return func(t *Terminal) {
		t.mouse = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(t *Terminal) {
		if l != nil {
			t.log = l
		}
	}
}

// New creates a terminal source. Without WithScreen it opens the process
// terminal.
func New(opts ...Option) (*Terminal, error) {
	t := &Terminal{
		log: logrus.StandardLogger().WithField("component", "terminal"),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, errors.Wrap(err, "opening terminal")
		}
		t.screen = screen
	}
	return t, nil
}

// Start initializes the screen and begins posting events to p.
func (t *Terminal) Start(p event.Poster) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return errors.New("terminal already started")
	}
	if err := t.screen.Init(); err != nil {
		return errors.Wrap(err, "initializing terminal")
	}
	if t.mouse {
		t.screen.EnableMouse()
	}

	t.poster = p
	t.started = true
	p.PostWindowEvent(t.window, NativeHandle)

	t.wg.Add(1)
	go t.readLoop()

	t.log.WithField("window", t.window.String()).Debug("terminal started")
	return nil
}

// Close restores the terminal and waits for the read loop to exit.
func (t *Terminal) Close() error {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return nil
	}
	t.started = false
	t.poster.PostWindowEvent(t.window, 0)
	t.screen.Fini()
	t.mu.Unlock()

	t.wg.Wait()
	return nil
}

// Size returns the current terminal size.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// Suspend hands the terminal back to the shell, bracketed by WillSuspend and
// DidSuspend events.
func (t *Terminal) Suspend() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.poster == nil {
		return errors.New("terminal not started")
	}
	t.poster.PostSuspendEvent(t.window, event.WillSuspend)
	if err := t.screen.Suspend(); err != nil {
		return errors.Wrap(err, "suspending terminal")
	}
	t.poster.PostSuspendEvent(t.window, event.DidSuspend)
	return nil
}

// Resume takes the terminal back, bracketed by WillResume and DidResume
// events.
func (t *Terminal) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.poster == nil {
		return errors.New("terminal not started")
	}
	t.poster.PostSuspendEvent(t.window, event.WillResume)
	if err := t.screen.Resume(); err != nil {
		return errors.Wrap(err, "resuming terminal")
	}
	t.poster.PostSuspendEvent(t.window, event.DidResume)
	return nil
}

func (t *Terminal) readLoop() {
	defer t.wg.Done()

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		t.translate(ev)
	}
}

// translate posts the harness events for one tcell event.
func (t *Terminal) translate(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		t.translateKey(e)
	case *tcell.EventMouse:
		t.translateMouse(e)
	case *tcell.EventResize:
		w, h := e.Size()
		t.poster.PostSizeEvent(t.window, uint32(w), uint32(h))
	}
}

func (t *Terminal) translateKey(e *tcell.EventKey) {
	mods := convertMod(e.Modifiers())

	if e.Key() == tcell.KeyRune {
		r := e.Rune()
		if k, kmods := key.FromRune(r); k != key.KeyNone {
			t.press(k, mods|kmods)
		}
		n, b := event.EncodeChar(r)
		t.poster.PostCharEvent(t.window, n, b)
		return
	}

	k, extra, ok := convertKey(e.Key())
	if !ok {
		t.log.WithField("key", e.Name()).Debug("unmapped terminal key")
		return
	}
	mods |= extra
	t.press(k, mods)

	if mods.HasCtrl() || mods.HasAlt() {
		return
	}
	if c := key.ToASCII(k, mods); c != 0 {
		t.poster.PostCharEvent(t.window, 1, [4]byte{c})
	}
}

func (t *Terminal) press(k key.Key, mods key.Modifier) {
	t.poster.PostKeyEvent(t.window, k, mods, true)
	t.poster.PostKeyEvent(t.window, k, mods, false)
}

var mouseButtons = []struct {
	mask   tcell.ButtonMask
	button mouse.Button
}{
	{tcell.ButtonPrimary, mouse.ButtonLeft},
	{tcell.ButtonMiddle, mouse.ButtonMiddle},
	{tcell.ButtonSecondary, mouse.ButtonRight},
}

func (t *Terminal) translateMouse(e *tcell.EventMouse) {
	x, y := e.Position()
	mask := e.Buttons()

	if mask&tcell.WheelUp != 0 {
		t.wheel++
	}
	if mask&tcell.WheelDown != 0 {
		t.wheel--
	}

	changed := false
	for _, mb := range mouseButtons {
		was, is := t.buttons&mb.mask != 0, mask&mb.mask != 0
		if was != is {
			t.poster.PostMouseButtonEvent(t.window, int32(x), int32(y), t.wheel, mb.button, is)
			changed = true
		}
	}
	t.buttons = mask

	if !changed {
		t.poster.PostMouseEvent(t.window, int32(x), int32(y), t.wheel)
	}
}
