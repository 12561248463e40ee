package app

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/dshills/harness/internal/event"
)

// Handler consumes one event. Returning ErrQuit stops the loop; any other
// error is logged and the loop continues.
type Handler func(ev event.Event) error

// pollInterval paces the main loop at 60 passes per second.
const pollInterval = time.Second / 60

// eventLoop is the main application loop. It drains events for window w, or
// every event when w is event.InvalidWindow.
func (a *App) eventLoop(ctx context.Context, w event.WindowHandle, h Handler) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if a.PumpWindow(w, h) {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-a.done:
			return nil
		case <-ticker.C:
		}
	}
}

// Pump drains every queued event into h and reports whether the loop should
// stop: an Exit event was handled or h returned ErrQuit. Events queued
// behind the stopping event stay in the queue.
func (a *App) Pump(h Handler) bool {
	return a.PumpWindow(event.InvalidWindow, h)
}

// PumpWindow is like Pump but only takes events at the front of the queue
// that belong to window w, plus Exit events. It stops at the first event for
// another window and leaves it queued. event.InvalidWindow drains everything.
func (a *App) PumpWindow(w event.WindowHandle, h Handler) bool {
	a.metrics.RecordPump()

	for {
		ev, ok := a.events.PollWindow(w)
		if !ok {
			return false
		}

		start := time.Now()
		var err error
		if h != nil {
			err = h(ev)
		}
		a.metrics.RecordEvent(ev.Kind(), time.Since(start))

		if errors.Is(err, ErrQuit) {
			a.log.Debug("handler requested quit")
			return true
		}
		if err != nil {
			a.metrics.RecordHandlerError()
			a.log.WithError(err).WithField("kind", ev.Kind().String()).Warn("event handler failed")
		}

		if _, exit := ev.(event.ExitEvent); exit {
			a.log.Debug("exit event received")
			return true
		}
	}
}

// BindingHandler returns a Handler that executes the bound command line when
// a key goes down, then passes every event to next. A nil next only runs
// bindings.
func (a *App) BindingHandler(next Handler) Handler {
	return func(ev event.Event) error {
		if k, ok := ev.(event.KeyEvent); ok && k.Down {
			if b, ok := a.keymap.Lookup(k.Key, k.Modifiers); ok {
				a.log.WithField("keys", b.Keys).Debug("key binding fired")
				a.commands.Execute(b.Command)
			}
		}
		if next == nil {
			return nil
		}
		return next(ev)
	}
}

// LogHandler returns a Handler that writes each event to l at info level.
func LogHandler(l logrus.FieldLogger) Handler {
	return func(ev event.Event) error {
		l.WithFields(EventFields(ev)).Info(ev.Kind().String())
		return nil
	}
}

// EventFields describes ev as log fields.
func EventFields(ev event.Event) logrus.Fields {
	f := logrus.Fields{"window": ev.Window().String()}

	switch e := ev.(type) {
	case event.AxisEvent:
		f["gamepad"] = int(e.Gamepad)
		f["axis"] = e.Axis.String()
		f["value"] = e.Value
	case event.CharEvent:
		f["char"] = string(e.Bytes())
	case event.GamepadEvent:
		f["gamepad"] = int(e.Gamepad)
		f["connected"] = e.Connected
	case event.KeyEvent:
		f["key"] = e.Key.String()
		f["down"] = e.Down
		if e.Modifiers != 0 {
			f["modifiers"] = e.Modifiers.String()
		}
	case event.MouseEvent:
		f["x"], f["y"], f["z"] = e.X, e.Y, e.Z
		if e.Move {
			f["move"] = true
		} else {
			f["button"] = e.Button.String()
			f["down"] = e.Down
		}
	case event.SizeEvent:
		f["width"], f["height"] = e.Width, e.Height
	case event.WindowEvent:
		f["native"] = e.Native
	case event.SuspendEvent:
		f["state"] = e.State.String()
	case event.DropFileEvent:
		f["path"] = e.Path
	}

	return f
}
