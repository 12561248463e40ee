package app

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/dshills/harness/internal/config"
	"github.com/dshills/harness/internal/event"
	"github.com/dshills/harness/internal/input/gamepad"
	"github.com/dshills/harness/internal/input/key"
	"github.com/dshills/harness/internal/input/mouse"
)

// Producer is the event.Poster handed to event sources. Window handles at or
// past the window limit are posted as event.InvalidWindow, and events for
// gamepads outside the gamepad limit are dropped.
type Producer struct {
	q           event.Poster
	maxWindows  int
	maxGamepads int
	log         logrus.FieldLogger

	clamped atomic.Uint64
	dropped atomic.Uint64
}

var _ event.Poster = (*Producer)(nil)

// NewProducer wraps q with the limits in w.
func NewProducer(q event.Poster, w config.WindowConfig, log logrus.FieldLogger) *Producer {
	return &Producer{
		q:           q,
		maxWindows:  w.MaxWindows,
		maxGamepads: w.MaxGamepads,
		log:         log,
	}
}

// Window converts an index into a handle, returning event.InvalidWindow when
// i is outside the window limit.
func (p *Producer) Window(i int) event.WindowHandle {
	if i < 0 || i >= p.maxWindows {
		return event.InvalidWindow
	}
	return event.WindowHandle(i)
}

// Gamepad converts an index into a handle, returning gamepad.InvalidHandle
// when i is outside the gamepad limit.
func (p *Producer) Gamepad(i int) gamepad.Handle {
	if i < 0 || i >= p.maxGamepads {
		return gamepad.InvalidHandle
	}
	return gamepad.Handle(i)
}

// Clamped returns how many events were re-tagged with event.InvalidWindow.
func (p *Producer) Clamped() uint64 {
	return p.clamped.Load()
}

// Dropped returns how many gamepad events were discarded.
func (p *Producer) Dropped() uint64 {
	return p.dropped.Load()
}

func (p *Producer) window(h event.WindowHandle) event.WindowHandle {
	if h.IsValid() && int(h) >= p.maxWindows {
		p.clamped.Add(1)
		p.log.WithFields(logrus.Fields{
			"window":      int(h),
			"max_windows": p.maxWindows,
		}).Debug("window handle out of range, posting as invalid")
		return event.InvalidWindow
	}
	return h
}

func (p *Producer) gamepadOK(gp gamepad.Handle) bool {
	if gp.IsValid() && int(gp) < p.maxGamepads {
		return true
	}
	p.dropped.Add(1)
	p.log.WithFields(logrus.Fields{
		"gamepad":      int(gp),
		"max_gamepads": p.maxGamepads,
	}).Warn("gamepad handle out of range, event dropped")
	return false
}

// PostAxisEvent implements event.Poster.
func (p *Producer) PostAxisEvent(h event.WindowHandle, gp gamepad.Handle, axis gamepad.Axis, value int32) {
	if p.gamepadOK(gp) {
		p.q.PostAxisEvent(p.window(h), gp, axis, value)
	}
}

// PostCharEvent implements event.Poster.
func (p *Producer) PostCharEvent(h event.WindowHandle, n uint8, ch [4]byte) {
	p.q.PostCharEvent(p.window(h), n, ch)
}

// PostExitEvent implements event.Poster.
func (p *Producer) PostExitEvent() {
	p.q.PostExitEvent()
}

// PostGamepadEvent implements event.Poster.
func (p *Producer) PostGamepadEvent(h event.WindowHandle, gp gamepad.Handle, connected bool) {
	if p.gamepadOK(gp) {
		p.q.PostGamepadEvent(p.window(h), gp, connected)
	}
}

// PostKeyEvent implements event.Poster.
func (p *Producer) PostKeyEvent(h event.WindowHandle, k key.Key, mods key.Modifier, down bool) {
	p.q.PostKeyEvent(p.window(h), k, mods, down)
}

// PostMouseEvent implements event.Poster.
func (p *Producer) PostMouseEvent(h event.WindowHandle, x, y, z int32) {
	p.q.PostMouseEvent(p.window(h), x, y, z)
}

// PostMouseButtonEvent implements event.Poster.
func (p *Producer) PostMouseButtonEvent(h event.WindowHandle, x, y, z int32, button mouse.Button, down bool) {
	p.q.PostMouseButtonEvent(p.window(h), x, y, z, button, down)
}

// PostSizeEvent implements event.Poster.
func (p *Producer) PostSizeEvent(h event.WindowHandle, width, height uint32) {
	p.q.PostSizeEvent(p.window(h), width, height)
}

// PostWindowEvent implements event.Poster.
func (p *Producer) PostWindowEvent(h event.WindowHandle, native uintptr) {
	p.q.PostWindowEvent(p.window(h), native)
}

// PostSuspendEvent implements event.Poster.
func (p *Producer) PostSuspendEvent(h event.WindowHandle, state event.SuspendState) {
	p.q.PostSuspendEvent(p.window(h), state)
}

// PostDropFileEvent implements event.Poster.
func (p *Producer) PostDropFileEvent(h event.WindowHandle, path string) {
	p.q.PostDropFileEvent(p.window(h), path)
}
