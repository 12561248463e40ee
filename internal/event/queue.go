package event

import (
	"github.com/dshills/harness/internal/input/gamepad"
	"github.com/dshills/harness/internal/input/key"
	"github.com/dshills/harness/internal/input/mouse"
)

// DefaultCapacity is the initial ring size when none is configured.
const DefaultCapacity = 64

// Poster is the producer side of an event queue.
type Poster interface {
	PostAxisEvent(h WindowHandle, gp gamepad.Handle, axis gamepad.Axis, value int32)
	PostCharEvent(h WindowHandle, n uint8, ch [4]byte)
	PostExitEvent()
	PostGamepadEvent(h WindowHandle, gp gamepad.Handle, connected bool)
	PostKeyEvent(h WindowHandle, k key.Key, mods key.Modifier, down bool)
	PostMouseEvent(h WindowHandle, x, y, z int32)
	PostMouseButtonEvent(h WindowHandle, x, y, z int32, button mouse.Button, down bool)
	PostSizeEvent(h WindowHandle, width, height uint32)
	PostWindowEvent(h WindowHandle, native uintptr)
	PostSuspendEvent(h WindowHandle, state SuspendState)
	PostDropFileEvent(h WindowHandle, path string)
}

// Poller is the consumer side of an event queue.
type Poller interface {
	Poll() (Event, bool)
	PollWindow(h WindowHandle) (Event, bool)
}

// QueueOption configures a Queue.
type QueueOption func(*queueConfig)

type queueConfig struct {
	capacity int
}

// WithCapacity pre-sizes the queue's ring buffer.
func WithCapacity(n int) QueueOption {
	return func(c *queueConfig) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// Queue is a FIFO of events. It is not safe for concurrent use.
type Queue struct {
	buf  []Event
	head int
	n    int
}

// NewQueue creates an empty queue.
func NewQueue(opts ...QueueOption) *Queue {
	cfg := queueConfig{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Queue{buf: make([]Event, cfg.capacity)}
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return q.n
}

// Reset drops every queued event.
func (q *Queue) Reset() {
	clear(q.buf)
	q.head = 0
	q.n = 0
}

// PostAxisEvent queues a gamepad axis change.
func (q *Queue) PostAxisEvent(h WindowHandle, gp gamepad.Handle, axis gamepad.Axis, value int32) {
	q.push(AxisEvent{Handle: h, Gamepad: gp, Axis: axis, Value: value})
}

// PostCharEvent queues text input; n is the number of significant bytes in ch.
func (q *Queue) PostCharEvent(h WindowHandle, n uint8, ch [4]byte) {
	q.push(CharEvent{Handle: h, Len: n, Char: ch})
}

// PostExitEvent queues a quit request.
func (q *Queue) PostExitEvent() {
	q.push(ExitEvent{Handle: 0})
}

// PostGamepadEvent queues a gamepad connection change.
func (q *Queue) PostGamepadEvent(h WindowHandle, gp gamepad.Handle, connected bool) {
	q.push(GamepadEvent{Handle: h, Gamepad: gp, Connected: connected})
}

// PostKeyEvent queues a key transition.
func (q *Queue) PostKeyEvent(h WindowHandle, k key.Key, mods key.Modifier, down bool) {
	q.push(KeyEvent{Handle: h, Key: k, Modifiers: mods, Down: down})
}

// PostMouseEvent queues pure pointer movement.
func (q *Queue) PostMouseEvent(h WindowHandle, x, y, z int32) {
	q.push(MouseEvent{Handle: h, X: x, Y: y, Z: z, Button: mouse.ButtonNone, Move: true})
}

// PostMouseButtonEvent queues a mouse button transition at a position.
func (q *Queue) PostMouseButtonEvent(h WindowHandle, x, y, z int32, button mouse.Button, down bool) {
	q.push(MouseEvent{Handle: h, X: x, Y: y, Z: z, Button: button, Down: down})
}

// PostSizeEvent queues a window resize.
func (q *Queue) PostSizeEvent(h WindowHandle, width, height uint32) {
	q.push(SizeEvent{Handle: h, Width: width, Height: height})
}

// PostWindowEvent queues a native window handle change.
func (q *Queue) PostWindowEvent(h WindowHandle, native uintptr) {
	q.push(WindowEvent{Handle: h, Native: native})
}

// PostSuspendEvent queues a suspend/resume transition.
func (q *Queue) PostSuspendEvent(h WindowHandle, state SuspendState) {
	q.push(SuspendEvent{Handle: h, State: state})
}

// PostDropFileEvent queues a dropped file path.
func (q *Queue) PostDropFileEvent(h WindowHandle, path string) {
	q.push(DropFileEvent{Handle: h, Path: cleanPath(path)})
}

// Poll removes and returns the front event.
// Returns false if the queue is empty.
func (q *Queue) Poll() (Event, bool) {
	if q.n == 0 {
		return nil, false
	}
	return q.pop(), true
}

// PollWindow removes and returns the front event if it is an ExitEvent or
// belongs to window h. Otherwise it returns false and leaves the queue
// untouched; events behind a non-matching front event are not considered.
// An invalid h behaves like Poll.
func (q *Queue) PollWindow(h WindowHandle) (Event, bool) {
	if q.n == 0 {
		return nil, false
	}
	if !h.IsValid() {
		return q.Poll()
	}

	ev := q.buf[q.head]
	if ev.Kind() == KindExit || ev.Window() == h {
		return q.pop(), true
	}
	return nil, false
}

func (q *Queue) push(ev Event) {
	if q.n == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.n)%len(q.buf)] = ev
	q.n++
}

func (q *Queue) pop() Event {
	ev := q.buf[q.head]
	q.buf[q.head] = nil
	q.head = (q.head + 1) % len(q.buf)
	q.n--
	return ev
}

// grow doubles the ring, unwrapping it so head is at index 0.
func (q *Queue) grow() {
	size := len(q.buf) * 2
	if size == 0 {
		size = DefaultCapacity
	}
	buf := make([]Event, size)
	for i := 0; i < q.n; i++ {
		buf[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = buf
	q.head = 0
}
