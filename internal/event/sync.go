package event

import (
	"sync"

	"github.com/dshills/harness/internal/input/gamepad"
	"github.com/dshills/harness/internal/input/key"
	"github.com/dshills/harness/internal/input/mouse"
)

// SyncQueue serializes access to a Queue so producers may post from their own
// goroutines while the main loop polls. Polling still never blocks on
// emptiness; it only waits for the lock.
type SyncQueue struct {
	mu sync.Mutex
	q  *Queue
}

// NewSyncQueue creates an empty synchronized queue.
func NewSyncQueue(opts ...QueueOption) *SyncQueue {
	return &SyncQueue{q: NewQueue(opts...)}
}

// Len returns the number of queued events.
func (s *SyncQueue) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q.Len()
}

// Reset drops every queued event.
func (s *SyncQueue) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.Reset()
}

// Poll removes and returns the front event.
func (s *SyncQueue) Poll() (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q.Poll()
}

// PollWindow has the same head-of-line semantics as Queue.PollWindow.
func (s *SyncQueue) PollWindow(h WindowHandle) (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q.PollWindow(h)
}

// PostAxisEvent queues a gamepad axis change.
func (s *SyncQueue) PostAxisEvent(h WindowHandle, gp gamepad.Handle, axis gamepad.Axis, value int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.PostAxisEvent(h, gp, axis, value)
}

// PostCharEvent queues text input; n is the number of significant bytes in ch.
func (s *SyncQueue) PostCharEvent(h WindowHandle, n uint8, ch [4]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.PostCharEvent(h, n, ch)
}

// PostExitEvent queues a quit request.
func (s *SyncQueue) PostExitEvent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.PostExitEvent()
}

// PostGamepadEvent queues a gamepad connection change.
func (s *SyncQueue) PostGamepadEvent(h WindowHandle, gp gamepad.Handle, connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.PostGamepadEvent(h, gp, connected)
}

// PostKeyEvent queues a key transition.
func (s *SyncQueue) PostKeyEvent(h WindowHandle, k key.Key, mods key.Modifier, down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.PostKeyEvent(h, k, mods, down)
}

// PostMouseEvent queues pure pointer movement.
func (s *SyncQueue) PostMouseEvent(h WindowHandle, x, y, z int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.PostMouseEvent(h, x, y, z)
}

// PostMouseButtonEvent queues a mouse button transition at a position.
func (s *SyncQueue) PostMouseButtonEvent(h WindowHandle, x, y, z int32, button mouse.Button, down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.PostMouseButtonEvent(h, x, y, z, button, down)
}

// PostSizeEvent queues a window resize.
func (s *SyncQueue) PostSizeEvent(h WindowHandle, width, height uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.PostSizeEvent(h, width, height)
}

// PostWindowEvent queues a native window handle change.
func (s *SyncQueue) PostWindowEvent(h WindowHandle, native uintptr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.PostWindowEvent(h, native)
}

// PostSuspendEvent queues a suspend/resume transition.
func (s *SyncQueue) PostSuspendEvent(h WindowHandle, state SuspendState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.PostSuspendEvent(h, state)
}

// PostDropFileEvent queues a dropped file path.
func (s *SyncQueue) PostDropFileEvent(h WindowHandle, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q.PostDropFileEvent(h, path)
}

var (
	_ Poster = (*Queue)(nil)
	_ Poller = (*Queue)(nil)
	_ Poster = (*SyncQueue)(nil)
	_ Poller = (*SyncQueue)(nil)
)
