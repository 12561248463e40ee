package event

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/harness/internal/input/gamepad"
	"github.com/dshills/harness/internal/input/key"
	"github.com/dshills/harness/internal/input/mouse"
)

const (
	w1 WindowHandle = 1
	w2 WindowHandle = 2
)

// postAll posts one event of every kind and returns what Poll should yield.
func postAll(p Poster) []Event {
	p.PostAxisEvent(w1, 0, gamepad.AxisLeftY, -32768)
	p.PostCharEvent(w1, 1, [4]byte{'x'})
	p.PostGamepadEvent(w2, 3, true)
	p.PostKeyEvent(w1, key.KeyEsc, key.ModLeftCtrl, true)
	p.PostMouseEvent(w1, 10, 20, 0)
	p.PostMouseButtonEvent(w2, 11, 21, 1, mouse.ButtonRight, false)
	p.PostSizeEvent(w1, 1280, 720)
	p.PostWindowEvent(w2, 0xdead)
	p.PostSuspendEvent(InvalidWindow, DidResume)
	p.PostDropFileEvent(w1, "/tmp/a/../b.png")
	p.PostExitEvent()

	return []Event{
		AxisEvent{Handle: w1, Gamepad: 0, Axis: gamepad.AxisLeftY, Value: -32768},
		CharEvent{Handle: w1, Len: 1, Char: [4]byte{'x'}},
		GamepadEvent{Handle: w2, Gamepad: 3, Connected: true},
		KeyEvent{Handle: w1, Key: key.KeyEsc, Modifiers: key.ModLeftCtrl, Down: true},
		MouseEvent{Handle: w1, X: 10, Y: 20, Z: 0, Button: mouse.ButtonNone, Move: true},
		MouseEvent{Handle: w2, X: 11, Y: 21, Z: 1, Button: mouse.ButtonRight, Down: false},
		SizeEvent{Handle: w1, Width: 1280, Height: 720},
		WindowEvent{Handle: w2, Native: 0xdead},
		SuspendEvent{Handle: InvalidWindow, State: DidResume},
		DropFileEvent{Handle: w1, Path: "/tmp/b.png"},
		ExitEvent{Handle: 0},
	}
}

func drain(p Poller) []Event {
	var got []Event
	for {
		ev, ok := p.Poll()
		if !ok {
			return got
		}
		got = append(got, ev)
	}
}

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()
	want := postAll(q)

	if q.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", q.Len(), len(want))
	}
	if diff := cmp.Diff(want, drain(q)); diff != "" {
		t.Errorf("poll order mismatch (-want +got):\n%s", diff)
	}
	if q.Len() != 0 {
		t.Errorf("Len() after drain = %d, want 0", q.Len())
	}
}

func TestQueue_NoCoalescing(t *testing.T) {
	q := NewQueue()
	for i := int32(0); i < 5; i++ {
		q.PostMouseEvent(w1, i, i, 0)
	}

	got := drain(q)
	if len(got) != 5 {
		t.Fatalf("got %d events, want 5", len(got))
	}
	for i, ev := range got {
		if m := ev.(MouseEvent); m.X != int32(i) {
			t.Errorf("event %d X = %d, want %d", i, m.X, i)
		}
	}
}

func TestQueue_GrowPreservesOrder(t *testing.T) {
	q := NewQueue(WithCapacity(2))

	// Wrap the ring before growing.
	q.PostSizeEvent(w1, 0, 0)
	q.PostSizeEvent(w1, 1, 0)
	q.Poll()
	for i := uint32(2); i < 40; i++ {
		q.PostSizeEvent(w1, i, 0)
	}

	got := drain(q)
	if len(got) != 39 {
		t.Fatalf("got %d events, want 39", len(got))
	}
	for i, ev := range got {
		if w := ev.(SizeEvent).Width; w != uint32(i+1) {
			t.Fatalf("event %d width = %d, want %d", i, w, i+1)
		}
	}
}

func TestQueue_ZeroValueUsable(t *testing.T) {
	var q Queue
	if _, ok := q.Poll(); ok {
		t.Fatal("Poll() on zero queue returned an event")
	}
	q.PostExitEvent()
	if ev, ok := q.Poll(); !ok || ev.Kind() != KindExit {
		t.Fatalf("Poll() = %v, %v; want exit event", ev, ok)
	}
}

func TestQueue_EmptyPoll(t *testing.T) {
	q := NewQueue()

	if ev, ok := q.Poll(); ok || ev != nil {
		t.Errorf("Poll() = %v, %v; want nil, false", ev, ok)
	}
	if ev, ok := q.PollWindow(w1); ok || ev != nil {
		t.Errorf("PollWindow(w1) = %v, %v; want nil, false", ev, ok)
	}
	if ev, ok := q.PollWindow(InvalidWindow); ok || ev != nil {
		t.Errorf("PollWindow(invalid) = %v, %v; want nil, false", ev, ok)
	}
}

func TestQueue_PollWindowHeadOfLine(t *testing.T) {
	q := NewQueue()
	q.PostKeyEvent(w1, key.KeyA, key.ModNone, true)
	q.PostKeyEvent(w2, key.KeyB, key.ModNone, true)
	q.PostKeyEvent(w1, key.KeyC, key.ModNone, true)

	ev, ok := q.PollWindow(w1)
	if !ok || ev.(KeyEvent).Key != key.KeyA {
		t.Fatalf("first PollWindow(w1) = %v, %v; want KeyA", ev, ok)
	}

	// The w2 event now blocks the w1 event behind it.
	if ev, ok := q.PollWindow(w1); ok {
		t.Fatalf("second PollWindow(w1) = %v; want blocked", ev)
	}
	if q.Len() != 2 {
		t.Fatalf("blocked poll removed an event: Len() = %d, want 2", q.Len())
	}

	ev, ok = q.PollWindow(w2)
	if !ok || ev.(KeyEvent).Key != key.KeyB {
		t.Fatalf("PollWindow(w2) = %v, %v; want KeyB", ev, ok)
	}
	ev, ok = q.PollWindow(w1)
	if !ok || ev.(KeyEvent).Key != key.KeyC {
		t.Fatalf("PollWindow(w1) after unblock = %v, %v; want KeyC", ev, ok)
	}
}

func TestQueue_PollWindowExitMatchesAny(t *testing.T) {
	for _, h := range []WindowHandle{0, w1, w2, 7} {
		q := NewQueue()
		q.PostExitEvent()

		ev, ok := q.PollWindow(h)
		if !ok || ev.Kind() != KindExit {
			t.Errorf("PollWindow(%v) = %v, %v; want exit", h, ev, ok)
		}
	}
}

func TestQueue_PollWindowInvalidIsUnfiltered(t *testing.T) {
	q := NewQueue()
	q.PostSizeEvent(w2, 1, 1)
	q.PostSizeEvent(w1, 2, 2)

	ev, ok := q.PollWindow(InvalidWindow)
	if !ok || ev.Window() != w2 {
		t.Fatalf("PollWindow(invalid) = %v, %v; want w2 size event", ev, ok)
	}
	ev, ok = q.PollWindow(InvalidWindow)
	if !ok || ev.Window() != w1 {
		t.Fatalf("PollWindow(invalid) = %v, %v; want w1 size event", ev, ok)
	}
}

func TestQueue_CharRoundTrip(t *testing.T) {
	q := NewQueue()
	q.PostCharEvent(w1, 3, [4]byte{0x41, 0x42, 0x43, 0x00})

	ev, ok := q.Poll()
	if !ok {
		t.Fatal("Poll() returned no event")
	}
	ch := ev.(CharEvent)
	if diff := cmp.Diff([]byte{0x41, 0x42, 0x43}, ch.Bytes()); diff != "" {
		t.Errorf("Bytes() mismatch (-want +got):\n%s", diff)
	}
}

func TestQueue_Reset(t *testing.T) {
	q := NewQueue()
	postAll(q)
	q.Reset()

	if q.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", q.Len())
	}
	if _, ok := q.Poll(); ok {
		t.Error("Poll() after Reset returned an event")
	}
}

func TestSyncQueue_FIFO(t *testing.T) {
	q := NewSyncQueue()
	want := postAll(q)

	if diff := cmp.Diff(want, drain(q)); diff != "" {
		t.Errorf("poll order mismatch (-want +got):\n%s", diff)
	}
}

func TestSyncQueue_ConcurrentProducers(t *testing.T) {
	q := NewSyncQueue(WithCapacity(4))

	const producers = 4
	const perProducer = 250

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(h WindowHandle) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.PostSizeEvent(h, uint32(i), 0)
			}
		}(WindowHandle(p))
	}
	wg.Wait()

	// Per-producer order must hold even though producers interleave.
	next := make(map[WindowHandle]uint32)
	for _, ev := range drain(q) {
		s := ev.(SizeEvent)
		if s.Width != next[s.Handle] {
			t.Fatalf("window %d: got width %d, want %d", s.Handle, s.Width, next[s.Handle])
		}
		next[s.Handle]++
	}
	for p := 0; p < producers; p++ {
		if next[WindowHandle(p)] != perProducer {
			t.Errorf("window %d: got %d events, want %d", p, next[WindowHandle(p)], perProducer)
		}
	}
}

func TestSyncQueue_PollWindowHeadOfLine(t *testing.T) {
	q := NewSyncQueue()
	q.PostKeyEvent(w2, key.KeyB, key.ModNone, true)
	q.PostKeyEvent(w1, key.KeyA, key.ModNone, true)

	if _, ok := q.PollWindow(w1); ok {
		t.Fatal("PollWindow(w1) should be blocked by the w2 event")
	}
	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}
	q.Reset()
	if q.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", q.Len())
	}
}
