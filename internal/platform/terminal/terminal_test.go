package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/dshills/harness/internal/event"
	"github.com/dshills/harness/internal/input/key"
	"github.com/dshills/harness/internal/input/mouse"
)

func startSim(t *testing.T, opts ...Option) (*Terminal, tcell.SimulationScreen, *event.SyncQueue) {
	t.Helper()

	sim := tcell.NewSimulationScreen("UTF-8")
	logger, _ := logtest.NewNullLogger()
	term, err := New(append([]Option{WithScreen(sim), WithLogger(logger)}, opts...)...)
	require.NoError(t, err)

	q := event.NewSyncQueue()
	require.NoError(t, term.Start(q))
	t.Cleanup(func() { _ = term.Close() })

	ev, ok := q.Poll()
	require.True(t, ok, "no window event after Start")
	require.Equal(t, event.WindowEvent{Handle: term.window, Native: NativeHandle}, ev)
	return term, sim, q
}

// collect waits until n events are queued and returns them.
func collect(t *testing.T, q *event.SyncQueue, n int) []event.Event {
	t.Helper()
	require.Eventually(t, func() bool { return q.Len() >= n }, 2*time.Second, time.Millisecond,
		"expected %d events, have %d", n, q.Len())

	out := make([]event.Event, 0, n)
	for {
		ev, ok := q.Poll()
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}

func keyPair(h event.WindowHandle, k key.Key, mods key.Modifier) []event.Event {
	return []event.Event{
		event.KeyEvent{Handle: h, Key: k, Modifiers: mods, Down: true},
		event.KeyEvent{Handle: h, Key: k, Modifiers: mods, Down: false},
	}
}

func charEvent(h event.WindowHandle, r rune) event.CharEvent {
	n, b := event.EncodeChar(r)
	return event.CharEvent{Handle: h, Len: n, Char: b}
}

func TestRuneInput(t *testing.T) {
	_, sim, q := startSim(t, WithWindow(2))

	sim.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'Q', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'ж', tcell.ModNone)

	var want []event.Event
	want = append(want, keyPair(2, key.KeyA, 0)...)
	want = append(want, charEvent(2, 'a'))
	want = append(want, keyPair(2, key.KeyQ, key.ModLeftShift)...)
	want = append(want, charEvent(2, 'Q'))
	want = append(want, charEvent(2, 'ж'))

	if diff := cmp.Diff(want, collect(t, q, len(want))); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestSpecialKeys(t *testing.T) {
	_, sim, q := startSim(t)

	sim.InjectKey(tcell.KeyF5, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyEnter, '\r', tcell.ModNone)
	sim.InjectKey(tcell.KeyCtrlC, 3, tcell.ModCtrl)
	sim.InjectKey(tcell.KeyUp, 0, tcell.ModAlt)

	var want []event.Event
	want = append(want, keyPair(0, key.KeyF5, 0)...)
	want = append(want, keyPair(0, key.KeyReturn, 0)...)
	want = append(want, event.CharEvent{Len: 1, Char: [4]byte{'\n'}})
	want = append(want, keyPair(0, key.KeyC, key.ModLeftCtrl)...)
	want = append(want, keyPair(0, key.KeyUp, key.ModLeftAlt)...)

	if diff := cmp.Diff(want, collect(t, q, len(want))); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestMouse(t *testing.T) {
	_, sim, q := startSim(t, WithMouse(true))

	sim.InjectMouse(3, 4, tcell.ButtonPrimary, tcell.ModNone)
	sim.InjectMouse(5, 6, tcell.ButtonPrimary, tcell.ModNone)
	sim.InjectMouse(5, 6, tcell.ButtonNone, tcell.ModNone)
	sim.InjectMouse(5, 6, tcell.WheelUp, tcell.ModNone)

	want := []event.Event{
		event.MouseEvent{X: 3, Y: 4, Button: mouse.ButtonLeft, Down: true},
		event.MouseEvent{X: 5, Y: 6, Move: true},
		event.MouseEvent{X: 5, Y: 6, Button: mouse.ButtonLeft, Down: false},
		event.MouseEvent{X: 5, Y: 6, Z: 1, Move: true},
	}
	if diff := cmp.Diff(want, collect(t, q, len(want))); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestResize(t *testing.T) {
	term, sim, q := startSim(t)

	sim.SetSize(100, 40)
	require.NoError(t, sim.PostEvent(tcell.NewEventResize(100, 40)))

	want := []event.Event{event.SizeEvent{Width: 100, Height: 40}}
	if diff := cmp.Diff(want, collect(t, q, 1)); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	w, h := term.Size()
	require.Equal(t, 100, w)
	require.Equal(t, 40, h)
}

func TestSuspendResume(t *testing.T) {
	term, _, q := startSim(t)

	require.NoError(t, term.Suspend())
	require.NoError(t, term.Resume())

	want := []event.Event{
		event.SuspendEvent{State: event.WillSuspend},
		event.SuspendEvent{State: event.DidSuspend},
		event.SuspendEvent{State: event.WillResume},
		event.SuspendEvent{State: event.DidResume},
	}
	if diff := cmp.Diff(want, collect(t, q, len(want))); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestStartTwiceAndClose(t *testing.T) {
	term, _, q := startSim(t)

	require.Error(t, term.Start(q))
	require.NoError(t, term.Close())
	require.NoError(t, term.Close())

	want := []event.Event{event.WindowEvent{Native: 0}}
	if diff := cmp.Diff(want, collect(t, q, 1)); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		in   tcell.Key
		key  key.Key
		mods key.Modifier
		ok   bool
	}{
		{tcell.KeyBackspace, key.KeyBackspace, 0, true},
		{tcell.KeyBackspace2, key.KeyBackspace, 0, true},
		{tcell.KeyTab, key.KeyTab, 0, true},
		{tcell.KeyBacktab, key.KeyTab, key.ModLeftShift, true},
		{tcell.KeyEscape, key.KeyEsc, 0, true},
		{tcell.KeyCtrlA, key.KeyA, key.ModLeftCtrl, true},
		{tcell.KeyCtrlZ, key.KeyZ, key.ModLeftCtrl, true},
		{tcell.KeyCtrlSpace, key.KeySpace, key.ModLeftCtrl, true},
		{tcell.KeyPgDn, key.KeyPageDown, 0, true},
		{tcell.KeyF13, key.KeyNone, 0, false},
	}
	for _, tt := range tests {
		k, mods, ok := convertKey(tt.in)
		if k != tt.key || mods != tt.mods || ok != tt.ok {
			t.Errorf("convertKey(%v) = %v, %v, %v; want %v, %v, %v", tt.in, k, mods, ok, tt.key, tt.mods, tt.ok)
		}
	}
}

func TestConvertMod(t *testing.T) {
	got := convertMod(tcell.ModShift | tcell.ModCtrl | tcell.ModAlt | tcell.ModMeta)
	want := key.ModLeftShift | key.ModLeftCtrl | key.ModLeftAlt | key.ModLeftMeta
	if got != want {
		t.Errorf("convertMod = %v, want %v", got, want)
	}
	if convertMod(tcell.ModNone) != key.ModNone {
		t.Error("convertMod(ModNone) != ModNone")
	}
}
