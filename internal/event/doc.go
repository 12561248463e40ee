// Package event provides the typed event queue that carries platform input
// and window notifications to the application main loop.
//
// Platform callbacks (terminal input, file drops, window system) are producers:
// they call one Post method per occurrence. The main loop is the consumer: it
// polls events one at a time and dispatches on the concrete type.
//
// # Event Types
//
// Event is a closed set. Only the types in this package implement it:
//
//	AxisEvent      - gamepad analog axis moved
//	CharEvent      - text input, up to 4 bytes of UTF-8
//	ExitEvent      - application should quit
//	GamepadEvent   - gamepad connected or disconnected
//	KeyEvent       - key pressed or released
//	MouseEvent     - pointer moved, or button pressed/released
//	SizeEvent      - window resized
//	WindowEvent    - native window created or destroyed
//	SuspendEvent   - application suspend/resume transitions
//	DropFileEvent  - a file was dropped onto a window
//
// Every event names the window it belongs to. InvalidWindow means "no specific
// window".
//
// # Polling
//
//	for {
//	    ev, ok := q.Poll()
//	    if !ok {
//	        break
//	    }
//	    switch ev := ev.(type) {
//	    case event.KeyEvent:
//	        handleKey(ev.Key, ev.Modifiers, ev.Down)
//	    case event.ExitEvent:
//	        return
//	    }
//	}
//
// PollWindow filters by window with head-of-line semantics: if the front event
// belongs to another window, nothing is returned and nothing is removed, even
// when a matching event sits further back. Exit events match every window.
// This keeps per-window consumers in global arrival order.
//
// # Thread Safety
//
// Queue is not synchronized; producers and the consumer must take turns. Use
// SyncQueue when producers run on their own goroutines. Neither type blocks:
// an empty queue is reported by the boolean result.
package event
