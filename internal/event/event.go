package event

import (
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/dshills/harness/internal/input/gamepad"
	"github.com/dshills/harness/internal/input/key"
	"github.com/dshills/harness/internal/input/mouse"
)

// WindowHandle identifies a logical window or surface.
type WindowHandle uint16

// InvalidWindow is the "no specific window" sentinel.
const InvalidWindow WindowHandle = 0xFFFF

// IsValid returns true if h names a specific window.
func (h WindowHandle) IsValid() bool {
	return h != InvalidWindow
}

// String returns "window(N)" or "window(invalid)".
func (h WindowHandle) String() string {
	if !h.IsValid() {
		return "window(invalid)"
	}
	return fmt.Sprintf("window(%d)", uint16(h))
}

// Kind tags the concrete type of an event.
type Kind uint8

const (
	KindAxis Kind = iota
	KindChar
	KindExit
	KindGamepad
	KindKey
	KindMouse
	KindSize
	KindWindow
	KindSuspend
	KindDropFile
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAxis:
		return "axis"
	case KindChar:
		return "char"
	case KindExit:
		return "exit"
	case KindGamepad:
		return "gamepad"
	case KindKey:
		return "key"
	case KindMouse:
		return "mouse"
	case KindSize:
		return "size"
	case KindWindow:
		return "window"
	case KindSuspend:
		return "suspend"
	case KindDropFile:
		return "dropfile"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Event is one input or window occurrence. Events are immutable values.
type Event interface {
	// Kind returns the event's type tag.
	Kind() Kind

	// Window returns the window the event belongs to.
	Window() WindowHandle

	isEvent()
}

// SuspendState is the application lifecycle transition reported by SuspendEvent.
type SuspendState uint8

const (
	WillSuspend SuspendState = iota
	DidSuspend
	WillResume
	DidResume
)

// String returns the state name.
func (s SuspendState) String() string {
	switch s {
	case WillSuspend:
		return "will-suspend"
	case DidSuspend:
		return "did-suspend"
	case WillResume:
		return "will-resume"
	case DidResume:
		return "did-resume"
	default:
		return fmt.Sprintf("suspend(%d)", s)
	}
}

// ParseSuspendState returns the state for a name produced by String.
func ParseSuspendState(name string) (SuspendState, bool) {
	for s := WillSuspend; s <= DidResume; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// AxisEvent reports a gamepad analog axis value.
type AxisEvent struct {
	Handle  WindowHandle
	Gamepad gamepad.Handle
	Axis    gamepad.Axis
	Value   int32
}

// CharEvent carries text input. Only the first Len bytes of Char are significant.
type CharEvent struct {
	Handle WindowHandle
	Len    uint8
	Char   [4]byte
}

// Bytes returns the significant bytes of the character.
func (e CharEvent) Bytes() []byte {
	n := int(e.Len)
	if n > len(e.Char) {
		n = len(e.Char)
	}
	b := make([]byte, n)
	copy(b, e.Char[:n])
	return b
}

// Rune decodes the character as UTF-8. Invalid input yields utf8.RuneError.
func (e CharEvent) Rune() rune {
	r, _ := utf8.DecodeRune(e.Bytes())
	return r
}

// EncodeChar packs r as UTF-8 in the layout PostCharEvent expects.
func EncodeChar(r rune) (uint8, [4]byte) {
	var buf [4]byte
	n := utf8.EncodeRune(buf[:], r)
	return uint8(n), buf
}

// ExitEvent asks the application to quit. It matches every window filter.
type ExitEvent struct {
	Handle WindowHandle
}

// GamepadEvent reports a gamepad connecting or disconnecting.
type GamepadEvent struct {
	Handle    WindowHandle
	Gamepad   gamepad.Handle
	Connected bool
}

// KeyEvent reports a key press or release.
type KeyEvent struct {
	Handle    WindowHandle
	Key       key.Key
	Modifiers key.Modifier
	Down      bool
}

// MouseEvent reports pointer movement or a button transition.
// Move is true for pure movement, in which case Button is ButtonNone.
type MouseEvent struct {
	Handle WindowHandle
	X      int32
	Y      int32
	Z      int32
	Button mouse.Button
	Down   bool
	Move   bool
}

// SizeEvent reports a new window size in pixels.
type SizeEvent struct {
	Handle WindowHandle
	Width  uint32
	Height uint32
}

// WindowEvent reports a native window handle becoming available (non-zero)
// or going away (zero).
type WindowEvent struct {
	Handle WindowHandle
	Native uintptr
}

// SuspendEvent reports an application lifecycle transition.
type SuspendEvent struct {
	Handle WindowHandle
	State  SuspendState
}

// DropFileEvent reports a file dropped onto a window.
type DropFileEvent struct {
	Handle WindowHandle
	Path   string
}

// cleanPath normalizes a dropped path, leaving empty paths empty.
func cleanPath(p string) string {
	if p == "" {
		return ""
	}
	return filepath.Clean(p)
}

func (AxisEvent) Kind() Kind     { return KindAxis }
func (CharEvent) Kind() Kind     { return KindChar }
func (ExitEvent) Kind() Kind     { return KindExit }
func (GamepadEvent) Kind() Kind  { return KindGamepad }
func (KeyEvent) Kind() Kind      { return KindKey }
func (MouseEvent) Kind() Kind    { return KindMouse }
func (SizeEvent) Kind() Kind     { return KindSize }
func (WindowEvent) Kind() Kind   { return KindWindow }
func (SuspendEvent) Kind() Kind  { return KindSuspend }
func (DropFileEvent) Kind() Kind { return KindDropFile }

func (e AxisEvent) Window() WindowHandle     { return e.Handle }
func (e CharEvent) Window() WindowHandle     { return e.Handle }
func (e ExitEvent) Window() WindowHandle     { return e.Handle }
func (e GamepadEvent) Window() WindowHandle  { return e.Handle }
func (e KeyEvent) Window() WindowHandle      { return e.Handle }
func (e MouseEvent) Window() WindowHandle    { return e.Handle }
func (e SizeEvent) Window() WindowHandle     { return e.Handle }
func (e WindowEvent) Window() WindowHandle   { return e.Handle }
func (e SuspendEvent) Window() WindowHandle  { return e.Handle }
func (e DropFileEvent) Window() WindowHandle { return e.Handle }

func (AxisEvent) isEvent()     {}
func (CharEvent) isEvent()     {}
func (ExitEvent) isEvent()     {}
func (GamepadEvent) isEvent()  {}
func (KeyEvent) isEvent()      {}
func (MouseEvent) isEvent()    {}
func (SizeEvent) isEvent()     {}
func (WindowEvent) isEvent()   {}
func (SuspendEvent) isEvent()  {}
func (DropFileEvent) isEvent() {}
