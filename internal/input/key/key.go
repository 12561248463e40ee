package key

import (
	"fmt"
	"strings"
)

// Key identifies a physical key or gamepad button.
type Key uint8

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Special keys
	KeyEsc
	KeyReturn
	KeyTab
	KeySpace
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyPrint

	// Punctuation
	KeyPlus
	KeyMinus
	KeyLeftBracket
	KeyRightBracket
	KeySemicolon
	KeyQuote
	KeyComma
	KeyPeriod
	KeySlash
	KeyBackslash
	KeyTilde

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Keypad digits
	KeyNumPad0
	KeyNumPad1
	KeyNumPad2
	KeyNumPad3
	KeyNumPad4
	KeyNumPad5
	KeyNumPad6
	KeyNumPad7
	KeyNumPad8
	KeyNumPad9

	// Digit row
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	// Letters
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Gamepad buttons
	KeyGamepadA
	KeyGamepadB
	KeyGamepadX
	KeyGamepadY
	KeyGamepadThumbL
	KeyGamepadThumbR
	KeyGamepadShoulderL
	KeyGamepadShoulderR
	KeyGamepadUp
	KeyGamepadDown
	KeyGamepadLeft
	KeyGamepadRight
	KeyGamepadBack
	KeyGamepadStart
	KeyGamepadGuide

	// keyCount is the number of defined keys.
	keyCount
)

var keyNames = [keyCount]string{
	KeyNone:             "None",
	KeyEsc:              "Esc",
	KeyReturn:           "Return",
	KeyTab:              "Tab",
	KeySpace:            "Space",
	KeyBackspace:        "Backspace",
	KeyUp:               "Up",
	KeyDown:             "Down",
	KeyLeft:             "Left",
	KeyRight:            "Right",
	KeyInsert:           "Insert",
	KeyDelete:           "Delete",
	KeyHome:             "Home",
	KeyEnd:              "End",
	KeyPageUp:           "PageUp",
	KeyPageDown:         "PageDown",
	KeyPrint:            "Print",
	KeyPlus:             "Plus",
	KeyMinus:            "Minus",
	KeyLeftBracket:      "LeftBracket",
	KeyRightBracket:     "RightBracket",
	KeySemicolon:        "Semicolon",
	KeyQuote:            "Quote",
	KeyComma:            "Comma",
	KeyPeriod:           "Period",
	KeySlash:            "Slash",
	KeyBackslash:        "Backslash",
	KeyTilde:            "Tilde",
	KeyF1:               "F1",
	KeyF2:               "F2",
	KeyF3:               "F3",
	KeyF4:               "F4",
	KeyF5:               "F5",
	KeyF6:               "F6",
	KeyF7:               "F7",
	KeyF8:               "F8",
	KeyF9:               "F9",
	KeyF10:              "F10",
	KeyF11:              "F11",
	KeyF12:              "F12",
	KeyNumPad0:          "NumPad0",
	KeyNumPad1:          "NumPad1",
	KeyNumPad2:          "NumPad2",
	KeyNumPad3:          "NumPad3",
	KeyNumPad4:          "NumPad4",
	KeyNumPad5:          "NumPad5",
	KeyNumPad6:          "NumPad6",
	KeyNumPad7:          "NumPad7",
	KeyNumPad8:          "NumPad8",
	KeyNumPad9:          "NumPad9",
	Key0:                "0",
	Key1:                "1",
	Key2:                "2",
	Key3:                "3",
	Key4:                "4",
	Key5:                "5",
	Key6:                "6",
	Key7:                "7",
	Key8:                "8",
	Key9:                "9",
	KeyA:                "A",
	KeyB:                "B",
	KeyC:                "C",
	KeyD:                "D",
	KeyE:                "E",
	KeyF:                "F",
	KeyG:                "G",
	KeyH:                "H",
	KeyI:                "I",
	KeyJ:                "J",
	KeyK:                "K",
	KeyL:                "L",
	KeyM:                "M",
	KeyN:                "N",
	KeyO:                "O",
	KeyP:                "P",
	KeyQ:                "Q",
	KeyR:                "R",
	KeyS:                "S",
	KeyT:                "T",
	KeyU:                "U",
	KeyV:                "V",
	KeyW:                "W",
	KeyX:                "X",
	KeyY:                "Y",
	KeyZ:                "Z",
	KeyGamepadA:         "GamepadA",
	KeyGamepadB:         "GamepadB",
	KeyGamepadX:         "GamepadX",
	KeyGamepadY:         "GamepadY",
	KeyGamepadThumbL:    "GamepadThumbL",
	KeyGamepadThumbR:    "GamepadThumbR",
	KeyGamepadShoulderL: "GamepadShoulderL",
	KeyGamepadShoulderR: "GamepadShoulderR",
	KeyGamepadUp:        "GamepadUp",
	KeyGamepadDown:      "GamepadDown",
	KeyGamepadLeft:      "GamepadLeft",
	KeyGamepadRight:     "GamepadRight",
	KeyGamepadBack:      "GamepadBack",
	KeyGamepadStart:     "GamepadStart",
	KeyGamepadGuide:     "GamepadGuide",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsValid returns true if k is a defined key.
func (k Key) IsValid() bool {
	return k < keyCount
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// IsArrowKey returns true if this is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyUp && k <= KeyRight
}

// IsNumPad returns true if this is a keypad digit.
func (k Key) IsNumPad() bool {
	return k >= KeyNumPad0 && k <= KeyNumPad9
}

// IsGamepad returns true if this is a gamepad button.
func (k Key) IsGamepad() bool {
	return k >= KeyGamepadA && k <= KeyGamepadGuide
}

// keyNameMap maps lowercase names and aliases to keys.
var keyNameMap = func() map[string]Key {
	m := make(map[string]Key, int(keyCount)+8)
	for k := KeyNone; k < keyCount; k++ {
		m[strings.ToLower(keyNames[k])] = k
	}
	m["escape"] = KeyEsc
	m["enter"] = KeyReturn
	m["cr"] = KeyReturn
	m["bs"] = KeyBackspace
	m["del"] = KeyDelete
	m["ins"] = KeyInsert
	m["pgup"] = KeyPageUp
	m["pgdn"] = KeyPageDown
	return m
}()

// FromName returns the Key for a given name (case-insensitive).
// Returns KeyNone and false if the name is not recognized.
func FromName(name string) (Key, bool) {
	k, ok := keyNameMap[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// ParseCombo parses a key with optional modifiers, such as "ctrl+shift+a" or
// "f5". The key part must be a known name other than "none".
func ParseCombo(s string) (Key, Modifier, bool) {
	name, mods := s, ModNone
	if i := strings.LastIndex(s, "+"); i > 0 {
		mods = ParseModifiers(s[:i])
		name = s[i+1:]
	}
	k, ok := FromName(name)
	if !ok || k == KeyNone {
		return KeyNone, ModNone, false
	}
	return k, mods, true
}
