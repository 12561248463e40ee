package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/harness/internal/input/key"
)

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyUp:     key.KeyUp,
	tcell.KeyDown:   key.KeyDown,
	tcell.KeyLeft:   key.KeyLeft,
	tcell.KeyRight:  key.KeyRight,
	tcell.KeyInsert: key.KeyInsert,
	tcell.KeyDelete: key.KeyDelete,
	tcell.KeyHome:   key.KeyHome,
	tcell.KeyEnd:    key.KeyEnd,
	tcell.KeyPgUp:   key.KeyPageUp,
	tcell.KeyPgDn:   key.KeyPageDown,
	tcell.KeyPrint:  key.KeyPrint,
	tcell.KeyF1:     key.KeyF1,
	tcell.KeyF2:     key.KeyF2,
	tcell.KeyF3:     key.KeyF3,
	tcell.KeyF4:     key.KeyF4,
	tcell.KeyF5:     key.KeyF5,
	tcell.KeyF6:     key.KeyF6,
	tcell.KeyF7:     key.KeyF7,
	tcell.KeyF8:     key.KeyF8,
	tcell.KeyF9:     key.KeyF9,
	tcell.KeyF10:    key.KeyF10,
	tcell.KeyF11:    key.KeyF11,
	tcell.KeyF12:    key.KeyF12,

	// Control codes that have their own keys. KeyBackspace, KeyTab,
	// KeyEnter and KeyEscape share values with Ctrl-H, Ctrl-I, Ctrl-M and
	// Ctrl-[.
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyEnter:      key.KeyReturn,
	tcell.KeyEscape:     key.KeyEsc,
}

// convertKey maps a tcell key code to a key and any modifiers the code
// implies.
func convertKey(k tcell.Key) (key.Key, key.Modifier, bool) {
	if hk, ok := specialKeys[k]; ok {
		return hk, key.ModNone, true
	}

	switch {
	case k == tcell.KeyBacktab:
		return key.KeyTab, key.ModLeftShift, true
	case k == tcell.KeyCtrlSpace:
		return key.KeySpace, key.ModLeftCtrl, true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return key.KeyA + key.Key(k-tcell.KeyCtrlA), key.ModLeftCtrl, true
	}
	return key.KeyNone, key.ModNone, false
}

// convertMod maps tcell modifiers to their left-hand equivalents.
func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods |= key.ModLeftShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModLeftCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= key.ModLeftAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= key.ModLeftMeta
	}
	return mods
}
