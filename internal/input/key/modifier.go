package key

import "strings"

// Modifier is a bitmask of held modifier keys. Left and right variants are
// tracked separately.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	ModLeftAlt    Modifier = 0x01
	ModRightAlt   Modifier = 0x02
	ModLeftCtrl   Modifier = 0x04
	ModRightCtrl  Modifier = 0x08
	ModLeftShift  Modifier = 0x10
	ModRightShift Modifier = 0x20
	ModLeftMeta   Modifier = 0x40
	ModRightMeta  Modifier = 0x80

	// Side-agnostic masks.
	ModAlt   = ModLeftAlt | ModRightAlt
	ModCtrl  = ModLeftCtrl | ModRightCtrl
	ModShift = ModLeftShift | ModRightShift
	ModMeta  = ModLeftMeta | ModRightMeta
)

// Has returns true if m contains any bit of mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if either Shift key is held.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if either Control key is held.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt returns true if either Alt key is held.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasMeta returns true if either Meta key is held.
func (m Modifier) HasMeta() bool {
	return m.Has(ModMeta)
}

// With returns a new Modifier with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with mod removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// String returns a representation like "Ctrl+Shift".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if m.HasAlt() {
		parts = append(parts, "Alt")
	}
	if m.HasShift() {
		parts = append(parts, "Shift")
	}
	if m.HasMeta() {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}

// modifierNameMap maps modifier names (lowercase) to the left-hand variant.
var modifierNameMap = map[string]Modifier{
	"ctrl":    ModLeftCtrl,
	"control": ModLeftCtrl,
	"alt":     ModLeftAlt,
	"option":  ModLeftAlt,
	"shift":   ModLeftShift,
	"meta":    ModLeftMeta,
	"cmd":     ModLeftMeta,
	"super":   ModLeftMeta,
	"win":     ModLeftMeta,
}

// ParseModifiers parses a string like "ctrl+shift". Unknown parts are ignored.
func ParseModifiers(s string) Modifier {
	var result Modifier
	for _, part := range strings.Split(strings.ToLower(s), "+") {
		result |= modifierNameMap[strings.TrimSpace(part)]
	}
	return result
}
