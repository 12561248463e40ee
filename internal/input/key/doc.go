// Package key defines the keyboard and gamepad button identifiers carried by
// key events, the modifier bitmask, and the ASCII translation used to derive
// character input from key presses.
//
// Modifiers distinguish left and right keys:
//
//	mods := key.ModLeftCtrl | key.ModRightShift
//	mods.HasShift() // true
//
// Key names round-trip through String and FromName ("Esc", "PageUp", "A").
package key
