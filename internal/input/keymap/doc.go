// Package keymap binds key combinations to command lines.
//
// A Binding pairs a combination such as "ctrl+s" or "f11" with a command line
// for the command dispatcher. Modifiers match without regard to side, so a
// binding for "ctrl+q" fires for either control key.
//
//	km := keymap.New()
//	_ = km.Bind("ctrl+q", "exit")
//	_ = km.Bind("f1", "help")
//
//	if b, ok := km.Lookup(key.KeyQ, key.ModLeftCtrl); ok {
//	    dispatcher.Execute(b.Command)
//	}
package keymap
