// Package lua runs harness scripts on an embedded gopher-lua interpreter.
//
// A State opens only the base, table, string and math libraries and strips
// the functions that load code from disk. The harness module, installed as a
// global and available through require("harness"), exposes the command
// dispatcher and the event producer to scripts:
//
//	harness.register("greet", function(name, who)
//	    harness.log("hello " .. (who or "world"))
//	    return 0
//	end)
//	harness.exec("greet bob\ngreet")
//	harness.key("ctrl+s")
//	harness.size(1920, 1080)
//	harness.exit()
//
// A Lua command handler receives the tokens of its sub-command, name first.
// Its numeric return value becomes the command result code; nil means
// success and a raised error maps to CodeScriptError.
//
// gopher-lua states are not goroutine-safe. A State serializes calls from Go,
// and commands registered by a script run on the goroutine that executes them.
package lua
