// Package command provides the command dispatcher used by consoles, scripts
// and application setup code.
//
// Commands are registered by name with a handler and an opaque user value.
// A command string may hold several sub-commands separated by newlines; each
// is tokenized shell-style and dispatched to the handler named by its first
// word:
//
//	d := command.New(command.WithLogger(log))
//	defer d.Close()
//
//	d.MustRegister("echo", func(d *command.Dispatcher, _ any, args []string) int {
//	    fmt.Println(strings.Join(args[1:], " "))
//	    return 0
//	}, nil)
//
//	d.Execute("echo hello\necho \"two words\"")
//
// # Lookup
//
// The table is keyed by a 32-bit hash of the name. The original name is kept
// with each entry so that two names sharing a hash are never confused:
// registering the second one fails with ErrHashCollision.
//
// # Diagnostics
//
// Execute never returns an error. Unknown commands, unparseable input,
// truncated input and nonzero handler codes are logged at warning level and
// the next sub-command runs regardless.
package command
