package lua

import (
	"math"

	"github.com/sirupsen/logrus"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/harness/internal/command"
	"github.com/dshills/harness/internal/event"
	"github.com/dshills/harness/internal/input/gamepad"
	"github.com/dshills/harness/internal/input/key"
	"github.com/dshills/harness/internal/input/mouse"
)

// ModuleName is the global and require name of the harness module.
const ModuleName = "harness"

// CodeScriptError is returned by a Lua command whose function raised an error.
const CodeScriptError = 1

// Module binds a command dispatcher and an event poster into a State.
type Module struct {
	state    *State
	commands *command.Dispatcher
	poster   event.Poster
	log      logrus.FieldLogger
}

// NewModule creates the harness module for s. Call Install to expose it.
func NewModule(s *State, d *command.Dispatcher, p event.Poster) *Module {
	return &Module{
		state:    s,
		commands: d,
		poster:   p,
		log:      s.Logger(),
	}
}

// Install registers the module in the state.
func (m *Module) Install() error {
	return m.state.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"exec":     m.exec,
		"register": m.register,
		"has":      m.has,
		"commands": m.names,
		"log":      m.logInfo,
		"warn":     m.logWarn,
		"exit":     m.exit,
		"key":      m.key,
		"char":     m.char,
		"mouse":    m.mouse,
		"button":   m.button,
		"size":     m.size,
		"drop":     m.drop,
		"suspend":  m.suspend,
		"gamepad":  m.gamepad,
		"axis":     m.axis,
	})
}

// exec(line)
func (m *Module) exec(L *lua.LState) int {
	m.commands.Execute(L.CheckString(1))
	return 0
}

// register(name, fn) returns true, or nil and an error message.
func (m *Module) register(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)

	if err := m.commands.Register(name, m.handler(fn), nil); err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

// handler adapts a Lua function to a command handler. The function receives
// the sub-command tokens and may return a numeric result code.
func (m *Module) handler(fn *lua.LFunction) command.Func {
	return func(_ *command.Dispatcher, _ any, args []string) int {
		largs := make([]lua.LValue, len(args))
		for i, a := range args {
			largs[i] = lua.LString(a)
		}

		code := 0
		err := m.state.run(func(L *lua.LState) error {
			results, err := callValue(L, fn, largs...)
			if err != nil {
				return err
			}
			if len(results) > 0 {
				if n, ok := results[0].(lua.LNumber); ok {
					code = int(n)
				}
			}
			return nil
		})
		if err != nil {
			m.log.WithError(err).WithField("command", args[0]).Error("lua command failed")
			return CodeScriptError
		}
		return code
	}
}

func (m *Module) has(L *lua.LState) int {
	L.Push(lua.LBool(m.commands.Has(L.CheckString(1))))
	return 1
}

func (m *Module) names(L *lua.LState) int {
	t := L.NewTable()
	for _, name := range m.commands.Names() {
		t.Append(lua.LString(name))
	}
	L.Push(t)
	return 1
}

func (m *Module) logInfo(L *lua.LState) int {
	m.log.Info(L.CheckString(1))
	return 0
}

func (m *Module) logWarn(L *lua.LState) int {
	m.log.Warn(L.CheckString(1))
	return 0
}

func (m *Module) exit(_ *lua.LState) int {
	m.poster.PostExitEvent()
	return 0
}

// key(combo [, "down"|"up" [, window]]). Without a state it posts a press
// and a release.
func (m *Module) key(L *lua.LState) int {
	k, mods, ok := key.ParseCombo(L.CheckString(1))
	if !ok {
		L.ArgError(1, "unknown key")
	}
	state := L.OptString(2, "")
	h := checkWindow(L, 3)

	switch state {
	case "":
		m.poster.PostKeyEvent(h, k, mods, true)
		m.poster.PostKeyEvent(h, k, mods, false)
	case "down", "up":
		m.poster.PostKeyEvent(h, k, mods, state == "down")
	default:
		L.ArgError(2, `expected "down" or "up"`)
	}
	return 0
}

// char(text [, window]) posts one Char event per rune.
func (m *Module) char(L *lua.LState) int {
	text := L.CheckString(1)
	h := checkWindow(L, 2)
	for _, r := range text {
		n, b := event.EncodeChar(r)
		m.poster.PostCharEvent(h, n, b)
	}
	return 0
}

// mouse(x, y [, z [, window]])
func (m *Module) mouse(L *lua.LState) int {
	x, y := checkInt32(L, 1), checkInt32(L, 2)
	z := optInt32(L, 3)
	m.poster.PostMouseEvent(checkWindow(L, 4), x, y, z)
	return 0
}

// button(name, "down"|"up", x, y [, window])
func (m *Module) button(L *lua.LState) int {
	b, ok := mouse.ParseButton(L.CheckString(1))
	if !ok || b == mouse.ButtonNone {
		L.ArgError(1, "unknown mouse button")
	}
	down := checkState(L, 2)
	x, y := checkInt32(L, 3), checkInt32(L, 4)
	m.poster.PostMouseButtonEvent(checkWindow(L, 5), x, y, 0, b, down)
	return 0
}

// size(width, height [, window])
func (m *Module) size(L *lua.LState) int {
	w, h := checkUint32(L, 1), checkUint32(L, 2)
	m.poster.PostSizeEvent(checkWindow(L, 3), w, h)
	return 0
}

// drop(path [, window])
func (m *Module) drop(L *lua.LState) int {
	path := L.CheckString(1)
	m.poster.PostDropFileEvent(checkWindow(L, 2), path)
	return 0
}

// suspend(state [, window])
func (m *Module) suspend(L *lua.LState) int {
	state, ok := event.ParseSuspendState(L.CheckString(1))
	if !ok {
		L.ArgError(1, "unknown suspend state")
	}
	m.poster.PostSuspendEvent(checkWindow(L, 2), state)
	return 0
}

// gamepad(index, connected [, window])
func (m *Module) gamepad(L *lua.LState) int {
	gp := checkGamepad(L, 1)
	connected := L.CheckBool(2)
	m.poster.PostGamepadEvent(checkWindow(L, 3), gp, connected)
	return 0
}

// axis(index, axis, value [, window])
func (m *Module) axis(L *lua.LState) int {
	gp := checkGamepad(L, 1)
	ax, ok := gamepad.ParseAxis(L.CheckString(2))
	if !ok {
		L.ArgError(2, "unknown axis")
	}
	v := checkInt32(L, 3)
	m.poster.PostAxisEvent(checkWindow(L, 4), gp, ax, v)
	return 0
}

func checkWindow(L *lua.LState, n int) event.WindowHandle {
	v := L.OptInt(n, 0)
	if v < 0 || v > math.MaxUint16 {
		L.ArgError(n, "window out of range")
	}
	return event.WindowHandle(v)
}

func checkGamepad(L *lua.LState, n int) gamepad.Handle {
	v := L.CheckInt(n)
	if v < 0 || v > math.MaxUint16 {
		L.ArgError(n, "gamepad out of range")
	}
	return gamepad.Handle(v)
}

func checkState(L *lua.LState, n int) bool {
	switch L.CheckString(n) {
	case "down":
		return true
	case "up":
		return false
	}
	L.ArgError(n, `expected "down" or "up"`)
	return false
}

func checkInt32(L *lua.LState, n int) int32 {
	v := L.CheckInt(n)
	if v < math.MinInt32 || v > math.MaxInt32 {
		L.ArgError(n, "value out of range")
	}
	return int32(v)
}

func optInt32(L *lua.LState, n int) int32 {
	if L.Get(n) == lua.LNil {
		return 0
	}
	return checkInt32(L, n)
}

func checkUint32(L *lua.LState, n int) uint32 {
	v := L.CheckInt(n)
	if v < 0 || int64(v) > math.MaxUint32 {
		L.ArgError(n, "value out of range")
	}
	return uint32(v)
}
