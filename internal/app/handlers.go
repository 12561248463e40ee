package app

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dshills/harness/internal/command"
	"github.com/dshills/harness/internal/event"
	"github.com/dshills/harness/internal/input/gamepad"
	"github.com/dshills/harness/internal/input/key"
	"github.com/dshills/harness/internal/input/mouse"
)

// Return codes of the built-in commands.
const (
	CodeUsage    = 1
	CodeBadValue = 2
)

const postUsage = `post key <[mods+]name> [down|up] [window]
post char <text> [window]
post mouse <x> <y> [z] [window]
post button <left|middle|right> <down|up> <x> <y> [window]
post size <width> <height> [window]
post drop <path> [window]
post suspend <will-suspend|did-suspend|will-resume|did-resume> [window]
post gamepad <index> <connect|disconnect> [window]
post axis <index> <axis> <value> [window]`

func (a *App) registerBuiltins() error {
	builtins := []struct {
		name string
		fn   command.Func
	}{
		{"exit", a.cmdExit},
		{"help", a.cmdHelp},
		{"post", a.cmdPost},
		{"bind", a.cmdBind},
		{"unbind", a.cmdUnbind},
	}
	for _, b := range builtins {
		if err := a.commands.Register(b.name, b.fn, nil); err != nil {
			return err
		}
	}
	return nil
}

// cmdExit posts an Exit event.
func (a *App) cmdExit(_ *command.Dispatcher, _ any, _ []string) int {
	a.producer.PostExitEvent()
	return 0
}

// cmdHelp lists the registered commands, or reports whether one exists.
func (a *App) cmdHelp(d *command.Dispatcher, _ any, args []string) int {
	log := WithComponent(a.log, "help")
	if len(args) > 1 {
		name := args[1]
		if !d.Has(name) {
			log.Warnf("command %q does not exist", name)
			return CodeBadValue
		}
		if name == "post" {
			log.Info("usage:\n" + postUsage)
		} else {
			log.Infof("command %q is registered", name)
		}
		return 0
	}

	log.WithField("commands", strings.Join(d.Names(), " ")).Info("registered commands")
	return 0
}

// cmdBind binds a key combination to a command line, or lists the bindings.
func (a *App) cmdBind(_ *command.Dispatcher, _ any, args []string) int {
	log := WithComponent(a.log, "bind")
	switch len(args) {
	case 1:
		for _, b := range a.keymap.Bindings() {
			log.WithField("command", b.Command).Info(b.Keys)
		}
		return 0
	case 3:
		if err := a.keymap.Bind(args[1], args[2]); err != nil {
			log.WithError(err).Warn("binding rejected")
			return CodeBadValue
		}
		return 0
	default:
		log.Warn("usage: bind [<[mods+]key> <command-line>]")
		return CodeUsage
	}
}

// cmdUnbind removes a key binding.
func (a *App) cmdUnbind(_ *command.Dispatcher, _ any, args []string) int {
	log := WithComponent(a.log, "unbind")
	if len(args) != 2 {
		log.Warn("usage: unbind <[mods+]key>")
		return CodeUsage
	}
	if !a.keymap.Unbind(args[1]) {
		log.Warnf("no binding for %q", args[1])
		return CodeBadValue
	}
	return 0
}

// cmdPost injects a synthetic event.
func (a *App) cmdPost(_ *command.Dispatcher, _ any, args []string) int {
	log := WithComponent(a.log, "post")
	if len(args) < 2 {
		log.Warn("usage:\n" + postUsage)
		return CodeUsage
	}

	p := poster{Producer: a.producer, log: log}
	kind, rest := args[1], args[2:]

	switch kind {
	case "key":
		return p.key(rest)
	case "char":
		return p.char(rest)
	case "mouse":
		return p.mouse(rest)
	case "button":
		return p.button(rest)
	case "size":
		return p.size(rest)
	case "drop":
		return p.drop(rest)
	case "suspend":
		return p.suspend(rest)
	case "gamepad":
		return p.gamepad(rest)
	case "axis":
		return p.axis(rest)
	default:
		log.Warnf("unknown event kind %q", kind)
		return CodeUsage
	}
}

// poster parses post arguments and forwards them to the producer.
type poster struct {
	*Producer
	log logrus.FieldLogger
}

func (p poster) usage(form string) int {
	p.log.Warnf("usage: post %s", form)
	return CodeUsage
}

func (p poster) bad(what, value string) int {
	p.log.WithField("value", value).Warnf("invalid %s", what)
	return CodeBadValue
}

// window parses an optional trailing window index. It defaults to 0.
func (p poster) window(args []string, at int) (event.WindowHandle, bool) {
	if len(args) <= at {
		return 0, true
	}
	n, err := strconv.ParseUint(args[at], 10, 16)
	if err != nil {
		return 0, false
	}
	return event.WindowHandle(n), true
}

func (p poster) key(args []string) int {
	const form = "key <[mods+]name> [down|up] [window]"
	if len(args) < 1 || len(args) > 3 {
		return p.usage(form)
	}

	k, mods, ok := key.ParseCombo(args[0])
	if !ok {
		return p.bad("key", args[0])
	}

	press, down := true, true
	if len(args) > 1 {
		switch args[1] {
		case "down":
			press = false
		case "up":
			press, down = false, false
		default:
			return p.bad("key state", args[1])
		}
	}

	h, ok := p.window(args, 2)
	if !ok {
		return p.bad("window", args[2])
	}

	if press {
		p.PostKeyEvent(h, k, mods, true)
		p.PostKeyEvent(h, k, mods, false)
		return 0
	}
	p.PostKeyEvent(h, k, mods, down)
	return 0
}

func (p poster) char(args []string) int {
	if len(args) < 1 || len(args) > 2 {
		return p.usage("char <text> [window]")
	}
	h, ok := p.window(args, 1)
	if !ok {
		return p.bad("window", args[1])
	}
	for _, r := range args[0] {
		n, b := event.EncodeChar(r)
		p.PostCharEvent(h, n, b)
	}
	return 0
}

func (p poster) mouse(args []string) int {
	if len(args) < 2 || len(args) > 4 {
		return p.usage("mouse <x> <y> [z] [window]")
	}
	coords, ok := parseInt32s(args[:min(len(args), 3)])
	if !ok {
		return p.bad("coordinates", strings.Join(args, " "))
	}
	var z int32
	if len(coords) == 3 {
		z = coords[2]
	}
	h, ok := p.window(args, 3)
	if !ok {
		return p.bad("window", args[3])
	}
	p.PostMouseEvent(h, coords[0], coords[1], z)
	return 0
}

func (p poster) button(args []string) int {
	const form = "button <left|middle|right> <down|up> <x> <y> [window]"
	if len(args) < 4 || len(args) > 5 {
		return p.usage(form)
	}
	b, ok := mouse.ParseButton(args[0])
	if !ok || b == mouse.ButtonNone {
		return p.bad("button", args[0])
	}
	var down bool
	switch args[1] {
	case "down":
		down = true
	case "up":
	default:
		return p.bad("button state", args[1])
	}
	xy, ok := parseInt32s(args[2:4])
	if !ok {
		return p.bad("coordinates", strings.Join(args[2:4], " "))
	}
	h, ok := p.window(args, 4)
	if !ok {
		return p.bad("window", args[4])
	}
	p.PostMouseButtonEvent(h, xy[0], xy[1], 0, b, down)
	return 0
}

func (p poster) size(args []string) int {
	if len(args) < 2 || len(args) > 3 {
		return p.usage("size <width> <height> [window]")
	}
	w, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return p.bad("width", args[0])
	}
	ht, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return p.bad("height", args[1])
	}
	h, ok := p.window(args, 2)
	if !ok {
		return p.bad("window", args[2])
	}
	p.PostSizeEvent(h, uint32(w), uint32(ht))
	return 0
}

func (p poster) drop(args []string) int {
	if len(args) < 1 || len(args) > 2 || args[0] == "" {
		return p.usage("drop <path> [window]")
	}
	h, ok := p.window(args, 1)
	if !ok {
		return p.bad("window", args[1])
	}
	p.PostDropFileEvent(h, args[0])
	return 0
}

func (p poster) suspend(args []string) int {
	if len(args) < 1 || len(args) > 2 {
		return p.usage("suspend <state> [window]")
	}
	state, ok := event.ParseSuspendState(args[0])
	if !ok {
		return p.bad("suspend state", args[0])
	}
	h, ok := p.window(args, 1)
	if !ok {
		return p.bad("window", args[1])
	}
	p.PostSuspendEvent(h, state)
	return 0
}

func (p poster) gamepad(args []string) int {
	if len(args) < 2 || len(args) > 3 {
		return p.usage("gamepad <index> <connect|disconnect> [window]")
	}
	gp, ok := parseGamepad(args[0])
	if !ok {
		return p.bad("gamepad", args[0])
	}
	var connected bool
	switch args[1] {
	case "connect":
		connected = true
	case "disconnect":
	default:
		return p.bad("gamepad state", args[1])
	}
	h, ok := p.window(args, 2)
	if !ok {
		return p.bad("window", args[2])
	}
	p.PostGamepadEvent(h, gp, connected)
	return 0
}

func (p poster) axis(args []string) int {
	if len(args) < 3 || len(args) > 4 {
		return p.usage("axis <index> <axis> <value> [window]")
	}
	gp, ok := parseGamepad(args[0])
	if !ok {
		return p.bad("gamepad", args[0])
	}
	ax, ok := gamepad.ParseAxis(args[1])
	if !ok {
		return p.bad("axis", args[1])
	}
	v, ok := parseInt32s(args[2:3])
	if !ok {
		return p.bad("axis value", args[2])
	}
	h, ok := p.window(args, 3)
	if !ok {
		return p.bad("window", args[3])
	}
	p.PostAxisEvent(h, gp, ax, v[0])
	return 0
}

func parseGamepad(s string) (gamepad.Handle, bool) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, false
	}
	return gamepad.Handle(n), true
}

func parseInt32s(args []string) ([]int32, bool) {
	out := make([]int32, len(args))
	for i, s := range args {
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, false
		}
		out[i] = int32(n)
	}
	return out, true
}
