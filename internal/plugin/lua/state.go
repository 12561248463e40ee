package lua

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds one top-level chunk or call.
const DefaultExecutionTimeout = 5 * time.Second

// State wraps a sandboxed gopher-lua interpreter.
//
// Calls from Go are serialized by a mutex. A Go function invoked from a
// running chunk, such as a Lua command reached through harness.exec, re-enters
// the state on the same goroutine without taking the lock again. Using one
// State from several goroutines at once is not supported.
type State struct {
	L *lua.LState

	mu      sync.Mutex
	active  atomic.Bool
	timeout time.Duration
	logger  logrus.FieldLogger
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the timeout for top-level calls. Zero disables it.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.timeout = d
	}
}

// WithLogger sets the logger that receives print output and script errors.
func WithLogger(l logrus.FieldLogger) StateOption {
	return func(s *State) {
		s.logger = l
	}
}

// NewState creates a sandboxed Lua state.
func NewState(opts ...StateOption) *State {
	s := &State{
		timeout: DefaultExecutionTimeout,
		logger:  logrus.StandardLogger().WithField("component", "lua"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	installSandbox(s.L, s.logger)
	return s
}

// DoFile executes a Lua file.
func (s *State) DoFile(path string) error {
	return s.run(func(L *lua.LState) error {
		return L.DoFile(path)
	})
}

// DoString executes a Lua chunk.
func (s *State) DoString(code string) error {
	return s.run(func(L *lua.LState) error {
		return L.DoString(code)
	})
}

// Call calls a global Lua function and returns its results. It returns an
// empty slice, not nil, when the function returns nothing.
func (s *State) Call(fn string, args ...lua.LValue) ([]lua.LValue, error) {
	var results []lua.LValue
	err := s.run(func(L *lua.LState) error {
		fnVal := L.GetGlobal(fn)
		if fnVal.Type() != lua.LTFunction {
			return errors.Wrapf(ErrNotFunction, "%q (got %s)", fn, fnVal.Type())
		}
		var err error
		results, err = callValue(L, fnVal, args...)
		return err
	})
	return results, err
}

// callValue calls fn in protected mode and pops its results.
func callValue(L *lua.LState, fn lua.LValue, args ...lua.LValue) ([]lua.LValue, error) {
	top := L.GetTop()
	L.Push(fn)
	for _, arg := range args {
		L.Push(arg)
	}
	if err := L.PCall(len(args), lua.MultRet, nil); err != nil {
		return nil, err
	}

	n := L.GetTop() - top
	results := make([]lua.LValue, n)
	for i := 0; i < n; i++ {
		results[i] = L.Get(top + i + 1)
	}
	L.Pop(n)
	return results, nil
}

// run executes fn against the interpreter with panic recovery and the
// configured timeout.
func (s *State) run(fn func(L *lua.LState) error) error {
	if s.active.Load() {
		return doWithRecovery(s.L, fn)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	s.active.Store(true)
	defer s.active.Store(false)

	if s.timeout <= 0 {
		return doWithRecovery(s.L, fn)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	err := doWithRecovery(s.L, fn)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Wrap(ErrExecutionTimeout, err.Error())
	}
	return err
}

func doWithRecovery(L *lua.LState, fn func(L *lua.LState) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn(L)
}

// GetGlobal returns a global variable, or LNil once the state is closed.
func (s *State) GetGlobal(name string) lua.LValue {
	var v lua.LValue = lua.LNil
	_ = s.run(func(L *lua.LState) error {
		v = L.GetGlobal(name)
		return nil
	})
	return v
}

// SetGlobal sets a global variable.
func (s *State) SetGlobal(name string, value lua.LValue) error {
	return s.run(func(L *lua.LState) error {
		L.SetGlobal(name, value)
		return nil
	})
}

// RegisterModule installs funcs as a table under the global name and makes it
// loadable with require(name).
func (s *State) RegisterModule(name string, funcs map[string]lua.LGFunction) error {
	return s.run(func(L *lua.LState) error {
		mod := L.SetFuncs(L.NewTable(), funcs)
		L.SetGlobal(name, mod)
		L.PreloadModule(name, func(L *lua.LState) int {
			L.Push(mod)
			return 1
		})
		return nil
	})
}

// Logger returns the logger scripts print to.
func (s *State) Logger() logrus.FieldLogger {
	return s.logger
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the interpreter. Later calls return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
