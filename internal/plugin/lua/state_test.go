package lua

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	glua "github.com/yuin/gopher-lua"
)

func newTestState(t *testing.T, opts ...StateOption) (*State, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	s := NewState(append([]StateOption{WithLogger(logger)}, opts...)...)
	t.Cleanup(func() { s.Close() })
	return s, hook
}

func TestStateDoString(t *testing.T) {
	s, _ := newTestState(t)

	if err := s.DoString(`x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := s.GetGlobal("x"); got != glua.LNumber(2) {
		t.Errorf("x = %v, want 2", got)
	}

	if err := s.DoString(`error("boom")`); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("DoString(error) = %v, want boom", err)
	}
	if err := s.DoString(`this is not lua`); err == nil {
		t.Error("DoString(syntax error) should fail")
	}
}

func TestStateDoFile(t *testing.T) {
	s, _ := newTestState(t)

	path := filepath.Join(t.TempDir(), "init.lua")
	if err := os.WriteFile(path, []byte(`loaded = "yes"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.DoFile(path); err != nil {
		t.Fatalf("DoFile() error = %v", err)
	}
	if got := s.GetGlobal("loaded"); got != glua.LString("yes") {
		t.Errorf("loaded = %v, want yes", got)
	}

	if err := s.DoFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("DoFile(missing) should fail")
	}
}

func TestStateSandbox(t *testing.T) {
	s, _ := newTestState(t)

	for _, name := range []string{"io", "os", "debug", "dofile", "loadfile", "load", "loadstring"} {
		if got := s.GetGlobal(name); got != glua.LNil {
			t.Errorf("global %s = %v, want nil", name, got)
		}
	}
	for _, name := range []string{"string", "table", "math", "pairs", "require"} {
		if got := s.GetGlobal(name); got == glua.LNil {
			t.Errorf("global %s should be available", name)
		}
	}

	if err := s.DoString(`require("os")`); err == nil {
		t.Error("require(os) should fail")
	}
}

func TestStatePrintLogs(t *testing.T) {
	s, hook := newTestState(t)

	if err := s.DoString(`print("hello", 42)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("print did not log")
	}
	if entry.Level != logrus.InfoLevel || entry.Message != "hello\t42" {
		t.Errorf("log = %v %q, want info %q", entry.Level, entry.Message, "hello\t42")
	}
}

func TestStateCall(t *testing.T) {
	s, _ := newTestState(t)

	if err := s.DoString(`function add(a, b) return a + b, "sum" end
function none() end
notfn = 3`); err != nil {
		t.Fatal(err)
	}

	got, err := s.Call("add", glua.LNumber(2), glua.LNumber(3))
	if err != nil {
		t.Fatalf("Call(add) error = %v", err)
	}
	if len(got) != 2 || got[0] != glua.LNumber(5) || got[1] != glua.LString("sum") {
		t.Errorf("Call(add) = %v, want [5 sum]", got)
	}

	got, err = s.Call("none")
	if err != nil || got == nil || len(got) != 0 {
		t.Errorf("Call(none) = %v, %v; want empty slice", got, err)
	}

	if _, err := s.Call("notfn"); !errors.Is(err, ErrNotFunction) {
		t.Errorf("Call(notfn) error = %v, want ErrNotFunction", err)
	}
	if _, err := s.Call("missing"); !errors.Is(err, ErrNotFunction) {
		t.Errorf("Call(missing) error = %v, want ErrNotFunction", err)
	}
}

func TestStateTimeout(t *testing.T) {
	s, _ := newTestState(t, WithExecutionTimeout(50*time.Millisecond))

	err := s.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("DoString(loop) error = %v, want ErrExecutionTimeout", err)
	}

	if err := s.DoString(`ok = true`); err != nil {
		t.Errorf("state unusable after timeout: %v", err)
	}
}

func TestStateRegisterModule(t *testing.T) {
	s, _ := newTestState(t)

	err := s.RegisterModule("util", map[string]glua.LGFunction{
		"double": func(L *glua.LState) int {
			L.Push(L.CheckNumber(1) * 2)
			return 1
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.DoString(`a = util.double(4)
local u = require("util")
b = u.double(5)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if s.GetGlobal("a") != glua.LNumber(8) || s.GetGlobal("b") != glua.LNumber(10) {
		t.Errorf("a, b = %v, %v; want 8, 10", s.GetGlobal("a"), s.GetGlobal("b"))
	}
}

func TestStateClose(t *testing.T) {
	s, _ := newTestState(t)

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !s.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	if err := s.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() after Close = %v, want ErrStateClosed", err)
	}
	if _, err := s.Call("f"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Call() after Close = %v, want ErrStateClosed", err)
	}
	if got := s.GetGlobal("x"); got != glua.LNil {
		t.Errorf("GetGlobal() after Close = %v, want nil", got)
	}
}
