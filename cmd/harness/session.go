package main

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/dshills/harness/internal/app"
	"github.com/dshills/harness/internal/config"
	"github.com/dshills/harness/internal/event"
	"github.com/dshills/harness/internal/plugin/lua"
)

// session is an application plus its optional Lua front end.
type session struct {
	app    *app.App
	script *lua.State

	// window limits draining to one window; event.InvalidWindow drains all.
	window event.WindowHandle
}

// newSession creates the application and runs the configured startup script.
func newSession(cfg config.Config, window event.WindowHandle, opts app.Options) (*session, error) {
	a, err := app.New(cfg, opts)
	if err != nil {
		return nil, err
	}

	s := &session{app: a, window: window}
	if cfg.Script.Path != "" {
		if err := s.loadScript(cfg.Script.Path); err != nil {
			_ = s.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *session) loadScript(path string) error {
	st := lua.NewState(lua.WithLogger(app.WithComponent(s.app.Logger(), "lua")))
	if err := lua.NewModule(st, s.app.Commands(), s.app.Producer()).Install(); err != nil {
		_ = st.Close()
		return errors.Wrap(err, "installing lua module")
	}
	s.script = st

	if err := st.DoFile(path); err != nil {
		return errors.Wrapf(err, "running script %s", path)
	}
	s.app.Logger().WithField("script", path).Debug("startup script loaded")
	return nil
}

// pump drains the session's window into h and reports whether to stop.
func (s *session) pump(h app.Handler) bool {
	return s.app.PumpWindow(s.window, h)
}

// Close shuts down the application before the interpreter its commands call.
func (s *session) Close() error {
	err := s.app.Close()
	if s.script != nil {
		_ = s.script.Close()
	}
	return err
}

// newEventLogger returns the logger that reports drained events on w.
func newEventLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	return l
}
