package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dshills/harness/internal/app"
	"github.com/dshills/harness/internal/event"
	"github.com/dshills/harness/internal/input/key"
	"github.com/dshills/harness/internal/platform/dropwatch"
	"github.com/dshills/harness/internal/platform/terminal"
)

type runFlags struct {
	noTerminal bool
	dropDir    string
	quitKey    string
	suspendKey string
}

func newRunCmd(flags *globalFlags) *cobra.Command {
	rf := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the main loop over the terminal and drop-directory sources",
		Long: `Run starts the configured event sources and drains the queue until an
Exit event arrives, the quit key is pressed or the process is interrupted.
Key bindings from the configuration and the bind command fire as keys go
down. On Unix, the suspend key or SIGTSTP hands the terminal back to the shell
and posts Suspend events around the stop and the continue.
While the terminal source owns the screen, log output is held and written to
standard error when the loop ends.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if rf.noTerminal {
				cfg.Terminal.Enabled = false
			}
			if rf.dropDir != "" {
				cfg.DropWatch.Dir = rf.dropDir
			}

			quit, quitMods, ok := key.ParseCombo(rf.quitKey)
			if !ok {
				return errors.Errorf("invalid quit key %q", rf.quitKey)
			}
			suspendKey, suspendMods := key.KeyNone, key.ModNone
			if rf.suspendKey != "" {
				if suspendKey, suspendMods, ok = key.ParseCombo(rf.suspendKey); !ok {
					return errors.Errorf("invalid suspend key %q", rf.suspendKey)
				}
			}

			var held *bytes.Buffer
			var logOut io.Writer = cmd.ErrOrStderr()
			if cfg.Terminal.Enabled && cfg.Log.File == "" {
				held = &bytes.Buffer{}
				logOut = held
			}
			defer func() {
				if held != nil {
					_, _ = io.Copy(cmd.ErrOrStderr(), held)
				}
			}()

			s, err := newSession(cfg, flags.windowHandle(), app.Options{LogOutput: logOut})
			if err != nil {
				return err
			}
			defer s.Close()

			term, err := addSources(s.app, s.window)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var suspend chan<- struct{}
			if term != nil {
				suspend = watchSuspend(ctx, term, app.WithComponent(s.app.Logger(), "terminal"))
			}

			bindings := s.app.BindingHandler(app.LogHandler(app.WithComponent(s.app.Logger(), "events")))
			return s.app.RunWindow(ctx, s.window, func(ev event.Event) error {
				if k, ok := ev.(event.KeyEvent); ok && k.Down {
					switch {
					case k.Key == quit && k.Modifiers == quitMods:
						return app.ErrQuit
					case k.Key == suspendKey && k.Modifiers == suspendMods:
						requestSuspend(suspend)
						return nil
					}
				}
				return bindings(ev)
			})
		},
	}

	f := cmd.Flags()
	f.BoolVar(&rf.noTerminal, "no-terminal", false, "Do not read input from the terminal")
	f.StringVar(&rf.dropDir, "drop-dir", "", "Directory whose new files are posted as dropped files")
	f.StringVar(&rf.quitKey, "quit-key", "ctrl+q", "Key that stops the loop")
	f.StringVar(&rf.suspendKey, "suspend-key", "ctrl+z", "Key that suspends to the shell (empty disables)")
	return cmd
}

// addSources attaches the event sources enabled in the configuration and
// returns the terminal source, if any. Sources post for window, or window 0
// when window is event.InvalidWindow.
func addSources(a *app.App, window event.WindowHandle) (*terminal.Terminal, error) {
	cfg := a.Config()
	if !window.IsValid() {
		window = 0
	}

	var t *terminal.Terminal
	if cfg.Terminal.Enabled {
		var err error
		t, err = terminal.New(
			terminal.WithWindow(window),
			terminal.WithMouse(cfg.Terminal.Mouse),
			terminal.WithLogger(app.WithComponent(a.Logger(), "terminal")),
		)
		if err != nil {
			return nil, errors.Wrap(err, "creating terminal")
		}
		if err := a.AddSource("terminal", t); err != nil {
			return nil, err
		}
	}

	if cfg.DropWatch.Dir != "" {
		w := dropwatch.New(cfg.DropWatch.Dir,
			dropwatch.WithWindow(window),
			dropwatch.WithLogger(app.WithComponent(a.Logger(), "dropwatch")),
		)
		if err := a.AddSource("dropwatch", w); err != nil {
			return nil, err
		}
	}
	return t, nil
}
