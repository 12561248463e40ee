// Package main is the entry point for the harness command line.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dshills/harness/internal/app"
	"github.com/dshills/harness/internal/config"
	"github.com/dshills/harness/internal/event"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	script     string
	window     int
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "harness",
		Short: "Command dispatcher and input event queue",
		Long: `Harness executes shell-style command lines against registered commands
and queues typed input events (keys, text, mouse, gamepads, resizes,
dropped files) for a main loop to drain.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(fmt.Sprintf("harness %s\nCommit: %s\nBuilt: %s\n", version, commit, date))

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Path to configuration file (.toml, .yaml)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVarP(&flags.script, "script", "s", "", "Lua script to run at startup")
	pf.IntVarP(&flags.window, "window", "w", -1, "Only drain events for this window (events for other windows wait in the queue)")

	root.AddCommand(
		newExecCmd(flags),
		newConsoleCmd(flags),
		newRunCmd(flags),
	)
	return root
}

// loadConfig resolves defaults, the config file and the environment, then
// applies command-line overrides.
func (f *globalFlags) loadConfig() (config.Config, error) {
	cfg, err := config.Resolve(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.script != "" {
		cfg.Script.Path = f.script
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if f.window >= cfg.Window.MaxWindows {
		return config.Config{}, errors.Errorf("window %d outside the limit of %d windows", f.window, cfg.Window.MaxWindows)
	}
	return cfg, nil
}

// windowHandle returns the --window handle, or event.InvalidWindow for all
// windows.
func (f *globalFlags) windowHandle() event.WindowHandle {
	if f.window < 0 {
		return event.InvalidWindow
	}
	return event.WindowHandle(f.window)
}
