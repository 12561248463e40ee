package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/harness/internal/app"
)

func newExecCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command-line>...",
		Short: "Execute command lines and print the events they post",
		Example: `  harness exec "post key ctrl+s" "post size 800 600"
  harness exec 'post char "hello world"'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			s, err := newSession(cfg, flags.windowHandle(), app.Options{LogOutput: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer s.Close()

			h := s.app.BindingHandler(app.LogHandler(newEventLogger(cmd.OutOrStdout())))
			if s.pump(h) {
				return nil
			}
			for _, line := range args {
				s.app.Execute(line)
				if s.pump(h) {
					return nil
				}
			}
			return nil
		},
	}
}
