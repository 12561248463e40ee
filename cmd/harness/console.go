package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/harness/internal/app"
)

const consolePrompt = "harness> "

// lineReader reads one command line at a time.
type lineReader interface {
	ReadLine() (string, error)
}

type scanReader struct {
	sc *bufio.Scanner
}

func (r scanReader) ReadLine() (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

func newConsoleCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Read command lines interactively and print the events they post",
		Long: `Console reads command lines from standard input, executes each one and
prints the events it posted. It stops at end of input or when an Exit event
is drained. When standard input is a terminal it provides line editing and
history.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			var (
				in  lineReader = scanReader{bufio.NewScanner(cmd.InOrStdin())}
				out io.Writer  = cmd.OutOrStdout()
			)
			if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				fd := int(f.Fd())
				state, err := term.MakeRaw(fd)
				if err != nil {
					return err
				}
				defer term.Restore(fd, state)

				t := term.NewTerminal(struct {
					io.Reader
					io.Writer
				}{f, out}, consolePrompt)
				in, out = t, t
			}

			s, err := newSession(cfg, flags.windowHandle(), app.Options{LogOutput: out})
			if err != nil {
				return err
			}
			defer s.Close()

			return console(s, in, s.app.BindingHandler(app.LogHandler(newEventLogger(out))))
		},
	}
}

// console executes lines from in until end of input or an Exit event.
func console(s *session, in lineReader, h app.Handler) error {
	if s.pump(h) {
		return nil
	}
	for {
		line, err := in.ReadLine()
		switch {
		case err == io.EOF:
			return nil
		case err == term.ErrPasteIndicator:
			// Pasted line; execute it like typed input.
		case err != nil:
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		s.app.Execute(line)
		if s.pump(h) {
			return nil
		}
	}
}
