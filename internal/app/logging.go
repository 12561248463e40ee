package app

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/dshills/harness/internal/config"
)

// NewLogger builds a logger from cfg. Output goes to cfg.File when set,
// otherwise to w, otherwise to stderr. The returned closer releases the log
// file and is a no-op when none was opened.
func NewLogger(cfg config.LogConfig, w io.Writer) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, nil, errors.Wrap(err, "log level")
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000",
		})
	}

	var closer io.Closer = nopCloser{}
	switch {
	case cfg.File != "":
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening log file")
		}
		logger.SetOutput(f)
		closer = f
	case w != nil:
		logger.SetOutput(w)
	default:
		logger.SetOutput(os.Stderr)
	}

	return logger, closer, nil
}

// WithComponent scopes l to a named component.
func WithComponent(l logrus.FieldLogger, component string) logrus.FieldLogger {
	return l.WithField("component", component)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
