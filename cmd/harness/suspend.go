package main

import (
	"context"

	"github.com/sirupsen/logrus"
)

// suspender hands the terminal back to the shell and takes it again.
type suspender interface {
	Suspend() error
	Resume() error
}

// suspendLoop suspends s once per request until ctx is done. stop blocks
// while the process is stopped.
func suspendLoop(ctx context.Context, requests <-chan struct{}, s suspender, stop func() error, log logrus.FieldLogger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-requests:
		}

		if err := s.Suspend(); err != nil {
			log.WithError(err).Warn("suspend failed")
			continue
		}
		if err := stop(); err != nil {
			log.WithError(err).Warn("stopping process")
		}
		if err := s.Resume(); err != nil {
			log.WithError(err).Error("resume failed")
		}
	}
}

// requestSuspend asks for a suspend without blocking. A request already
// pending absorbs this one. A nil channel ignores it.
func requestSuspend(requests chan<- struct{}) {
	select {
	case requests <- struct{}{}:
	default:
	}
}
