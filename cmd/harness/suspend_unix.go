//go:build unix

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// watchSuspend suspends s on SIGTSTP and on each request sent to the returned
// channel until ctx is done.
func watchSuspend(ctx context.Context, s suspender, log logrus.FieldLogger) chan<- struct{} {
	requests := make(chan struct{}, 1)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTSTP)
	go func() {
		defer signal.Stop(sigs)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigs:
				requestSuspend(requests)
			}
		}
	}()

	go suspendLoop(ctx, requests, s, stopProcess, log)
	return requests
}

// stopProcess stops the process and returns once it is continued.
func stopProcess() error {
	return syscall.Kill(syscall.Getpid(), syscall.SIGSTOP)
}
