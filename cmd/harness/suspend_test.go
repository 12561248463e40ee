package main

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/harness/internal/app"
	"github.com/dshills/harness/internal/config"
	"github.com/dshills/harness/internal/event"
	"github.com/dshills/harness/internal/platform/terminal"
)

func TestSuspendRequestReachesHandler(t *testing.T) {
	cfg := config.Default()
	cfg.Terminal.Enabled = false

	s, err := newSession(cfg, event.InvalidWindow, app.Options{LogOutput: io.Discard})
	require.NoError(t, err)
	defer s.Close()

	term, err := terminal.New(terminal.WithScreen(tcell.NewSimulationScreen("UTF-8")))
	require.NoError(t, err)
	require.NoError(t, s.app.AddSource("terminal", term))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var stops atomic.Int32
	requests := make(chan struct{}, 1)
	go suspendLoop(ctx, requests, term, func() error {
		stops.Add(1)
		return nil
	}, s.app.Logger())

	var states []event.SuspendState
	err = s.app.Run(ctx, func(ev event.Event) error {
		switch e := ev.(type) {
		case event.WindowEvent:
			// The terminal is attached; its Suspend now has a poster.
			requestSuspend(requests)
		case event.SuspendEvent:
			states = append(states, e.State)
			if e.State == event.DidResume {
				return app.ErrQuit
			}
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []event.SuspendState{
		event.WillSuspend,
		event.DidSuspend,
		event.WillResume,
		event.DidResume,
	}, states)
	assert.Equal(t, int32(1), stops.Load())
}

func TestRequestSuspendDoesNotBlock(t *testing.T) {
	requests := make(chan struct{}, 1)
	requestSuspend(requests)
	requestSuspend(requests)
	assert.Len(t, requests, 1)

	requestSuspend(nil)
}

func TestRunInvalidSuspendKey(t *testing.T) {
	_, _, err := execRoot(t, "", "run", "--no-terminal", "--suspend-key", "hyper+nothing")
	assert.ErrorContains(t, err, "invalid suspend key")
}
