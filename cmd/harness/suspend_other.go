//go:build !unix

package main

import (
	"context"

	"github.com/sirupsen/logrus"
)

// watchSuspend is a no-op where processes cannot be stopped from the shell.
func watchSuspend(context.Context, suspender, logrus.FieldLogger) chan<- struct{} {
	return nil
}
