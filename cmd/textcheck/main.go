package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// main runs the root command with a context cancelled on SIGINT/SIGTERM.
// Any command error exits with status 1.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
