// Package main provides the entry point for the eventdeck CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/eventdeck/eventdeck/internal/cmd"
	"github.com/eventdeck/eventdeck/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cmd.NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		logging.Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
