// cmd/directory/main.go
//
// This is the entry point for the staff directory client.
// Running `directory` with no subcommand opens the TUI; the subcommands
// expose the same list/create/export operations for scripts.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
