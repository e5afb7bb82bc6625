// lineack - a one-line TCP acknowledgement responder.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lineack/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "lineack: %v\n", err)
		os.Exit(1)
	}
}
