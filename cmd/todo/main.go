package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"todo/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		handler := cli.NewErrorHandler()
		fmt.Fprintf(os.Stderr, "Error: %s\n", handler.Message(err))
		return handler.ExitCode(err)
	}
	return cli.ExitOK
}
