package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"note-manager/internal/cli"
)

func main() {
	// Ctrl+C отменяет контекст команды, хранилище закрывается штатно
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, cli.Describe(err))
		stop()
		os.Exit(1)
	}
}
