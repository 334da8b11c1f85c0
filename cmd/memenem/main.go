package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/s9b/memenem/internal/client"
	"github.com/s9b/memenem/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	err := root.ExecuteContext(ctx)
	root.Close()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", client.Message(err))
		var apiErr *client.Error
		if errors.As(err, &apiErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
