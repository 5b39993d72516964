package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/DanielPopoola/moneybag-go/cmd/moneybag/commands"
	"github.com/DanielPopoola/moneybag-go/domain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := commands.ExecuteContext(ctx); err != nil {
		if valErr, ok := domain.IsValidationError(err); ok {
			fmt.Fprintln(os.Stderr, "validation failed:")
			for _, msg := range valErr.Messages {
				fmt.Fprintln(os.Stderr, "  -", msg)
			}
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		stop()
		os.Exit(1)
	}
}
