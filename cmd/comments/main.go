// Command comments runs the comment service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/todolist-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunComments(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "comments: %v\n", err)
		os.Exit(1)
	}
}
