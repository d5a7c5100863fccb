// Command bot runs the chat client in a console session: each line read from
// stdin is one message of the chat configured by BOT_CHAT_ID.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/heartmarshall/todolist-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.RunBot(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "bot: %v\n", err)
		os.Exit(1)
	}
}
