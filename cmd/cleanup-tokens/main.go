// Command cleanup-tokens deletes expired and revoked refresh tokens.
//
// Usage:
//
//	cleanup-tokens
//
// Requires DATABASE_DSN to be set.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/heartmarshall/todolist-backend/internal/app"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := app.CleanupTokens(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cleanup-tokens: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted %d expired/revoked refresh tokens.\n", n)
}
