// Command migrate applies pending database migrations.
//
// Usage:
//
//	migrate              # both stores
//	migrate -set tasks
//	migrate -set comments
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/heartmarshall/todolist-backend/internal/app"
	"github.com/heartmarshall/todolist-backend/migrations"
)

func main() {
	set := flag.String("set", "all", "migration set: tasks, comments or all")
	flag.Parse()

	var sets []migrations.Set
	switch *set {
	case "all":
		sets = []migrations.Set{migrations.Tasks, migrations.Comments}
	case string(migrations.Tasks), string(migrations.Comments):
		sets = []migrations.Set{migrations.Set(*set)}
	default:
		fmt.Fprintf(os.Stderr, "migrate: unknown set %q\n", *set)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := app.Migrate(ctx, sets...); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}
