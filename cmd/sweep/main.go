// Command sweep runs one lifecycle sweep and prints its report.
//
// Usage:
//
//	sweep -kind completed
//	sweep -kind overdue
//
// Exit codes: 0 = every candidate removed, 1 = error, 2 = some candidates failed.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/heartmarshall/todolist-backend/internal/app"
	"github.com/heartmarshall/todolist-backend/internal/domain"
)

func main() {
	kind := flag.String("kind", string(domain.SweepCompleted), "sweep kind: completed or overdue")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall sweep timeout")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	report, err := app.Sweep(ctx, domain.SweepKind(*kind))
	if err != nil {
		fmt.Fprintf(os.Stderr, "sweep: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s sweep: %d candidates, %d tasks deleted, %d comments deleted\n",
		report.Kind, report.Candidates, report.DeletedTasks, report.DeletedComments)
	if len(report.FailedTaskIDs) > 0 {
		fmt.Printf("failed: %s\n", strings.Join(report.FailedTaskIDs, ", "))
		os.Exit(2)
	}
}
