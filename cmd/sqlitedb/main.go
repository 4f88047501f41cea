// Command sqlitedb inspects and edits sqlitedb databases.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/esoadamo/sqlitedb/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = ""

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, version); err != nil {
		stop()
		os.Exit(1)
	}
}
