package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/flight-search/fallback-flight-aggregator/cmd/flightctl/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.ExecuteContext(ctx)
}
