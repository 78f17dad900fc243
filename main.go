package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vzwadmin/beheer/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, Version+" ("+Commit+")", os.Args[1:])
	stop()
	os.Exit(code)
}
