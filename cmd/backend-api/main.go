// Package main provides the entry point for the backend-api server.
package main

import (
	"context"
	"os"

	"github.com/agentstation/backend-api/cmd/backend-api/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	// SIGINT/SIGTERM cancel ctx, which drains the server.
	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		application.Logger().Error().Err(err).Msg("Fatal error")
		cancel()
		app.ExitOnError(err)
	}
}
