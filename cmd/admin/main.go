// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command admin is the animetrack-admin maintenance CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/animetrack/internal/cli"
	"github.com/taibuivan/animetrack/internal/platform/constants"
)

func main() {
	// Logs go to stderr so command output stays pipeable.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})).With(slog.String("app", constants.AppName+"-admin"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(cli.Dependencies{Logger: logger})
	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
