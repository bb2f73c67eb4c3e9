package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ardnew/glass/cli"
	"github.com/ardnew/glass/cli/cmd"
	"github.com/ardnew/glass/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.Run(ctx, os.Exit, os.Args[1:]...)

	stop()

	if err != nil {
		// Diagnostics have already been written to stderr.
		if !errors.Is(err, cmd.ErrReported) {
			log.Error("run failed", slog.Any("error", err))
		}

		os.Exit(1)
	}
}
